package analytics

import (
	"math"
	"testing"
)

func TestSensitivityGrid(t *testing.T) {
	result := Sensitivity(1000, nil)

	if len(result.Parameters) != len(DefaultSensitivityParameters) {
		t.Fatalf("Expected %d parameters, got %d", len(DefaultSensitivityParameters), len(result.Parameters))
	}

	grad := result.Parameters["graduation_rate"]["+10%"]
	if grad.ModifiedValue != 1030 {
		t.Errorf("Expected modified value 1030, got %v", grad.ModifiedValue)
	}
	if math.Abs(grad.ImpactPercentage-3) > 1e-9 {
		t.Errorf("Expected impact 3%%, got %v", grad.ImpactPercentage)
	}
	if math.Abs(grad.Elasticity-0.3) > 1e-9 {
		t.Errorf("Expected elasticity 0.3, got %v", grad.Elasticity)
	}

	attr := result.Parameters["attrition_rate"]["+10%"]
	if attr.ModifiedValue != 960 {
		t.Errorf("Expected modified value 960, got %v", attr.ModifiedValue)
	}
	if math.Abs(attr.Elasticity-(-0.4)) > 1e-9 {
		t.Errorf("Expected elasticity -0.4, got %v", attr.Elasticity)
	}

	// Elasticity is constant across variations of a linear response.
	down := result.Parameters["attrition_rate"]["-20%"]
	if math.Abs(down.Elasticity-(-0.4)) > 1e-9 {
		t.Errorf("Expected elasticity -0.4 at -20%%, got %v", down.Elasticity)
	}

	// Attrition carries the largest absolute elasticity of the defaults.
	if result.MostSensitiveParameter != "attrition_rate" {
		t.Errorf("Expected attrition_rate most sensitive, got %s", result.MostSensitiveParameter)
	}
}

func TestSensitivityZeroBase(t *testing.T) {
	result := Sensitivity(0, []string{"graduation_rate", "attrition_rate"})

	v := result.Parameters["graduation_rate"]["+20%"]
	if v.ModifiedValue != 0 || v.ImpactPercentage != 0 || v.Elasticity != 0 {
		t.Errorf("Expected zero variation for zero base, got %+v", v)
	}
	if result.MostSensitiveParameter != "graduation_rate" {
		t.Errorf("Expected first parameter on a tie, got %s", result.MostSensitiveParameter)
	}
}

func TestSensitivityUnknownParameterUsesDefaultLeverage(t *testing.T) {
	result := Sensitivity(1000, []string{"visa_policy"})

	v := result.Parameters["visa_policy"]["+10%"]
	if v.ModifiedValue != 1010 {
		t.Errorf("Expected modified value 1010, got %v", v.ModifiedValue)
	}
	if math.Abs(v.Elasticity-0.1) > 1e-9 {
		t.Errorf("Expected default elasticity 0.1, got %v", v.Elasticity)
	}
}
