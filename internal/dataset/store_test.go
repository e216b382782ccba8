package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegion() Region {
	return Region{
		Code:            "RD",
		NameEN:          "Riyadh",
		PopulationTotal: 8216284,
		PopulationUrban: 7500000,
		PopulationRural: 716284,
		AreaKM2:         380000,
		GDPPerCapita:    95000,
	}
}

func TestStoreStockSelectsLatestEligibleYear(t *testing.T) {
	s := NewStore()
	s.PutStock(WorkforceStock{RegionCode: "RD", CategoryCode: "PHY", DataYear: 2022, CurrentCount: 8000})
	s.PutStock(WorkforceStock{RegionCode: "RD", CategoryCode: "PHY", DataYear: 2024, CurrentCount: 8500})
	s.PutStock(WorkforceStock{RegionCode: "RD", CategoryCode: "PHY", DataYear: 2026, CurrentCount: 9100})

	st, ok := s.Stock("RD", "PHY", 2025)
	require.True(t, ok)
	assert.Equal(t, 2024, st.DataYear)
	assert.Equal(t, 8500.0, st.CurrentCount)

	// Only future records exist for 2021
	_, ok = s.Stock("RD", "PHY", 2021)
	assert.False(t, ok)

	// Replacement keeps one record per year
	s.PutStock(WorkforceStock{RegionCode: "RD", CategoryCode: "PHY", DataYear: 2024, CurrentCount: 8600})
	st, ok = s.Stock("RD", "PHY", 2024)
	require.True(t, ok)
	assert.Equal(t, 8600.0, st.CurrentCount)
}

func TestStorePopulationFallsBackToEarlierYear(t *testing.T) {
	s := NewStore()
	s.PutPopulationSnapshot(PopulationSnapshot{RegionCode: "RD", Year: 2023, TotalPopulation: 8000000})
	s.PutPopulationSnapshot(PopulationSnapshot{RegionCode: "RD", Year: 2020, TotalPopulation: 7600000})

	p, ok := s.PopulationSnapshot("RD", 2025)
	require.True(t, ok)
	assert.Equal(t, 2023, p.Year)

	_, ok = s.PopulationSnapshot("MK", 2025)
	assert.False(t, ok)
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	src := NewStore()
	src.PutRegion(testRegion())
	src.PutCategory(WorkerCategory{Code: "PHY", NameEN: "Physicians", AvgSalary: 180000, CriticalShortage: true})
	src.PutStock(WorkforceStock{RegionCode: "RD", CategoryCode: "PHY", DataYear: 2024, CurrentCount: 8500, FilledPositions: 8200, AuthorizedPositions: 9000})
	src.PutPopulationSnapshot(PopulationSnapshot{
		RegionCode:      "RD",
		Year:            2024,
		TotalPopulation: 8216284,
		Bands: AgeBands{
			Young:      2000000,
			YoungAdult: 2200000,
			Adult:      2100000,
			Middle:     1300000,
			Elderly:    616284,
		},
		BirthRatePer1000: 18,
		DeathRatePer1000: 3.5,
	})
	require.NoError(t, src.Save(dir))

	dst := NewStore()
	require.NoError(t, dst.Load(dir))

	r, ok := dst.Region("RD")
	require.True(t, ok)
	assert.Equal(t, "Riyadh", r.NameEN)

	c, ok := dst.Category("PHY")
	require.True(t, ok)
	assert.True(t, c.CriticalShortage)

	st, ok := dst.Stock("RD", "PHY", 2024)
	require.True(t, ok)
	assert.Equal(t, 8500.0, st.CurrentCount)

	p, ok := dst.PopulationSnapshot("RD", 2024)
	require.True(t, ok)
	assert.InDelta(t, 0.075, p.ElderlyShare(), 0.001)
}

func TestStoreLoadMissingFileStartsEmpty(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Load(t.TempDir()))
	regions, categories, stocks, populations := s.Counts()
	assert.Zero(t, regions+categories+stocks+populations)
}

func TestStoreLoadSkipsInvalidRecords(t *testing.T) {
	dir := t.TempDir()
	file := File{
		Regions: []Region{
			testRegion(),
			// Urban+rural wildly off total
			{Code: "XX", NameEN: "Broken", PopulationTotal: 1000000, PopulationUrban: 100, PopulationRural: 100, AreaKM2: 1000, GDPPerCapita: 50000},
		},
		Categories: []WorkerCategory{{Code: "PHY", NameEN: "Physicians", AvgSalary: 180000}},
		Stocks: []WorkforceStock{
			{RegionCode: "RD", CategoryCode: "PHY", DataYear: 2024, CurrentCount: 100},
			{RegionCode: "RD", CategoryCode: "PHY", DataYear: 2023, CurrentCount: -5},
		},
	}
	require.NoError(t, WriteFile(filepath.Join(dir, "dataset.json"), file))

	s := NewStore()
	require.NoError(t, s.Load(dir))

	_, ok := s.Region("XX")
	assert.False(t, ok, "invalid region should have been skipped")
	_, ok = s.Region("RD")
	assert.True(t, ok)
	_, ok = s.Stock("RD", "PHY", 2023)
	assert.False(t, ok, "negative stock record should have been skipped")
}

func TestDecodeFileRejectsMalformedDocument(t *testing.T) {
	// population_total as a string should fail schema validation, not decode to zero
	raw := []byte(`{"regions":[{"code":"RD","name_en":"Riyadh","population_total":"many","population_urban":1,"population_rural":0,"area_km2":1,"gdp_per_capita":1}],"categories":[],"stocks":[]}`)
	_, err := DecodeFile(raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation failed")
}

func TestValidateInvariants(t *testing.T) {
	r := testRegion()
	require.NoError(t, r.Validate())

	r.PopulationUrban = 100
	assert.Error(t, r.Validate())

	st := WorkforceStock{RegionCode: "RD", CategoryCode: "PHY", DataYear: 2024, CurrentCount: 10, FilledPositions: 20, AuthorizedPositions: 15}
	assert.Error(t, st.Validate())

	p := PopulationSnapshot{RegionCode: "RD", Year: 2024, TotalPopulation: 100, Bands: AgeBands{Young: 98, Elderly: 1}}
	assert.Error(t, p.Validate())
	p.Bands.YoungAdult = 1
	assert.NoError(t, p.Validate())
}

func TestWriteFileAtomicRename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dataset.json")
	require.NoError(t, WriteFile(path, File{Regions: []Region{testRegion()}}))

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should not remain after rename")
}
