package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"
)

// Reader is the lookup surface the planning engine consumes. All methods
// return a copy and a found flag; missing entities are never errors here.
type Reader interface {
	Region(code string) (Region, bool)
	Category(code string) (WorkerCategory, bool)
	Stock(regionCode, categoryCode string, asOfYear int) (WorkforceStock, bool)
	StockSeries(regionCode, categoryCode string) []WorkforceStock
	PopulationSnapshot(regionCode string, year int) (PopulationSnapshot, bool)
	Regions() []Region
	Categories() []WorkerCategory
}

type stockKey struct {
	region   string
	category string
}

type popKey struct {
	region string
	year   int
}

// Store provides thread-safe access to the planning dataset.
type Store struct {
	mu          sync.RWMutex
	regions     map[string]Region
	categories  map[string]WorkerCategory
	stocks      map[stockKey][]WorkforceStock // Sorted ascending by DataYear
	populations map[popKey]PopulationSnapshot
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		regions:     make(map[string]Region),
		categories:  make(map[string]WorkerCategory),
		stocks:      make(map[stockKey][]WorkforceStock),
		populations: make(map[popKey]PopulationSnapshot),
	}
}

// PutRegion inserts or replaces a region.
func (s *Store) PutRegion(r Region) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.regions[r.Code] = r
}

// PutCategory inserts or replaces a worker category.
func (s *Store) PutCategory(c WorkerCategory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[c.Code] = c
}

// PutStock inserts or replaces the stock record for its (region, category, year).
func (s *Store) PutStock(st WorkforceStock) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := stockKey{st.RegionCode, st.CategoryCode}
	records := s.stocks[key]
	replaced := false
	for i, existing := range records {
		if existing.DataYear == st.DataYear {
			records[i] = st
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, st)
		sort.Slice(records, func(i, j int) bool {
			return records[i].DataYear < records[j].DataYear
		})
	}
	s.stocks[key] = records
}

// PutPopulationSnapshot inserts or replaces a snapshot for its (region, year).
func (s *Store) PutPopulationSnapshot(p PopulationSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.populations[popKey{p.RegionCode, p.Year}] = p
}

// Region returns the region for a code.
func (s *Store) Region(code string) (Region, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.regions[code]
	return r, ok
}

// Category returns the worker category for a code.
func (s *Store) Category(code string) (WorkerCategory, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[code]
	return c, ok
}

// Stock returns the most recent stock record with DataYear <= asOfYear.
func (s *Store) Stock(regionCode, categoryCode string, asOfYear int) (WorkforceStock, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.stocks[stockKey{regionCode, categoryCode}]
	// Records are sorted ascending, walk backwards for the newest eligible year
	for i := len(records) - 1; i >= 0; i-- {
		if records[i].DataYear <= asOfYear {
			return records[i], true
		}
	}
	return WorkforceStock{}, false
}

// StockSeries returns all recorded stock years for a (region, category)
// pair, ascending by DataYear.
func (s *Store) StockSeries(regionCode, categoryCode string) []WorkforceStock {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.stocks[stockKey{regionCode, categoryCode}]
	out := make([]WorkforceStock, len(records))
	copy(out, records)
	return out
}

// PopulationSnapshot returns the snapshot for an exact (region, year), falling
// back to the most recent earlier year for the region.
func (s *Store) PopulationSnapshot(regionCode string, year int) (PopulationSnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.populations[popKey{regionCode, year}]; ok {
		return p, true
	}
	var best PopulationSnapshot
	found := false
	for k, p := range s.populations {
		if k.region != regionCode || k.year > year {
			continue
		}
		if !found || p.Year > best.Year {
			best = p
			found = true
		}
	}
	return best, found
}

// Regions returns all regions sorted by code.
func (s *Store) Regions() []Region {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Region, 0, len(s.regions))
	for _, r := range s.regions {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Categories returns all worker categories sorted by code.
func (s *Store) Categories() []WorkerCategory {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]WorkerCategory, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Counts reports the number of records per kind, for startup logging.
func (s *Store) Counts() (regions, categories, stocks, populations int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, records := range s.stocks {
		stocks += len(records)
	}
	return len(s.regions), len(s.categories), stocks, len(s.populations)
}

// File is the on-disk dataset document shared by the generator and the server.
type File struct {
	GeneratedBy string               `json:"generated_by,omitempty"`
	Regions     []Region             `json:"regions,omitempty"`
	Categories  []WorkerCategory     `json:"categories,omitempty"`
	Stocks      []WorkforceStock     `json:"stocks,omitempty"`
	Populations []PopulationSnapshot `json:"populations,omitempty"`
}

// Load reads dataset.json from dir into the store. A missing file is not an
// error so the server can start empty and be pointed at data later.
func (s *Store) Load(dir string) error {
	path := filepath.Join(dir, "dataset.json")
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn().Str("path", path).Msg("No dataset file found, starting empty")
			return nil
		}
		return fmt.Errorf("failed to read dataset: %w", err)
	}

	file, err := DecodeFile(raw)
	if err != nil {
		return fmt.Errorf("dataset %s: %w", path, err)
	}

	skipped := 0
	for _, r := range file.Regions {
		if err := r.Validate(); err != nil {
			log.Warn().Err(err).Msg("Skipping invalid region record")
			skipped++
			continue
		}
		s.PutRegion(r)
	}
	for _, c := range file.Categories {
		s.PutCategory(c)
	}
	for _, st := range file.Stocks {
		if err := st.Validate(); err != nil {
			log.Warn().Err(err).Msg("Skipping invalid stock record")
			skipped++
			continue
		}
		s.PutStock(st)
	}
	for _, p := range file.Populations {
		if err := p.Validate(); err != nil {
			log.Warn().Err(err).Msg("Skipping invalid population record")
			skipped++
			continue
		}
		s.PutPopulationSnapshot(p)
	}

	regions, categories, stocks, populations := s.Counts()
	log.Info().
		Int("regions", regions).
		Int("categories", categories).
		Int("stocks", stocks).
		Int("populations", populations).
		Int("skipped", skipped).
		Msg("Dataset loaded")
	return nil
}

// Save writes the store contents to dataset.json in dir via a temp file and
// atomic rename.
func (s *Store) Save(dir string) error {
	s.mu.RLock()
	var file File
	for _, r := range s.regions {
		file.Regions = append(file.Regions, r)
	}
	sort.Slice(file.Regions, func(i, j int) bool { return file.Regions[i].Code < file.Regions[j].Code })
	for _, c := range s.categories {
		file.Categories = append(file.Categories, c)
	}
	sort.Slice(file.Categories, func(i, j int) bool { return file.Categories[i].Code < file.Categories[j].Code })
	keys := make([]stockKey, 0, len(s.stocks))
	for k := range s.stocks {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].region != keys[j].region {
			return keys[i].region < keys[j].region
		}
		return keys[i].category < keys[j].category
	})
	for _, k := range keys {
		file.Stocks = append(file.Stocks, s.stocks[k]...)
	}
	popKeys := make([]popKey, 0, len(s.populations))
	for k := range s.populations {
		popKeys = append(popKeys, k)
	}
	sort.Slice(popKeys, func(i, j int) bool {
		if popKeys[i].region != popKeys[j].region {
			return popKeys[i].region < popKeys[j].region
		}
		return popKeys[i].year < popKeys[j].year
	})
	for _, k := range popKeys {
		file.Populations = append(file.Populations, s.populations[k])
	}
	s.mu.RUnlock()

	return WriteFile(filepath.Join(dir, "dataset.json"), file)
}

// WriteFile marshals a dataset document and writes it atomically.
func WriteFile(path string, file File) error {
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode dataset: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write dataset: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename dataset file: %w", err)
	}

	log.Info().Str("path", path).
		Int("regions", len(file.Regions)).
		Int("stocks", len(file.Stocks)).
		Msg("Dataset written")
	return nil
}
