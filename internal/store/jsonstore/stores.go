package jsonstore

import (
	"errors"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/kochwerk/kochwerk/internal/db/models"
	"github.com/kochwerk/kochwerk/internal/store"
)

// Recipes is the file-backed recipe store.
type Recipes struct {
	col *Collection[models.Recipe, *models.Recipe]
}

// NewRecipes creates a recipe store at <dataDir>/recipes.json.
func NewRecipes(dataDir string) *Recipes {
	return &Recipes{
		col: NewCollection[models.Recipe, *models.Recipe](filepath.Join(dataDir, "recipes.json")),
	}
}

// List returns all recipes in file order.
func (s *Recipes) List() ([]models.Recipe, error) { return s.col.All() }

// Get retrieves a recipe by its id.
func (s *Recipes) Get(id uint64) (*models.Recipe, error) { return s.col.Find(id) }

// Create appends a recipe, assigning id max(existing)+1.
func (s *Recipes) Create(recipe *models.Recipe) error {
	now := time.Now()
	recipe.CreatedAt = now
	recipe.UpdatedAt = now

	return s.col.Insert(recipe)
}

// Update replaces the stored recipe with the same id.
func (s *Recipes) Update(recipe *models.Recipe) error {
	recipe.UpdatedAt = time.Now()

	return s.col.Replace(recipe)
}

// Delete removes a recipe by its id.
func (s *Recipes) Delete(id uint64) error { return s.col.Remove(id) }

// Equipment is the file-backed equipment store.
type Equipment struct {
	col *Collection[models.Equipment, *models.Equipment]
}

// NewEquipment creates an equipment store at <dataDir>/equipment.json.
func NewEquipment(dataDir string) *Equipment {
	return &Equipment{
		col: NewCollection[models.Equipment, *models.Equipment](filepath.Join(dataDir, "equipment.json")),
	}
}

// List returns one page of equipment matching the filter, ordered by
// category then name. The filter semantics mirror the relational store.
func (s *Equipment) List(filter store.EquipmentFilter) (*store.EquipmentPage, error) {
	records, err := s.col.All()
	if err != nil {
		return nil, err
	}

	matched := make([]models.Equipment, 0, len(records))
	for _, record := range records {
		if matchesFilter(&record, filter) {
			matched = append(matched, record)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Category != matched[j].Category {
			return matched[i].Category < matched[j].Category
		}
		return matched[i].Name < matched[j].Name
	})

	page := filter.Page
	if page < 1 {
		page = 1
	}

	total := int64(len(matched))

	start := (page - 1) * store.EquipmentPageSize
	if start > len(matched) {
		start = len(matched)
	}

	end := start + store.EquipmentPageSize
	if end > len(matched) {
		end = len(matched)
	}

	return &store.EquipmentPage{
		Items:   matched[start:end],
		Total:   total,
		Page:    page,
		PerPage: store.EquipmentPageSize,
	}, nil
}

func matchesFilter(record *models.Equipment, filter store.EquipmentFilter) bool {
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		inName := strings.Contains(strings.ToLower(record.Name), needle)

		inDescription := false
		if record.Description != nil {
			inDescription = strings.Contains(strings.ToLower(*record.Description), needle)
		}

		if !inName && !inDescription {
			return false
		}
	}

	if len(filter.Categories) > 0 {
		found := false
		for _, category := range filter.Categories {
			if record.Category == category {
				found = true
				break
			}
		}

		if !found {
			return false
		}
	}

	return true
}

// Categories returns the distinct category labels in ascending order.
func (s *Equipment) Categories() ([]string, error) {
	records, err := s.col.All()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	categories := make([]string, 0)

	for _, record := range records {
		if !seen[record.Category] {
			seen[record.Category] = true
			categories = append(categories, record.Category)
		}
	}

	sort.Strings(categories)

	return categories, nil
}

// Get retrieves an equipment record by its id.
func (s *Equipment) Get(id uint64) (*models.Equipment, error) { return s.col.Find(id) }

// Create appends an equipment record, assigning id max(existing)+1.
func (s *Equipment) Create(equipment *models.Equipment) error {
	now := time.Now()
	equipment.CreatedAt = now
	equipment.UpdatedAt = now

	return s.col.Insert(equipment)
}

// Update replaces the stored equipment record with the same id.
func (s *Equipment) Update(equipment *models.Equipment) error {
	equipment.UpdatedAt = time.Now()

	return s.col.Replace(equipment)
}

// Delete removes an equipment record by its id.
func (s *Equipment) Delete(id uint64) error { return s.col.Remove(id) }

// About is the file-backed store for the singleton about section.
type About struct {
	col *Collection[models.About, *models.About]
}

// NewAbout creates an about store at <dataDir>/about.json.
func NewAbout(dataDir string) *About {
	return &About{
		col: NewCollection[models.About, *models.About](filepath.Join(dataDir, "about.json")),
	}
}

// Get retrieves the about section, or store.ErrNotFound when none exists yet.
func (s *About) Get() (*models.About, error) {
	records, err := s.col.All()
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, store.ErrNotFound
	}

	about := records[0]

	return &about, nil
}

// Save creates the about section when absent, otherwise mutates it in place.
func (s *About) Save(about *models.About) error {
	existing, err := s.Get()
	if errors.Is(err, store.ErrNotFound) {
		return s.col.Insert(about)
	}

	if err != nil {
		return err
	}

	about.ID = existing.ID

	return s.col.Replace(about)
}
