package jsonstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kochwerk/kochwerk/internal/db/models"
	"github.com/kochwerk/kochwerk/internal/store"
)

func strPtr(s string) *string { return &s }

func TestRecipesCRUD(t *testing.T) {
	recipes := NewRecipes(t.TempDir())

	// empty file yields empty collection
	list, err := recipes.List()
	require.NoError(t, err)
	assert.Empty(t, list)

	created := &models.Recipe{
		Title:        "Test",
		Description:  "Desc",
		Ingredients:  models.StringList{"A"},
		Instructions: models.StringList{"B"},
	}
	require.NoError(t, recipes.Create(created))
	assert.Equal(t, uint64(1), created.ID, "first id on an empty collection is 1")

	got, err := recipes.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Test", got.Title)
	assert.Equal(t, models.StringList{"B"}, got.Instructions)

	got.Title = "Updated"
	require.NoError(t, recipes.Update(got))

	got, err = recipes.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Updated", got.Title)

	require.NoError(t, recipes.Delete(1))

	list, err = recipes.List()
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = recipes.Get(1)
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.ErrorIs(t, recipes.Delete(1), store.ErrNotFound)
	assert.ErrorIs(t, recipes.Update(&models.Recipe{ID: 1}), store.ErrNotFound)
}

func TestRecipesIDAssignment(t *testing.T) {
	recipes := NewRecipes(t.TempDir())

	first := &models.Recipe{Title: "One", Description: "D"}
	second := &models.Recipe{Title: "Two", Description: "D"}
	third := &models.Recipe{Title: "Three", Description: "D"}

	require.NoError(t, recipes.Create(first))
	require.NoError(t, recipes.Create(second))
	assert.Equal(t, uint64(1), first.ID)
	assert.Equal(t, uint64(2), second.ID)

	// deleting the first record does not free its id
	require.NoError(t, recipes.Delete(first.ID))
	require.NoError(t, recipes.Create(third))
	assert.Equal(t, uint64(3), third.ID)
}

func TestCorruptFileDegradesToEmpty(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "recipes.json"), []byte("{not json"), 0o600)
	require.NoError(t, err)

	recipes := NewRecipes(dir)

	list, err := recipes.List()
	require.NoError(t, err, "corrupt backing store degrades to an empty collection")
	assert.Empty(t, list)

	// writing afterwards starts a fresh collection
	created := &models.Recipe{Title: "Fresh", Description: "D"}
	require.NoError(t, recipes.Create(created))
	assert.Equal(t, uint64(1), created.ID)
}

func TestEquipmentFilters(t *testing.T) {
	equipment := NewEquipment(t.TempDir())

	items := []models.Equipment{
		{Name: "WMF Messer", Description: strPtr("Scharf"), Link: "https://example.com/1", Category: "Messer"},
		{Name: "Anderes Messer", Description: strPtr("Auch gut"), Link: "https://example.com/2", Category: "Messer"},
		{Name: "WMF Topf", Description: strPtr("Groß"), Link: "https://example.com/3", Category: "Töpfe"},
		{Name: "Tefal Pfanne", Link: "https://example.com/4", Category: "Pfannen"},
	}
	for i := range items {
		require.NoError(t, equipment.Create(&items[i]))
	}

	testCases := []struct {
		name          string
		filter        store.EquipmentFilter
		expectedNames []string
	}{
		{
			name:          "no filter orders by category then name",
			filter:        store.EquipmentFilter{},
			expectedNames: []string{"Anderes Messer", "WMF Messer", "Tefal Pfanne", "WMF Topf"},
		},
		{
			name:          "case-insensitive substring on name or description",
			filter:        store.EquipmentFilter{Search: "messer"},
			expectedNames: []string{"Anderes Messer", "WMF Messer"},
		},
		{
			name:          "nil description does not match a search",
			filter:        store.EquipmentFilter{Search: "beschichtet"},
			expectedNames: []string{},
		},
		{
			name:          "combined search and category",
			filter:        store.EquipmentFilter{Search: "WMF", Categories: []string{"Messer"}},
			expectedNames: []string{"WMF Messer"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			page, err := equipment.List(tc.filter)
			require.NoError(t, err)

			names := make([]string, 0, len(page.Items))
			for _, item := range page.Items {
				names = append(names, item.Name)
			}

			assert.Equal(t, tc.expectedNames, names)
		})
	}

	categories, err := equipment.Categories()
	require.NoError(t, err)
	assert.Equal(t, []string{"Messer", "Pfannen", "Töpfe"}, categories)
}

func TestEquipmentPagination(t *testing.T) {
	equipment := NewEquipment(t.TempDir())

	for i := 0; i < 13; i++ {
		item := models.Equipment{
			Name:     string(rune('A'+i)) + "-Gerät",
			Link:     "https://example.com",
			Category: "Geräte",
		}
		require.NoError(t, equipment.Create(&item))
	}

	first, err := equipment.List(store.EquipmentFilter{})
	require.NoError(t, err)
	assert.Len(t, first.Items, 12)
	assert.Equal(t, int64(13), first.Total)
	assert.Equal(t, 1, first.Page)

	second, err := equipment.List(store.EquipmentFilter{Page: 2})
	require.NoError(t, err)
	assert.Len(t, second.Items, 1)

	// out of range pages come back empty instead of failing
	far, err := equipment.List(store.EquipmentFilter{Page: 99})
	require.NoError(t, err)
	assert.Empty(t, far.Items)
}

func TestAboutSingleton(t *testing.T) {
	about := NewAbout(t.TempDir())

	_, err := about.Get()
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, about.Save(&models.About{Title: "Über mich", Content: "Hallo"}))

	got, err := about.Get()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), got.ID)

	require.NoError(t, about.Save(&models.About{Title: "Neu", Content: "Geändert"}))

	got, err = about.Get()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), got.ID, "update mutates the singleton in place")
	assert.Equal(t, "Neu", got.Title)

	// still exactly one record in the file
	records, err := about.col.All()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
