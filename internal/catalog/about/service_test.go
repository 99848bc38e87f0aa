package about

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kochwerk/kochwerk/internal/catalog"
	"github.com/kochwerk/kochwerk/internal/imagestore"
	"github.com/kochwerk/kochwerk/internal/store"
	"github.com/kochwerk/kochwerk/internal/store/jsonstore"
)

func newTestService(t *testing.T) (*Service, *imagestore.Store) {
	t.Helper()

	images, err := imagestore.New(t.TempDir(), "/uploads", "http://localhost:3670")
	require.NoError(t, err)

	return New(jsonstore.NewAbout(t.TempDir()), images), images
}

func TestGetUnset(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.Get()
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateValidation(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.Update(&UpdateRequest{Title: "", Content: ""})
	require.Error(t, err)

	var validationErr *catalog.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "title")
	assert.Contains(t, validationErr.Fields, "content")
}

func TestUpdateCreatesAndReplaces(t *testing.T) {
	service, _ := newTestService(t)

	created, err := service.Update(&UpdateRequest{
		Title:   "Über mich",
		Content: "Hobbykoch aus dem Allgäu.",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	replaced, err := service.Update(&UpdateRequest{
		Title:   "Über uns",
		Content: "Jetzt kochen wir zu zweit.",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, replaced.ID)

	got, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, "Über uns", got.Title)
}

func TestUpdateImageRetainedWhenAbsent(t *testing.T) {
	service, images := newTestService(t)

	name, err := images.Save("kitchen.jpg", strings.NewReader("not a real jpeg"))
	require.NoError(t, err)

	_, err = service.Update(&UpdateRequest{
		Title:   "Über mich",
		Content: "Mit Bild.",
		Image:   &name,
	})
	require.NoError(t, err)

	updated, err := service.Update(&UpdateRequest{
		Title:   "Über mich",
		Content: "Text geändert, Bild bleibt.",
	})
	require.NoError(t, err)

	require.NotNil(t, updated.Image)
	assert.Equal(t, "http://localhost:3670/uploads/"+name, *updated.Image)
	assert.FileExists(t, filepath.Join(images.Dir(), name))
}

func TestUpdateImageReplacementReleasesOldFile(t *testing.T) {
	service, images := newTestService(t)

	oldName, err := images.Save("kitchen.jpg", strings.NewReader("not a real jpeg"))
	require.NoError(t, err)
	newName, err := images.Save("kitchen2.jpg", strings.NewReader("still not a jpeg"))
	require.NoError(t, err)

	_, err = service.Update(&UpdateRequest{Title: "t", Content: "c", Image: &oldName})
	require.NoError(t, err)

	updated, err := service.Update(&UpdateRequest{Title: "t", Content: "c", Image: &newName})
	require.NoError(t, err)

	require.NotNil(t, updated.Image)
	assert.Equal(t, "http://localhost:3670/uploads/"+newName, *updated.Image)
	assert.NoFileExists(t, filepath.Join(images.Dir(), oldName))
	assert.FileExists(t, filepath.Join(images.Dir(), newName))
}
