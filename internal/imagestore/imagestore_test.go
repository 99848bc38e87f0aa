package imagestore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(t.TempDir(), "/uploads", "http://localhost:8080")
	require.NoError(t, err)

	return s
}

func TestSaveAndRelease(t *testing.T) {
	s := newTestStore(t)

	name, err := s.Save("Foto.JPG", strings.NewReader("fake image bytes"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(name, "recipe-"))
	assert.True(t, strings.HasSuffix(name, ".jpg"), "original extension is preserved lowercased")

	data, err := os.ReadFile(filepath.Join(s.Dir(), name))
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(data))

	require.NoError(t, s.Release(name))

	_, err = os.Stat(filepath.Join(s.Dir(), name))
	assert.True(t, os.IsNotExist(err), "released file is no longer retrievable")

	// releasing again is not an error
	assert.NoError(t, s.Release(name))
}

func TestReleaseIgnoresUnmanagedReferences(t *testing.T) {
	s := newTestStore(t)

	assert.NoError(t, s.Release("https://example.com/some.jpg"))
	assert.NoError(t, s.Release("data:image/jpeg;base64,AAAA"))
	assert.NoError(t, s.Release(""))
}

func TestURL(t *testing.T) {
	s := newTestStore(t)

	testCases := []struct {
		name      string
		reference string
		expected  string
	}{
		{
			name:      "relative stored path is rewritten",
			reference: "recipe-1700000000000-123456789.png",
			expected:  "http://localhost:8080/uploads/recipe-1700000000000-123456789.png",
		},
		{
			name:      "absolute http url passes through",
			reference: "http://cdn.example.com/a.jpg",
			expected:  "http://cdn.example.com/a.jpg",
		},
		{
			name:      "absolute https url passes through",
			reference: "https://cdn.example.com/a.jpg",
			expected:  "https://cdn.example.com/a.jpg",
		},
		{
			name:      "inline data reference passes through",
			reference: "data:image/jpeg;base64,AAAA",
			expected:  "data:image/jpeg;base64,AAAA",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, s.URL(tc.reference))
		})
	}

	assert.Nil(t, s.Resolve(nil))
}

func TestAllowed(t *testing.T) {
	testCases := []struct {
		name        string
		filename    string
		contentType string
		allowed     bool
	}{
		{"jpg", "a.jpg", "image/jpeg", true},
		{"jpeg uppercase", "a.JPEG", "image/jpeg", true},
		{"png", "a.png", "image/png", true},
		{"gif", "a.gif", "image/gif", true},
		{"webp", "a.webp", "image/webp", true},
		{"txt rejected regardless of declared type", "a.txt", "image/jpeg", false},
		{"mismatched mime", "a.png", "text/plain", false},
		{"no extension", "a", "image/png", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, Allowed(tc.filename, tc.contentType))
		})
	}
}

func TestRandomDigits(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		out := randomDigits(9)
		assert.Len(t, out, 9)

		for _, c := range out {
			assert.True(t, c >= '0' && c <= '9')
		}

		seen[out] = true
	}

	assert.Greater(t, len(seen), 90, "suffixes are effectively unique")
}
