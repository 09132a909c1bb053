package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalog(t *testing.T) {
	tests := []struct {
		name     string
		contents []string
		wantLen  int
		errCheck func(error) bool
	}{
		{
			name:     "multiple quotes",
			contents: []string{"first", "second", "third"},
			wantLen:  3,
		},
		{
			name:     "single quote",
			contents: []string{"only one"},
			wantLen:  1,
		},
		{
			name:     "unicode and emoji preserved",
			contents: []string{"🚀 Every great dream begins with a dreamer."},
			wantLen:  1,
		},
		{
			name:     "empty list rejected",
			contents: []string{},
			errCheck: IsValidation,
		},
		{
			name:     "nil list rejected",
			contents: nil,
			errCheck: IsValidation,
		},
		{
			name:     "blank entry rejected",
			contents: []string{"fine", "   ", "also fine"},
			errCheck: IsValidation,
		},
		{
			name:     "empty string entry rejected",
			contents: []string{""},
			errCheck: IsValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog, err := NewCatalog(tt.contents)

			if tt.errCheck != nil {
				require.Error(t, err)
				assert.True(t, tt.errCheck(err), "unexpected error type: %v", err)
				assert.Nil(t, catalog)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, catalog)
			assert.Equal(t, tt.wantLen, catalog.Len())
		})
	}
}

func TestCatalog_Quote_AssignsPositionalIDs(t *testing.T) {
	catalog, err := NewCatalog([]string{"alpha", "beta", "gamma"})
	require.NoError(t, err)

	for i, wantID := range []string{"1", "2", "3"} {
		q := catalog.Quote(i)
		assert.Equal(t, wantID, q.ID)
	}

	assert.Equal(t, "beta", catalog.Quote(1).Content)
}

func TestCatalog_ByID(t *testing.T) {
	catalog, err := NewCatalog([]string{"alpha", "beta"})
	require.NoError(t, err)

	tests := []struct {
		name        string
		id          string
		wantContent string
		wantOK      bool
	}{
		{name: "first", id: "1", wantContent: "alpha", wantOK: true},
		{name: "last", id: "2", wantContent: "beta", wantOK: true},
		{name: "zero is out of range", id: "0", wantOK: false},
		{name: "past the end", id: "3", wantOK: false},
		{name: "negative", id: "-1", wantOK: false},
		{name: "not a number", id: "abc", wantOK: false},
		{name: "empty", id: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, ok := catalog.ByID(tt.id)

			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantContent, q.Content)
				assert.Equal(t, tt.id, q.ID)
			}
		})
	}
}

func TestCatalog_All_ReturnsCopy(t *testing.T) {
	catalog, err := NewCatalog([]string{"alpha", "beta"})
	require.NoError(t, err)

	all := catalog.All()
	require.Len(t, all, 2)

	// Mutating the returned slice must not affect the catalog.
	all[0].Content = "mutated"

	assert.Equal(t, "alpha", catalog.Quote(0).Content)
	assert.Equal(t, "alpha", catalog.All()[0].Content)
}

func TestCatalog_Contains(t *testing.T) {
	catalog, err := NewCatalog([]string{"alpha", "beta"})
	require.NoError(t, err)

	assert.True(t, catalog.Contains("alpha"))
	assert.True(t, catalog.Contains("beta"))
	assert.False(t, catalog.Contains("gamma"))
	assert.False(t, catalog.Contains(""))
	assert.False(t, catalog.Contains("alph"))
}
