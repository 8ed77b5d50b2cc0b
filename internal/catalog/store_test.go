package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domerrors "github.com/vasptech/vaspx-actions/internal/errors"
	"github.com/vasptech/vaspx-actions/internal/product"
)

func TestDefault_LoadsEveryRequiredReply(t *testing.T) {
	t.Parallel()
	s, err := Default()
	require.NoError(t, err)

	assert.Empty(t, s.Missing())
	assert.Equal(t, EmbeddedSource, s.Source())
	assert.Equal(t, 1, s.Version())
	assert.Len(t, s.IDs(), s.Len())
	assert.GreaterOrEqual(t, s.Len(), len(Required()))
}

func TestDefault_ComparisonRepliesAreDistinct(t *testing.T) {
	t.Parallel()
	s := MustDefault()
	overview, ok := s.Text(Overview)
	require.True(t, ok)

	seen := map[string]product.ComparisonKey{}
	for _, key := range product.ComparisonKeys() {
		text, ok := s.Text(ComparisonID(key))
		require.True(t, ok, "missing comparison %s", key)
		assert.NotEqual(t, overview, text, "comparison %s equals the overview", key)
		if prev, dup := seen[text]; dup {
			t.Errorf("comparison %s duplicates %s", key, prev)
		}
		seen[text] = key
	}
}

func TestDefault_SuggestionsMentionTheirProduct(t *testing.T) {
	t.Parallel()
	s := MustDefault()
	for _, info := range product.All() {
		text, ok := s.Text(SuggestionID(info.ID))
		require.True(t, ok)
		assert.Contains(t, text, "You asked about "+info.FullName)
		assert.Contains(t, text, info.Phone)
	}
}

func TestDefault_NoTrailingNewlines(t *testing.T) {
	t.Parallel()
	s := MustDefault()
	for _, id := range s.IDs() {
		text, _ := s.Text(id)
		assert.False(t, strings.HasSuffix(text, "\n"), "%s ends with a newline", id)
	}
}

func TestRender(t *testing.T) {
	t.Parallel()
	s := MustDefault()

	got, err := s.Render(FallbackProducts, Data{Products: "Ednect, IceBox"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "**About Ednect, IceBox** - I can help with:"))

	got, err = s.Render(IntelligentMultiProduct, Data{Products: "EDNECT, ICEBOX"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "**You mentioned: EDNECT, ICEBOX**"))

	// replies without parameters come back verbatim
	want, _ := s.Text(FallbackMenu)
	got, err = s.Render(FallbackMenu, Data{Products: "ignored"})
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = s.Render(ID("nope.nope"), Data{})
	assert.ErrorIs(t, err, domerrors.ErrTemplateMissing)
}

func TestLoad_RejectsSchemaViolations(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		doc  string
	}{
		{"empty document", ""},
		{"missing templates", "version: 1\n"},
		{"zero version", "version: 0\ntemplates:\n  compare.overview: hi\n"},
		{"bad key", "version: 1\ntemplates:\n  Overview: hi\n"},
		{"empty text", "version: 1\ntemplates:\n  compare.overview: \"\"\n"},
		{"unknown top-level field", "version: 1\nextra: true\ntemplates:\n  compare.overview: hi\n"},
		{"not yaml mapping", "- a\n- b\n"},
	}

	for _, tt := range tests {
		tt := tt // per-iteration copy for pre-Go 1.22 loop semantics
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Load("test", []byte(tt.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, domerrors.ErrCatalogInvalid)
		})
	}
}

func TestLoad_RejectsMissingReplies(t *testing.T) {
	t.Parallel()
	_, err := Load("partial", []byte("version: 1\ntemplates:\n  compare.overview: hi\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domerrors.ErrTemplateMissing)

	var catErr *domerrors.CatalogError
	require.ErrorAs(t, err, &catErr)
	assert.Equal(t, "partial", catErr.Source)
	assert.Len(t, catErr.Problems, len(Required())-1)
}

func TestLoad_RejectsBrokenTemplate(t *testing.T) {
	t.Parallel()
	doc := completeDocument(t, map[ID]string{
		FallbackProducts: "**About {{.Nope}}**",
	})
	_, err := Load("broken", doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, domerrors.ErrCatalogInvalid)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	s, err := LoadFile("")
	require.NoError(t, err)
	assert.Equal(t, EmbeddedSource, s.Source())

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, completeDocument(t, map[ID]string{FallbackMenu: "custom menu"}), 0o600))

	s, err = LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, s.Source())
	text, ok := s.Text(FallbackMenu)
	require.True(t, ok)
	assert.Equal(t, "custom menu", text)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

// completeDocument renders a valid catalog with every required reply,
// applying overrides on top of placeholder text.
func completeDocument(t *testing.T, overrides map[ID]string) []byte {
	t.Helper()
	var sb strings.Builder
	sb.WriteString("version: 1\ntemplates:\n")
	for _, id := range Required() {
		text := "reply " + string(id)
		if id.Parameterized() {
			text = "reply {{.Products}}"
		}
		if o, ok := overrides[id]; ok {
			text = o
		}
		sb.WriteString("  " + string(id) + ": " + quote(text) + "\n")
	}
	return []byte(sb.String())
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
