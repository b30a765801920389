package links_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/langmark/pkg/links"
)

func TestRegistry_RegisterResolve(t *testing.T) {
	t.Parallel()

	reg := links.NewRegistry()
	reg.Register("home", "https://example.com", "")
	reg.Register("docs", "https://example.com/docs", "Docs")

	def, ok := reg.Resolve("home")
	require.True(t, ok)
	assert.Equal(t, "https://example.com", def.URL)
	assert.Empty(t, def.Title)

	def, ok = reg.Resolve("docs")
	require.True(t, ok)
	assert.Equal(t, "Docs", def.Title)

	_, ok = reg.Resolve("Home")
	assert.False(t, ok, "ids match exactly")
}

func TestRegistry_LaterRegistrationWins(t *testing.T) {
	t.Parallel()

	reg := links.NewRegistry()
	reg.Register("a", "first", "")
	reg.Register("b", "other", "")
	reg.Register("a", "second", "T")

	def, ok := reg.Resolve("a")
	require.True(t, ok)
	assert.Equal(t, links.Definition{URL: "second", Title: "T"}, def)
	assert.Equal(t, []string{"a", "b"}, reg.IDs())
	assert.Equal(t, 2, reg.Len())
}

func TestRegistry_Nil(t *testing.T) {
	t.Parallel()

	var reg *links.Registry
	_, ok := reg.Resolve("x")
	assert.False(t, ok)
	assert.Nil(t, reg.IDs())
	assert.Zero(t, reg.Len())
}
