package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuneClasses(t *testing.T) {
	for _, r := range []rune{'a', 'Z', 'é', '7', 'ж'} {
		assert.True(t, IsWordRune(r), string(r))
	}
	for _, r := range []rune{' ', ',', '.', '-', '\''} {
		assert.False(t, IsWordRune(r), string(r))
	}
	assert.True(t, IsJoiner('’'))
	assert.False(t, IsJoiner('_'))
	assert.True(t, IsTerminator('…'))
	assert.False(t, IsTerminator(','))
	assert.True(t, IsClosingMark('”'))
	assert.False(t, IsClosingMark('('))
}

func TestCapitalizeFirst(t *testing.T) {
	testCases := map[string]string{
		"":       "",
		"happy":  "Happy",
		"Happy":  "Happy",
		"élan":   "Élan",
		"3 pigs": "3 pigs",
		",":      ",",
	}
	for in, want := range testCases {
		assert.Equal(t, want, CapitalizeFirst(in), in)
	}
}

func TestHasPrefixIgnoreCase(t *testing.T) {
	assert.True(t, HasPrefixIgnoreCase("There is", "the"))
	assert.True(t, HasPrefixIgnoreCase("x", ""))
	assert.False(t, HasPrefixIgnoreCase("th", "the"))
}

func TestSuggestionFilter(t *testing.T) {
	f := NewSuggestionFilter("Dog")
	assert.False(t, f.ShouldInclude("dog"))
	assert.True(t, f.ShouldInclude("Cat"))
	assert.False(t, f.ShouldInclude("CAT"))
	assert.True(t, f.ShouldInclude("bird"))
}

func TestCreateRankList(t *testing.T) {
	assert.Equal(t, []uint16{1, 2, 3}, CreateRankList(3))
	assert.Empty(t, CreateRankList(0))
	assert.NotNil(t, CreateRankList(-1))
}

func TestExtractHelpers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.toml")
	require.NoError(t, os.WriteFile(path, []byte("[a]\nn = 3\nb = true\ns = \"x\"\n"), 0644))

	data, err := ParseTOMLWithRecovery(path)
	require.NoError(t, err)
	section, ok := ExtractSection(data, "a")
	require.True(t, ok)

	n, ok := ExtractInt(section, "n")
	assert.True(t, ok)
	assert.Equal(t, 3, n)
	b, ok := ExtractBool(section, "b")
	assert.True(t, ok)
	assert.True(t, b)
	s, ok := ExtractString(section, "s")
	assert.True(t, ok)
	assert.Equal(t, "x", s)

	_, ok = ExtractString(section, "n")
	assert.False(t, ok)
	_, ok = ExtractSection(data, "missing")
	assert.False(t, ok)
}

func TestSaveAndLoadTOML(t *testing.T) {
	type sample struct {
		Name string `toml:"name"`
		Cap  int    `toml:"cap"`
	}
	dir := filepath.Join(t.TempDir(), "nested")
	require.NoError(t, EnsureDir(dir))
	path := filepath.Join(dir, "s.toml")

	require.NoError(t, SaveTOMLFile(sample{Name: "bank", Cap: 6}, path))
	assert.True(t, FileExists(path))

	var got sample
	require.NoError(t, LoadTOMLFile(path, &got))
	assert.Equal(t, sample{Name: "bank", Cap: 6}, got)
}

func TestSaveTOMLFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "s.toml")
	err := SaveTOMLFile(map[string]int{"cap": 1}, path)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), path)

	_, err = ParseTOMLWithRecovery(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSaveTOMLFileLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, SaveTOMLFile(map[string]int{"cap": 1}, path))
	require.NoError(t, SaveTOMLFile(map[string]int{"cap": 2}, path))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "config.toml", entries[0].Name())
}

func TestLoadTOMLFileIgnoresUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.toml")
	require.NoError(t, os.WriteFile(path, []byte("name = \"bank\"\nextra = 1\n"), 0644))

	var got struct {
		Name string `toml:"name"`
	}
	require.NoError(t, LoadTOMLFile(path, &got))
	assert.Equal(t, "bank", got.Name)
}

func TestUsableConfigDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "new", "wordcoach")
	assert.True(t, UsableConfigDir(dir))
	assert.DirExists(t, dir)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	file := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	assert.False(t, UsableConfigDir(filepath.Join(file, "sub")))
}

func TestAbsolutePath(t *testing.T) {
	assert.Equal(t, "unknown", AbsolutePath(""))
	assert.True(t, filepath.IsAbs(AbsolutePath("config.toml")))
}

func TestResolveDataFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "extra.csv")
	require.NoError(t, os.WriteFile(file, []byte("category,text\n"), 0644))

	pr := &PathResolver{executableDir: dir, configDir: filepath.Join(dir, "cfg")}

	got, err := pr.ResolveDataFile("extra.csv")
	require.NoError(t, err)
	assert.Equal(t, file, got)

	got, err = pr.ResolveDataFile(file)
	require.NoError(t, err)
	assert.Equal(t, file, got)

	_, err = pr.ResolveDataFile("missing.csv")
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, err = pr.ResolveDataFile(" ")
	assert.ErrorIs(t, err, os.ErrNotExist)

	info := pr.GetRuntimeInfo()
	assert.Equal(t, dir, info["executable_dir"])
}
