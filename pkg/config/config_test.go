package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bastiangx/wordcoach/pkg/lexicon"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	assert.Equal(t, 6, c.Engine.WordBankCap)
	assert.Equal(t, 10, c.Engine.WorkspaceCap)
	assert.Equal(t, lexicon.Beginner, c.Engine.Level())
	assert.Equal(t, lexicon.Intermediate, c.CLI.Level())
	assert.False(t, c.Remote.Enabled)
	assert.Equal(t, 175*time.Millisecond, c.Remote.Debounce())
	assert.Equal(t, 2*time.Second, c.Remote.Timeout())
}

func TestLoadConfigKeepsDefaultsForMissingKeys(t *testing.T) {
	path := writeFile(t, `
[engine]
workspace_cap = 8
default_level = "advanced"

[remote]
enabled = true
base_url = "http://localhost:9000"
`)
	c, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 8, c.Engine.WorkspaceCap)
	assert.Equal(t, 6, c.Engine.WordBankCap)
	assert.Equal(t, lexicon.Advanced, c.Engine.Level())
	assert.True(t, c.Remote.Enabled)
	assert.Equal(t, "http://localhost:9000", c.Remote.BaseURL)
	assert.Equal(t, 175, c.Remote.DebounceMs)
	assert.Equal(t, 32, c.Server.MaxCap)
}

func TestLoadConfigRecoversFromBadTypes(t *testing.T) {
	path := writeFile(t, `
[engine]
word_bank_cap = "six"
workspace_cap = 9

[lexicon]
override_csv = "extra.csv"

[cli]
default_cap = 4
default_level = "a"
`)
	c, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 6, c.Engine.WordBankCap)
	assert.Equal(t, 9, c.Engine.WorkspaceCap)
	assert.Equal(t, "extra.csv", c.Lexicon.OverrideCSV)
	assert.Equal(t, 4, c.CLI.DefaultCap)
	assert.Equal(t, lexicon.Advanced, c.CLI.Level())
}

func TestLoadConfigUnparseableUsesDefaults(t *testing.T) {
	path := writeFile(t, "this is = = not toml [")
	c, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), c)
}

func TestLoadConfigResetsNonPositive(t *testing.T) {
	path := writeFile(t, `
[server]
max_cap = 0
max_text_length = -5
`)
	c, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 32, c.Server.MaxCap)
	assert.Equal(t, 20000, c.Server.MaxTextLength)
}

func TestUnknownLevelFallsBack(t *testing.T) {
	e := EngineConfig{DefaultLevel: "expert"}
	assert.Equal(t, lexicon.Beginner, e.Level())
}

func TestInitConfigCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	c, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), c)
	assert.FileExists(t, path)

	reloaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, c, reloaded)
}

func TestLoadConfigWithPriorityPrefersCustomPath(t *testing.T) {
	path := writeFile(t, "[cli]\ndefault_cap = 3\n")
	c, used, err := LoadConfigWithPriority(path)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, 3, c.CLI.DefaultCap)
}

func TestUpdate(t *testing.T) {
	path := writeFile(t, "")
	c := DefaultConfig()
	capValue, level, enabled := 12, "intermediate", true
	require.NoError(t, c.Update(path, nil, &capValue, &level, &enabled))

	reloaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 12, reloaded.Engine.WorkspaceCap)
	assert.Equal(t, 6, reloaded.Engine.WordBankCap)
	assert.Equal(t, lexicon.Intermediate, reloaded.Engine.Level())
	assert.True(t, reloaded.Remote.Enabled)

	zero := 0
	require.NoError(t, c.Update("", &zero, nil, nil, nil))
	assert.Equal(t, 6, c.Engine.WordBankCap)
}

func TestGetActiveConfigPath(t *testing.T) {
	abs := GetActiveConfigPath("relative.toml")
	assert.True(t, filepath.IsAbs(abs))
}
