package utils

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// LoadTOMLFile decodes configPath into v. Keys that match no field are
// logged and otherwise ignored.
func LoadTOMLFile(configPath string, v any) error {
	meta, err := toml.DecodeFile(configPath, v)
	if err != nil {
		return fmt.Errorf("decode %s: %w", configPath, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		log.Warnf("Ignoring unknown keys in %s: %s", configPath, strings.Join(keys, ", "))
	}
	return nil
}

// ParseTOMLWithRecovery reads configPath as a loose table so that sections
// with well typed values can still be picked out one by one.
func ParseTOMLWithRecovery(configPath string) (map[string]any, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", configPath, err)
	}
	table := make(map[string]any)
	if _, err := toml.Decode(string(data), &table); err != nil {
		return nil, fmt.Errorf("parse %s: %w", configPath, err)
	}
	return table, nil
}

// ExtractSection returns the table named name.
func ExtractSection(data map[string]any, name string) (map[string]any, bool) {
	return extract[map[string]any](data, name)
}

// ExtractInt returns an integer key. TOML integers decode as int64.
func ExtractInt(data map[string]any, key string) (int, bool) {
	v, ok := extract[int64](data, key)
	return int(v), ok
}

func ExtractBool(data map[string]any, key string) (bool, bool) {
	return extract[bool](data, key)
}

func ExtractString(data map[string]any, key string) (string, bool) {
	return extract[string](data, key)
}

func extract[T any](data map[string]any, key string) (T, bool) {
	v, ok := data[key].(T)
	return v, ok
}
