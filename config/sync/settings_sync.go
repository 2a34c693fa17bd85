// Package sync mirrors the active profile's exported variables into Claude
// Code's settings.json. Updates are surgical: only the ANTHROPIC_* entries
// of the "env" object change, everything else in the file is preserved
// byte-compatibly via gjson/sjson.
package sync

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"modelmgr/config/storage"
)

const managedPrefix = "ANTHROPIC_"

// UpdateEnvField rewrites the env object of a settings JSON document.
// Non-ANTHROPIC entries survive untouched; ANTHROPIC_* entries are replaced
// by the mapping's non-empty values. Variables the mapping forces to "" are
// dropped entirely, which mirrors the exporter's explicit-clear rule.
func UpdateEnvField(originalContent string, vars map[string]string) (string, error) {
	parsed := gjson.Parse(originalContent)
	if !parsed.IsObject() {
		return "", fmt.Errorf("settings file is not a JSON object")
	}

	updatedEnv := make(map[string]string)
	if envResult := parsed.Get("env"); envResult.Exists() {
		envResult.ForEach(func(key, value gjson.Result) bool {
			if !strings.HasPrefix(strings.ToUpper(key.Str), managedPrefix) {
				updatedEnv[key.Str] = value.Str
			}
			return true
		})
	}
	for key, value := range vars {
		if value != "" {
			updatedEnv[key] = value
		}
	}

	envJSON, err := json.Marshal(updatedEnv)
	if err != nil {
		return "", fmt.Errorf("failed to marshal env field: %w", err)
	}

	updatedContent, err := sjson.SetRaw(originalContent, "env", string(envJSON))
	if err != nil {
		return "", fmt.Errorf("failed to update env field: %w", err)
	}

	if err := validateUpdate(originalContent, updatedContent); err != nil {
		return "", fmt.Errorf("update validation failed: %w", err)
	}
	return updatedContent, nil
}

// validateUpdate rejects an update that corrupted the document or lost an
// unmanaged env entry.
func validateUpdate(original, updated string) error {
	if !json.Valid([]byte(updated)) {
		return fmt.Errorf("updated JSON is invalid")
	}

	originalEnv := gjson.Get(original, "env")
	updatedEnv := gjson.Get(updated, "env")

	var lost error
	originalEnv.ForEach(func(key, value gjson.Result) bool {
		if strings.HasPrefix(strings.ToUpper(key.Str), managedPrefix) {
			return true
		}
		kept := updatedEnv.Get(key.Str)
		if !kept.Exists() || kept.Str != value.Str {
			lost = fmt.Errorf("unmanaged env entry %q was not preserved", key.Str)
			return false
		}
		return true
	})
	return lost
}

// SettingsPath returns the global Claude Code settings file location.
func SettingsPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".claude", "settings.json"), nil
}

// SyncSettings applies the exported mapping to the settings file at path.
// A missing file is not an error: there is nothing to keep in sync.
func SyncSettings(path string, vars map[string]string) error {
	if !storage.FileExists(path) {
		return nil
	}

	originalContent, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read settings file: %w", err)
	}

	updatedContent, err := UpdateEnvField(string(originalContent), vars)
	if err != nil {
		return err
	}

	if err := storage.AtomicFileUpdate(path, updatedContent, true); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}
