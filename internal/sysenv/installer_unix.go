//go:build !windows

package sysenv

import (
	"fmt"
	"os"
	"strings"
)

const defaultEnvFile = "/etc/environment"

// envFileInstaller persists variables by rewriting assignments in
// /etc/environment. Root only.
type envFileInstaller struct {
	path string
}

func newPlatformInstaller() Installer {
	return &envFileInstaller{path: defaultEnvFile}
}

func (e *envFileInstaller) IsAvailable() bool {
	return true
}

func (e *envFileInstaller) IsPrivileged() bool {
	return os.Geteuid() == 0
}

// Install rewrites the env file: managed variables replace any existing
// assignment in place, new ones are appended, empty values drop the line.
// Unmanaged lines are preserved untouched.
func (e *envFileInstaller) Install(vars map[string]string) error {
	var lines []string
	if data, err := os.ReadFile(e.path); err == nil {
		lines = strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to read %s: %w", e.path, err)
	}

	pending := make(map[string]string, len(vars))
	for k, v := range vars {
		pending[k] = v
	}

	out := make([]string, 0, len(lines)+len(vars))
	for _, line := range lines {
		name := assignedName(line)
		if value, ok := pending[name]; ok {
			delete(pending, name)
			if value == "" {
				continue
			}
			out = append(out, formatAssignment(name, value))
			continue
		}
		out = append(out, line)
	}
	for name, value := range pending {
		if value == "" {
			continue
		}
		out = append(out, formatAssignment(name, value))
	}

	content := strings.Join(out, "\n")
	if content != "" {
		content += "\n"
	}
	if err := os.WriteFile(e.path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", e.path, err)
	}
	return nil
}

// assignedName extracts the variable name from a NAME=value line, or "".
func assignedName(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return ""
	}
	eq := strings.Index(trimmed, "=")
	if eq <= 0 {
		return ""
	}
	return strings.TrimSpace(trimmed[:eq])
}

func formatAssignment(name, value string) string {
	return fmt.Sprintf("%s=%q", name, value)
}
