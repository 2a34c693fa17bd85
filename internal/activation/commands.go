package activation

import (
	"fmt"
	"runtime"

	"modelmgr/config"
	"modelmgr/internal/envexport"
)

// Commands renders the profile's exported variables as shell assignment
// statements, one per variable, for display or eval. It has no side effects
// and returns nil for a nil profile.
func Commands(p *config.Profile) []string {
	vars := envexport.Export(p)
	if len(vars) == 0 {
		return nil
	}

	lines := make([]string, 0, len(vars))
	for _, name := range envexport.Order {
		value, ok := vars[name]
		if !ok {
			continue
		}
		lines = append(lines, formatAssignment(name, value))
	}
	return lines
}

func formatAssignment(name, value string) string {
	if runtime.GOOS == "windows" {
		return fmt.Sprintf("set %s=\"%s\"", name, value)
	}
	return fmt.Sprintf("export %s=\"%s\"", name, value)
}
