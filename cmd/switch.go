package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	syncpkg "modelmgr/config/sync"
	"modelmgr/internal/activation"
	"modelmgr/internal/envexport"
)

// envActiveName carries the active profile name into shells, alongside the
// variables the exporter derives.
const envActiveName = "MODELMGR_ACTIVE"

var switchCmd = &cobra.Command{
	Use:   "switch <name>",
	Short: "Switch to the named model profile",
	Long: `Switch to the named model profile: marks it active, applies its
environment variables to this process, and prints export commands so the
calling shell can pick them up:

  eval "$(modelmgr switch <name>)"

With --system the variables are also installed into the persistent system
environment, which requires elevated privileges.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		pushSystemEnv, _ := cmd.Flags().GetBool("system")

		store := newStore()
		service := activation.NewService(store)

		result, err := service.SwitchTo(name, pushSystemEnv)
		if err != nil {
			return err
		}

		active, _ := store.Active()
		vars := envexport.Export(&active)

		// stdout stays eval-able: unset lines first so stale values from a
		// previous profile never survive, then the fresh exports.
		for _, v := range envexport.Order {
			fmt.Printf("unset %s\n", v)
		}
		fmt.Printf("unset %s\n", envActiveName)
		for _, line := range activation.Commands(&active) {
			fmt.Println(line)
		}
		fmt.Printf("export %s=\"%s\"\n", envActiveName, name)

		// active.env mirrors the exported mapping for shell init scripts.
		if err := godotenv.Write(vars, store.ActiveEnvPath()); err != nil {
			fmt.Fprintln(os.Stderr, warnStyle.Render(fmt.Sprintf("Warning: failed to write active.env: %v", err)))
		}
		syncClaudeSettings(vars)

		reportActivation(result)
		return nil
	},
}

// syncClaudeSettings pushes the mapping into Claude Code's settings.json.
// Failures only warn; activation already succeeded.
func syncClaudeSettings(vars map[string]string) {
	settingsPath, err := syncpkg.SettingsPath()
	if err != nil {
		return
	}
	if err := syncpkg.SyncSettings(settingsPath, vars); err != nil {
		fmt.Fprintln(os.Stderr, warnStyle.Render(fmt.Sprintf("Warning: failed to sync Claude Code settings: %v", err)))
	}
}

func reportActivation(result *activation.Result) {
	style := successStyle
	if !result.Success {
		style = errorStyle
	}
	fmt.Fprintln(os.Stderr, style.Render("✓ "+result.Message))

	if result.SystemEnv.Status == activation.StepPrivilegeRequired {
		fmt.Fprintln(os.Stderr, warnStyle.Render("  Re-run with elevated privileges to persist system-wide."))
	}
}

func init() {
	rootCmd.AddCommand(switchCmd)
	switchCmd.Flags().BoolP("system", "s", false, "Also install the variables into the persistent system environment")
}
