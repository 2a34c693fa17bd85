package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"modelmgr/internal/activation"
	"modelmgr/internal/envexport"
)

var loadActiveCmd = &cobra.Command{
	Use:   "load-active",
	Short: "Load the active profile (for shell initialization)",
	Long: `Emit unset and export commands for the active profile, meant for shell
initialization scripts: eval "$(modelmgr load-active)"`,
	Run: func(cmd *cobra.Command, args []string) {
		store := newStore()

		// Stale values are always cleared, with or without an active profile.
		for _, v := range envexport.Order {
			fmt.Printf("unset %s\n", v)
		}
		fmt.Printf("unset %s\n", envActiveName)

		active, ok := store.Active()
		if !ok {
			return
		}
		for _, line := range activation.Commands(&active) {
			fmt.Println(line)
		}
		fmt.Printf("export %s=\"%s\"\n", envActiveName, active.Name)
	},
}

func init() {
	rootCmd.AddCommand(loadActiveCmd)
}
