package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"modelmgr/internal/activation"
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Print the active profile's environment variable assignments",
	Long: `Print the shell assignment statements for the active profile, one per
variable, without touching any environment. Prints nothing when no profile
is active.`,
	Run: func(cmd *cobra.Command, args []string) {
		store := newStore()
		active, ok := store.Active()
		if !ok {
			return
		}
		for _, line := range activation.Commands(&active) {
			fmt.Println(line)
		}
	},
}

func init() {
	rootCmd.AddCommand(envCmd)
}
