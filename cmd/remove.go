package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Delete a model profile",
	Long:    "Delete a model profile. Deleting the active profile clears the active pointer.",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := newStore()
		if err := store.Delete(args[0]); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, successStyle.Render(fmt.Sprintf("✓ Removed profile: %s", args[0])))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
