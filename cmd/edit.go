package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <name>",
	Short: "Update a model profile",
	Long: `Update a model profile. Only the provided flags change; --name renames
the profile, and a rename follows the active pointer.

Examples:
  modelmgr edit fast --model moonshotai/Kimi-K2-Instruct
  modelmgr edit fast --name faster --key sk-new`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		oldName := args[0]

		store := newStore()
		profile, err := store.Get(oldName)
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("name") {
			profile.Name, _ = cmd.Flags().GetString("name")
		}
		if cmd.Flags().Changed("url") {
			profile.BaseURL, _ = cmd.Flags().GetString("url")
		}
		if cmd.Flags().Changed("model") {
			profile.Model, _ = cmd.Flags().GetString("model")
		}
		// An explicit --key "" clears the stored key.
		if cmd.Flags().Changed("key") {
			profile.APIKey, _ = cmd.Flags().GetString("key")
		}

		if err := store.Update(oldName, profile); err != nil {
			return err
		}

		if profile.Name != oldName {
			fmt.Fprintln(os.Stderr, successStyle.Render(fmt.Sprintf("✓ Updated profile: %s -> %s", oldName, profile.Name)))
		} else {
			fmt.Fprintln(os.Stderr, successStyle.Render(fmt.Sprintf("✓ Updated profile: %s", profile.Name)))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringP("name", "n", "", "New profile name (rename)")
	editCmd.Flags().StringP("url", "u", "", "API base URL")
	editCmd.Flags().StringP("model", "m", "", "Model identifier")
	editCmd.Flags().StringP("key", "k", "", "API key")
}
