package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"modelmgr/config"
)

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a new model profile",
	Long: `Add a new model profile

Examples:
  modelmgr add official -u https://api.anthropic.com -m claude-sonnet-4-20250514 -k sk-ant-xxx
  modelmgr add fast -u https://api.siliconflow.cn/ -m moonshotai/Kimi-K2 -k sk-xxx`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		baseURL, _ := cmd.Flags().GetString("url")
		model, _ := cmd.Flags().GetString("model")
		apiKey, _ := cmd.Flags().GetString("key")

		profile := config.Profile{
			Name:    args[0],
			BaseURL: baseURL,
			Model:   model,
			APIKey:  apiKey,
		}

		store := newStore()
		if err := store.Add(profile); err != nil {
			return err
		}

		fmt.Fprintln(os.Stderr, successStyle.Render(fmt.Sprintf("✓ Added profile: %s", profile.Name)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringP("url", "u", "", "API base URL (required)")
	addCmd.Flags().StringP("model", "m", "", "Model identifier (required)")
	addCmd.Flags().StringP("key", "k", "", "API key (optional)")
	_ = addCmd.MarkFlagRequired("url")
	_ = addCmd.MarkFlagRequired("model")
}
