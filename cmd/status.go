package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"modelmgr/internal/envexport"
	"modelmgr/internal/utils"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the profile exported to this shell",
	Long:  "Show the ANTHROPIC_* variables visible to this process, with credentials masked",
	Run: func(cmd *cobra.Command, args []string) {
		baseURL := os.Getenv(envexport.VarBaseURL)
		model := os.Getenv(envexport.VarModel)
		authToken := os.Getenv(envexport.VarAuthToken)
		apiKey := os.Getenv(envexport.VarAPIKey)
		activeName := os.Getenv(envActiveName)

		if apiKey == "" && authToken == "" && baseURL == "" {
			fmt.Println("No profile exported in this shell")
			fmt.Println("\nTip: run 'modelmgr install' to auto-load the active profile in new shells")
			return
		}

		fmt.Println("Currently exported profile:")
		if activeName != "" {
			fmt.Printf("  Name: %s\n", activeName)
		}
		if baseURL != "" {
			fmt.Printf("  Base URL: %s\n", baseURL)
		}
		if model != "" {
			fmt.Printf("  Model: %s\n", model)
		}
		if authToken != "" {
			fmt.Printf("  Auth Token: %s\n", utils.MaskAPIKey(authToken))
		}
		if apiKey != "" {
			fmt.Printf("  API Key: %s\n", utils.MaskAPIKey(apiKey))
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
