package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"modelmgr/internal/utils"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all model profiles",
	Run: func(cmd *cobra.Command, args []string) {
		store := newStore()
		profiles := store.List()
		if len(profiles) == 0 {
			fmt.Println("No profiles available")
			return
		}

		activeName := store.ActiveName()

		fmt.Println("Available profiles:")
		for _, p := range profiles {
			keyInfo := "no key"
			if p.APIKey != "" {
				keyInfo = "key: " + utils.MaskAPIKey(p.APIKey)
			}

			activeMarker := " "
			if p.Name == activeName {
				activeMarker = "*"
			}

			fmt.Printf("%s %s: %s (URL: %s, Model: %s)\n",
				activeMarker, p.Name, keyInfo, p.BaseURL, p.Model)
		}

		if activeName != "" {
			fmt.Printf("\n* indicates the currently active profile\n")
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
