package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

const shellSnippet = `
# modelmgr - auto load the active model profile
if command -v modelmgr &> /dev/null; then
  eval "$(command modelmgr load-active)"
fi
`

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the shell auto-load snippet",
	Long:  "Append an auto-load command to the shell configuration file, so new terminals load the active profile automatically",
	RunE: func(cmd *cobra.Command, args []string) error {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}

		shell := os.Getenv("SHELL")
		var rcFile string
		switch {
		case strings.Contains(shell, "zsh"):
			rcFile = filepath.Join(homeDir, ".zshrc")
		case strings.Contains(shell, "bash"):
			rcFile = filepath.Join(homeDir, ".bashrc")
		default:
			fmt.Fprintf(os.Stderr, "Unsupported shell: %s\n", shell)
			fmt.Fprintf(os.Stderr, "Add the following to your shell configuration file manually:\n%s", shellSnippet)
			os.Exit(1)
		}

		if content, err := os.ReadFile(rcFile); err == nil {
			if strings.Contains(string(content), "modelmgr load-active") {
				fmt.Printf("✓ Already installed in %s\n", rcFile)
				return nil
			}
		}

		f, err := os.OpenFile(rcFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", rcFile, err)
		}
		defer f.Close()

		if _, err := f.WriteString(shellSnippet); err != nil {
			return fmt.Errorf("failed to write to %s: %w", rcFile, err)
		}

		fmt.Println(successStyle.Render(fmt.Sprintf("✓ Installed to %s", rcFile)))
		fmt.Printf("\nRun 'source %s' or open a new terminal to take effect\n", rcFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}
