package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"modelmgr/config"
	"modelmgr/internal/probe"
	"modelmgr/internal/tui"
)

var (
	pingJSON    bool
	pingTimeout time.Duration
)

var pingCmd = &cobra.Command{
	Use:   "ping [name]",
	Short: "Test a profile's endpoint connectivity",
	Long: `Send one small chat request to a profile's endpoint and report the
outcome. Tests the active profile when no name is given.

The request runs once with a bounded timeout; there are no retries.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := newStore()

		var profile config.Profile
		if len(args) == 1 {
			p, err := store.Get(args[0])
			if err != nil {
				return err
			}
			profile = p
		} else {
			p, ok := store.Active()
			if !ok {
				return fmt.Errorf("no active profile; pass a profile name or run 'modelmgr switch' first")
			}
			profile = p
		}

		prober := probe.New(probe.WithTimeout(pingTimeout))

		var result *probe.Result
		if pingJSON || !isTerminal() {
			result = prober.Test(profile)
		} else {
			final, err := tea.NewProgram(tui.NewPing(profile, prober)).Run()
			if err != nil {
				return fmt.Errorf("failed to run probe: %w", err)
			}
			result = final.(tui.PingModel).Result()
			if result == nil {
				// Wait aborted by the user.
				return nil
			}
		}

		return reportProbe(profile.Name, result)
	},
}

func reportProbe(name string, result *probe.Result) error {
	if pingJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	} else if result.Success {
		fmt.Println(successStyle.Render(fmt.Sprintf("✓ %s: %s", name, result.Message)))
		fmt.Printf("  Status Code: %d\n", result.StatusCode)
		fmt.Printf("  Response Time: %dms\n", result.ElapsedMs)
	} else {
		fmt.Println(errorStyle.Render(fmt.Sprintf("✗ %s: %s", name, result.Message)))
		if result.StatusCode != 0 {
			fmt.Printf("  Status Code: %d\n", result.StatusCode)
		}
		if result.Body != "" {
			fmt.Printf("  Response: %s\n", result.Body)
		}
	}

	if !result.Success {
		os.Exit(1)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(pingCmd)
	pingCmd.Flags().BoolVarP(&pingJSON, "json", "j", false, "JSON format output")
	pingCmd.Flags().DurationVarP(&pingTimeout, "timeout", "t", probe.DefaultTimeout, "Request timeout")
}
