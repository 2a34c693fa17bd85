package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"modelmgr/config"
)

// Version information, set at build time.
var (
	version string
	commit  string
	date    string
)

// SetVersionInfo sets the version information.
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

var debugMode bool

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

var rootCmd = &cobra.Command{
	Use:   "modelmgr",
	Short: "Claude Code model profile manager",
	Long:  "A command line tool for managing Claude Code endpoint profiles and switching between them",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		if debugMode {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
		}
	},
}

// Execute executes the root command.
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(`modelmgr {{.Version}}
Commit: ` + commit + `
Date: ` + date + `
`)
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
}

// newStore opens the profile store or exits with an error message.
func newStore() *config.Store {
	store, err := config.NewStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
	return store
}

// isTerminal reports whether stdout is attached to a terminal.
func isTerminal() bool {
	stat, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
