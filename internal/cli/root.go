// Package cli holds the taskboard commands. The bare command runs the board
// UI; the subcommands work on the same snapshot without a terminal UI.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// BuildInfo is set via ldflags in main
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// options are the global flags shared by every command
type options struct {
	configPath string
	dataDir    string
	backend    string
	logFile    string
	ephemeral  bool
}

// NewRootCmd builds the command tree
func NewRootCmd(info BuildInfo) *cobra.Command {
	o := &options{}

	rootCmd := &cobra.Command{
		Use:   "taskboard",
		Short: "A kanban task board for the terminal",
		Long: `taskboard keeps projects and tasks on a three column board (To Do, In Progress, Done).

Run without arguments to open the board. The subcommands read and write the same data.`,
		RunE:          o.runTUI,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       info.Version,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&o.configPath, "config", "", "config file (default "+defaultConfigHint()+")")
	flags.StringVar(&o.dataDir, "data-dir", "", "directory for the board data and log")
	flags.StringVar(&o.backend, "backend", "", "storage backend: sqlite, file or memory")
	flags.StringVar(&o.logFile, "log-file", "", `log file, "-" for stderr`)
	flags.BoolVar(&o.ephemeral, "ephemeral", false, "keep everything in memory, nothing is saved")

	rootCmd.AddCommand(newExportCmd(o))
	rootCmd.AddCommand(newStatsCmd(o))
	rootCmd.AddCommand(newTemplatesCmd(o))
	rootCmd.AddCommand(newConfigCmd(o))
	rootCmd.AddCommand(newVersionCmd(info))

	return rootCmd
}

// Execute runs the root command
func Execute(info BuildInfo) error {
	if err := NewRootCmd(info).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func defaultConfigHint() string {
	return "$XDG_CONFIG_HOME/taskboard/config.yaml"
}
