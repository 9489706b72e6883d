package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rollcall/internal/adapters/filesystem"
	"rollcall/internal/adapters/spreadsheet"
	"rollcall/internal/adapters/sqlite"
	"rollcall/internal/config"
	"rollcall/internal/ports"
)

var (
	configPath string
	rosterPath string
	nameRange  string
	idRange    string
	template   string
	extensions []string

	cfg     *config.Config
	repo    ports.SubmissionRepository
	journal *sqlite.Journal
)

var rootCmd = &cobra.Command{
	Use:   "rollcall-cli",
	Short: "Rename student submissions using a roster spreadsheet",
	Long: `rollcall-cli matches unstructured submission filenames against a roster
of names and IDs, then renames them into a consistent scheme.

It plans first and renames second: every file is classified as a rename,
unmatched, ambiguous, conflicting, or a naming collision before anything
is touched, and every applied batch can be undone.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		// Flags beat config and environment.
		if rosterPath == "" {
			rosterPath = cfg.RosterPath
		}
		if nameRange == "" {
			nameRange = cfg.NameRange
		}
		if idRange == "" {
			idRange = cfg.IDRange
		}
		if template == "" {
			template = cfg.Template
		}
		if len(extensions) == 0 {
			extensions = cfg.Extensions
		}

		repo = filesystem.NewRepository()
		journal = sqlite.NewJournal()
		return journal.Open(cfg.JournalPath)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if journal != nil {
			journal.Close()
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVarP(&rosterPath, "roster", "r", "", "path to the roster spreadsheet (.csv, .xlsx)")
	rootCmd.PersistentFlags().StringVar(&nameRange, "names", "", "cell range holding names, e.g. A2:A40")
	rootCmd.PersistentFlags().StringVar(&idRange, "ids", "", "cell range holding IDs, e.g. C2:C40")
	rootCmd.PersistentFlags().StringVarP(&template, "template", "t", "", "rename template, e.g. \"{id} {name}{seq}{originalExt}\"")
	rootCmd.PersistentFlags().StringSliceVarP(&extensions, "ext", "e", nil, "submission file extensions to consider")
}

// newSource builds the roster source from the effective flags.
func newSource() (ports.RosterSource, error) {
	if rosterPath == "" {
		return nil, fmt.Errorf("no roster given: use --roster or set ROLLCALL_ROSTER")
	}
	return spreadsheet.New(rosterPath, nameRange, idRange)
}
