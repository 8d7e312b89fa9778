package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/harrison/curator/internal/logger"
	"github.com/harrison/curator/internal/models"
	"github.com/harrison/curator/internal/storage"
)

// NewOrganizeCommand creates the organize command
func NewOrganizeCommand() *cobra.Command {
	var (
		logLevel    string
		exclusions  []string
		destPath    string
		selectAll   bool
		auditExport string
	)

	cmd := &cobra.Command{
		Use:   "organize <directory> [file-name...]",
		Short: "Move selected files into category subfolders",
		Long: `Organize scans the directory, then moves the selected files into
directories named after their categories.

Selection is by file name: pass names as arguments, or --all to select
every file. Files whose category is Unknown are never moved, selected or
not. Each move copies the file into <dest>/<Category>/ and deletes the
original only after the copy fully succeeded.

The batch continues past individual failures and finishes with an
aggregate summary of attempted, succeeded, and failed moves. An existing
destination file with the same name is overwritten.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			selection := args[1:]
			if !selectAll && len(selection) == 0 {
				return fmt.Errorf("nothing selected: pass file names or --all")
			}

			env, err := setupSession(args[0], logLevel, exclusions)
			if err != nil {
				return err
			}
			defer env.close()

			result, err := env.sess.Scan(cmd.Context())
			if err != nil {
				return err
			}

			if selectAll {
				selection = selection[:0]
				for _, record := range result.Files {
					selection = append(selection, record.Name)
				}
			}

			var dest *storage.Root
			if destPath != "" {
				dest, err = storage.OpenRoot(destPath)
				if err != nil {
					return err
				}
			}

			// Per-item progress on a TTY; the executor reports after every
			// operation, so the bar ends at exactly 100%.
			colorOutput := isatty.IsTerminal(os.Stdout.Fd())
			bar := logger.NewProgressBar(0, 30, colorOutput)
			env.sess.OnProgress = func(processed, total, pct int) {
				if !colorOutput {
					return
				}
				bar = progressUpdate(bar, processed, total, colorOutput)
				fmt.Fprintf(cmd.OutOrStdout(), "\r%s", bar.Render())
				if processed == total {
					fmt.Fprintln(cmd.OutOrStdout())
				}
			}

			summary, err := env.sess.Organize(cmd.Context(), selection, dest)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), summaryLine(summary))

			if auditExport != "" {
				if err := env.sess.Audit().ExportJSON(auditExport); err != nil {
					return err
				}
			}

			if summary.Failed > 0 {
				return fmt.Errorf("%d of %d move(s) failed", summary.Failed, summary.Attempted)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&logLevel, "log-level", "", "console verbosity (trace, debug, info, warn, error)")
	cmd.Flags().StringSliceVar(&exclusions, "exclude", nil, "additional literal names to skip at any depth")
	cmd.Flags().StringVar(&destPath, "dest", "", "destination root (defaults to the scanned directory)")
	cmd.Flags().BoolVar(&selectAll, "all", false, "select every scanned file")
	cmd.Flags().StringVar(&auditExport, "audit-export", "", "write the session audit log to this JSON file")

	return cmd
}

// progressUpdate resizes the bar once the batch total is known and records
// the processed count.
func progressUpdate(bar *logger.ProgressBar, processed, total int, colorOutput bool) *logger.ProgressBar {
	if bar.Total() != total {
		bar = logger.NewProgressBar(total, 30, colorOutput)
	}
	bar.Update(processed)
	return bar
}

// summaryLine renders the aggregate move summary.
func summaryLine(summary models.MoveSummary) string {
	if summary.Attempted == 0 {
		return "Nothing to move (no selected file has a known category)."
	}
	return fmt.Sprintf("Done: %s.", summary.String())
}
