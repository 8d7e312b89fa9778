package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/harrison/curator/internal/models"
	"github.com/harrison/curator/internal/session"
)

// NewScanCommand creates the scan command
func NewScanCommand() *cobra.Command {
	var (
		logLevel    string
		exclusions  []string
		auditExport string
	)

	cmd := &cobra.Command{
		Use:   "scan <directory>",
		Short: "Scan a directory tree and categorize every file",
		Long: `Scan recursively enumerates every file under the given directory,
skipping excluded names at any depth, and assigns each file a category.

Categories come from your custom rules first, then the remote oracle
(one batched request, when configured), then the built-in fallback table.
Files sharing an identical byte size are reported as probable duplicates.

A failure to read any directory aborts the whole scan; partial results
are discarded.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setupSession(args[0], logLevel, exclusions)
			if err != nil {
				return err
			}
			defer env.close()

			result, err := env.sess.Scan(cmd.Context())
			if err != nil {
				return err
			}

			printScanResult(cmd.OutOrStdout(), result)

			if auditExport != "" {
				if err := env.sess.Audit().ExportJSON(auditExport); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&logLevel, "log-level", "", "console verbosity (trace, debug, info, warn, error)")
	cmd.Flags().StringSliceVar(&exclusions, "exclude", nil, "additional literal names to skip at any depth")
	cmd.Flags().StringVar(&auditExport, "audit-export", "", "write the session audit log to this JSON file")

	return cmd
}

// printScanResult renders scan output: files grouped by category, then
// duplicate groups.
func printScanResult(w io.Writer, result *session.ScanResult) {
	fmt.Fprintf(w, "Scanned %d file(s)\n", len(result.Files))

	byCategory := make(map[models.Category][]models.FileRecord)
	for _, record := range result.Files {
		byCategory[record.Category] = append(byCategory[record.Category], record)
	}

	for _, category := range models.AllCategories() {
		records := byCategory[category]
		if len(records) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s (%d):\n", category, len(records))
		for _, record := range records {
			fmt.Fprintf(w, "  %s (%d bytes)\n", record.RelativePath, record.SizeBytes)
		}
	}

	if len(result.Duplicates) > 0 {
		fmt.Fprintf(w, "\nProbable duplicates (by identical size, content not verified):\n")
		for _, group := range result.Duplicates {
			fmt.Fprintf(w, "  %s: %d file(s) of %d bytes\n", group.ID, len(group.Members), group.SizeBytes)
			for _, member := range group.Members {
				fmt.Fprintf(w, "    %s\n", member)
			}
		}
	}
}
