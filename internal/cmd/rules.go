package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harrison/curator/internal/config"
	"github.com/harrison/curator/internal/filelock"
	"github.com/harrison/curator/internal/models"
	"github.com/harrison/curator/internal/parser"
	"github.com/harrison/curator/internal/rules"
)

// NewRulesCommand creates the rules command group
func NewRulesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage custom extension→category rules",
		Long: `Custom rules override every other categorization source: a rule for an
extension always wins over the oracle and the fallback table. Rules
persist across sessions; at most one rule exists per extension and the
last write wins.`,
	}

	cmd.AddCommand(newRulesListCommand())
	cmd.AddCommand(newRulesSetCommand())
	cmd.AddCommand(newRulesUnsetCommand())
	cmd.AddCommand(newRulesImportCommand())
	cmd.AddCommand(newRulesExportCommand())

	return cmd
}

// openRuleStore loads configuration and opens the rule database.
func openRuleStore() (*rules.Store, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, err
	}
	store, err := rules.NewStore(cfg.RuleDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open rule store: %w", err)
	}
	return store, nil
}

func newRulesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all custom rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openRuleStore()
			if err != nil {
				return err
			}
			defer store.Close()

			mapping := store.Get()
			if len(mapping) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No custom rules.")
				return nil
			}

			extensions := make([]string, 0, len(mapping))
			for ext := range mapping {
				extensions = append(extensions, ext)
			}
			sort.Strings(extensions)

			for _, ext := range extensions {
				fmt.Fprintf(cmd.OutOrStdout(), "  .%s -> %s\n", ext, mapping[ext])
			}
			return nil
		},
	}
}

func newRulesSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <extension> <category>",
		Short: "Set or overwrite the rule for an extension",
		Long: fmt.Sprintf(`Set records a rule mapping an extension to a category.
Valid categories: %s.`, categoryList()),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			extension := strings.ToLower(strings.TrimPrefix(args[0], "."))
			category, err := models.ParseCategory(args[1])
			if err != nil {
				return fmt.Errorf("%w (valid: %s)", err, categoryList())
			}

			store, err := openRuleStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Set(extension, category); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rule saved: .%s -> %s\n", extension, category)
			return nil
		},
	}
}

func newRulesUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset <extension>",
		Short: "Remove the rule for an extension",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			extension := strings.ToLower(strings.TrimPrefix(args[0], "."))

			store, err := openRuleStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Delete(extension); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rule removed for .%s\n", extension)
			return nil
		},
	}
}

func newRulesImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <rules.md>",
		Short: "Import rules from a Markdown document",
		Long: `Import reads a Markdown document and applies every extension→category
pair found in its fenced yaml code blocks, for example:

  ` + "```yaml" + `
  pdf: Documents
  sketch: Images
  ` + "```" + `

Later blocks override earlier ones for the same extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open rules document: %w", err)
			}
			defer f.Close()

			mapping, err := parser.NewRulesParser().Parse(f)
			if err != nil {
				return err
			}

			store, err := openRuleStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.SetAll(mapping); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d rule(s)\n", len(mapping))
			return nil
		},
	}
}

func newRulesExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.json>",
		Short: "Export all custom rules to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openRuleStore()
			if err != nil {
				return err
			}
			defer store.Close()

			mapping := store.Get()
			raw := make(map[string]string, len(mapping))
			for ext, category := range mapping {
				raw[ext] = category.String()
			}
			data, err := json.MarshalIndent(raw, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode rules: %w", err)
			}
			if err := filelock.AtomicWrite(args[0], data); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d rule(s) to %s\n", len(mapping), args[0])
			return nil
		},
	}
}

// categoryList renders the closed category set for help and error text.
func categoryList() string {
	categories := models.AllCategories()
	labels := make([]string, len(categories))
	for i, c := range categories {
		labels[i] = c.String()
	}
	return strings.Join(labels, ", ")
}
