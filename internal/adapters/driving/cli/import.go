package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chyinan/Kokoro-Engine-sub000/internal/connectors/filesystem"
	"github.com/chyinan/Kokoro-Engine-sub000/internal/core/ports/driving"
)

var (
	importJSON   bool
	importDryRun bool
)

var importCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Import character cards",
	Long: `Imports one or more character cards (.png or .json).

Each file is decoded and stored as a new character. A failing file is
reported and the remaining files are still imported. Use --dry-run to
decode without storing.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importJSON, "json", false, "output results as JSON")
	importCmd.Flags().BoolVarP(&importDryRun, "dry-run", "n", false, "decode cards without storing them")
	rootCmd.AddCommand(importCmd)
}

// importOutcome is one line of import output.
type importOutcome struct {
	File     string   `json:"file"`
	ID       string   `json:"id,omitempty"`
	Name     string   `json:"name,omitempty"`
	Format   string   `json:"sourceFormat,omitempty"`
	Parser   string   `json:"parser,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
	Error    string   `json:"error,omitempty"`
}

func runImport(cmd *cobra.Command, args []string) error {
	if err := requireCharacters(); err != nil {
		return err
	}

	ctx := cmd.Context()
	outcomes := make([]importOutcome, 0, len(args))
	failed := 0

	for _, arg := range args {
		outcome := importOutcome{File: arg}
		path, err := filesystem.ResolvePath(arg)
		if err == nil {
			if importDryRun {
				err = dryRunImport(cmd, path, &outcome)
			} else {
				var result *driving.ImportResult
				result, err = characterService.ImportFile(ctx, path)
				if err == nil {
					outcome.ID = result.Character.ID
					outcome.Name = result.Character.Profile.Name
					outcome.Format = result.Character.Profile.SourceFormat.String()
					outcome.Parser = result.Parser
					for _, w := range result.Warnings {
						outcome.Warnings = append(outcome.Warnings, w.String())
					}
				}
			}
		}
		if err != nil {
			outcome.Error = err.Error()
			failed++
		}
		outcomes = append(outcomes, outcome)
	}

	if importJSON {
		if err := printJSON(cmd, outcomes); err != nil {
			return err
		}
	} else {
		printImportOutcomes(cmd, outcomes)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d card(s) failed to import", failed, len(args))
	}
	return nil
}

func dryRunImport(cmd *cobra.Command, path string, outcome *importOutcome) error {
	parsed, err := characterService.ParseFile(cmd.Context(), path)
	if err != nil {
		return err
	}
	outcome.Name = parsed.Profile.Name
	outcome.Format = parsed.Profile.SourceFormat.String()
	outcome.Parser = parsed.Parser
	for _, w := range parsed.Warnings {
		outcome.Warnings = append(outcome.Warnings, w.String())
	}
	return nil
}

func printImportOutcomes(cmd *cobra.Command, outcomes []importOutcome) {
	for i := range outcomes {
		o := &outcomes[i]
		switch {
		case o.Error != "":
			cmd.Printf("FAIL %s: %s\n", o.File, o.Error)
			continue
		case o.ID == "":
			cmd.Printf("OK   %s: %q (%s, %s parser, not stored)\n", o.File, o.Name, o.Format, o.Parser)
		default:
			cmd.Printf("OK   %s: %q as %s (%s, %s parser)\n", o.File, o.Name, o.ID, o.Format, o.Parser)
		}
		for _, w := range o.Warnings {
			cmd.Printf("     warning: %s\n", w)
		}
	}
}
