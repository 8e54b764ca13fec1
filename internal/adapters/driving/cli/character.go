package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/chyinan/Kokoro-Engine-sub000/internal/core/domain"
)

var characterJSON bool

var characterCmd = &cobra.Command{
	Use:     "character",
	Aliases: []string{"characters", "char"},
	Short:   "Manage imported characters",
}

var characterListCmd = &cobra.Command{
	Use:   "list",
	Short: "List imported characters",
	Args:  cobra.NoArgs,
	RunE:  runCharacterList,
}

var characterShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a character profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runCharacterShow,
}

var characterDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a character",
	Args:    cobra.ExactArgs(1),
	RunE:    runCharacterDelete,
}

func init() {
	characterCmd.PersistentFlags().BoolVar(&characterJSON, "json", false, "output as JSON")
	characterCmd.AddCommand(characterListCmd)
	characterCmd.AddCommand(characterShowCmd)
	characterCmd.AddCommand(characterDeleteCmd)
	rootCmd.AddCommand(characterCmd)
}

func runCharacterList(cmd *cobra.Command, _ []string) error {
	if err := requireCharacters(); err != nil {
		return err
	}

	characters, err := characterService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list characters: %w", err)
	}

	if characterJSON {
		return printJSON(cmd, characters)
	}

	if len(characters) == 0 {
		cmd.Println("No characters imported.")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tFORMAT\tSOURCE\tIMPORTED")
	for i := range characters {
		c := &characters[i]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			c.ID, c.Profile.Name, c.Profile.SourceFormat, c.SourceFile, humanize.Time(c.CreatedAt))
	}
	return tw.Flush()
}

func runCharacterShow(cmd *cobra.Command, args []string) error {
	if err := requireCharacters(); err != nil {
		return err
	}

	c, err := characterService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get character %s: %w", args[0], err)
	}

	if characterJSON {
		return printJSON(cmd, c)
	}

	printCharacter(cmd, c)
	return nil
}

func runCharacterDelete(cmd *cobra.Command, args []string) error {
	if err := requireCharacters(); err != nil {
		return err
	}

	if err := characterService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete character %s: %w", args[0], err)
	}
	cmd.Printf("Deleted character %s\n", args[0])
	return nil
}

func printCharacter(cmd *cobra.Command, c *domain.Character) {
	cmd.Printf("ID:       %s\n", c.ID)
	cmd.Printf("Name:     %s\n", c.Profile.Name)
	cmd.Printf("Format:   %s\n", c.Profile.SourceFormat)
	cmd.Printf("User:     %s\n", c.Profile.UserNickname)
	cmd.Printf("Source:   %s\n", c.SourceFile)
	cmd.Printf("Imported: %s\n", c.CreatedAt.Format("2006-01-02 15:04:05"))
	cmd.Println()
	cmd.Println(c.Profile.Persona)
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
