package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/chyinan/Kokoro-Engine-sub000/internal/connectors/filesystem"
	"github.com/chyinan/Kokoro-Engine-sub000/internal/pngmeta"
)

// defaultWidth is used when stdout is not a terminal.
const defaultWidth = 100

var inspectFull bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Show the chunks and text metadata of a card",
	Long: `Lists every chunk of a PNG card in file order, then the decoded tEXt and
iTXt entries, then the profile the card would import as. Nothing is stored.

Long text values are cut to the terminal width unless --full is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectFull, "full", false, "print text values without truncation")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	path, err := filesystem.ResolvePath(args[0])
	if err != nil {
		return err
	}
	data, err := readCardFile(path)
	if err != nil {
		return err
	}

	cmd.Printf("File: %s (%s)\n", path, humanize.IBytes(uint64(len(data))))

	if pngmeta.IsPNG(data) {
		printChunks(cmd, data)
	} else {
		cmd.Println("Not a PNG image; chunk listing skipped.")
	}

	if characterService == nil {
		return nil
	}
	cmd.Println()
	parsed, err := characterService.Parse(cmd.Context(), path, data)
	if err != nil {
		return err
	}
	cmd.Println("Profile:")
	cmd.Printf("  Name:    %s\n", parsed.Profile.Name)
	cmd.Printf("  Format:  %s (%s parser)\n", parsed.Profile.SourceFormat, parsed.Parser)
	cmd.Printf("  Persona: %s\n", clip(parsed.Profile.Persona, valueWidth(11)))
	for _, w := range parsed.Warnings {
		cmd.Printf("  Warning: %s\n", w)
	}
	return nil
}

// printChunks lists chunks up to the first structural error, then the
// text entries those chunks carry.
func printChunks(cmd *cobra.Command, data []byte) {
	var chunks []pngmeta.Chunk
	walkErr := pngmeta.Walk(data, func(c pngmeta.Chunk) error {
		chunks = append(chunks, c)
		return nil
	})

	cmd.Println()
	cmd.Printf("Chunks (%d):\n", len(chunks))
	cmd.Printf("  %-8s  %-4s  %10s\n", "OFFSET", "TYPE", "SIZE")
	for _, c := range chunks {
		cmd.Printf("  %-8d  %-4s  %10s\n", c.Offset, c.Type, humanize.IBytes(uint64(c.Length)))
	}
	if walkErr != nil {
		cmd.Printf("  stopped: %v\n", walkErr)
	}

	var entries []pngmeta.TextEntry
	for _, c := range chunks {
		if e, ok := pngmeta.DecodeChunk(c); ok {
			entries = append(entries, e)
		}
	}
	if len(entries) == 0 {
		return
	}

	cmd.Println()
	cmd.Printf("Text entries (%d):\n", len(entries))
	width := valueWidth(24)
	for _, e := range entries {
		flag := ""
		if e.Compressed {
			flag = " [compressed]"
		}
		cmd.Printf("  %s %s%s\n", e.ChunkType, e.Keyword, flag)
		cmd.Printf("    %s\n", clip(e.Value, width))
	}
}

// readCardFile reads path, rejecting directories.
func readCardFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, errors.New(path + " is a directory")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// valueWidth returns the columns left for a value after indent columns.
func valueWidth(indent int) int {
	if inspectFull {
		return 0
	}
	width := defaultWidth
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}
	if width-indent < 20 {
		return 20
	}
	return width - indent
}

// clip flattens s to one line and cuts it to limit runes.
// A limit <= 0 returns s untouched.
func clip(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-1]) + "…"
}
