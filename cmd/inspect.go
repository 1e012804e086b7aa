package cmd

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/winter-gallery/internal/content"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print the display blocks parsed from the text resources",
	Long: `Loads the artwork information and curator narration exactly as the page
does and prints the display blocks they parse into.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		c := newLoader(cfg).Load(context.Background())
		printContent(cmd.OutOrStdout(), c)

		if c.Failures[content.ResourceArtworkInfo] != nil && c.Failures[content.ResourceCuratorNarration] != nil {
			return fmt.Errorf("no resource could be loaded")
		}
		return nil
	},
}

var (
	headingColor = color.New(color.FgBlue, color.Bold)
	labelColor   = color.New(color.FgCyan, color.Bold)
	spacerColor  = color.New(color.Faint)
	failColor    = color.New(color.FgRed)
)

// printContent writes both block sequences in a readable form.
func printContent(w io.Writer, c content.Content) {
	r := c.Render()

	headingColor.Fprintln(w, "Artwork info")
	for i, b := range r.ArtworkInfo {
		switch b.Kind {
		case content.BlockSpacer:
			spacerColor.Fprintf(w, "%3d  ·\n", i+1)
		case content.BlockField:
			fmt.Fprintf(w, "%3d  %s %s\n", i+1, labelColor.Sprint(b.Label+":"), b.Value)
		default:
			fmt.Fprintf(w, "%3d  %s\n", i+1, b.Text)
		}
	}

	fmt.Fprintln(w)
	headingColor.Fprintln(w, "Curator notes")
	for i, b := range r.CuratorNarration {
		fmt.Fprintf(w, "%3d  %s\n", i+1, b.Text)
	}

	if len(c.Failures) > 0 {
		fmt.Fprintln(w)
		names := make([]string, 0, len(c.Failures))
		for res := range c.Failures {
			names = append(names, string(res))
		}
		sort.Strings(names)
		for _, name := range names {
			failColor.Fprintf(w, "not loaded: %s: %v\n", name, c.Failures[content.Resource(name)])
		}
	}
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
