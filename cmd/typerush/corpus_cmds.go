package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/typerush/internal/corpus"
)

func newSamplesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "samples [query]",
		Short: "List passages, ranked by fuzzy match when a query is given",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSamplesCmd,
	}
}

func runSamplesCmd(cmd *cobra.Command, args []string) error {
	texts, err := loadCorpus(practiceText)
	if err != nil {
		return err
	}
	entries := texts.Entries()
	indexes := make([]int, 0, len(entries))
	if len(args) == 0 || args[0] == "" {
		for i := range entries {
			indexes = append(indexes, i)
		}
	} else {
		for _, match := range fuzzy.Find(args[0], entries) {
			indexes = append(indexes, match.Index)
		}
		if len(indexes) == 0 {
			return fmt.Errorf("no passage matches %q", args[0])
		}
	}
	return writeSamples(cmd.OutOrStdout(), entries, indexes, terminalWidth())
}

func writeSamples(w io.Writer, entries []string, indexes []int, width int) error {
	prefixWidth := len(strconv.Itoa(len(entries))) + 2
	textWidth := max(10, width-prefixWidth)
	for _, i := range indexes {
		line := runewidth.Truncate(entries[i], textWidth, "…")
		if _, err := fmt.Fprintf(w, "%*d  %s\n", prefixWidth-2, i+1, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newChunksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chunks [n]",
		Short: "Preview how passages are split into lines",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runChunksCmd,
	}
	cmd.Flags().IntVar(&chunksWidth, "width", 0, "line width (default: derived from terminal width)")
	return cmd
}

func runChunksCmd(cmd *cobra.Command, args []string) error {
	texts, err := loadCorpus(practiceText)
	if err != nil {
		return err
	}
	width := chunksWidth
	if width <= 0 {
		width = corpus.WidthFor(terminalWidth())
	}
	if width < corpus.MinWidth {
		return fmt.Errorf("--width must be >= %d", corpus.MinWidth)
	}

	first, last := 0, texts.Len()
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 || n > texts.Len() {
			return fmt.Errorf("passage number must be between 1 and %d", texts.Len())
		}
		first, last = n-1, n
	}
	return writeChunks(cmd.OutOrStdout(), texts, first, last, width)
}

func writeChunks(w io.Writer, texts *corpus.Corpus, first, last, width int) error {
	for i := first; i < last; i++ {
		if _, err := fmt.Fprintf(w, "# passage %d (width %d)\n", i+1, width); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		for chunk := range corpus.Chunks(texts.Entry(i), width) {
			if _, err := fmt.Fprintln(w, chunk.Text); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
		if i < last-1 {
			if _, err := fmt.Fprintln(w); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
	}
	return nil
}
