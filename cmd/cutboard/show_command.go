package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"cutboard/internal/board"
)

const (
	ansiReset = "\x1b[0m"
	ansiBlue  = "\x1b[34m"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var showDeleted bool

	cmd := &cobra.Command{
		Use:   "show <storyboard>",
		Short: "Display the sections and clips of a storyboard file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := ctx.loadStoryboard(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			doc := file.Doc

			fmt.Fprintf(out, "Master: %dx%d @ %s fps, %d Hz, %s\n\n",
				doc.Master.FrameWidth, doc.Master.FrameHeight,
				strconv.FormatFloat(doc.Master.FrameRate, 'f', -1, 64),
				doc.Master.SampleRate, doc.Master.AspectRatio)

			total := 0
			for _, section := range doc.Sections {
				if len(section.Clips) == 0 {
					continue
				}
				for _, line := range renderSectionHeader(sectionTitle(doc, section), colorize) {
					fmt.Fprintln(out, line)
				}
				fmt.Fprintln(out, renderClipTable(section, showDeleted))
				fmt.Fprintln(out)
				total += len(section.Clips)
			}
			fmt.Fprintf(out, "%d clips in %d sections\n", total, len(doc.Sections))
			return nil
		},
	}

	cmd.Flags().BoolVar(&showDeleted, "deleted", false, "Include deleted clips")
	return cmd
}

func sectionTitle(doc *board.Document, section *board.Section) string {
	switch {
	case section.ID == doc.MaskSectionID:
		return "Mask Section"
	case section.IsMain():
		return "Main"
	default:
		return cases.Title(language.Und).String(section.Name)
	}
}

func renderClipTable(section *board.Section, showDeleted bool) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"ID", "Type", "Track", "Frames", "Resource", "Flags"})

	for _, clip := range section.Clips {
		if clip.Deleted && !showDeleted {
			continue
		}
		tw.AppendRow(table.Row{
			clip.StoryID,
			string(clip.Type),
			clip.Track,
			fmt.Sprintf("%d-%d", clip.FromFrame, clip.ToFrame),
			clip.Resource,
			clipFlags(clip),
		})
	}

	// Numeric columns right-align so ids and frame ranges line up.
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

func clipFlags(clip *board.Clip) string {
	var flags []string
	if clip.Deleted {
		flags = append(flags, "deleted")
	}
	if clip.MaskName != "" {
		flags = append(flags, "mask="+clip.MaskName)
	}
	if clip.Movie != nil && clip.Movie.SeekFast {
		flags = append(flags, "seek_fast")
	}
	if clip.Comment != "" {
		flags = append(flags, "note")
	}
	return strings.Join(flags, ",")
}

func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	if colorize {
		line = ansiBlue + line + ansiReset
		rule = ansiBlue + rule + ansiReset
	}
	return []string{line, rule}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
