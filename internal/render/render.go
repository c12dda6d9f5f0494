// Package render prints directory tables and journal listings for the CLI.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"timestamper/internal/stamp"
)

// columnGap separates table columns.
const columnGap = "  "

// UseColour resolves a display.colour setting for w. "auto" enables colour
// only when w is a terminal.
func UseColour(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "", "auto":
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd())), nil
	default:
		return false, fmt.Errorf("unknown colour mode %q", mode)
	}
}

// Printer writes tables to one output.
type Printer struct {
	w      io.Writer
	colour bool
	styles *styles
}

// NewPrinter creates a printer for w. With colour set, cells carry their
// severity or row colour as ANSI true-colour backgrounds.
func NewPrinter(w io.Writer, colour bool) *Printer {
	r := lipgloss.NewRenderer(w)
	if colour {
		r.SetColorProfile(termenv.TrueColor)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Printer{w: w, colour: colour, styles: newStyles(r)}
}

// rightAligned columns hold numbers.
var rightAligned = map[string]bool{"bytes": true, "dst": true}

// Directory prints every column of dir followed by a one-line summary.
func (p *Printer) Directory(dir *stamp.Directory) error {
	cols := stamp.Columns
	entries := dir.Entries()

	cells := make([][]string, len(entries))
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = lipgloss.Width(c.Heading)
	}
	for r, e := range entries {
		cells[r] = make([]string, len(cols))
		for i, c := range cols {
			s := c.Display(e)
			cells[r][i] = s
			widths[i] = max(widths[i], lipgloss.Width(s))
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Directory: %s (filesystem %s, host %s)\n", dir.Path, fsMode(dir.Context), dir.Context.Host)

	for i, c := range cols {
		if i > 0 {
			b.WriteString(columnGap)
		}
		b.WriteString(p.paint(p.styles.header, pad(c.Heading, widths[i], rightAligned[c.Name])))
	}
	b.WriteString("\n")

	for r, e := range entries {
		for i, c := range cols {
			if i > 0 {
				b.WriteString(columnGap)
			}
			text := pad(cells[r][i], widths[i], rightAligned[c.Name])
			if style, ok := p.cellStyle(c, e); ok {
				text = p.paint(style, text)
			}
			b.WriteString(text)
		}
		b.WriteString("\n")
	}

	files, marked, total := dir.CountMarked()
	fmt.Fprintf(&b, "%d entries, %d marked (%d files)\n", total, marked, files)

	_, err := io.WriteString(p.w, b.String())
	return err
}

// cellStyle picks the colour of one cell: the view's severity first, then
// the row colour on the mark, type and name columns.
func (p *Printer) cellStyle(c *stamp.Column, e *stamp.FileEntry) (lipgloss.Style, bool) {
	if c.IsStamp() {
		if sev, ok := e.View(c.Slot).Severity(); ok {
			style, known := p.styles.severity[sev]
			return style, known
		}
		return lipgloss.Style{}, false
	}

	switch c.Name {
	case "mark":
		return p.styles.mark, e.Marked()
	case "type", "name":
		switch {
		case e.Type() == stamp.TypeDirectory:
			return p.styles.directory, true
		case e.Type() == stamp.TypeOther, e.IsDataFile():
			return p.styles.other, true
		}
	}
	return lipgloss.Style{}, false
}

func (p *Printer) paint(style lipgloss.Style, s string) string {
	if !p.colour {
		return s
	}
	return style.Render(s)
}

// Journal prints transfer records, newest first as given.
func (p *Printer) Journal(recs []*stamp.TransferRecord) error {
	if len(recs) == 0 {
		_, err := fmt.Fprintln(p.w, "No transfers recorded.")
		return err
	}

	var b strings.Builder
	for _, r := range recs {
		fmt.Fprintf(&b, "%s  %-8s  %-8s -> %-8s  %s -> %s  %s\n",
			r.CreatedAt.UTC().Format(stamp.Layout),
			shortID(r.BatchID),
			r.From,
			r.To,
			formatMtime(r.OldMtime),
			formatMtime(r.NewMtime),
			r.Path,
		)
	}
	_, err := io.WriteString(p.w, b.String())
	return err
}

// formatMtime shows a raw mtime as UTC wall time.
func formatMtime(raw int64) string {
	return time.Unix(raw, 0).UTC().Format(stamp.Layout) + "Z"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func fsMode(ctx stamp.DirectoryContext) string {
	if ctx.FilesystemUTC {
		return "utc"
	}
	return "local"
}

func pad(s string, width int, right bool) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	if right {
		return strings.Repeat(" ", gap) + s
	}
	return s + strings.Repeat(" ", gap)
}
