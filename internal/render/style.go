package render

import (
	"github.com/charmbracelet/lipgloss"

	"timestamper/internal/stamp"
)

// Row and cell palette. Backgrounds are pale so the black text stays readable.
var (
	colorText      = lipgloss.Color("#000000")
	colorDirectory = lipgloss.Color("#FFEC91") // yellowish, like a folder icon
	colorOther     = lipgloss.Color("#C8C8C8")
	colorMark      = lipgloss.Color("#FFA0FF")
)

var severityColors = map[stamp.Severity]lipgloss.Color{
	stamp.SeverityEqual:       lipgloss.Color("#A0FFA0"), // green
	stamp.SeverityFATRounding: lipgloss.Color("#A0FFFF"), // cyan
	stamp.SeverityFewSeconds:  lipgloss.Color("#E1FFA0"), // green-yellow
	stamp.SeverityDSTOffset:   lipgloss.Color("#FFFFA0"), // yellow
	stamp.SeverityHoursDiff:   lipgloss.Color("#FFD2A0"), // orange
	stamp.SeverityDifferent:   lipgloss.Color("#FFAAAA"), // red
}

// styles holds the lipgloss styles bound to one renderer.
type styles struct {
	header    lipgloss.Style
	mark      lipgloss.Style
	directory lipgloss.Style
	other     lipgloss.Style
	severity  map[stamp.Severity]lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) *styles {
	cell := func(bg lipgloss.Color) lipgloss.Style {
		return r.NewStyle().Background(bg).Foreground(colorText)
	}

	s := &styles{
		header:    r.NewStyle().Bold(true).Underline(true),
		mark:      cell(colorMark),
		directory: cell(colorDirectory),
		other:     cell(colorOther),
		severity:  make(map[stamp.Severity]lipgloss.Style, len(severityColors)),
	}
	for sev, bg := range severityColors {
		s.severity[sev] = cell(bg)
	}
	return s
}
