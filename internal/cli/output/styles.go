package output

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/leapstack-labs/leapspl/pkg/suggest"
)

// Styles holds the lipgloss styles used by commands.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
	Code    lipgloss.Style

	StatusSuccess lipgloss.Style
	StatusFailed  lipgloss.Style

	tags map[suggest.Tag]lipgloss.Style
}

// tagColors gives every suggestion tag its own color.
var tagColors = map[suggest.Tag]lipgloss.Color{
	suggest.TagKeyword:  "#f5222d", // red
	suggest.TagFunction: "#fa8c16", // orange
	suggest.TagField:    "#faad14", // gold
	suggest.TagValue:    "#a0d911", // lime
	suggest.TagNumber:   "#13c2c2", // cyan
	suggest.TagSymbol:   "#eb2f96", // magenta
	suggest.TagOperator: "#52c41a", // green
	suggest.TagLogic:    "#fa541c", // volcano
	suggest.TagGeneral:  "#8c8c8c", // gray
}

// NewStyles builds styles bound to a lipgloss renderer.
func NewStyles(r *lipgloss.Renderer) *Styles {
	s := &Styles{
		Header1: r.NewStyle().Bold(true).Underline(true),
		Header2: r.NewStyle().Bold(true),
		Bold:    r.NewStyle().Bold(true),
		Muted:   r.NewStyle().Faint(true),
		Success: r.NewStyle().Foreground(lipgloss.Color("#52c41a")),
		Warning: r.NewStyle().Foreground(lipgloss.Color("#faad14")),
		Error:   r.NewStyle().Foreground(lipgloss.Color("#f5222d")).Bold(true),
		Info:    r.NewStyle().Foreground(lipgloss.Color("#13c2c2")),
		Code:    r.NewStyle().Foreground(lipgloss.Color("#eb2f96")),

		tags: make(map[suggest.Tag]lipgloss.Style, len(tagColors)),
	}
	s.StatusSuccess = s.Success.SetString("✓")
	s.StatusFailed = s.Error.SetString("✗")

	for tag, color := range tagColors {
		s.tags[tag] = r.NewStyle().Foreground(color)
	}
	return s
}

// Tag returns the style for a suggestion tag.
func (s *Styles) Tag(tag suggest.Tag) lipgloss.Style {
	if style, ok := s.tags[tag]; ok {
		return style
	}
	return s.Muted
}
