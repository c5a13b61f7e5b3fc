package ui

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Colors used for each todo state.
var stateColors = map[string]lipgloss.Color{
	"planning": lipgloss.Color("245"),
	"progress": lipgloss.Color("33"),
	"pause":    lipgloss.Color("208"),
	"finish":   lipgloss.Color("34"),
	"canceled": lipgloss.Color("160"),
}

// Styler renders colored output for one writer. Styling is disabled when
// the writer is not a terminal, NO_COLOR is set, or TERM is dumb.
type Styler struct {
	renderer *lipgloss.Renderer
	enabled  bool
}

// NewStyler returns a Styler for w.
func NewStyler(w io.Writer) *Styler {
	return newStyler(w, ansiEnabled(w))
}

func newStyler(w io.Writer, enabled bool) *Styler {
	renderer := lipgloss.NewRenderer(w)
	if enabled && renderer.ColorProfile() == termenv.Ascii {
		renderer.SetColorProfile(termenv.ANSI256)
	}
	return &Styler{renderer: renderer, enabled: enabled}
}

// Enabled reports whether output is styled.
func (s *Styler) Enabled() bool {
	return s.enabled
}

// HighlightID returns an ID with its unique prefix highlighted.
func (s *Styler) HighlightID(id string, prefixLen int) string {
	if id == "" || prefixLen <= 0 || prefixLen > len(id) || !s.enabled {
		return id
	}

	prefix := s.renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).Render(id[:prefixLen])
	return prefix + id[prefixLen:]
}

// StateBadge renders a state name in its color.
func (s *Styler) StateBadge(state string) string {
	color, ok := stateColors[state]
	if !ok || !s.enabled {
		return state
	}
	return s.renderer.NewStyle().Foreground(color).Render(state)
}

// Important renders the importance marker.
func (s *Styler) Important(important bool) string {
	if !important {
		return ""
	}
	if !s.enabled {
		return "!"
	}
	return s.renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("160")).Render("!")
}

// Warning renders a message the user should notice.
func (s *Styler) Warning(message string) string {
	if !s.enabled {
		return message
	}
	return s.renderer.NewStyle().Italic(true).Foreground(lipgloss.Color("208")).Render(message)
}

// PrefixLength looks up id in a map of lowercased prefix lengths.
func PrefixLength(lengths map[string]int, id string) int {
	if lengths == nil || id == "" {
		return 0
	}
	return lengths[strings.ToLower(id)]
}

func ansiEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
