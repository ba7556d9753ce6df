package canvas

import "github.com/charmbracelet/lipgloss"

type cellKind int

const (
	cellEmpty cellKind = iota
	cellConnector
	cellBorder
	cellActiveBorder
	cellFill
	cellLabel
	cellControl
	cellPointer
)

// Styles colours each kind of cell.
type Styles struct {
	Empty        lipgloss.Style
	Connector    lipgloss.Style
	Border       lipgloss.Style
	ActiveBorder lipgloss.Style
	Fill         lipgloss.Style
	Label        lipgloss.Style
	Control      lipgloss.Style
	Pointer      lipgloss.Style
}

// DefaultStyles is the pink-on-pink theme.
func DefaultStyles() Styles {
	pink := lipgloss.Color("#ec4899")
	paper := lipgloss.Color("#fce7f3")
	return Styles{
		Empty:        lipgloss.NewStyle().Background(paper),
		Connector:    lipgloss.NewStyle().Background(paper).Foreground(lipgloss.Color("#000000")),
		Border:       lipgloss.NewStyle().Background(pink).Foreground(lipgloss.Color("#9d174d")),
		ActiveBorder: lipgloss.NewStyle().Background(pink).Foreground(lipgloss.Color("#ffffff")).Bold(true),
		Fill:         lipgloss.NewStyle().Background(pink),
		Label:        lipgloss.NewStyle().Background(lipgloss.Color("#ffffff")).Foreground(lipgloss.Color("#000000")).Bold(true),
		Control:      lipgloss.NewStyle().Background(lipgloss.Color("#ffffff")).Foreground(lipgloss.Color("#000000")),
		Pointer:      lipgloss.NewStyle().Foreground(lipgloss.Color("#1e3a8a")),
	}
}

func (s Styles) of(k cellKind) lipgloss.Style {
	switch k {
	case cellConnector:
		return s.Connector
	case cellBorder:
		return s.Border
	case cellActiveBorder:
		return s.ActiveBorder
	case cellFill:
		return s.Fill
	case cellLabel:
		return s.Label
	case cellControl:
		return s.Control
	case cellPointer:
		return s.Pointer
	default:
		return s.Empty
	}
}
