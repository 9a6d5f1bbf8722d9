package theme

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Theme bundles the styles the monitor UI renders with.
type Theme struct {
	Title    lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Hint     lipgloss.Style
	Active   lipgloss.Style
	Inactive lipgloss.Style
	Stopped  lipgloss.Style

	MeterFill  rune
	MeterEmpty rune
}

// New returns the stock theme.
func New() *Theme {
	return &Theme{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#c084fc")),
		Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("#8b8b9e")),
		Value:    lipgloss.NewStyle().Foreground(lipgloss.Color("#e8e8f0")).Bold(true),
		Hint:     lipgloss.NewStyle().Foreground(lipgloss.Color("#55556a")),
		Active:   lipgloss.NewStyle().Foreground(lipgloss.Color("#2dd4a0")).Bold(true),
		Inactive: lipgloss.NewStyle().Foreground(lipgloss.Color("#d4a92d")),
		Stopped:  lipgloss.NewStyle().Foreground(lipgloss.Color("#d44a4a")),

		MeterFill:  '█',
		MeterEmpty: '░',
	}
}

// Meter ramp endpoints, blended in Luv space for an even perceptual sweep.
var (
	meterLow  = mustHex("#2dd4a0")
	meterMid  = mustHex("#d4d42d")
	meterHigh = mustHex("#d44a4a")
)

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// MeterColor maps a meter position t in [0,1] onto the green-yellow-red
// ramp.
func MeterColor(t float64) lipgloss.Color {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	var c colorful.Color
	if t < 0.5 {
		c = meterLow.BlendLuv(meterMid, t*2)
	} else {
		c = meterMid.BlendLuv(meterHigh, (t-0.5)*2)
	}
	return lipgloss.Color(c.Hex())
}
