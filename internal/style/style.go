// Package style picks per-letter terminal styles and word offsets for the
// typing view. Choices are drawn once per word so a frame redraw never
// changes them.
package style

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typedojo/internal/generator"
	"github.com/verte-zerg/typedojo/internal/model"
)

// Base is the letter color when color randomization is off.
var Base = lipgloss.Color("#F0F0F0")

// Palette holds the colors random letters are drawn from.
var Palette = []lipgloss.Color{
	"#F0F0F0",
	"#FF6B6B",
	"#FFD166",
	"#06D6A0",
	"#4CC9F0",
	"#B388FF",
	"#F78C6B",
	"#C89A3A",
}

// Weight is a terminal stand-in for font weight.
type Weight int

// Weights.
const (
	WeightNormal Weight = iota
	WeightBold
	WeightFaint
)

// Letter describes how one letter is drawn.
type Letter struct {
	Color   lipgloss.Color
	Weight  Weight
	Italic  bool
	Reverse bool
	// Pad is the horizontal padding on each side, the terminal's closest
	// thing to a larger glyph.
	Pad int
}

// Plain returns the unrandomized letter style.
func Plain() Letter {
	return Letter{Color: Base}
}

// Random draws a letter style according to the enabled toggles.
func Random(ls model.LetterStyle, gen *generator.Generator) Letter {
	l := Plain()
	if ls.RandomColor {
		l.Color = generator.Pick(gen, Palette)
	}
	if ls.RandomWeight {
		l.Weight = Weight(gen.Intn(3))
	}
	if ls.RandomFont {
		l.Italic = gen.CoinFlip()
	}
	if ls.RandomTransform {
		l.Reverse = gen.Chance(0.25)
	}
	if ls.RandomSize {
		l.Pad = gen.Intn(2)
	}
	return l
}

// Word draws one style per rune of text. Styles are only randomized in
// letter-by-letter mode; full words keep the plain style.
func Word(text string, settings model.Settings, gen *generator.Generator) []Letter {
	runes := []rune(text)
	out := make([]Letter, len(runes))
	randomize := settings.DisplayMode == model.DisplayLetterByLetter
	for i := range out {
		if randomize {
			out[i] = Random(settings.LetterStyle, gen)
		} else {
			out[i] = Plain()
		}
	}
	return out
}

// Style converts the letter to a lipgloss style.
func (l Letter) Style() lipgloss.Style {
	s := lipgloss.NewStyle().Foreground(l.Color)
	switch l.Weight {
	case WeightBold:
		s = s.Bold(true)
	case WeightFaint:
		s = s.Faint(true)
	}
	if l.Italic {
		s = s.Italic(true)
	}
	if l.Reverse {
		s = s.Reverse(true)
	}
	if l.Pad > 0 {
		s = s.PaddingLeft(l.Pad).PaddingRight(l.Pad)
	}
	return s
}

// Render draws r with the letter style.
func (l Letter) Render(r rune) string {
	return l.Style().Render(string(r))
}

// Shift returns a random horizontal offset in [-room, room] when enabled.
func Shift(enabled bool, room int, gen *generator.Generator) int {
	if !enabled || room <= 0 {
		return 0
	}
	return gen.IntRange(-room, room)
}
