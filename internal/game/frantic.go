package game

import (
	"github.com/verte-zerg/typedojo/internal/generator"
	"github.com/verte-zerg/typedojo/internal/model"
)

// Random word length bounds used by frantic mode.
const (
	franticMinLength = 3
	franticMaxLength = model.MaxWordLengthLimit
)

// ApplyFranticRandomization returns a new settings value with every dimension
// enabled in settings.Frantic independently re-rolled. The input is not
// modified. It is a no-op when frantic mode is off.
func ApplyFranticRandomization(settings model.Settings, words []model.Word, gen *generator.Generator) model.Settings {
	if !settings.FranticMode {
		return settings
	}
	next := settings
	flags := settings.Frantic

	if flags.DisplayMode {
		if gen.CoinFlip() {
			next.DisplayMode = model.DisplayLetterByLetter
		} else {
			next.DisplayMode = model.DisplayFullWord
		}
	}
	if flags.LetterStyle && next.DisplayMode == model.DisplayLetterByLetter {
		next.LetterStyle = randomLetterStyle(gen)
	}
	if flags.ProgressBar {
		next.HideProgressBar = gen.CoinFlip()
	}
	if flags.Timer {
		next.HideTimer = gen.CoinFlip()
	}
	if flags.RestartLevelOnError {
		next.RestartLevelOnError = gen.CoinFlip()
	}
	if flags.MoveWordStarting {
		next.RandomlyMoveWordStarting = gen.CoinFlip()
	}
	if flags.HideTypedLetter {
		next.HideTypedLetter = gen.CoinFlip()
	}
	if flags.WordLength {
		next.MinWordLength, next.MaxWordLength = randomLengthBounds(words, gen)
	}
	return next
}

func randomLetterStyle(gen *generator.Generator) model.LetterStyle {
	style := model.LetterStyle{
		Direction:       model.DirectionFlow,
		RandomColor:     gen.CoinFlip(),
		RandomFont:      gen.CoinFlip(),
		RandomWeight:    gen.CoinFlip(),
		RandomSize:      gen.CoinFlip(),
		RandomTransform: gen.CoinFlip(),
	}
	if gen.CoinFlip() {
		style.Direction = model.DirectionCenter
	}
	return style
}

// randomLengthBounds draws min in [3,30] and max in [min,30], falling back to
// the full range when no loaded word fits.
func randomLengthBounds(words []model.Word, gen *generator.Generator) (int, int) {
	lo := gen.IntRange(franticMinLength, franticMaxLength)
	hi := gen.IntRange(lo, franticMaxLength)
	for _, w := range words {
		n := len([]rune(w.Text))
		if n >= lo && n <= hi {
			return lo, hi
		}
	}
	return model.MinWordLengthLimit, model.MaxWordLengthLimit
}
