package game

import (
	"math"
	"time"

	"github.com/verte-zerg/typedojo/internal/model"
)

const (
	// MaxProgress completes a level.
	MaxProgress = 100
	// SpeedStep multiplies speed on a level advance.
	SpeedStep = 1.05
)

// Difficulty tracks progress within the current level.
type Difficulty struct {
	level    int
	progress int
}

// NewDifficulty starts at level 1 with no progress.
func NewDifficulty() Difficulty {
	return Difficulty{level: 1}
}

// Level returns the current level, starting at 1.
func (d *Difficulty) Level() int {
	return d.level
}

// Progress returns progress toward the next level in [0, MaxProgress).
func (d *Difficulty) Progress() int {
	return d.progress
}

// RecordSuccess counts a correctly typed word. When the level completes it
// returns the advanced settings and true; otherwise settings are returned
// unchanged.
func (d *Difficulty) RecordSuccess(settings model.Settings) (model.Settings, bool) {
	d.progress = min(d.progress+1, MaxProgress)
	if d.progress < MaxProgress {
		return settings, false
	}
	d.progress = 0
	d.level++
	return ApplyLevelAdvance(settings), true
}

// RecordError counts a failed word.
func (d *Difficulty) RecordError(settings model.Settings) {
	if settings.RestartLevelOnError {
		d.progress = 0
		return
	}
	d.progress = max(d.progress-1, 0)
}

// ApplyLevelAdvance returns settings adjusted for a completed level. With the
// alternating policy, restart-on-error flips every level: a lenient level
// (restart off) keeps the speed, a strict one (restart back on) raises it.
func ApplyLevelAdvance(settings model.Settings) model.Settings {
	next := settings
	speed := settings.Speed
	if settings.TypeRestartLevelOnErrorOnLevelCompletion {
		if settings.RestartLevelOnError {
			next.RestartLevelOnError = false
		} else {
			next.RestartLevelOnError = true
			speed *= SpeedStep
		}
	} else {
		speed *= SpeedStep
	}
	next.Speed = roundTo(speed, 4)
	return next
}

// EffectiveSpeed floors speed to 1 for timing.
func EffectiveSpeed(speed float64) float64 {
	return math.Max(speed, 1)
}

// WordDuration returns the time allowed to type word. Each letter costs
// 1/speed seconds; a letter repeating its predecessor costs that scaled by
// sameLetterDelayPercent.
func WordDuration(word string, speed, sameLetterDelayPercent float64) time.Duration {
	base := 1 / EffectiveSpeed(speed)
	repeat := base * sameLetterDelayPercent / 100
	var total float64
	var prev rune
	for i, r := range []rune(word) {
		if i > 0 && r == prev {
			total += repeat
		} else {
			total += base
		}
		prev = r
	}
	return time.Duration(total * float64(time.Second))
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
