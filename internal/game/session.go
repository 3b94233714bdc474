// Package game implements the typing game engine: word selection, the word
// countdown, keystroke validation, leveling and frantic mode.
//
// A Session is not safe for concurrent use. Hosts call it from a single
// event loop (key handlers and frame ticks run strictly in sequence).
package game

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/verte-zerg/typedojo/internal/generator"
	"github.com/verte-zerg/typedojo/internal/model"
)

// ErrInvariant marks a programming fault inside the engine.
var ErrInvariant = errors.New("invariant violation")

// State is the per-word input state.
type State int

// Session states. A resolved word immediately advances to a new
// StateAwaitingInput; the resolution is reported through Outcome.
const (
	StateIdle State = iota
	StateAwaitingInput
	StateTyping
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingInput:
		return "awaiting-input"
	case StateTyping:
		return "typing"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Outcome is how the previous word was resolved.
type Outcome int

// Outcomes.
const (
	OutcomeNone Outcome = iota
	OutcomeSuccess
	OutcomeError
	OutcomeTimeout
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeSuccess:
		return "success"
	case OutcomeError:
		return "error"
	case OutcomeTimeout:
		return "timeout"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Key identifies non-character keys fed to KeyDown/KeyUp.
type Key int

// Keys.
const (
	KeyOther Key = iota
	KeyBackspace
)

// StatsRecorder persists per-word statistics. Record must not block; the
// update runs later against the stored counters.
type StatsRecorder interface {
	Record(word model.Word, update func(*model.WordStats))
}

// Feedback receives audio/visual cues.
type Feedback interface {
	// Letter cues the next letter to type.
	Letter(r rune)
	// Word announces a newly presented word.
	Word(word model.Word)
	Success()
	Failure(outcome Outcome)
}

// Observer receives gameplay events for telemetry.
type Observer interface {
	WordResolved(outcome Outcome, elapsed time.Duration)
	LevelCompleted(level int, speed float64)
}

// Option configures a Session.
type Option func(*Session)

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithGenerator sets the randomness source.
func WithGenerator(gen *generator.Generator) Option {
	return func(s *Session) { s.gen = gen }
}

// WithRecorder sets the statistics sink.
func WithRecorder(rec StatsRecorder) Option {
	return func(s *Session) { s.recorder = rec }
}

// WithFeedback sets the cue sink.
func WithFeedback(fb Feedback) Option {
	return func(s *Session) { s.feedback = fb }
}

// WithObserver sets the telemetry sink.
func WithObserver(obs Observer) Option {
	return func(s *Session) { s.observer = obs }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// Snapshot is the observable session state.
type Snapshot struct {
	State          State
	CurrentWord    *model.Word
	Synthesized    bool
	Typed          string
	TimerRemaining time.Duration
	TimerMax       time.Duration
	TimerRunning   bool
	Progress       int
	Level          int
	WordIndex      int
	Outcome        Outcome
}

// Session is one running game bound to a word list and settings.
type Session struct {
	settings   model.Settings
	selector   *Selector
	timer      *Timer
	difficulty Difficulty

	now      func() time.Time
	gen      *generator.Generator
	recorder StatsRecorder
	feedback Feedback
	observer Observer
	logger   *slog.Logger

	current     *model.Word
	synthesized bool
	typed       []rune
	duration    time.Duration
	wordIndex   int
	outcome     Outcome
	deleteHeld  bool
}

// New builds a session and presents its first word.
func New(settings model.Settings, words []model.Word, opts ...Option) *Session {
	s := &Session{
		settings:   settings,
		difficulty: NewDifficulty(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.gen == nil {
		s.gen = generator.New()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.timer = NewTimer(s.handleTimeout)
	s.selector = NewSelector(usableWords(words), s.gen)
	s.pickNextWord()
	return s
}

// Reset starts over with a new word list at level 1.
func (s *Session) Reset(words []model.Word) {
	s.selector.Reset(usableWords(words))
	s.difficulty = NewDifficulty()
	s.outcome = OutcomeNone
	s.wordIndex = 0
	s.deleteHeld = false
	s.pickNextWord()
}

// Settings returns the current settings.
func (s *Session) Settings() model.Settings {
	return s.settings
}

// SetSettings replaces the settings. Timing changes apply from the next word.
func (s *Session) SetSettings(settings model.Settings) {
	s.settings = settings
}

// State returns the per-word input state.
func (s *Session) State() State {
	switch {
	case s.current == nil:
		return StateIdle
	case len(s.typed) == 0:
		return StateAwaitingInput
	default:
		return StateTyping
	}
}

// TimerActive reports whether the host should keep scheduling frames.
func (s *Session) TimerActive() bool {
	return s.timer.State() == TimerRunning
}

// Snapshot returns a copy of the observable state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		State:          s.State(),
		Synthesized:    s.synthesized,
		Typed:          string(s.typed),
		TimerRemaining: s.duration,
		TimerMax:       s.duration,
		TimerRunning:   s.TimerActive(),
		Progress:       s.difficulty.Progress(),
		Level:          s.difficulty.Level(),
		WordIndex:      s.wordIndex,
		Outcome:        s.outcome,
	}
	if s.current != nil {
		word := *s.current
		snap.CurrentWord = &word
	}
	if s.timer.Armed() {
		snap.TimerRemaining = s.timer.Remaining()
	}
	return snap
}

// KeyPress appends a typed character. Ignored once the buffer is as long as
// the target.
func (s *Session) KeyPress(r rune) {
	target := s.target()
	if len(s.typed) >= len(target) {
		return
	}
	s.typed = append(s.typed, r)
	s.validate()
}

// KeyDown handles a key press for non-character keys. A held backspace
// deletes once until it is released.
func (s *Session) KeyDown(key Key) {
	if key != KeyBackspace || s.deleteHeld {
		return
	}
	s.deleteHeld = true
	if len(s.typed) > 0 {
		s.typed = s.typed[:len(s.typed)-1]
	}
	s.validate()
}

// KeyUp handles a key release for non-character keys.
func (s *Session) KeyUp(key Key) {
	if key == KeyBackspace {
		s.deleteHeld = false
	}
}

// Tick advances the word countdown to now. It reports whether more frames
// are needed.
func (s *Session) Tick(now time.Time) bool {
	return s.timer.Tick(now)
}

func (s *Session) target() []rune {
	if s.current == nil {
		panic(fmt.Errorf("%w: no current word", ErrInvariant))
	}
	return []rune(s.current.Text)
}

func (s *Session) validate() {
	target := s.target()
	now := s.now()
	if len(s.typed) == 0 {
		s.timer.Pause(now)
		s.cueLetter(target, 0)
		return
	}

	switch s.timer.State() {
	case TimerPaused:
		s.timer.Resume(now)
	case TimerStopped, TimerExpired:
		s.timer.Start(s.duration, now)
	}

	typed := string(s.typed)
	switch {
	case typed == s.current.Text:
		s.handleSuccess()
	case strings.HasPrefix(s.current.Text, typed):
		s.cueLetter(target, len(s.typed))
	case s.settings.ShowNewWordOnError:
		s.handleError(OutcomeError)
	}
}

func (s *Session) handleSuccess() {
	s.record(func(st *model.WordStats) { st.CorrectlyTyped++ })
	if !s.settings.NoFeedbackSound && s.feedback != nil {
		s.feedback.Success()
	}
	s.resolve(OutcomeSuccess)

	next, advanced := s.difficulty.RecordSuccess(s.settings)
	if advanced {
		s.settings = next
		s.logger.Info("level completed",
			"level", s.difficulty.Level(),
			"speed", next.Speed,
			"restart_on_error", next.RestartLevelOnError,
		)
		if s.observer != nil {
			s.observer.LevelCompleted(s.difficulty.Level(), next.Speed)
		}
	}
	s.pickNextWord()
}

func (s *Session) handleTimeout() {
	s.handleError(OutcomeTimeout)
}

func (s *Session) handleError(outcome Outcome) {
	s.difficulty.RecordError(s.settings)
	s.record(func(st *model.WordStats) { st.WronglyTyped++ })
	if !s.settings.NoFeedbackSound && s.feedback != nil {
		s.feedback.Failure(outcome)
	}
	s.resolve(outcome)
	s.pickNextWord()
}

func (s *Session) resolve(outcome Outcome) {
	s.outcome = outcome
	if s.observer != nil {
		s.observer.WordResolved(outcome, s.timer.Max()-s.timer.Remaining())
	}
}

func (s *Session) pickNextWord() {
	s.settings = ApplyFranticRandomization(s.settings, s.selector.Words(), s.gen)

	pick := s.selector.Next(s.settings)
	if pick.Fallback {
		s.logger.Debug("no word matches the filter; picking unfiltered",
			"exclude", s.settings.ExcludeLetters,
			"min_length", s.settings.MinWordLength,
			"max_length", s.settings.MaxWordLength,
		)
	}
	word := pick.Word
	s.current = &word
	s.synthesized = pick.Synthesized
	s.record(func(st *model.WordStats) { st.Seen++ })

	s.typed = nil
	s.timer.Cancel()
	s.duration = WordDuration(word.Text, s.settings.Speed, s.settings.SameLetterDelayPercent)
	s.wordIndex++

	if s.feedback != nil && s.settings.Voice.SayCurrentWord {
		s.feedback.Word(word)
	}
	s.cueLetter([]rune(word.Text), 0)
}

func (s *Session) cueLetter(target []rune, idx int) {
	if s.feedback == nil || !s.settings.Voice.FocusOnLetter {
		return
	}
	if idx < 0 || idx >= len(target) {
		return
	}
	s.feedback.Letter(target[idx])
}

// shouldSave reports whether the current word accumulates statistics.
func (s *Session) shouldSave() bool {
	if !s.settings.SaveStats || s.synthesized {
		return false
	}
	if s.settings.DisplayMode == model.DisplayLetterByLetter && s.settings.LetterStyle.Direction == model.DirectionCenter {
		return false
	}
	return true
}

func (s *Session) record(update func(*model.WordStats)) {
	if s.recorder == nil || s.current == nil || !s.shouldSave() {
		return
	}
	s.recorder.Record(*s.current, update)
}

func usableWords(words []model.Word) []model.Word {
	out := make([]model.Word, 0, len(words))
	for _, w := range words {
		if w.Text == "" {
			continue
		}
		out = append(out, w)
	}
	return out
}
