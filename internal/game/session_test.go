package game

import (
	"errors"
	"testing"
	"time"

	"github.com/verte-zerg/typedojo/internal/generator"
	"github.com/verte-zerg/typedojo/internal/model"
)

type recordedUpdate struct {
	word  string
	stats model.WordStats
}

type fakeRecorder struct {
	updates []recordedUpdate
}

func (r *fakeRecorder) Record(word model.Word, update func(*model.WordStats)) {
	var st model.WordStats
	update(&st)
	r.updates = append(r.updates, recordedUpdate{word: word.Text, stats: st})
}

func (r *fakeRecorder) count(pred func(model.WordStats) bool) int {
	n := 0
	for _, u := range r.updates {
		if pred(u.stats) {
			n++
		}
	}
	return n
}

type fakeFeedback struct {
	letters   []rune
	words     []string
	successes int
	failures  []Outcome
}

func (f *fakeFeedback) Letter(r rune)     { f.letters = append(f.letters, r) }
func (f *fakeFeedback) Word(w model.Word) { f.words = append(f.words, w.Text) }
func (f *fakeFeedback) Success()          { f.successes++ }
func (f *fakeFeedback) Failure(o Outcome) { f.failures = append(f.failures, o) }

func (f *fakeFeedback) lastLetter() rune { return f.letters[len(f.letters)-1] }

func (f *fakeFeedback) lastFailure() Outcome { return f.failures[len(f.failures)-1] }

type fakeObserver struct {
	resolved []Outcome
	levels   []int
}

func (o *fakeObserver) WordResolved(outcome Outcome, _ time.Duration) {
	o.resolved = append(o.resolved, outcome)
}

func (o *fakeObserver) LevelCompleted(level int, _ float64) {
	o.levels = append(o.levels, level)
}

type harness struct {
	clock    *fakeClock
	recorder *fakeRecorder
	feedback *fakeFeedback
	observer *fakeObserver
	session  *Session
}

func baseSettings() model.Settings {
	settings := model.DefaultSettings()
	settings.Speed = 2
	settings.SameLetterDelayPercent = 50
	settings.DisplayMode = model.DisplayFullWord
	return settings
}

func newHarness(t *testing.T, settings model.Settings, words ...string) *harness {
	t.Helper()
	h := &harness{
		clock:    newFakeClock(),
		recorder: &fakeRecorder{},
		feedback: &fakeFeedback{},
		observer: &fakeObserver{},
	}
	h.session = New(settings, wordsOf(words...),
		WithClock(h.clock.Now),
		WithGenerator(generator.NewSeeded(1)),
		WithRecorder(h.recorder),
		WithFeedback(h.feedback),
		WithObserver(h.observer),
	)
	return h
}

func (h *harness) typeString(s string) {
	for _, r := range s {
		h.session.KeyPress(r)
	}
}

func (h *harness) backspace() {
	h.session.KeyDown(KeyBackspace)
	h.session.KeyUp(KeyBackspace)
}

func TestSessionStartsAwaitingInput(t *testing.T) {
	h := newHarness(t, baseSettings(), "cat")
	snap := h.session.Snapshot()
	if snap.State != StateAwaitingInput {
		t.Fatalf("expected awaiting input, got %v", snap.State)
	}
	if snap.CurrentWord == nil || snap.CurrentWord.Text != "cat" {
		t.Fatalf("expected cat, got %+v", snap.CurrentWord)
	}
	if snap.TimerMax != 1500*time.Millisecond || snap.TimerRemaining != snap.TimerMax {
		t.Fatalf("unexpected timer %v/%v", snap.TimerRemaining, snap.TimerMax)
	}
	if snap.TimerRunning || h.session.TimerActive() {
		t.Fatalf("timer must not run before input")
	}
	if h.feedback.letters[0] != 'c' {
		t.Fatalf("expected cue for c, got %q", h.feedback.letters[0])
	}
	if snap.WordIndex != 1 || snap.Level != 1 || snap.Progress != 0 {
		t.Fatalf("unexpected counters %+v", snap)
	}
}

func TestSessionPrefixKeepsTyping(t *testing.T) {
	h := newHarness(t, baseSettings(), "cat")
	h.typeString("ca")
	snap := h.session.Snapshot()
	if snap.State != StateTyping || snap.Typed != "ca" {
		t.Fatalf("expected typing ca, got %v %q", snap.State, snap.Typed)
	}
	if !snap.TimerRunning {
		t.Fatalf("expected timer to run once typing starts")
	}
	if snap.Outcome != OutcomeNone || snap.WordIndex != 1 {
		t.Fatalf("prefix must not resolve: %+v", snap)
	}
	if h.feedback.lastLetter() != 't' {
		t.Fatalf("expected cue for t, got %q", h.feedback.lastLetter())
	}
}

func TestSessionSuccessAdvances(t *testing.T) {
	h := newHarness(t, baseSettings(), "cat")
	h.typeString("cat")
	snap := h.session.Snapshot()
	if snap.Outcome != OutcomeSuccess || snap.Progress != 1 || snap.WordIndex != 2 {
		t.Fatalf("unexpected snapshot after success: %+v", snap)
	}
	if snap.Typed != "" || snap.TimerRunning {
		t.Fatalf("next word must start clean: %+v", snap)
	}
	if h.feedback.successes != 1 {
		t.Fatalf("expected success feedback")
	}
	if h.recorder.count(func(s model.WordStats) bool { return s.CorrectlyTyped == 1 }) != 1 {
		t.Fatalf("expected one correct record, got %+v", h.recorder.updates)
	}
	if h.recorder.count(func(s model.WordStats) bool { return s.Seen == 1 }) != 2 {
		t.Fatalf("expected two seen records, got %+v", h.recorder.updates)
	}
	if len(h.observer.resolved) != 1 || h.observer.resolved[0] != OutcomeSuccess {
		t.Fatalf("unexpected observed outcomes %v", h.observer.resolved)
	}
}

func TestSessionErrorWithNewWordOnError(t *testing.T) {
	settings := baseSettings()
	settings.ShowNewWordOnError = true
	settings.RestartLevelOnError = false
	settings.TypeRestartLevelOnErrorOnLevelCompletion = false
	h := newHarness(t, settings, "cat")
	h.typeString("cat")
	h.typeString("cat")
	h.typeString("cx")

	snap := h.session.Snapshot()
	if snap.Outcome != OutcomeError {
		t.Fatalf("expected error outcome, got %v", snap.Outcome)
	}
	if snap.Progress != 1 {
		t.Fatalf("expected progress decremented to 1, got %d", snap.Progress)
	}
	if snap.WordIndex != 4 || snap.Typed != "" {
		t.Fatalf("expected a fresh next word: %+v", snap)
	}
	if len(h.feedback.failures) != 1 || h.feedback.lastFailure() != OutcomeError {
		t.Fatalf("expected error feedback, got %v", h.feedback.failures)
	}
	if h.recorder.count(func(s model.WordStats) bool { return s.WronglyTyped == 1 }) != 1 {
		t.Fatalf("expected a wrong record")
	}
}

func TestSessionErrorRestartsLevel(t *testing.T) {
	settings := baseSettings()
	settings.RestartLevelOnError = true
	settings.TypeRestartLevelOnErrorOnLevelCompletion = false
	h := newHarness(t, settings, "cat")
	for i := 0; i < 5; i++ {
		h.typeString("cat")
	}
	h.typeString("x")
	if got := h.session.Snapshot().Progress; got != 0 {
		t.Fatalf("expected progress reset to 0, got %d", got)
	}
}

func TestSessionErrorWithoutNewWordIsStuck(t *testing.T) {
	settings := baseSettings()
	settings.ShowNewWordOnError = false
	h := newHarness(t, settings, "cat")
	h.typeString("cx")
	snap := h.session.Snapshot()
	if snap.Outcome != OutcomeNone || snap.Typed != "cx" || snap.WordIndex != 1 {
		t.Fatalf("expected to stay on the word: %+v", snap)
	}
	h.typeString("zz")
	if got := h.session.Snapshot().Typed; got != "cxz" {
		t.Fatalf("buffer must not exceed target length, got %q", got)
	}

	h.backspace()
	h.backspace()
	h.typeString("at")
	snap = h.session.Snapshot()
	if snap.Outcome != OutcomeSuccess || snap.WordIndex != 2 {
		t.Fatalf("expected recovery to succeed: %+v", snap)
	}
}

func TestSessionBackspaceDebounce(t *testing.T) {
	settings := baseSettings()
	settings.ShowNewWordOnError = false
	h := newHarness(t, settings, "cattle")
	h.typeString("catt")

	h.session.KeyDown(KeyBackspace)
	h.session.KeyDown(KeyBackspace)
	h.session.KeyDown(KeyBackspace)
	if got := h.session.Snapshot().Typed; got != "cat" {
		t.Fatalf("held backspace should delete once, got %q", got)
	}
	h.session.KeyUp(KeyBackspace)
	h.session.KeyDown(KeyBackspace)
	if got := h.session.Snapshot().Typed; got != "ca" {
		t.Fatalf("second press should delete again, got %q", got)
	}
	h.session.KeyUp(KeyBackspace)
	h.session.KeyDown(KeyOther)
	if got := h.session.Snapshot().Typed; got != "ca" {
		t.Fatalf("other keys must not delete, got %q", got)
	}
}

func TestSessionTimeoutResolvesAsError(t *testing.T) {
	settings := baseSettings()
	settings.ShowNewWordOnError = false
	settings.RestartLevelOnError = true
	h := newHarness(t, settings, "cat")
	h.typeString("c")

	h.clock.Advance(time.Second)
	if !h.session.Tick(h.clock.Now()) {
		t.Fatalf("expected timer to keep running")
	}
	if got := h.session.Snapshot().TimerRemaining; got != 500*time.Millisecond {
		t.Fatalf("expected 500ms remaining, got %v", got)
	}

	h.clock.Advance(time.Second)
	if h.session.Tick(h.clock.Now()) {
		t.Fatalf("expected timer to stop after expiry")
	}
	snap := h.session.Snapshot()
	if snap.Outcome != OutcomeTimeout || snap.WordIndex != 2 || snap.TimerRunning {
		t.Fatalf("expected timeout resolution: %+v", snap)
	}
	if h.feedback.lastFailure() != OutcomeTimeout {
		t.Fatalf("expected timeout feedback")
	}
	if h.session.Tick(h.clock.Now().Add(time.Minute)) {
		t.Fatalf("new word timer must not be armed before input")
	}
	if len(h.observer.resolved) != 1 {
		t.Fatalf("expected a single resolution, got %v", h.observer.resolved)
	}
}

func TestSessionPauseOnEmptyBuffer(t *testing.T) {
	settings := baseSettings()
	settings.ShowNewWordOnError = false
	h := newHarness(t, settings, "cat")
	h.typeString("c")
	h.clock.Advance(500 * time.Millisecond)
	h.session.Tick(h.clock.Now())

	h.backspace()
	before := h.session.Snapshot().TimerRemaining
	if before != time.Second {
		t.Fatalf("expected 1s remaining at pause, got %v", before)
	}
	if h.session.TimerActive() {
		t.Fatalf("timer must pause on empty buffer")
	}

	h.clock.Advance(30 * time.Second)
	h.typeString("c")
	h.session.Tick(h.clock.Now())
	snap := h.session.Snapshot()
	if snap.TimerRemaining != before || snap.Outcome != OutcomeNone {
		t.Fatalf("expected %v remaining after resume, got %+v", before, snap)
	}
}

func TestSessionLevelCompletion(t *testing.T) {
	settings := baseSettings()
	settings.RestartLevelOnError = true
	settings.TypeRestartLevelOnErrorOnLevelCompletion = true
	h := newHarness(t, settings, "a")
	for i := 0; i < MaxProgress; i++ {
		h.typeString("a")
	}
	snap := h.session.Snapshot()
	if snap.Progress != 0 || snap.Level != 2 {
		t.Fatalf("expected level 2 with progress 0, got %+v", snap)
	}
	got := h.session.Settings()
	if got.RestartLevelOnError || got.Speed != 2 {
		t.Fatalf("first completion should be lenient at the same speed: %+v", got)
	}
	for i := 0; i < MaxProgress; i++ {
		h.typeString("a")
	}
	got = h.session.Settings()
	if !got.RestartLevelOnError || got.Speed != 2.1 {
		t.Fatalf("second completion should raise speed: %+v", got)
	}
	if len(h.observer.levels) != 2 || h.observer.levels[1] != 3 {
		t.Fatalf("unexpected level events %v", h.observer.levels)
	}
}

func TestSessionShouldSavePolicy(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*model.Settings)
		want   bool
	}{
		{name: "full word", mutate: func(*model.Settings) {}, want: true},
		{name: "saving disabled", mutate: func(s *model.Settings) { s.SaveStats = false }, want: false},
		{name: "random letters", mutate: func(s *model.Settings) { s.JoinRandomLetters = true }, want: false},
		{name: "centered letters", mutate: func(s *model.Settings) {
			s.DisplayMode = model.DisplayLetterByLetter
			s.LetterStyle.Direction = model.DirectionCenter
		}, want: false},
		{name: "flowing letters", mutate: func(s *model.Settings) {
			s.DisplayMode = model.DisplayLetterByLetter
			s.LetterStyle.Direction = model.DirectionFlow
		}, want: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			settings := baseSettings()
			tc.mutate(&settings)
			h := newHarness(t, settings, "cat")
			if got := len(h.recorder.updates) > 0; got != tc.want {
				t.Fatalf("expected recording=%v, got %v", tc.want, got)
			}
		})
	}
}

func TestSessionNoFeedbackSound(t *testing.T) {
	settings := baseSettings()
	settings.NoFeedbackSound = true
	h := newHarness(t, settings, "cat")
	h.typeString("cat")
	h.typeString("x")
	if h.feedback.successes != 0 || len(h.feedback.failures) != 0 {
		t.Fatalf("expected no success/failure cues")
	}
}

func TestSessionSayCurrentWord(t *testing.T) {
	settings := baseSettings()
	settings.Voice.SayCurrentWord = true
	h := newHarness(t, settings, "cat")
	h.typeString("cat")
	if len(h.feedback.words) != 2 || h.feedback.words[1] != "cat" {
		t.Fatalf("expected two word announcements, got %v", h.feedback.words)
	}
}

func TestSessionReset(t *testing.T) {
	h := newHarness(t, baseSettings(), "cat")
	h.typeString("cat")
	h.typeString("c")
	h.session.Reset(wordsOf("dog"))
	snap := h.session.Snapshot()
	if snap.CurrentWord.Text != "dog" || snap.Progress != 0 || snap.Level != 1 || snap.Outcome != OutcomeNone {
		t.Fatalf("unexpected snapshot after reset: %+v", snap)
	}
	if snap.WordIndex != 1 || snap.TimerRunning || snap.Typed != "" {
		t.Fatalf("expected clean first word: %+v", snap)
	}
}

func TestSessionFranticRunsOnTransition(t *testing.T) {
	settings := baseSettings()
	settings.FranticMode = true
	settings.Frantic = model.FranticFlags{Timer: true}
	h := newHarness(t, settings, "cat")
	seen := map[bool]bool{}
	for i := 0; i < 50; i++ {
		h.typeString("cat")
		seen[h.session.Settings().HideTimer] = true
	}
	if len(seen) != 2 {
		t.Fatalf("expected frantic mode to toggle the timer both ways, got %v", seen)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	h := newHarness(t, baseSettings(), "cat")
	snap := h.session.Snapshot()
	snap.CurrentWord.Text = "dog"
	if h.session.Snapshot().CurrentWord.Text != "cat" {
		t.Fatalf("snapshot must not alias session state")
	}
}

func TestTargetWithoutWordPanics(t *testing.T) {
	s := &Session{}
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrInvariant) {
			t.Fatalf("expected invariant panic, got %v", r)
		}
	}()
	s.target()
}
