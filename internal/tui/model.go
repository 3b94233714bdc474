// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/typedojo/internal/game"
	"github.com/verte-zerg/typedojo/internal/generator"
	"github.com/verte-zerg/typedojo/internal/model"
	"github.com/verte-zerg/typedojo/internal/style"
)

const (
	frameInterval = 50 * time.Millisecond
	flashDuration = 350 * time.Millisecond
	barWidthRatio = 0.5
)

var (
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#06D6A0")).Bold(true)
	cueStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
)

type frameMsg time.Time

type flashDoneMsg int

// Config wires a typing model to its collaborators.
type Config struct {
	Settings  model.Settings
	Words     []model.Word
	Generator *generator.Generator
	Recorder  game.StatsRecorder
	Observer  game.Observer
	Logger    *slog.Logger
}

// Model implements the Bubble Tea typing UI. It is also the session's
// feedback sink.
type Model struct {
	session *game.Session
	words   []model.Word
	gen     *generator.Generator

	width  int
	height int

	wordIndex int
	letters   []style.Letter
	shift     int

	ticking bool

	flash        game.Outcome
	flashSeq     int
	flashPending bool
	cueLetter    rune
	spokenWord   string

	levelBar progress.Model
	timerBar progress.Model
}

// NewModel constructs a typing TUI model and starts its session.
func NewModel(cfg Config) *Model {
	gen := cfg.Generator
	if gen == nil {
		gen = generator.New()
	}
	m := &Model{
		words:    cfg.Words,
		gen:      gen,
		levelBar: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		timerBar: progress.New(progress.WithSolidFill("#C89A3A"), progress.WithoutPercentage()),
	}
	opts := []game.Option{game.WithGenerator(gen), game.WithFeedback(m)}
	if cfg.Recorder != nil {
		opts = append(opts, game.WithRecorder(cfg.Recorder))
	}
	if cfg.Observer != nil {
		opts = append(opts, game.WithObserver(cfg.Observer))
	}
	if cfg.Logger != nil {
		opts = append(opts, game.WithLogger(cfg.Logger))
	}
	m.session = game.New(cfg.Settings, cfg.Words, opts...)
	m.syncWord()
	return m
}

// Session exposes the running session.
func (m *Model) Session() *game.Session {
	return m.session
}

// Letter implements game.Feedback.
func (m *Model) Letter(r rune) {
	m.cueLetter = r
}

// Word implements game.Feedback.
func (m *Model) Word(word model.Word) {
	m.spokenWord = word.Text
}

// Success implements game.Feedback.
func (m *Model) Success() {
	m.startFlash(game.OutcomeSuccess)
}

// Failure implements game.Feedback.
func (m *Model) Failure(outcome game.Outcome) {
	m.startFlash(outcome)
}

func (m *Model) startFlash(outcome game.Outcome) {
	m.flash = outcome
	m.flashSeq++
	m.flashPending = true
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		barWidth := int(float64(m.width) * barWidthRatio)
		m.levelBar.Width = barWidth
		m.timerBar.Width = barWidth
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyCtrlR:
			m.session.Reset(m.words)
		case tea.KeyBackspace, tea.KeyDelete:
			// Terminals report no key release, so each repeat is a full press.
			m.session.KeyDown(game.KeyBackspace)
			m.session.KeyUp(game.KeyBackspace)
		case tea.KeySpace:
			m.session.KeyPress(' ')
		case tea.KeyRunes:
			for _, r := range msg.Runes {
				m.session.KeyPress(r)
			}
		default:
			return m, nil
		}
		return m, m.afterInput()
	case frameMsg:
		more := m.session.Tick(time.Time(msg))
		cmds := []tea.Cmd{}
		m.syncWord()
		if more && m.session.TimerActive() {
			cmds = append(cmds, frame())
		} else {
			m.ticking = false
		}
		cmds = append(cmds, m.takeFlash())
		return m, tea.Batch(cmds...)
	case flashDoneMsg:
		if int(msg) == m.flashSeq {
			m.flash = game.OutcomeNone
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) afterInput() tea.Cmd {
	m.syncWord()
	cmds := []tea.Cmd{m.takeFlash()}
	if m.session.TimerActive() && !m.ticking {
		m.ticking = true
		cmds = append(cmds, frame())
	}
	return tea.Batch(cmds...)
}

func (m *Model) takeFlash() tea.Cmd {
	if !m.flashPending {
		return nil
	}
	m.flashPending = false
	seq := m.flashSeq
	return tea.Tick(flashDuration, func(time.Time) tea.Msg { return flashDoneMsg(seq) })
}

func frame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// syncWord draws the per-word styles once each time a new word appears.
func (m *Model) syncWord() {
	snap := m.session.Snapshot()
	if snap.WordIndex == m.wordIndex || snap.CurrentWord == nil {
		return
	}
	settings := m.session.Settings()
	text := snap.CurrentWord.Text
	m.wordIndex = snap.WordIndex
	m.letters = style.Word(text, settings, m.gen)
	m.shift = style.Shift(settings.RandomlyMoveWordStarting, shiftRoom(m.width, runewidth.StringWidth(text)), m.gen)
}

// shiftRoom bounds the offset so a shifted word stays on screen.
func shiftRoom(width, wordWidth int) int {
	room := (width - wordWidth) / 4
	if room < 0 {
		return 0
	}
	return room
}

// View implements tea.Model.
func (m *Model) View() string {
	snap := m.session.Snapshot()
	if snap.CurrentWord == nil {
		return ""
	}
	settings := m.session.Settings()
	word := m.renderWord(snap, settings)
	if m.width == 0 || m.height == 0 {
		return word
	}

	lines := []string{}
	if !settings.HideProgressBar {
		lines = append(lines, m.levelBar.ViewAs(float64(snap.Progress)/float64(game.MaxProgress)), "")
	}
	lines = append(lines, applyShift(word, m.shift))
	if !settings.HideTimer {
		lines = append(lines, "", m.timerBar.ViewAs(timerFraction(snap)))
	}
	content := lipgloss.JoinVertical(lipgloss.Center, lines...)

	footer := m.renderFooter(snap, settings)
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderWord(snap game.Snapshot, settings model.Settings) string {
	target := []rune(snap.CurrentWord.Text)
	typed := []rune(snap.Typed)
	var runes []styledRune
	if settings.DisplayMode == model.DisplayFullWord {
		runes = buildStyledRunes(target, typed, m.letters, settings.HideTypedLetter)
	} else {
		runes = buildLetterRunes(target, typed, m.letters, settings.LetterStyle.Direction, settings.HideTypedLetter)
	}
	width := int(float64(m.width) * 0.70)
	if m.width == 0 {
		width = 0
	} else if width < 1 {
		width = 1
	}
	return wrapStyledRunes(runes, width)
}

func applyShift(s string, shift int) string {
	switch {
	case shift > 0:
		return strings.Repeat(" ", shift*2) + s
	case shift < 0:
		return s + strings.Repeat(" ", -shift*2)
	default:
		return s
	}
}

func timerFraction(snap game.Snapshot) float64 {
	if snap.TimerMax <= 0 {
		return 1
	}
	f := float64(snap.TimerRemaining) / float64(snap.TimerMax)
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}

func (m *Model) renderFooter(snap game.Snapshot, settings model.Settings) string {
	segments := []string{
		fmt.Sprintf("Level %d", snap.Level),
		fmt.Sprintf("Progress %d%%", snap.Progress),
		fmt.Sprintf("Speed %.2f", settings.Speed),
		fmt.Sprintf("Word %d", snap.WordIndex),
	}
	if settings.FranticMode {
		segments = append(segments, "Frantic")
	}
	footer := footerStyle.Render(strings.Join(segments, "  "))

	var extras []string
	switch m.flash {
	case game.OutcomeSuccess:
		extras = append(extras, successStyle.Render("✓"))
	case game.OutcomeError:
		extras = append(extras, incorrectStyle.Render("✗ wrong"))
	case game.OutcomeTimeout:
		extras = append(extras, incorrectStyle.Render("✗ time"))
	}
	if settings.Voice.SayCurrentWord && m.spokenWord != "" {
		extras = append(extras, cueStyle.Render("♪ "+m.spokenWord))
	}
	if settings.Voice.FocusOnLetter && m.cueLetter != 0 {
		extras = append(extras, cueStyle.Render("next "+string(m.cueLetter)))
	}
	if len(extras) == 0 {
		return footer
	}
	return footer + "  " + strings.Join(extras, "  ")
}
