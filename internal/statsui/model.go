// Package statsui provides the Bubble Tea stats interface.
package statsui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typedojo/internal/model"
	"github.com/verte-zerg/typedojo/internal/stats"
	"github.com/verte-zerg/typedojo/internal/store"
)

const (
	tabOverview = iota
	tabWords
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	modalStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
)

// Model implements the Bubble Tea stats UI.
type Model struct {
	store store.WordStatsStore
	cfg   model.StatsConfig

	report stats.Report
	errMsg string

	tabs      []string
	activeTab int
	overview  viewport.Model
	words     table.Model

	width  int
	height int

	filterMode  bool
	filterInput textinput.Model

	confirmDelete string
}

// NewModel constructs a stats UI model.
func NewModel(st store.WordStatsStore, cfg model.StatsConfig) *Model {
	m := &Model{
		store:    st,
		cfg:      cfg,
		tabs:     []string{"Overview", "Words"},
		overview: viewport.New(0, 0),
		words:    buildWordTable(0, 1),
	}
	m.filterInput = textinput.New()
	m.filterInput.Prompt = "Filter: "
	m.filterInput.Placeholder = "word or tag"
	m.filterInput.Cursor.SetMode(cursor.CursorBlink)
	m.refreshReport()
	return m
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
		m.updateLayout()
		m.renderOverview()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.confirmDelete != "" {
			return m.updateConfirm(msg)
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "left", "h", "right", "l", "tab":
			m.toggleTab()
			return m, tea.ClearScreen
		case "/":
			m.filterMode = true
			m.filterInput.SetValue(m.cfg.Query)
			return m, m.filterInput.Focus()
		case "s":
			m.cfg.StarredOnly = !m.cfg.StarredOnly
			m.refreshReport()
			return m, nil
		case "*", " ":
			if m.activeTab == tabWords {
				m.toggleStar()
			}
			return m, nil
		case "d", "x":
			if m.activeTab == tabWords {
				if rec, ok := m.selected(); ok {
					m.confirmDelete = rec.Word.Text
				}
			}
			return m, nil
		case "g", "home":
			if m.activeTab == tabWords {
				m.words.GotoTop()
			} else {
				m.overview.GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabWords {
				m.words.GotoBottom()
			} else {
				m.overview.GotoBottom()
			}
			return m, nil
		default:
			var cmd tea.Cmd
			if m.activeTab == tabWords {
				m.words, cmd = m.words.Update(msg)
			} else {
				m.overview, cmd = m.overview.Update(msg)
			}
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.confirmDelete != "" {
		return fitLines(m.renderConfirm(), m.width, m.height)
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if m.errMsg != "" || m.filterMode {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.overview.Width = m.width
	m.overview.Height = bodyHeight
	m.words.SetWidth(m.width)
	m.words.SetHeight(maxInt(1, bodyHeight-1))
	m.words.SetColumns(wordColumns(m.width))
	m.filterInput.Width = maxInt(10, m.width-lipgloss.Width(m.filterInput.Prompt)-2)
}

func (m *Model) toggleTab() {
	m.activeTab = (m.activeTab + 1) % len(m.tabs)
	if m.activeTab == tabWords {
		m.words.Focus()
	} else {
		m.words.Blur()
	}
}

func (m *Model) refreshReport() {
	report, err := stats.BuildReport(context.Background(), m.store, m.cfg)
	if err != nil {
		m.errMsg = err.Error()
		m.overview.SetContent("Failed to load stats.")
		return
	}
	m.errMsg = ""
	m.report = report
	m.words.SetRows(wordRows(report.Words))
	if m.words.Cursor() >= len(report.Words) {
		m.words.SetCursor(maxInt(0, len(report.Words)-1))
	}
	m.renderOverview()
}

func (m *Model) renderOverview() {
	if m.errMsg != "" {
		return
	}
	m.overview.SetContent(renderOverview(m.report, m.width))
}

func (m *Model) selected() (model.SavedWordStats, bool) {
	idx := m.words.Cursor()
	if idx < 0 || idx >= len(m.report.Words) {
		return model.SavedWordStats{}, false
	}
	return m.report.Words[idx], true
}

func (m *Model) toggleStar() {
	rec, ok := m.selected()
	if !ok {
		return
	}
	rec.Stats.Starred = !rec.Stats.Starred
	if err := m.store.Put(context.Background(), rec); err != nil {
		m.errMsg = err.Error()
		return
	}
	m.refreshReport()
}

func (m *Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	word := m.confirmDelete
	m.confirmDelete = ""
	if msg.String() != "y" {
		return m, nil
	}
	if err := m.store.Delete(context.Background(), word); err != nil {
		m.errMsg = err.Error()
		return m, nil
	}
	m.refreshReport()
	return m, nil
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		m.filterInput.Blur()
		return m, nil
	case tea.KeyEnter:
		m.filterMode = false
		m.filterInput.Blur()
		m.cfg.Query = strings.TrimSpace(m.filterInput.Value())
		m.refreshReport()
		return m, nil
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	return padLines(m.renderTabs(), m.width) + "\n" + padLines(m.renderFilterSummary(), m.width)
}

func (m *Model) renderFilterSummary() string {
	query := m.cfg.Query
	if query == "" {
		query = "any"
	}
	starred := "all"
	if m.cfg.StarredOnly {
		starred = "starred"
	}
	summary := fmt.Sprintf("Filter: query=%s  words=%s  shown=%d", query, starred, len(m.report.Words))
	return headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderHelp() string {
	help := "Nav: tab  Scroll: up/down  Filter: /  Starred only: s  Quit: q"
	if m.activeTab == tabWords {
		help = "Nav: tab  Star: space  Delete: d  Filter: /  Starred only: s  Quit: q"
	}
	return headerStyle.Render(truncateLine(help, m.width))
}

func (m *Model) renderFooter() string {
	lines := []string{}
	if m.filterMode {
		lines = append(lines, m.filterInput.View())
	}
	lines = append(lines, m.renderHelp())
	if m.errMsg != "" && !m.filterMode {
		lines = append(lines, errorStyle.Render(m.errMsg))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderBody() string {
	if m.activeTab == tabWords {
		if len(m.report.Words) == 0 {
			return "No saved words found."
		}
		return tableMutedStyle.Render(m.words.View())
	}
	return m.overview.View()
}

func (m *Model) renderConfirm() string {
	body := []string{
		cardValueStyle.Render("Delete saved word"),
		fmt.Sprintf("Remove stats for %q?", m.confirmDelete),
		headerStyle.Render("y to confirm / any other key to cancel"),
	}
	box := modalStyle.Width(modalWidth(m.width)).Render(strings.Join(body, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func renderOverview(r stats.Report, width int) string {
	if r.Summary.Words == 0 {
		return "No saved words found."
	}
	s := r.Summary
	cards := []string{
		metricCard("Words", fmt.Sprintf("%d", s.Words)),
		metricCard("Starred", fmt.Sprintf("%d", s.Starred)),
		metricCard("Seen", fmt.Sprintf("%d", s.Seen)),
		metricCard("Accuracy", fmt.Sprintf("%.1f%%", s.Accuracy*100)),
	}
	var summary string
	if width < 80 {
		summary = strings.Join(cards, "\n")
	} else {
		summary = lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	}
	sections := []string{summary}
	if s.Correct+s.Wrong > 0 {
		sections = append(sections, headerStyle.Render("Accuracy spread (0%..100%)")+"\n["+stats.Sparkline(r.Histogram)+"]")
	}
	if len(r.Weakest) > 0 {
		lines := []string{headerStyle.Render("Weakest words")}
		for _, rec := range r.Weakest {
			lines = append(lines, fmt.Sprintf("%-20s %5.1f%%  (%d wrong)", truncateLine(rec.Word.Text, 20), rec.Stats.Accuracy()*100, rec.Stats.WronglyTyped))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}
	return strings.Join(sections, "\n\n")
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func wordColumns(width int) []table.Column {
	cols := []table.Column{
		{Title: "Word", Width: 20},
		{Title: "★", Width: 2},
		{Title: "Seen", Width: 6},
		{Title: "Correct", Width: 8},
		{Title: "Wrong", Width: 6},
		{Title: "Accuracy", Width: 9},
		{Title: "Last Seen", Width: 16},
	}
	fixed := 0
	for _, c := range cols[1:] {
		fixed += c.Width + 1
	}
	if width-fixed > cols[0].Width {
		cols[0].Width = minInt(width-fixed, 40)
	}
	return cols
}

func wordRows(recs []model.SavedWordStats) []table.Row {
	cells := stats.WordTableRows(recs)
	rows := make([]table.Row, len(cells))
	for i, row := range cells {
		rows[i] = table.Row(row)
	}
	return rows
}

func buildWordTable(width, height int) table.Model {
	t := table.New(
		table.WithColumns(wordColumns(width)),
		table.WithHeight(maxInt(1, height-1)),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	t.SetStyles(styles)
	return t
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func modalWidth(width int) int {
	return maxInt(40, minInt(width-4, 80))
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
