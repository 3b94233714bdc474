package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typedojo/internal/model"
	"github.com/verte-zerg/typedojo/internal/style"
)

const (
	wrongSpaceRune = '•'
	hiddenRune     = '·'
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

func newStyledRune(st lipgloss.Style, r rune) styledRune {
	rendered := st.Render(string(r))
	return styledRune{
		s:       rendered,
		width:   lipgloss.Width(rendered),
		isSpace: r == ' ',
	}
}

func letterAt(letters []style.Letter, i int) lipgloss.Style {
	if i < len(letters) {
		return letters[i].Style()
	}
	return style.Plain().Style()
}

// typedRune styles an already typed position.
func typedRune(target, typed rune, hide bool) styledRune {
	switch {
	case typed != target && target == ' ':
		return newStyledRune(incorrectStyle, wrongSpaceRune)
	case typed != target:
		return newStyledRune(incorrectStyle, target)
	case hide:
		return newStyledRune(pendingStyle, hiddenRune)
	default:
		return newStyledRune(correctStyle, target)
	}
}

// buildStyledRunes lays out the whole word with the cursor on the next
// untyped rune.
func buildStyledRunes(target, typed []rune, letters []style.Letter, hideTyped bool) []styledRune {
	out := make([]styledRune, 0, len(target))
	for i, r := range target {
		if i < len(typed) {
			out = append(out, typedRune(r, typed[i], hideTyped))
			continue
		}
		st := letterAt(letters, i)
		if i == len(typed) {
			st = st.Underline(true)
		}
		out = append(out, newStyledRune(st, r))
	}
	return out
}

// buildLetterRunes lays out letter-by-letter display. Center shows only the
// next letter; flow shows typed letters followed by the next one.
func buildLetterRunes(target, typed []rune, letters []style.Letter, dir model.LetterDirection, hideTyped bool) []styledRune {
	next := len(typed)
	if dir == model.DirectionCenter {
		if next >= len(target) {
			if next == 0 {
				return nil
			}
			last := next - 1
			return []styledRune{typedRune(target[last], typed[last], hideTyped)}
		}
		if next > 0 && typed[next-1] != target[next-1] {
			return []styledRune{typedRune(target[next-1], typed[next-1], hideTyped)}
		}
		return []styledRune{newStyledRune(letterAt(letters, next), target[next])}
	}

	out := make([]styledRune, 0, next+1)
	for i := 0; i < next && i < len(target); i++ {
		out = append(out, typedRune(target[i], typed[i], hideTyped))
	}
	if next < len(target) {
		out = append(out, newStyledRune(letterAt(letters, next).Underline(true), target[next]))
	}
	return out
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderStyledRunes(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
