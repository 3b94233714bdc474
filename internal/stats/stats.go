// Package stats contains word statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/typedojo/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Summary aggregates counters across saved words.
type Summary struct {
	Words    int
	Starred  int
	Seen     int
	Correct  int
	Wrong    int
	Accuracy float64
}

// Summarize totals the counters of recs.
func Summarize(recs []model.SavedWordStats) Summary {
	var s Summary
	for _, rec := range recs {
		s.Words++
		if rec.Stats.Starred {
			s.Starred++
		}
		s.Seen += rec.Stats.Seen
		s.Correct += rec.Stats.CorrectlyTyped
		s.Wrong += rec.Stats.WronglyTyped
	}
	s.Accuracy = model.WordStats{CorrectlyTyped: s.Correct, WronglyTyped: s.Wrong}.Accuracy()
	return s
}

// Filter applies the starred and query filters of cfg. Query matches a
// case-insensitive substring of the word or one of its journal tags.
func Filter(recs []model.SavedWordStats, cfg model.StatsConfig) []model.SavedWordStats {
	query := strings.ToLower(strings.TrimSpace(cfg.Query))
	out := make([]model.SavedWordStats, 0, len(recs))
	for _, rec := range recs {
		if cfg.StarredOnly && !rec.Stats.Starred {
			continue
		}
		if query != "" && !matches(rec, query) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func matches(rec model.SavedWordStats, query string) bool {
	if strings.Contains(strings.ToLower(rec.Word.Text), query) {
		return true
	}
	for _, tag := range rec.Journal.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// AccuracyHistogram counts attempted words per accuracy bucket, lowest
// accuracy first. Words never typed are skipped.
func AccuracyHistogram(recs []model.SavedWordStats, buckets int) []float64 {
	if buckets <= 0 {
		return nil
	}
	out := make([]float64, buckets)
	for _, rec := range recs {
		if rec.Stats.CorrectlyTyped+rec.Stats.WronglyTyped == 0 {
			continue
		}
		idx := int(rec.Stats.Accuracy() * float64(buckets))
		if idx >= buckets {
			idx = buckets - 1
		}
		out[idx]++
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints the summary block.
func RenderSummary(w io.Writer, s Summary) error {
	if s.Words == 0 {
		_, err := fmt.Fprintln(w, "No saved words found.")
		return err
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Words: %d (%d starred)", s.Words, s.Starred),
		fmt.Sprintf("Seen: %d", s.Seen),
		fmt.Sprintf("Typed: %d correct, %d wrong", s.Correct, s.Wrong),
		fmt.Sprintf("Accuracy: %.2f%%", s.Accuracy*100),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderWordTable prints one row per saved word.
func RenderWordTable(w io.Writer, title string, recs []model.SavedWordStats) error {
	if len(recs) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	lines := formatTable(WordTableHeaders, WordTableRows(recs), map[int]bool{2: true, 3: true, 4: true, 5: true})
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// WordTableHeaders names the word table columns.
var WordTableHeaders = []string{"Word", "★", "Seen", "Correct", "Wrong", "Accuracy", "Last Seen"}

// WordTableRows formats recs as word table cells.
func WordTableRows(recs []model.SavedWordStats) [][]string {
	rows := make([][]string, 0, len(recs))
	for _, rec := range recs {
		star := ""
		if rec.Stats.Starred {
			star = "★"
		}
		lastSeen := "-"
		if !rec.Stats.LastSeen.IsZero() {
			lastSeen = rec.Stats.LastSeen.Local().Format("2006-01-02 15:04")
		}
		rows = append(rows, []string{
			rec.Word.Text,
			star,
			fmt.Sprintf("%d", rec.Stats.Seen),
			fmt.Sprintf("%d", rec.Stats.CorrectlyTyped),
			fmt.Sprintf("%d", rec.Stats.WronglyTyped),
			fmt.Sprintf("%.1f%%", rec.Stats.Accuracy()*100),
			lastSeen,
		})
	}
	return rows
}
