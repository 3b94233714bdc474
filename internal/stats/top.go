package stats

import (
	"sort"

	"github.com/verte-zerg/typedojo/internal/model"
)

// MostSeen returns the top n words by times seen.
func MostSeen(recs []model.SavedWordStats, n int) []model.SavedWordStats {
	if n <= 0 || len(recs) == 0 {
		return nil
	}
	items := make([]model.SavedWordStats, len(recs))
	copy(items, recs)
	sort.Slice(items, func(i, j int) bool {
		if items[i].Stats.Seen == items[j].Stats.Seen {
			return items[i].Word.Text < items[j].Word.Text
		}
		return items[i].Stats.Seen > items[j].Stats.Seen
	})
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}
