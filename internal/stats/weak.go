package stats

import (
	"sort"

	"github.com/verte-zerg/typedojo/internal/model"
)

// WeakestWords returns up to top attempted words with the lowest accuracy.
// Ties go to the word mistyped more often, then alphabetically. A top of 0
// or less returns every attempted word.
func WeakestWords(recs []model.SavedWordStats, top int) []model.SavedWordStats {
	candidates := make([]model.SavedWordStats, 0, len(recs))
	for _, rec := range recs {
		if rec.Stats.CorrectlyTyped+rec.Stats.WronglyTyped == 0 {
			continue
		}
		candidates = append(candidates, rec)
	}
	sort.Slice(candidates, func(i, j int) bool {
		ai := candidates[i].Stats.Accuracy()
		aj := candidates[j].Stats.Accuracy()
		if ai != aj {
			return ai < aj
		}
		if candidates[i].Stats.WronglyTyped != candidates[j].Stats.WronglyTyped {
			return candidates[i].Stats.WronglyTyped > candidates[j].Stats.WronglyTyped
		}
		return candidates[i].Word.Text < candidates[j].Word.Text
	})
	if top > 0 && top < len(candidates) {
		candidates = candidates[:top]
	}
	return candidates
}
