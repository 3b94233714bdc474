package stats

import (
	"context"
	"fmt"
	"io"

	"github.com/verte-zerg/typedojo/internal/model"
	"github.com/verte-zerg/typedojo/internal/store"
)

const histogramBuckets = 10

// Report contains precomputed data for stats rendering.
type Report struct {
	Words     []model.SavedWordStats
	Summary   Summary
	Weakest   []model.SavedWordStats
	MostSeen  []model.SavedWordStats
	Histogram []float64
}

// BuildReport loads saved words and prepares them for rendering.
func BuildReport(ctx context.Context, st store.WordStatsStore, cfg model.StatsConfig) (Report, error) {
	recs, err := st.List(ctx)
	if err != nil {
		return Report{}, err
	}
	recs = Filter(recs, cfg)
	top := cfg.Top
	if top <= 0 {
		top = 10
	}
	return Report{
		Words:     recs,
		Summary:   Summarize(recs),
		Weakest:   WeakestWords(recs, top),
		MostSeen:  MostSeen(recs, top),
		Histogram: AccuracyHistogram(recs, histogramBuckets),
	}, nil
}

// RenderReport prints the plain-text report.
func RenderReport(w io.Writer, r Report) error {
	if err := RenderSummary(w, r.Summary); err != nil {
		return err
	}
	if r.Summary.Words == 0 {
		return nil
	}
	if r.Summary.Correct+r.Summary.Wrong > 0 {
		if _, err := fmt.Fprintf(w, "Accuracy spread (0%%..100%%): [%s]\n\n", Sparkline(r.Histogram)); err != nil {
			return err
		}
	}
	if err := RenderWordTable(w, "Weakest Words", r.Weakest); err != nil {
		return err
	}
	return RenderWordTable(w, "Most Seen", r.MostSeen)
}
