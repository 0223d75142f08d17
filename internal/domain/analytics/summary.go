// Package analytics summarises the backend's performance series for display.
// It never recomputes what the backend reports; it only derives descriptive
// statistics over the series it returns.
package analytics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/GriffinCanCode/outreach-console/internal/shared/types"
)

// NicheShare is a niche's part of the prospect distribution
type NicheShare struct {
	Niche string  `json:"niche"`
	Count int     `json:"count"`
	Share float64 `json:"share"` // 0..1
}

// Summary describes the daily message series and niche distribution
type Summary struct {
	Days           int                 `json:"days"`
	TotalMessages  int                 `json:"total_messages"`
	MeanPerDay     float64             `json:"mean_per_day"`
	StdDevPerDay   float64             `json:"stddev_per_day"`
	MedianPerDay   float64             `json:"median_per_day"`
	Peak           types.DailyMessages `json:"peak"`
	Trend          float64             `json:"trend"` // messages/day change per day
	Niches         []NicheShare        `json:"niches"`
	TotalProspects int                 `json:"total_prospects"`
}

// Summarize computes a Summary. Empty input yields a zero Summary with a
// non-nil Niches slice.
func Summarize(perf types.Performance) Summary {
	s := Summary{Niches: []NicheShare{}}

	n := len(perf.DailyMessages)
	if n > 0 {
		xs := make([]float64, n)
		ys := make([]float64, n)
		for i, d := range perf.DailyMessages {
			xs[i] = float64(i)
			ys[i] = float64(d.Messages)
			if i == 0 || d.Messages > s.Peak.Messages {
				s.Peak = d
			}
		}

		s.Days = n
		s.TotalMessages = int(floats.Sum(ys))
		s.MeanPerDay = stat.Mean(ys, nil)

		sorted := append([]float64(nil), ys...)
		sort.Float64s(sorted)
		s.MedianPerDay = stat.Quantile(0.5, stat.Empirical, sorted, nil)

		if n > 1 {
			s.StdDevPerDay = stat.StdDev(ys, nil)
			_, s.Trend = stat.LinearRegression(xs, ys, nil, false)
		}
	}

	for _, nc := range perf.NicheDistribution {
		s.TotalProspects += nc.Count
	}
	for _, nc := range perf.NicheDistribution {
		share := 0.0
		if s.TotalProspects > 0 {
			share = float64(nc.Count) / float64(s.TotalProspects)
		}
		s.Niches = append(s.Niches, NicheShare{Niche: nc.Niche, Count: nc.Count, Share: share})
	}
	sort.SliceStable(s.Niches, func(i, j int) bool {
		if s.Niches[i].Count != s.Niches[j].Count {
			return s.Niches[i].Count > s.Niches[j].Count
		}
		return s.Niches[i].Niche < s.Niches[j].Niche
	})

	s.MeanPerDay = finite(s.MeanPerDay)
	s.StdDevPerDay = finite(s.StdDevPerDay)
	s.Trend = finite(s.Trend)
	return s
}

// TopNiche returns the largest niche, if any.
func (s Summary) TopNiche() (NicheShare, bool) {
	if len(s.Niches) == 0 {
		return NicheShare{}, false
	}
	return s.Niches[0], true
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
