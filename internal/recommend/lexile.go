package recommend

import (
	"math"
	"sort"
)

// LexileConfig tunes the progress calculator. The values are authoritative: a
// zero window offset means exactly that, so a deployment can pin the range to
// the measure itself. Config validation rejects unusable values before they
// reach this package.
type LexileConfig struct {
	MinReviews int // qualifying reviews needed before the measure moves
	WindowLow  int // subtracted from the measure for the range minimum
	WindowHigh int // added to the measure for the range maximum
}

// comprehensionPivot is the neutral comprehension score: understanding at
// this level neither raises nor lowers the estimate.
const comprehensionPivot = 4

// comprehensionStep is the lexile points added per comprehension level above
// the pivot (or subtracted per level below).
const comprehensionStep = 50

// CurrentLexileMeasure derives a student's present reading-level estimate
// from review history.
//
// Reviews without a comprehension score are ignored. With fewer than
// MinReviews qualifying reviews the initial measure is returned unchanged.
// Otherwise the newest MinReviews reviews each contribute
//
//	bookLexile + 50*(comprehension-4)
//
// and the mean of those contributions is the new estimate. A hard book that
// was well understood pulls the estimate up; poor comprehension pulls it
// down. Note the contributions are absolute book-derived values, not deltas
// from the initial measure: recent performance resets the estimate.
func CurrentLexileMeasure(cfg LexileConfig, initial float64, reviews []Review) float64 {
	qualifying := make([]Review, 0, len(reviews))
	for _, r := range reviews {
		if r.Comprehension >= 1 && r.Comprehension <= 5 {
			qualifying = append(qualifying, r)
		}
	}
	if cfg.MinReviews < 1 || len(qualifying) < cfg.MinReviews {
		return initial
	}

	sort.SliceStable(qualifying, func(i, j int) bool {
		return qualifying[i].DateCreated.After(qualifying[j].DateCreated)
	})

	sum := 0.0
	for _, r := range qualifying[:cfg.MinReviews] {
		sum += float64(r.BookLexileMeasure + comprehensionStep*(r.Comprehension-comprehensionPivot))
	}
	return sum / float64(cfg.MinReviews)
}

// RangeFor derives the recommendation window around a measure. The window is
// asymmetric on purpose: students should be offered books moderately above
// their level, so it reaches further down than up.
func RangeFor(cfg LexileConfig, measure float64) LexileRange {
	m := int(math.Round(measure))
	return LexileRange{Min: m - cfg.WindowLow, Max: m + cfg.WindowHigh}
}
