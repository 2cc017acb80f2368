package brew

import (
	"strings"
)

// Pour is the domain view of one water addition. Handlers convert their
// storage shapes into this before calling into the model.
type Pour struct {
	Time        string
	WaterAmount int
	Temperature *float64
	Notes       string
}

// TimelinePoint is a pour annotated with its cumulative view.
type TimelinePoint struct {
	Pour
	CumulativeWater int
	Bloom           bool
	// Percent is CumulativeWater over the timeline's max water, in 0..1.
	// Zero when the denominator is zero.
	Percent float64
}

// IsBloom reports whether the pour at index is the bloom: the first pour
// always is, and so is any pour whose notes mention "bloom" in any case.
func IsBloom(index int, notes string) bool {
	if index == 0 {
		return true
	}
	return strings.Contains(strings.ToLower(notes), "bloom")
}

// BuildTimeline walks the pour list in order and computes the cumulative
// water, bloom classification, and percentage of max water for each pour.
// The denominator is targetWater when positive, otherwise the final
// cumulative sum. The function is pure; it never mutates its input and an
// empty list yields an empty timeline.
func BuildTimeline(pours []Pour, targetWater int) []TimelinePoint {
	if len(pours) == 0 {
		return nil
	}

	points := make([]TimelinePoint, len(pours))
	cumulative := 0
	for i, p := range pours {
		cumulative += p.WaterAmount
		points[i] = TimelinePoint{
			Pour:            p,
			CumulativeWater: cumulative,
			Bloom:           IsBloom(i, p.Notes),
		}
	}

	maxWater := targetWater
	if maxWater <= 0 {
		maxWater = cumulative
	}
	if maxWater > 0 {
		for i := range points {
			points[i].Percent = float64(points[i].CumulativeWater) / float64(maxWater)
		}
	}

	return points
}
