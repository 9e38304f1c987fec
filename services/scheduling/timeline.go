package scheduling

import (
	"chairside/models"
)

// BuildTimeline lays out an ordered basket of services as offset segments.
// After every chemical service a fixed processing gap is inserted before the
// next segment; the gap is not itself a segment and is excluded from
// SumActiveDuration. TotalSpanMinutes covers the full calendar block the
// resource must be held for, trailing gap included.
//
// classify may be nil, in which case the keyword fallback classifier is used.
func BuildTimeline(services []models.Service, resolve models.EffectiveResolver, classify Classifier) models.Timeline {
	if classify == nil {
		classify = KeywordClassifier{}
	}

	var tl models.Timeline
	offset := 0
	gap := chemicalGapMin()

	for _, svc := range services {
		eff := resolve(svc)

		tl.Segments = append(tl.Segments, models.TimelineSegment{
			OffsetMin:      offset,
			DurationMin:    eff.DurationMin,
			Service:        svc,
			EffectivePrice: eff.Price,
		})
		tl.SumActiveDuration += eff.DurationMin
		offset += eff.DurationMin

		if classify.IsChemical(svc) {
			tl.HasChemical = true
			offset += gap
		}

		if eff.Price == nil || *eff.Price <= 0 {
			tl.HasUnknownPrice = true
		} else {
			tl.SumPrice += *eff.Price
		}
	}

	tl.TotalSpanMinutes = offset
	return tl
}
