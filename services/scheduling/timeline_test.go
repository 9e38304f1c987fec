package scheduling

import (
	"testing"

	"chairside/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseResolver(svc models.Service) models.Effective {
	return models.Effective{DurationMin: svc.DurationMin, Price: svc.BasePrice}
}

func TestBuildTimelineChemicalGap(t *testing.T) {
	services := []models.Service{
		{ID: "balayage", Name: "Balayage", Category: "Colouring", BasePrice: fprice(120), DurationMin: 60, Chemical: true},
		{ID: "cut", Name: "Cut & Finish", Category: "Cutting", BasePrice: fprice(42), DurationMin: 30},
	}

	tl := BuildTimeline(services, baseResolver, FlagClassifier{})

	require.Len(t, tl.Segments, 2)
	assert.Equal(t, 0, tl.Segments[0].OffsetMin)
	assert.Equal(t, 90, tl.Segments[1].OffsetMin, "gap after the chemical service pushes the cut to +90")
	assert.Equal(t, 90, tl.SumActiveDuration, "the gap is not active service time")
	assert.Equal(t, 120, tl.TotalSpanMinutes)
	assert.Equal(t, 162.0, tl.SumPrice)
	assert.True(t, tl.HasChemical)
	assert.False(t, tl.HasUnknownPrice)
}

func TestBuildTimelineTrailingGap(t *testing.T) {
	// A chemical service at the end still extends the span: the resource is
	// held while the treatment processes.
	services := []models.Service{
		{ID: "cut", Name: "Cut & Finish", DurationMin: 30, BasePrice: fprice(42)},
		{ID: "balayage", Name: "Balayage", DurationMin: 60, BasePrice: fprice(120), Chemical: true},
	}

	tl := BuildTimeline(services, baseResolver, FlagClassifier{})

	assert.Equal(t, 90, tl.SumActiveDuration)
	assert.Equal(t, 120, tl.TotalSpanMinutes)
}

func TestBuildTimelineNoChemicals(t *testing.T) {
	services := []models.Service{
		{ID: "cut", Name: "Cut & Finish", DurationMin: 30, BasePrice: fprice(42)},
		{ID: "blowdry", Name: "Blow Dry", DurationMin: 45, BasePrice: fprice(28)},
	}

	tl := BuildTimeline(services, baseResolver, FlagClassifier{})

	require.Len(t, tl.Segments, 2)
	assert.Equal(t, 30, tl.Segments[1].OffsetMin, "no gap between non-chemical services")
	assert.Equal(t, 75, tl.SumActiveDuration)
	assert.Equal(t, 75, tl.TotalSpanMinutes)
	assert.False(t, tl.HasChemical)
}

func TestBuildTimelineOffsetsAreCumulative(t *testing.T) {
	services := []models.Service{
		{ID: "a", Name: "Tint", DurationMin: 20, Chemical: true},
		{ID: "b", Name: "Cut", DurationMin: 35},
		{ID: "c", Name: "Toner", DurationMin: 15, Chemical: true},
		{ID: "d", Name: "Finish", DurationMin: 25},
	}

	tl := BuildTimeline(services, baseResolver, FlagClassifier{})

	require.Len(t, tl.Segments, 4)
	for i := 0; i < len(tl.Segments)-1; i++ {
		expected := tl.Segments[i].OffsetMin + tl.Segments[i].DurationMin
		if services[i].Chemical {
			expected += DefaultChemicalGapMin
		}
		assert.Equal(t, expected, tl.Segments[i+1].OffsetMin, "segment %d", i+1)
	}
}

func TestBuildTimelineUnknownPrice(t *testing.T) {
	services := []models.Service{
		{ID: "cut", Name: "Cut & Finish", DurationMin: 30, BasePrice: fprice(42)},
		{ID: "consult", Name: "Colour Correction", DurationMin: 90, Chemical: true},
	}

	tl := BuildTimeline(services, baseResolver, FlagClassifier{})

	assert.True(t, tl.HasUnknownPrice, "nil price marks the total as unknown")
	assert.Equal(t, 42.0, tl.SumPrice, "known prices still sum")
}

func TestBuildTimelineOverrideNilPriceIsUnknown(t *testing.T) {
	// A per-resource override without a price means "price on consultation",
	// even though the base service carries one.
	shorter := 45
	resolve := func(svc models.Service) models.Effective {
		return models.Effective{DurationMin: shorter, Price: nil}
	}
	services := []models.Service{
		{ID: "balayage", Name: "Balayage", DurationMin: 60, BasePrice: fprice(120), Chemical: true},
	}

	tl := BuildTimeline(services, resolve, FlagClassifier{})

	require.Len(t, tl.Segments, 1)
	assert.Equal(t, 45, tl.Segments[0].DurationMin)
	assert.True(t, tl.HasUnknownPrice)
	assert.Zero(t, tl.SumPrice)
}

func TestBuildTimelineEmptyBasket(t *testing.T) {
	tl := BuildTimeline(nil, baseResolver, FlagClassifier{})

	assert.True(t, tl.Empty())
	assert.Zero(t, tl.TotalSpanMinutes)
	assert.Zero(t, tl.SumActiveDuration)
}
