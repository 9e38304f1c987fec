package models

// TimelineSegment is one service positioned within a timeline, offset in
// minutes from the timeline's anchor.
type TimelineSegment struct {
	OffsetMin   int     `json:"offset_min"`
	DurationMin int     `json:"duration_min"`
	Service     Service `json:"service"`
	// EffectivePrice is the resolved price for the chosen resource; nil
	// means the price is unknown until consultation.
	EffectivePrice *float64 `json:"effective_price,omitempty"`
}

// Timeline is an ordered basket of services laid out as segments with
// processing gaps, ready to be anchored at a start time.
type Timeline struct {
	Segments          []TimelineSegment `json:"segments"`
	SumActiveDuration int               `json:"sum_active_duration"`
	TotalSpanMinutes  int               `json:"total_span_minutes"`
	SumPrice          float64           `json:"sum_price"`
	HasUnknownPrice   bool              `json:"has_unknown_price"`
	HasChemical       bool              `json:"has_chemical"`
}

// Empty reports whether the timeline holds no segments. Callers must refuse
// to book an empty timeline.
func (t Timeline) Empty() bool {
	return len(t.Segments) == 0
}
