package scheduling

import (
	"time"

	"chairside/config"
)

// Engine defaults, overridable through config.
const (
	DefaultMinNoticeHours     = 24
	DefaultChemicalGapMin     = 30
	DefaultSlotGranularityMin = 15
	DefaultMaxHoldHours       = 12
)

func minNotice() time.Duration {
	h := config.AppConfig.MinNoticeHours
	if h <= 0 {
		h = DefaultMinNoticeHours
	}
	return time.Duration(h) * time.Hour
}

func chemicalGapMin() int {
	m := config.AppConfig.ChemicalGapMin
	if m <= 0 {
		m = DefaultChemicalGapMin
	}
	return m
}

func slotStep() time.Duration {
	m := config.AppConfig.SlotGranularityMin
	if m <= 0 {
		m = DefaultSlotGranularityMin
	}
	return time.Duration(m) * time.Minute
}

func maxHold() time.Duration {
	h := config.AppConfig.MaxHoldHours
	if h <= 0 {
		h = DefaultMaxHoldHours
	}
	return time.Duration(h) * time.Hour
}
