package models

// Service is one bookable treatment from the catalogue.
type Service struct {
	ID          string   `bson:"id" json:"id"`
	Name        string   `bson:"name" json:"name"`
	Category    string   `bson:"category" json:"category"`
	BasePrice   *float64 `bson:"base_price,omitempty" json:"base_price,omitempty"`
	DurationMin int      `bson:"duration_min" json:"duration_min"`
	// Chemical marks services that need a post-treatment processing gap.
	// Authoritative when set; untagged legacy records fall back to the
	// keyword classifier in services/scheduling.
	Chemical bool `bson:"chemical,omitempty" json:"chemical,omitempty"`
}

// ServiceOverride customizes price/duration of a service for one resource.
// A present override with a nil Price means "price on consultation".
type ServiceOverride struct {
	ResourceID  string   `bson:"resource_id" json:"resource_id"`
	ServiceID   string   `bson:"service_id" json:"service_id"`
	Price       *float64 `bson:"price,omitempty" json:"price,omitempty"`
	DurationMin *int     `bson:"duration_min,omitempty" json:"duration_min,omitempty"`
}

// Effective is the resolved duration and price of a service for a resource.
type Effective struct {
	DurationMin int      `json:"duration_min"`
	Price       *float64 `json:"price,omitempty"`
}

// EffectiveResolver resolves a service to its effective duration/price,
// applying any per-resource override.
type EffectiveResolver func(svc Service) Effective
