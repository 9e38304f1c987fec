package scheduling

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	clientRepo "chairside/database/repository/client"
	segmentRepo "chairside/database/repository/segment"
	"chairside/models"
)

// fakeSegmentRepo is an in-memory SegmentRepository.
type fakeSegmentRepo struct {
	mu       sync.Mutex
	segments []models.Segment
	// failAfter, when >= 0, makes InsertGroup fail after writing that many
	// segments (simulating a mid-sequence write failure).
	failAfter int
	insertErr error
}

func newFakeSegmentRepo() *fakeSegmentRepo {
	return &fakeSegmentRepo{failAfter: -1}
}

func (f *fakeSegmentRepo) InsertGroup(_ context.Context, segs []models.Segment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	if f.failAfter >= 0 {
		f.segments = append(f.segments, segs[:f.failAfter]...)
		return &segmentRepo.PartialInsertError{
			GroupID: segs[0].GroupID,
			Written: f.failAfter,
			Total:   len(segs),
			Err:     errors.New("write failed mid-sequence"),
		}
	}
	f.segments = append(f.segments, segs...)
	return nil
}

func (f *fakeSegmentRepo) BusySpans(_ context.Context, resourceID string, from, to time.Time, excludeGroupID string) ([]models.BusySpan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var spans []models.BusySpan
	for _, seg := range f.segments {
		if seg.ResourceID != resourceID {
			continue
		}
		if excludeGroupID != "" && seg.GroupID == excludeGroupID {
			continue
		}
		if seg.Start.Before(to) && seg.End.After(from) {
			spans = append(spans, models.BusySpan{Start: seg.Start, End: seg.End})
		}
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].Start.Before(spans[j].Start) })
	return spans, nil
}

func (f *fakeSegmentRepo) GroupSegments(_ context.Context, groupID string) ([]models.Segment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var segs []models.Segment
	for _, seg := range f.segments {
		if seg.GroupID == groupID {
			segs = append(segs, seg)
		}
	}
	sort.Slice(segs, func(i, j int) bool { return segs[i].Start.Before(segs[j].Start) })
	return segs, nil
}

func (f *fakeSegmentRepo) DeleteGroup(_ context.Context, groupID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var kept []models.Segment
	var deleted int64
	for _, seg := range f.segments {
		if seg.GroupID == groupID {
			deleted++
			continue
		}
		kept = append(kept, seg)
	}
	f.segments = kept
	return deleted, nil
}

func (f *fakeSegmentRepo) ShiftGroup(_ context.Context, groupID string, delta time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.segments {
		if f.segments[i].GroupID == groupID {
			f.segments[i].Start = f.segments[i].Start.Add(delta)
			f.segments[i].End = f.segments[i].End.Add(delta)
		}
	}
	return nil
}

func (f *fakeSegmentRepo) SetGroupLocked(_ context.Context, groupID string, locked bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.segments {
		if f.segments[i].GroupID == groupID {
			f.segments[i].Locked = locked
		}
	}
	return nil
}

func (f *fakeSegmentRepo) InsertHold(_ context.Context, hold models.Segment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.segments = append(f.segments, hold)
	return nil
}

func (f *fakeSegmentRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.segments)
}

// fakeClientRepo resolves clients from a fixed set.
type fakeClientRepo struct {
	clients   []models.Client
	ambiguous bool
	created   []models.Client
}

func (f *fakeClientRepo) FindOrCreate(_ context.Context, ref models.ClientRef) (*models.Client, error) {
	if f.ambiguous {
		return nil, clientRepo.ErrAmbiguousName
	}
	for i := range f.clients {
		c := f.clients[i]
		if ref.Email != "" && c.Email == ref.Email {
			return &c, nil
		}
	}
	created := models.Client{
		ID:        "client-" + ref.FirstName,
		FirstName: ref.FirstName,
		LastName:  ref.LastName,
		Email:     ref.Email,
		Mobile:    ref.Mobile,
	}
	f.created = append(f.created, created)
	return &created, nil
}

func (f *fakeClientRepo) GetByID(_ context.Context, id string) (*models.Client, error) {
	for i := range f.clients {
		if f.clients[i].ID == id {
			return &f.clients[i], nil
		}
	}
	return nil, errors.New("client not found")
}

// fakeResourceRepo serves a fixed resource set.
type fakeResourceRepo struct {
	resources map[string]models.Resource
}

func (f *fakeResourceRepo) GetByID(_ context.Context, id string) (*models.Resource, error) {
	res, ok := f.resources[id]
	if !ok {
		return nil, errors.New("resource not found")
	}
	return &res, nil
}

func (f *fakeResourceRepo) List(_ context.Context) ([]models.Resource, error) {
	var out []models.Resource
	for _, r := range f.resources {
		out = append(out, r)
	}
	return out, nil
}

// fakeCatalogRepo serves services and overrides from memory.
type fakeCatalogRepo struct {
	services  map[string]models.Service
	overrides map[string]models.ServiceOverride // keyed by service id
}

func (f *fakeCatalogRepo) GetByID(_ context.Context, id string) (*models.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return nil, errors.New("service not found")
	}
	return &svc, nil
}

func (f *fakeCatalogRepo) GetMany(_ context.Context, ids []string) ([]models.Service, error) {
	out := make([]models.Service, 0, len(ids))
	for _, id := range ids {
		svc, ok := f.services[id]
		if !ok {
			return nil, errors.New("service not found")
		}
		out = append(out, svc)
	}
	return out, nil
}

func (f *fakeCatalogRepo) List(_ context.Context) ([]models.Service, error) {
	var out []models.Service
	for _, svc := range f.services {
		out = append(out, svc)
	}
	return out, nil
}

func (f *fakeCatalogRepo) ResolverFor(_ context.Context, resourceID string) (models.EffectiveResolver, error) {
	overrides := map[string]models.ServiceOverride{}
	if resourceID != "" {
		for id, o := range f.overrides {
			overrides[id] = o
		}
	}
	return func(svc models.Service) models.Effective {
		eff := models.Effective{DurationMin: svc.DurationMin, Price: svc.BasePrice}
		if o, ok := overrides[svc.ID]; ok {
			if o.DurationMin != nil {
				eff.DurationMin = *o.DurationMin
			}
			eff.Price = o.Price
		}
		return eff
	}, nil
}

// fakeAuditSink records entries, optionally failing every call.
type fakeAuditSink struct {
	mu      sync.Mutex
	entries []models.AuditEntry
	fail    bool
}

func (f *fakeAuditSink) Record(_ context.Context, entry models.AuditEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("audit sink unavailable")
	}
	f.entries = append(f.entries, entry)
	return nil
}

// fakeLocker grants or denies the advisory lock.
type fakeLocker struct {
	deny     bool
	acquired []string
}

func (f *fakeLocker) Acquire(_ context.Context, key string) (func(), bool, error) {
	if f.deny {
		return nil, false, nil
	}
	f.acquired = append(f.acquired, key)
	return func() {}, true, nil
}

// Test data helpers.

func fprice(v float64) *float64 { return &v }

func at(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}

func weekdayHours(start, end string) models.WeeklyAvailability {
	weekly := models.WeeklyAvailability{}
	for d := time.Monday; d <= time.Friday; d++ {
		weekly[d] = models.DayWindow{Start: start, End: end}
	}
	return weekly
}

func newTestEngine(segs *fakeSegmentRepo) *DefaultSchedulingEngine {
	return &DefaultSchedulingEngine{
		Segments: segs,
		Clients:  &fakeClientRepo{},
		Resources: &fakeResourceRepo{resources: map[string]models.Resource{
			"res-1": {ID: "res-1", Name: "Dana", Weekly: weekdayHours("09:00", "17:00")},
		}},
		Catalog: &fakeCatalogRepo{services: map[string]models.Service{
			"cut":      {ID: "cut", Name: "Cut & Finish", Category: "Cutting", BasePrice: fprice(42), DurationMin: 30},
			"balayage": {ID: "balayage", Name: "Balayage", Category: "Colouring", BasePrice: fprice(120), DurationMin: 60, Chemical: true},
		}},
		Audit:    &fakeAuditSink{},
		Chemical: KeywordClassifier{},
	}
}
