package booking

// In-memory implementations of the storage ports. The fake ledger guards
// its map with a mutex and performs all-or-nothing claims, mirroring the
// unique-key guarantee the MySQL repository gets from its multi-row
// INSERT, so the orchestrator's concurrency behavior can be tested
// without a database.

import (
    "context"
    "fmt"
    "sync"
    "time"

    "github.com/iliyamo/property-stay-reservation/internal/model"
    "github.com/iliyamo/property-stay-reservation/internal/repository"
)

func ledgerKey(tenantID string, propertyID uint64, date string) string {
    return fmt.Sprintf("%s|%d|%s", tenantID, propertyID, date)
}

type fakeLedger struct {
    mu     sync.Mutex
    rows   map[string]model.AvailabilityRecord
    nextID uint64

    // beforeClaim, when set, runs inside Claim before the conflict check.
    // Tests use it to slip a competing claim between the orchestrator's
    // pre-check and its claim.
    beforeClaim func()
}

func newFakeLedger() *fakeLedger {
    return &fakeLedger{rows: map[string]model.AvailabilityRecord{}}
}

func (f *fakeLedger) QueryRange(_ context.Context, tenantID string, propertyID uint64, startDate, endDate string) ([]model.AvailabilityRecord, error) {
    f.mu.Lock()
    defer f.mu.Unlock()
    out := []model.AvailabilityRecord{}
    for _, r := range f.rows {
        if r.TenantID == tenantID && r.PropertyID == propertyID && r.StayDate >= startDate && r.StayDate < endDate {
            out = append(out, r)
        }
    }
    return out, nil
}

func (f *fakeLedger) Claim(_ context.Context, tenantID string, propertyID uint64, dates []string, reservationID uint64) error {
    if f.beforeClaim != nil {
        hook := f.beforeClaim
        f.beforeClaim = nil
        hook()
    }
    f.mu.Lock()
    defer f.mu.Unlock()
    for _, d := range dates {
        if _, taken := f.rows[ledgerKey(tenantID, propertyID, d)]; taken {
            return repository.ErrDateConflict
        }
    }
    for _, d := range dates {
        f.nextID++
        rid := reservationID
        f.rows[ledgerKey(tenantID, propertyID, d)] = model.AvailabilityRecord{
            ID:            f.nextID,
            TenantID:      tenantID,
            PropertyID:    propertyID,
            StayDate:      d,
            Status:        model.LedgerStatusBooked,
            ReservationID: &rid,
        }
    }
    return nil
}

func (f *fakeLedger) Release(_ context.Context, tenantID string, propertyID uint64, dates []string, reservationID uint64) (int64, error) {
    f.mu.Lock()
    defer f.mu.Unlock()
    var n int64
    for _, d := range dates {
        key := ledgerKey(tenantID, propertyID, d)
        r, ok := f.rows[key]
        if ok && r.Status == model.LedgerStatusBooked && r.ReservationID != nil && *r.ReservationID == reservationID {
            delete(f.rows, key)
            n++
        }
    }
    return n, nil
}

func (f *fakeLedger) Block(_ context.Context, tenantID string, propertyID uint64, dates []string, note string) (int64, error) {
    f.mu.Lock()
    defer f.mu.Unlock()
    var n int64
    for _, d := range dates {
        key := ledgerKey(tenantID, propertyID, d)
        if _, taken := f.rows[key]; taken {
            continue
        }
        f.nextID++
        noteCopy := note
        f.rows[key] = model.AvailabilityRecord{
            ID:         f.nextID,
            TenantID:   tenantID,
            PropertyID: propertyID,
            StayDate:   d,
            Status:     model.LedgerStatusBlocked,
            Note:       &noteCopy,
        }
        n++
    }
    return n, nil
}

func (f *fakeLedger) Unblock(_ context.Context, tenantID string, propertyID uint64, startDate, endDate string) (int64, error) {
    f.mu.Lock()
    defer f.mu.Unlock()
    var n int64
    for key, r := range f.rows {
        if r.TenantID == tenantID && r.PropertyID == propertyID &&
            r.StayDate >= startDate && r.StayDate < endDate && r.Status == model.LedgerStatusBlocked {
            delete(f.rows, key)
            n++
        }
    }
    return n, nil
}

type fakeReservations struct {
    mu     sync.Mutex
    byID   map[uint64]*model.Reservation
    nextID uint64
}

func newFakeReservations() *fakeReservations {
    return &fakeReservations{byID: map[uint64]*model.Reservation{}}
}

func (f *fakeReservations) Create(_ context.Context, res *model.Reservation) error {
    f.mu.Lock()
    defer f.mu.Unlock()
    f.nextID++
    res.ID = f.nextID
    res.CreatedAt = time.Now()
    stored := *res
    f.byID[res.ID] = &stored
    return nil
}

func (f *fakeReservations) Delete(_ context.Context, tenantID string, id uint64) error {
    f.mu.Lock()
    defer f.mu.Unlock()
    if r, ok := f.byID[id]; ok && r.TenantID == tenantID {
        delete(f.byID, id)
    }
    return nil
}

func (f *fakeReservations) GetByReference(_ context.Context, tenantID, reference string) (*model.Reservation, error) {
    f.mu.Lock()
    defer f.mu.Unlock()
    for _, r := range f.byID {
        if r.TenantID == tenantID && r.Reference == reference {
            cp := *r
            return &cp, nil
        }
    }
    return nil, repository.ErrReservationNotFound
}

func (f *fakeReservations) ListByGuest(_ context.Context, tenantID, guestID string) ([]model.Reservation, error) {
    f.mu.Lock()
    defer f.mu.Unlock()
    out := []model.Reservation{}
    for _, r := range f.byID {
        if r.TenantID == tenantID && r.GuestID == guestID {
            out = append(out, *r)
        }
    }
    return out, nil
}

func (f *fakeReservations) ListByProperty(_ context.Context, tenantID string, propertyID uint64) ([]model.Reservation, error) {
    f.mu.Lock()
    defer f.mu.Unlock()
    out := []model.Reservation{}
    for _, r := range f.byID {
        if r.TenantID == tenantID && r.PropertyID == propertyID {
            out = append(out, *r)
        }
    }
    return out, nil
}

func (f *fakeReservations) ListOverlapping(_ context.Context, tenantID string, propertyID uint64, startDate, endDate string) ([]model.Reservation, error) {
    f.mu.Lock()
    defer f.mu.Unlock()
    out := []model.Reservation{}
    for _, r := range f.byID {
        if r.TenantID == tenantID && r.PropertyID == propertyID &&
            r.Status != model.ReservationStatusCancelled && r.CheckIn < endDate && r.CheckOut > startDate {
            out = append(out, *r)
        }
    }
    return out, nil
}

func (f *fakeReservations) UpdateStatus(_ context.Context, tenantID string, id uint64, status string, note, actor *string, cancellation *model.Cancellation) error {
    f.mu.Lock()
    defer f.mu.Unlock()
    r, ok := f.byID[id]
    if !ok || r.TenantID != tenantID {
        return repository.ErrReservationNotFound
    }
    r.Status = status
    if cancellation != nil {
        cp := *cancellation
        r.Cancellation = &cp
    }
    r.History = append(r.History, model.StatusHistoryEntry{
        ReservationID: id,
        Status:        status,
        Note:          note,
        Actor:         actor,
        CreatedAt:     time.Now(),
    })
    return nil
}

type fakeProperties struct {
    byID map[uint64]model.Property
}

func (f *fakeProperties) GetByID(_ context.Context, tenantID string, id uint64) (*model.Property, error) {
    p, ok := f.byID[id]
    if !ok || p.TenantID != tenantID {
        return nil, repository.ErrPropertyNotFound
    }
    cp := p
    return &cp, nil
}

func (f *fakeProperties) List(_ context.Context, tenantID string, activeOnly bool) ([]model.Property, error) {
    out := []model.Property{}
    for _, p := range f.byID {
        if p.TenantID != tenantID {
            continue
        }
        if activeOnly && !p.Bookable() {
            continue
        }
        out = append(out, p)
    }
    return out, nil
}

type fakeRatePlans struct {
    plans []model.RatePlan
}

func (f *fakeRatePlans) ListForStay(_ context.Context, tenantID string, propertyID uint64, startDate, endDate string) ([]model.RatePlan, error) {
    out := []model.RatePlan{}
    for _, p := range f.plans {
        if p.TenantID == tenantID && p.PropertyID == propertyID && p.StartDate < endDate && p.EndDate >= startDate {
            out = append(out, p)
        }
    }
    return out, nil
}

type fakeAddOns struct {
    byID map[uint64]model.AddOn
}

func (f *fakeAddOns) GetActiveByIDs(_ context.Context, tenantID string, ids []uint64) ([]model.AddOn, error) {
    out := []model.AddOn{}
    for _, id := range ids {
        a, ok := f.byID[id]
        if !ok || a.TenantID != tenantID || !a.Active {
            return nil, repository.ErrAddOnNotFound
        }
        out = append(out, a)
    }
    return out, nil
}

type fakeEvents struct {
    mu        sync.Mutex
    created   []string
    cancelled []string
}

func (f *fakeEvents) PublishReservationCreated(res *model.Reservation) error {
    f.mu.Lock()
    defer f.mu.Unlock()
    f.created = append(f.created, res.Reference)
    return nil
}

func (f *fakeEvents) PublishReservationCancelled(res *model.Reservation) error {
    f.mu.Lock()
    defer f.mu.Unlock()
    f.cancelled = append(f.cancelled, res.Reference)
    return nil
}

const testTenant = "tenant-1"

// testService assembles a Service over fresh fakes with the clock pinned
// to 2024-05-01, well before the stays the tests book.
func testService() (*Service, *fakeLedger, *fakeReservations, *fakeProperties, *fakeRatePlans, *fakeAddOns, *fakeEvents) {
    ledger := newFakeLedger()
    reservations := newFakeReservations()
    properties := &fakeProperties{byID: map[uint64]model.Property{
        1: {
            ID:                 1,
            TenantID:           testTenant,
            Name:               "Pine Cabin",
            Type:               model.PropertyTypeCabin,
            Capacity:           4,
            BasePriceCents:     10000,
            Currency:           "USD",
            Status:             model.PropertyStatusAvailable,
            MinStay:            1,
            CancellationPolicy: "moderate",
            Active:             true,
        },
        2: {
            ID:             2,
            TenantID:       testTenant,
            Name:           "Lake Villa",
            Type:           model.PropertyTypeVilla,
            Capacity:       8,
            BasePriceCents: 25000,
            Currency:       "USD",
            Status:         model.PropertyStatusAvailable,
            MinStay:        1,
            Active:         true,
        },
    }}
    plans := &fakeRatePlans{}
    addons := &fakeAddOns{byID: map[uint64]model.AddOn{}}
    events := &fakeEvents{}

    svc := NewService(ledger, reservations, properties, plans, addons, events)
    svc.Now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
    return svc, ledger, reservations, properties, plans, addons, events
}
