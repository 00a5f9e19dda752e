package repository

import (
    "context"
    "database/sql"

    "github.com/iliyamo/property-stay-reservation/internal/model"
)

// ReservationRepo provides persistence for reservations and their frozen
// snapshot rows (nightly breakdown, add-on line items, status history).
// The snapshot tables are written exactly once, at creation time, inside
// the same transaction as the reservation row; they are never updated
// afterwards. Lifecycle changes touch only the status columns, the
// cancellation columns and the history table.
type ReservationRepo struct {
    db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationColumns = `id, reference, tenant_id, property_id, guest_id,
    DATE_FORMAT(check_in, '%Y-%m-%d'), DATE_FORMAT(check_out, '%Y-%m-%d'), nights,
    adults, children, infants, status, source,
    subtotal_cents, addon_total_cents, taxes_cents, fees_cents, discount_cents, total_cents, currency,
    deposit_cents, deposit_paid, balance_due_cents, payment_status,
    cancellation_policy, refund_cents, cancelled_at, cancellation_reason,
    special_requests, created_at, updated_at`

// Create persists a reservation together with its nightly breakdown,
// add-on lines and the initial history entry, all in one transaction. The
// generated ID is populated on the passed record. The availability claim
// is deliberately NOT part of this transaction: the ledger's unique key is
// the conflict authority, and a failed claim is reconciled by Delete.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    const q = `INSERT INTO reservations
        (reference, tenant_id, property_id, guest_id, check_in, check_out, nights,
         adults, children, infants, status, source,
         subtotal_cents, addon_total_cents, taxes_cents, fees_cents, discount_cents, total_cents, currency,
         deposit_cents, deposit_paid, balance_due_cents, payment_status, special_requests)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
    result, err := tx.ExecContext(ctx, q,
        res.Reference, res.TenantID, res.PropertyID, res.GuestID, res.CheckIn, res.CheckOut, res.Nights,
        res.Adults, res.Children, res.Infants, res.Status, res.Source,
        res.SubtotalCents, res.AddOnTotalCents, res.TaxesCents, res.FeesCents, res.DiscountCents,
        res.TotalCents, res.Currency,
        res.DepositCents, res.DepositPaid, res.BalanceDueCents, res.PaymentStatus, res.SpecialRequests,
    )
    if err != nil {
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    res.ID = uint64(id)

    if len(res.NightlyRates) > 0 {
        query := `INSERT INTO reservation_nights (reservation_id, stay_date, base_price_cents, price_cents, rate_plan_name) VALUES `
        args := make([]interface{}, 0, len(res.NightlyRates)*5)
        for i, n := range res.NightlyRates {
            if i > 0 {
                query += ","
            }
            query += "(?, ?, ?, ?, ?)"
            args = append(args, res.ID, n.StayDate, n.BasePriceCents, n.PriceCents, n.RatePlanName)
        }
        if _, err := tx.ExecContext(ctx, query, args...); err != nil {
            return err
        }
    }
    if len(res.AddOns) > 0 {
        query := `INSERT INTO reservation_addons (reservation_id, addon_id, name, basis, unit_cents, quantity, total_cents) VALUES `
        args := make([]interface{}, 0, len(res.AddOns)*7)
        for i, a := range res.AddOns {
            if i > 0 {
                query += ","
            }
            query += "(?, ?, ?, ?, ?, ?, ?)"
            args = append(args, res.ID, a.AddOnID, a.Name, a.Basis, a.UnitCents, a.Quantity, a.TotalCents)
        }
        if _, err := tx.ExecContext(ctx, query, args...); err != nil {
            return err
        }
    }
    const hist = `INSERT INTO reservation_status_history (reservation_id, status, note, actor) VALUES (?, ?, ?, ?)`
    var note, actor *string
    if len(res.History) > 0 {
        note = res.History[0].Note
        actor = res.History[0].Actor
    }
    if _, err := tx.ExecContext(ctx, hist, res.ID, res.Status, note, actor); err != nil {
        return err
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

// Delete removes a reservation and, via cascade, its snapshot rows. It
// exists for exactly one purpose: rolling back a reservation whose ledger
// claim lost the race after the row was written. Committed reservations
// are never deleted; they are cancelled.
func (r *ReservationRepo) Delete(ctx context.Context, tenantID string, id uint64) error {
    _, err := r.db.ExecContext(ctx, `DELETE FROM reservations WHERE tenant_id = ? AND id = ?`, tenantID, id)
    return err
}

// GetByReference loads a reservation aggregate — snapshot rows and history
// included — by its human-readable code. Returns ErrReservationNotFound
// when no row matches within the tenant.
func (r *ReservationRepo) GetByReference(ctx context.Context, tenantID, reference string) (*model.Reservation, error) {
    q := `SELECT ` + reservationColumns + ` FROM reservations WHERE tenant_id = ? AND reference = ?`
    res, err := r.scanOne(ctx, q, tenantID, reference)
    if err != nil {
        return nil, err
    }
    if err := r.loadDetails(ctx, res); err != nil {
        return nil, err
    }
    return res, nil
}

// ListByGuest returns a guest's reservations, newest first, with snapshot
// details attached.
func (r *ReservationRepo) ListByGuest(ctx context.Context, tenantID, guestID string) ([]model.Reservation, error) {
    q := `SELECT ` + reservationColumns + ` FROM reservations
          WHERE tenant_id = ? AND guest_id = ? ORDER BY created_at DESC`
    return r.scanAndLoadMany(ctx, q, tenantID, guestID)
}

// ListByProperty returns a property's reservations for operator display,
// newest first.
func (r *ReservationRepo) ListByProperty(ctx context.Context, tenantID string, propertyID uint64) ([]model.Reservation, error) {
    q := `SELECT ` + reservationColumns + ` FROM reservations
          WHERE tenant_id = ? AND property_id = ? ORDER BY created_at DESC`
    return r.scanAndLoadMany(ctx, q, tenantID, propertyID)
}

// ListOverlapping returns the non-cancelled reservations of a property
// whose stay intersects [startDate, endDate); the calendar view uses it to
// attach reservation summaries to booked ledger rows.
func (r *ReservationRepo) ListOverlapping(ctx context.Context, tenantID string, propertyID uint64, startDate, endDate string) ([]model.Reservation, error) {
    q := `SELECT ` + reservationColumns + ` FROM reservations
          WHERE tenant_id = ? AND property_id = ? AND status <> 'cancelled' AND check_in < ? AND check_out > ?
          ORDER BY check_in`
    rows, err := r.db.QueryContext(ctx, q, tenantID, propertyID, endDate, startDate)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    return scanReservations(rows)
}

// UpdateStatus advances a reservation's status and appends the matching
// history entry in one transaction. When cancellation is non-nil the
// cancellation columns are recorded in the same statement. The state
// machine itself is validated by the caller; this method only persists.
func (r *ReservationRepo) UpdateStatus(ctx context.Context, tenantID string, id uint64, status string, note, actor *string, cancellation *model.Cancellation) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()
    if cancellation != nil {
        const q = `UPDATE reservations SET status = ?, cancellation_policy = ?, refund_cents = ?, cancelled_at = ?, cancellation_reason = ?
                   WHERE tenant_id = ? AND id = ?`
        if _, err := tx.ExecContext(ctx, q, status,
            cancellation.Policy, cancellation.RefundCents, cancellation.CancelledAt, cancellation.Reason,
            tenantID, id); err != nil {
            return err
        }
    } else {
        const q = `UPDATE reservations SET status = ? WHERE tenant_id = ? AND id = ?`
        if _, err := tx.ExecContext(ctx, q, status, tenantID, id); err != nil {
            return err
        }
    }
    const hist = `INSERT INTO reservation_status_history (reservation_id, status, note, actor) VALUES (?, ?, ?, ?)`
    if _, err := tx.ExecContext(ctx, hist, id, status, note, actor); err != nil {
        return err
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

func (r *ReservationRepo) scanOne(ctx context.Context, query string, args ...interface{}) (*model.Reservation, error) {
    row := r.db.QueryRowContext(ctx, query, args...)
    res, err := scanReservationRow(row.Scan)
    if err == sql.ErrNoRows {
        return nil, ErrReservationNotFound
    }
    if err != nil {
        return nil, err
    }
    return res, nil
}

func (r *ReservationRepo) scanAndLoadMany(ctx context.Context, query string, args ...interface{}) ([]model.Reservation, error) {
    rows, err := r.db.QueryContext(ctx, query, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out, err := scanReservations(rows)
    if err != nil {
        return nil, err
    }
    for i := range out {
        if err := r.loadDetails(ctx, &out[i]); err != nil {
            return nil, err
        }
    }
    return out, nil
}

// loadDetails populates the nightly breakdown, add-on lines and history
// of an already-scanned reservation.
func (r *ReservationRepo) loadDetails(ctx context.Context, res *model.Reservation) error {
    const nightsQ = `SELECT id, reservation_id, DATE_FORMAT(stay_date, '%Y-%m-%d'), base_price_cents, price_cents, rate_plan_name
                     FROM reservation_nights WHERE reservation_id = ? ORDER BY stay_date`
    rows, err := r.db.QueryContext(ctx, nightsQ, res.ID)
    if err != nil {
        return err
    }
    defer rows.Close()
    res.NightlyRates = make([]model.ReservationNight, 0)
    for rows.Next() {
        var n model.ReservationNight
        var planName sql.NullString
        if err := rows.Scan(&n.ID, &n.ReservationID, &n.StayDate, &n.BasePriceCents, &n.PriceCents, &planName); err != nil {
            return err
        }
        if planName.Valid {
            name := planName.String
            n.RatePlanName = &name
        }
        res.NightlyRates = append(res.NightlyRates, n)
    }
    if err := rows.Err(); err != nil {
        return err
    }

    const addonQ = `SELECT id, reservation_id, addon_id, name, basis, unit_cents, quantity, total_cents
                    FROM reservation_addons WHERE reservation_id = ? ORDER BY id`
    arows, err := r.db.QueryContext(ctx, addonQ, res.ID)
    if err != nil {
        return err
    }
    defer arows.Close()
    res.AddOns = make([]model.ReservationAddOn, 0)
    for arows.Next() {
        var a model.ReservationAddOn
        if err := arows.Scan(&a.ID, &a.ReservationID, &a.AddOnID, &a.Name, &a.Basis, &a.UnitCents, &a.Quantity, &a.TotalCents); err != nil {
            return err
        }
        res.AddOns = append(res.AddOns, a)
    }
    if err := arows.Err(); err != nil {
        return err
    }

    const histQ = `SELECT id, reservation_id, status, note, actor, created_at
                   FROM reservation_status_history WHERE reservation_id = ? ORDER BY id`
    hrows, err := r.db.QueryContext(ctx, histQ, res.ID)
    if err != nil {
        return err
    }
    defer hrows.Close()
    res.History = make([]model.StatusHistoryEntry, 0)
    for hrows.Next() {
        var h model.StatusHistoryEntry
        var note, actor sql.NullString
        if err := hrows.Scan(&h.ID, &h.ReservationID, &h.Status, &note, &actor, &h.CreatedAt); err != nil {
            return err
        }
        if note.Valid {
            v := note.String
            h.Note = &v
        }
        if actor.Valid {
            v := actor.String
            h.Actor = &v
        }
        res.History = append(res.History, h)
    }
    return hrows.Err()
}

func scanReservations(rows *sql.Rows) ([]model.Reservation, error) {
    out := make([]model.Reservation, 0)
    for rows.Next() {
        res, err := scanReservationRow(rows.Scan)
        if err != nil {
            return nil, err
        }
        out = append(out, *res)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// scanReservationRow maps one reservations row, folding the nullable
// cancellation columns into a Cancellation value when present.
func scanReservationRow(scan func(dest ...interface{}) error) (*model.Reservation, error) {
    var res model.Reservation
    var policy, reason sql.NullString
    var refund sql.NullInt64
    var cancelledAt sql.NullTime
    var special sql.NullString
    if err := scan(
        &res.ID, &res.Reference, &res.TenantID, &res.PropertyID, &res.GuestID,
        &res.CheckIn, &res.CheckOut, &res.Nights,
        &res.Adults, &res.Children, &res.Infants, &res.Status, &res.Source,
        &res.SubtotalCents, &res.AddOnTotalCents, &res.TaxesCents, &res.FeesCents,
        &res.DiscountCents, &res.TotalCents, &res.Currency,
        &res.DepositCents, &res.DepositPaid, &res.BalanceDueCents, &res.PaymentStatus,
        &policy, &refund, &cancelledAt, &reason,
        &special, &res.CreatedAt, &res.UpdatedAt,
    ); err != nil {
        return nil, err
    }
    if special.Valid {
        res.SpecialRequests = special.String
    }
    if policy.Valid || refund.Valid || cancelledAt.Valid {
        res.Cancellation = &model.Cancellation{
            Policy:      policy.String,
            RefundCents: refund.Int64,
            Reason:      reason.String,
        }
        if cancelledAt.Valid {
            res.Cancellation.CancelledAt = cancelledAt.Time
        }
    }
    res.NightlyRates = []model.ReservationNight{}
    res.AddOns = []model.ReservationAddOn{}
    res.History = []model.StatusHistoryEntry{}
    return &res, nil
}
