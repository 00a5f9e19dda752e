package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/go-sql-driver/mysql"

    "github.com/iliyamo/property-stay-reservation/internal/model"
)

// mysqlDuplicateEntry is the server error number MySQL raises when an
// insert violates a unique key. The claim path treats it as proof that
// another writer owns at least one night in the batch.
const mysqlDuplicateEntry = 1062

// AvailabilityRepo persists the per-night occupancy ledger. One row exists
// per occupied (tenant, property, date); free nights have no row at all.
// The unique key on that triple — not any application-level lock — is what
// makes concurrent claims safe: a multi-row INSERT either lands every
// night or fails as a whole when any night is taken.
type AvailabilityRepo struct {
    db *sql.DB
}

// NewAvailabilityRepo returns an AvailabilityRepo bound to the given database.
func NewAvailabilityRepo(db *sql.DB) *AvailabilityRepo { return &AvailabilityRepo{db: db} }

// QueryRange returns all non-default ledger records for the half-open
// range [startDate, endDate). An empty result means every night in the
// range is free. Results are ordered by date for deterministic output.
func (r *AvailabilityRepo) QueryRange(ctx context.Context, tenantID string, propertyID uint64, startDate, endDate string) ([]model.AvailabilityRecord, error) {
    const q = `SELECT id, tenant_id, property_id, DATE_FORMAT(stay_date, '%Y-%m-%d'), status, reservation_id, price_override_cents, note, created_at
               FROM availability_records
               WHERE tenant_id = ? AND property_id = ? AND stay_date >= ? AND stay_date < ?
               ORDER BY stay_date`
    rows, err := r.db.QueryContext(ctx, q, tenantID, propertyID, startDate, endDate)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    return scanLedgerRows(rows)
}

// Claim marks every date in the batch as booked for the given reservation.
// It is all-or-nothing: the dates go in as a single multi-row INSERT with
// no IGNORE clause, so a duplicate key on any night aborts the whole
// statement and no partial claim is left behind. A duplicate key is
// reported as ErrDateConflict. Claim never updates an existing row — a
// record owned by another reservation is a conflict, not something to
// merge with.
func (r *AvailabilityRepo) Claim(ctx context.Context, tenantID string, propertyID uint64, dates []string, reservationID uint64) error {
    if len(dates) == 0 {
        return nil
    }
    query := `INSERT INTO availability_records (tenant_id, property_id, stay_date, status, reservation_id) VALUES `
    args := make([]interface{}, 0, len(dates)*5)
    for i, d := range dates {
        if i > 0 {
            query += ","
        }
        query += "(?, ?, ?, ?, ?)"
        args = append(args, tenantID, propertyID, d, model.LedgerStatusBooked, reservationID)
    }
    if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
        var me *mysql.MySQLError
        if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
            return ErrDateConflict
        }
        return err
    }
    return nil
}

// Release removes the booked records belonging to the given reservation
// for the listed dates. The reservation back-reference is part of the
// predicate, so records owned by a different reservation are never
// touched even if the date lists overlap. Returns the number of nights
// actually released.
func (r *AvailabilityRepo) Release(ctx context.Context, tenantID string, propertyID uint64, dates []string, reservationID uint64) (int64, error) {
    if len(dates) == 0 {
        return 0, nil
    }
    placeholders := strings.TrimSuffix(strings.Repeat("?,", len(dates)), ",")
    query := `DELETE FROM availability_records
              WHERE tenant_id = ? AND property_id = ? AND status = ? AND reservation_id = ?
                AND stay_date IN (` + placeholders + `)`
    args := make([]interface{}, 0, len(dates)+4)
    args = append(args, tenantID, propertyID, model.LedgerStatusBooked, reservationID)
    for _, d := range dates {
        args = append(args, d)
    }
    res, err := r.db.ExecContext(ctx, query, args...)
    if err != nil {
        return 0, err
    }
    return res.RowsAffected()
}

// Block upserts blocked records for the listed dates with the operator's
// note. It uses INSERT IGNORE so dates that already carry any record —
// booked nights in particular — are skipped per date rather than
// overwritten; an active booking can never be downgraded to a block.
// Returns the number of dates newly blocked.
func (r *AvailabilityRepo) Block(ctx context.Context, tenantID string, propertyID uint64, dates []string, note string) (int64, error) {
    if len(dates) == 0 {
        return 0, nil
    }
    query := `INSERT IGNORE INTO availability_records (tenant_id, property_id, stay_date, status, note) VALUES `
    args := make([]interface{}, 0, len(dates)*5)
    for i, d := range dates {
        if i > 0 {
            query += ","
        }
        query += "(?, ?, ?, ?, ?)"
        args = append(args, tenantID, propertyID, d, model.LedgerStatusBlocked, note)
    }
    res, err := r.db.ExecContext(ctx, query, args...)
    if err != nil {
        return 0, err
    }
    return res.RowsAffected()
}

// Unblock deletes records in the half-open range [startDate, endDate)
// that are currently blocked. Booked and maintenance records are left
// alone. Running it twice over the same range is a no-op the second time
// and reports zero dates affected.
func (r *AvailabilityRepo) Unblock(ctx context.Context, tenantID string, propertyID uint64, startDate, endDate string) (int64, error) {
    const q = `DELETE FROM availability_records
               WHERE tenant_id = ? AND property_id = ? AND status = ?
                 AND stay_date >= ? AND stay_date < ?`
    res, err := r.db.ExecContext(ctx, q, tenantID, propertyID, model.LedgerStatusBlocked, startDate, endDate)
    if err != nil {
        return 0, err
    }
    return res.RowsAffected()
}

func scanLedgerRows(rows *sql.Rows) ([]model.AvailabilityRecord, error) {
    records := make([]model.AvailabilityRecord, 0)
    for rows.Next() {
        var rec model.AvailabilityRecord
        var resID sql.NullInt64
        var override sql.NullInt64
        var note sql.NullString
        if err := rows.Scan(
            &rec.ID, &rec.TenantID, &rec.PropertyID, &rec.StayDate, &rec.Status,
            &resID, &override, &note, &rec.CreatedAt,
        ); err != nil {
            return nil, err
        }
        if resID.Valid {
            id := uint64(resID.Int64)
            rec.ReservationID = &id
        }
        if override.Valid {
            v := override.Int64
            rec.PriceOverrideCents = &v
        }
        if note.Valid {
            n := note.String
            rec.Note = &n
        }
        records = append(records, rec)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return records, nil
}
