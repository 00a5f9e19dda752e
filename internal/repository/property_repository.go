package repository

import (
    "context"
    "database/sql"

    "github.com/iliyamo/property-stay-reservation/internal/model"
)

// PropertyRepo provides CRUD operations over the property catalog. All
// lookups are tenant-scoped; a property belonging to another tenant is
// indistinguishable from one that does not exist. Properties are never
// hard-deleted — Retire flips the status so historical reservations keep a
// valid reference.
type PropertyRepo struct {
    db *sql.DB
}

// NewPropertyRepo returns a PropertyRepo bound to the given database.
func NewPropertyRepo(db *sql.DB) *PropertyRepo { return &PropertyRepo{db: db} }

const propertyColumns = `id, tenant_id, name, property_type, capacity, bedrooms, bathrooms,
    base_price_cents, currency, status, min_stay, max_stay, check_in_time, check_out_time,
    cancellation_policy, is_active, created_at, updated_at`

// Create inserts a new property and populates the generated ID and
// timestamps on the passed record.
func (r *PropertyRepo) Create(ctx context.Context, p *model.Property) error {
    const q = `INSERT INTO properties
        (tenant_id, name, property_type, capacity, bedrooms, bathrooms, base_price_cents,
         currency, status, min_stay, max_stay, check_in_time, check_out_time, cancellation_policy, is_active)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q,
        p.TenantID, p.Name, p.Type, p.Capacity, p.Bedrooms, p.Bathrooms, p.BasePriceCents,
        p.Currency, p.Status, p.MinStay, p.MaxStay, p.CheckInTime, p.CheckOutTime,
        p.CancellationPolicy, p.Active,
    )
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    p.ID = uint64(id)
    return r.db.QueryRowContext(ctx, `SELECT created_at, updated_at FROM properties WHERE id = ?`, p.ID).
        Scan(&p.CreatedAt, &p.UpdatedAt)
}

// GetByID loads a property within the tenant. Returns ErrPropertyNotFound
// when no row matches.
func (r *PropertyRepo) GetByID(ctx context.Context, tenantID string, id uint64) (*model.Property, error) {
    q := `SELECT ` + propertyColumns + ` FROM properties WHERE tenant_id = ? AND id = ?`
    var p model.Property
    err := r.db.QueryRowContext(ctx, q, tenantID, id).Scan(
        &p.ID, &p.TenantID, &p.Name, &p.Type, &p.Capacity, &p.Bedrooms, &p.Bathrooms,
        &p.BasePriceCents, &p.Currency, &p.Status, &p.MinStay, &p.MaxStay,
        &p.CheckInTime, &p.CheckOutTime, &p.CancellationPolicy, &p.Active,
        &p.CreatedAt, &p.UpdatedAt,
    )
    if err == sql.ErrNoRows {
        return nil, ErrPropertyNotFound
    }
    if err != nil {
        return nil, err
    }
    return &p, nil
}

// List returns the tenant's properties ordered by name. When activeOnly is
// set, retired and deactivated units are filtered out; the guest-facing
// availability search uses that form.
func (r *PropertyRepo) List(ctx context.Context, tenantID string, activeOnly bool) ([]model.Property, error) {
    q := `SELECT ` + propertyColumns + ` FROM properties WHERE tenant_id = ?`
    if activeOnly {
        q += ` AND is_active = 1 AND status = 'available'`
    }
    q += ` ORDER BY name`
    rows, err := r.db.QueryContext(ctx, q, tenantID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Property, 0)
    for rows.Next() {
        var p model.Property
        if err := rows.Scan(
            &p.ID, &p.TenantID, &p.Name, &p.Type, &p.Capacity, &p.Bedrooms, &p.Bathrooms,
            &p.BasePriceCents, &p.Currency, &p.Status, &p.MinStay, &p.MaxStay,
            &p.CheckInTime, &p.CheckOutTime, &p.CancellationPolicy, &p.Active,
            &p.CreatedAt, &p.UpdatedAt,
        ); err != nil {
            return nil, err
        }
        out = append(out, p)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// Update persists operator-editable fields of an existing property.
// Returns ErrPropertyNotFound when the row does not exist in the tenant.
func (r *PropertyRepo) Update(ctx context.Context, p *model.Property) error {
    const q = `UPDATE properties SET
        name = ?, property_type = ?, capacity = ?, bedrooms = ?, bathrooms = ?,
        base_price_cents = ?, currency = ?, status = ?, min_stay = ?, max_stay = ?,
        check_in_time = ?, check_out_time = ?, cancellation_policy = ?, is_active = ?
        WHERE tenant_id = ? AND id = ?`
    res, err := r.db.ExecContext(ctx, q,
        p.Name, p.Type, p.Capacity, p.Bedrooms, p.Bathrooms,
        p.BasePriceCents, p.Currency, p.Status, p.MinStay, p.MaxStay,
        p.CheckInTime, p.CheckOutTime, p.CancellationPolicy, p.Active,
        p.TenantID, p.ID,
    )
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        // RowsAffected is also 0 on a no-change update; confirm existence
        // before reporting not found.
        if _, err := r.GetByID(ctx, p.TenantID, p.ID); err != nil {
            return err
        }
    }
    return nil
}

// Retire soft-deletes a property by flipping it to the retired status and
// clearing the active flag. Existing reservations keep referencing it.
func (r *PropertyRepo) Retire(ctx context.Context, tenantID string, id uint64) error {
    const q = `UPDATE properties SET status = 'retired', is_active = 0 WHERE tenant_id = ? AND id = ?`
    res, err := r.db.ExecContext(ctx, q, tenantID, id)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        if _, err := r.GetByID(ctx, tenantID, id); err != nil {
            return err
        }
    }
    return nil
}
