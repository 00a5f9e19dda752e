package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/iliyamo/property-stay-reservation/internal/model"
)

// AddOnRepo persists the optional-extras catalog.
type AddOnRepo struct {
    db *sql.DB
}

// NewAddOnRepo returns an AddOnRepo bound to the given database.
func NewAddOnRepo(db *sql.DB) *AddOnRepo { return &AddOnRepo{db: db} }

// Create inserts an add-on and populates the generated ID on the record.
func (r *AddOnRepo) Create(ctx context.Context, a *model.AddOn) error {
    const q = `INSERT INTO addons (tenant_id, name, price_cents, currency, basis, category, is_active, sort_order)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q,
        a.TenantID, a.Name, a.PriceCents, a.Currency, a.Basis, a.Category, a.Active, a.SortOrder,
    )
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    a.ID = uint64(id)
    return nil
}

// Update rewrites an add-on's operator-editable fields. Returns
// ErrAddOnNotFound when the row does not exist in the tenant.
func (r *AddOnRepo) Update(ctx context.Context, a *model.AddOn) error {
    const q = `UPDATE addons SET name = ?, price_cents = ?, currency = ?, basis = ?, category = ?, is_active = ?, sort_order = ?
               WHERE tenant_id = ? AND id = ?`
    res, err := r.db.ExecContext(ctx, q,
        a.Name, a.PriceCents, a.Currency, a.Basis, a.Category, a.Active, a.SortOrder,
        a.TenantID, a.ID,
    )
    if err != nil {
        return err
    }
    if n, err := res.RowsAffected(); err != nil {
        return err
    } else if n == 0 {
        var exists int
        err := r.db.QueryRowContext(ctx, `SELECT 1 FROM addons WHERE tenant_id = ? AND id = ?`, a.TenantID, a.ID).Scan(&exists)
        if err == sql.ErrNoRows {
            return ErrAddOnNotFound
        }
        if err != nil {
            return err
        }
    }
    return nil
}

// List returns the tenant's add-ons in operator-defined sort order.
func (r *AddOnRepo) List(ctx context.Context, tenantID string, activeOnly bool) ([]model.AddOn, error) {
    q := `SELECT id, tenant_id, name, price_cents, currency, basis, category, is_active, sort_order, created_at
          FROM addons WHERE tenant_id = ?`
    if activeOnly {
        q += ` AND is_active = 1`
    }
    q += ` ORDER BY sort_order, id`
    rows, err := r.db.QueryContext(ctx, q, tenantID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    return scanAddOns(rows)
}

// GetActiveByIDs loads the active add-ons matching the given IDs. When any
// requested ID is missing or inactive the whole lookup fails with
// ErrAddOnNotFound, so a booking can never silently drop an extra the
// guest asked for.
func (r *AddOnRepo) GetActiveByIDs(ctx context.Context, tenantID string, ids []uint64) ([]model.AddOn, error) {
    if len(ids) == 0 {
        return []model.AddOn{}, nil
    }
    placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
    query := `SELECT id, tenant_id, name, price_cents, currency, basis, category, is_active, sort_order, created_at
              FROM addons WHERE tenant_id = ? AND is_active = 1 AND id IN (` + placeholders + `)`
    args := make([]interface{}, 0, len(ids)+1)
    args = append(args, tenantID)
    for _, id := range ids {
        args = append(args, id)
    }
    rows, err := r.db.QueryContext(ctx, query, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    found, err := scanAddOns(rows)
    if err != nil {
        return nil, err
    }
    if len(found) != len(ids) {
        return nil, ErrAddOnNotFound
    }
    return found, nil
}

func scanAddOns(rows *sql.Rows) ([]model.AddOn, error) {
    out := make([]model.AddOn, 0)
    for rows.Next() {
        var a model.AddOn
        if err := rows.Scan(
            &a.ID, &a.TenantID, &a.Name, &a.PriceCents, &a.Currency,
            &a.Basis, &a.Category, &a.Active, &a.SortOrder, &a.CreatedAt,
        ); err != nil {
            return nil, err
        }
        out = append(out, a)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}
