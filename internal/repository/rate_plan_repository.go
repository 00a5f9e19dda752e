package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/iliyamo/property-stay-reservation/internal/model"
)

// RatePlanRepo persists the pricing override catalog. Plans carry their
// weekday modifiers (at most seven rows each); the repository always loads
// them together so the pricing engine can work on a complete plan.
type RatePlanRepo struct {
    db *sql.DB
}

// NewRatePlanRepo returns a RatePlanRepo bound to the given database.
func NewRatePlanRepo(db *sql.DB) *RatePlanRepo { return &RatePlanRepo{db: db} }

// Create inserts a plan and its modifiers. The two inserts run inside one
// transaction so a half-written plan never becomes visible to pricing.
func (r *RatePlanRepo) Create(ctx context.Context, p *model.RatePlan) error {
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
    const q = `INSERT INTO rate_plans
        (tenant_id, property_id, name, start_date, end_date, nightly_price_cents, currency, priority, min_stay, is_active)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
    res, err := tx.ExecContext(ctx, q,
        p.TenantID, p.PropertyID, p.Name, p.StartDate, p.EndDate,
        p.NightlyPriceCents, p.Currency, p.Priority, p.MinStay, p.Active,
    )
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    p.ID = uint64(id)
    if err := insertModifiersTx(ctx, tx, p.ID, p.Modifiers); err != nil {
        return err
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    for i := range p.Modifiers {
        p.Modifiers[i].RatePlanID = p.ID
    }
    return nil
}

// Update rewrites a plan's fields and replaces its modifier set. Returns
// ErrRatePlanNotFound when the plan does not exist in the tenant.
func (r *RatePlanRepo) Update(ctx context.Context, p *model.RatePlan) error {
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
    const q = `UPDATE rate_plans SET
        name = ?, start_date = ?, end_date = ?, nightly_price_cents = ?, currency = ?,
        priority = ?, min_stay = ?, is_active = ?
        WHERE tenant_id = ? AND id = ?`
    res, err := tx.ExecContext(ctx, q,
        p.Name, p.StartDate, p.EndDate, p.NightlyPriceCents, p.Currency,
        p.Priority, p.MinStay, p.Active, p.TenantID, p.ID,
    )
    if err != nil {
        return err
    }
    if n, err := res.RowsAffected(); err != nil {
        return err
    } else if n == 0 {
        var exists int
        err := tx.QueryRowContext(ctx, `SELECT 1 FROM rate_plans WHERE tenant_id = ? AND id = ?`, p.TenantID, p.ID).Scan(&exists)
        if err == sql.ErrNoRows {
            return ErrRatePlanNotFound
        }
        if err != nil {
            return err
        }
    }
    if _, err := tx.ExecContext(ctx, `DELETE FROM rate_plan_modifiers WHERE rate_plan_id = ?`, p.ID); err != nil {
        return err
    }
    if err := insertModifiersTx(ctx, tx, p.ID, p.Modifiers); err != nil {
        return err
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

// Delete removes a plan and, via cascade, its modifiers. Reservations
// priced under the plan are unaffected: their snapshots are frozen.
func (r *RatePlanRepo) Delete(ctx context.Context, tenantID string, id uint64) error {
    res, err := r.db.ExecContext(ctx, `DELETE FROM rate_plans WHERE tenant_id = ? AND id = ?`, tenantID, id)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrRatePlanNotFound
    }
    return nil
}

// ListForStay returns the active plans of a property whose inclusive date
// ranges intersect the half-open stay [startDate, endDate), modifiers
// included. The orchestrator loads this once per booking and prices each
// night locally from the result.
func (r *RatePlanRepo) ListForStay(ctx context.Context, tenantID string, propertyID uint64, startDate, endDate string) ([]model.RatePlan, error) {
    // A plan [s, e] (inclusive) intersects the stay [start, end) exactly
    // when s < end and e >= start.
    const q = `SELECT id, tenant_id, property_id, name,
                      DATE_FORMAT(start_date, '%Y-%m-%d'), DATE_FORMAT(end_date, '%Y-%m-%d'),
                      nightly_price_cents, currency, priority, min_stay, is_active, created_at, updated_at
               FROM rate_plans
               WHERE tenant_id = ? AND property_id = ? AND is_active = 1
                 AND start_date < ? AND end_date >= ?
               ORDER BY priority DESC, id DESC`
    rows, err := r.db.QueryContext(ctx, q, tenantID, propertyID, endDate, startDate)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    plans, err := scanPlans(rows)
    if err != nil {
        return nil, err
    }
    return r.attachModifiers(ctx, plans)
}

// ListByProperty returns every plan of a property for operator display,
// newest first, active or not.
func (r *RatePlanRepo) ListByProperty(ctx context.Context, tenantID string, propertyID uint64) ([]model.RatePlan, error) {
    const q = `SELECT id, tenant_id, property_id, name,
                      DATE_FORMAT(start_date, '%Y-%m-%d'), DATE_FORMAT(end_date, '%Y-%m-%d'),
                      nightly_price_cents, currency, priority, min_stay, is_active, created_at, updated_at
               FROM rate_plans
               WHERE tenant_id = ? AND property_id = ?
               ORDER BY id DESC`
    rows, err := r.db.QueryContext(ctx, q, tenantID, propertyID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    plans, err := scanPlans(rows)
    if err != nil {
        return nil, err
    }
    return r.attachModifiers(ctx, plans)
}

func scanPlans(rows *sql.Rows) ([]model.RatePlan, error) {
    plans := make([]model.RatePlan, 0)
    for rows.Next() {
        var p model.RatePlan
        if err := rows.Scan(
            &p.ID, &p.TenantID, &p.PropertyID, &p.Name,
            &p.StartDate, &p.EndDate,
            &p.NightlyPriceCents, &p.Currency, &p.Priority, &p.MinStay, &p.Active,
            &p.CreatedAt, &p.UpdatedAt,
        ); err != nil {
            return nil, err
        }
        p.Modifiers = []model.RatePlanModifier{}
        plans = append(plans, p)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return plans, nil
}

// attachModifiers loads the modifier rows for all plans in one query.
func (r *RatePlanRepo) attachModifiers(ctx context.Context, plans []model.RatePlan) ([]model.RatePlan, error) {
    if len(plans) == 0 {
        return plans, nil
    }
    index := make(map[uint64]int, len(plans))
    ids := make([]interface{}, 0, len(plans))
    placeholders := make([]string, 0, len(plans))
    for i, p := range plans {
        index[p.ID] = i
        ids = append(ids, p.ID)
        placeholders = append(placeholders, "?")
    }
    query := `SELECT id, rate_plan_id, weekday, percent FROM rate_plan_modifiers
              WHERE rate_plan_id IN (` + strings.Join(placeholders, ",") + `)
              ORDER BY rate_plan_id, weekday`
    rows, err := r.db.QueryContext(ctx, query, ids...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    for rows.Next() {
        var m model.RatePlanModifier
        if err := rows.Scan(&m.ID, &m.RatePlanID, &m.Weekday, &m.Percent); err != nil {
            return nil, err
        }
        if i, ok := index[m.RatePlanID]; ok {
            plans[i].Modifiers = append(plans[i].Modifiers, m)
        }
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return plans, nil
}

func insertModifiersTx(ctx context.Context, tx *sql.Tx, planID uint64, mods []model.RatePlanModifier) error {
    if len(mods) == 0 {
        return nil
    }
    query := `INSERT INTO rate_plan_modifiers (rate_plan_id, weekday, percent) VALUES `
    args := make([]interface{}, 0, len(mods)*3)
    for i, m := range mods {
        if i > 0 {
            query += ","
        }
        query += "(?, ?, ?)"
        args = append(args, planID, m.Weekday, m.Percent)
    }
    _, err := tx.ExecContext(ctx, query, args...)
    return err
}
