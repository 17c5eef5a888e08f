package repos

import (
    "context"
    "fmt"
    "time"

    "gorm.io/gorm"
    "gorm.io/gorm/clause"
)

// CascadeRule declares that rows of Dependent referencing Owner through
// ForeignKey follow the owner's lifecycle.
type CascadeRule struct {
    Owner          string
    Dependent      string
    ForeignKey     string
    OnSoftDelete   bool
    OnForceDelete  bool
}

// PivotRule names a join table column whose rows go away when the owner is
// force deleted.
type PivotRule struct {
    Owner   string
    Table   string
    Column  string
}

type CascadePolicy struct {
    Rules   []CascadeRule
    Pivots  []PivotRule
}

var DefaultCascadePolicy = CascadePolicy{
    Rules: []CascadeRule{
        {Owner: "companies", Dependent: "stores", ForeignKey: "fk_companie", OnSoftDelete: true, OnForceDelete: true},
        {Owner: "stores", Dependent: "assets", ForeignKey: "fk_store", OnSoftDelete: true, OnForceDelete: true},
    },
    Pivots: []PivotRule{
        {Owner: "companies", Table: "company_contacts", Column: "company_id"},
        {Owner: "stores", Table: "store_contacts", Column: "store_id"},
        {Owner: "stores", Table: "store_addresses", Column: "store_id"},
        {Owner: "agencies", Table: "agency_contacts", Column: "agency_id"},
        {Owner: "exhibitors", Table: "exhibitor_contacts", Column: "exhibitor_id"},
        {Owner: "brands", Table: "brand_contacts", Column: "brand_id"},
        {Owner: "contacts", Table: "company_contacts", Column: "contact_id"},
        {Owner: "contacts", Table: "store_contacts", Column: "contact_id"},
        {Owner: "contacts", Table: "agency_contacts", Column: "contact_id"},
        {Owner: "contacts", Table: "exhibitor_contacts", Column: "contact_id"},
        {Owner: "contacts", Table: "brand_contacts", Column: "contact_id"},
        {Owner: "addresses", Table: "store_addresses", Column: "address_id"},
        {Owner: "roles", Table: "role_permissions", Column: "role_id"},
        {Owner: "roles", Table: "user_roles", Column: "role_id"},
        {Owner: "permissions", Table: "role_permissions", Column: "permission_id"},
        {Owner: "permissions", Table: "user_permissions", Column: "permission_id"},
        {Owner: "users", Table: "user_roles", Column: "user_id"},
        {Owner: "users", Table: "user_permissions", Column: "user_id"},
    },
}

func (p CascadePolicy) dependents(owner string, soft bool) []CascadeRule {
    var out []CascadeRule
    for _, r := range p.Rules {
        if r.Owner != owner {
            continue
        }
        if (soft && r.OnSoftDelete) || (!soft && r.OnForceDelete) {
            out = append(out, r)
        }
    }
    return out
}

// SoftDelete stamps deleted_at on every live dependent of the given owner
// rows, depth first. The owner rows themselves are left to the caller.
func (p CascadePolicy) SoftDelete(ctx context.Context, tx *gorm.DB, owner string, ids []uint) error {
    if len(ids) == 0 {
        return nil
    }
    now := time.Now()
    for _, rule := range p.dependents(owner, true) {
        var depIDs []uint
        if err := tx.WithContext(ctx).Table(rule.Dependent).
            Where(clause.IN{Column: clause.Column{Name: rule.ForeignKey}, Values: toValues(ids)}).
            Where(clause.Eq{Column: clause.Column{Name: "deleted_at"}, Value: nil}).
            Pluck("id", &depIDs).Error; err != nil {
            return fmt.Errorf("collect %s of %s: %w", rule.Dependent, owner, err)
        }
        if len(depIDs) == 0 {
            continue
        }
        if err := p.SoftDelete(ctx, tx, rule.Dependent, depIDs); err != nil {
            return err
        }
        if err := tx.WithContext(ctx).Table(rule.Dependent).
            Where(clause.IN{Column: clause.Column{Name: "id"}, Values: toValues(depIDs)}).
            Update("deleted_at", now).Error; err != nil {
            return fmt.Errorf("soft delete %s: %w", rule.Dependent, err)
        }
    }
    return nil
}

// ForceDelete removes dependents (trashed or not) and pivot rows of the
// given owner rows, depth first. The owner rows themselves are left to the caller.
func (p CascadePolicy) ForceDelete(ctx context.Context, tx *gorm.DB, owner string, ids []uint) error {
    if len(ids) == 0 {
        return nil
    }
    for _, rule := range p.dependents(owner, false) {
        var depIDs []uint
        if err := tx.WithContext(ctx).Table(rule.Dependent).
            Where(clause.IN{Column: clause.Column{Name: rule.ForeignKey}, Values: toValues(ids)}).
            Pluck("id", &depIDs).Error; err != nil {
            return fmt.Errorf("collect %s of %s: %w", rule.Dependent, owner, err)
        }
        if len(depIDs) == 0 {
            continue
        }
        if err := p.ForceDelete(ctx, tx, rule.Dependent, depIDs); err != nil {
            return err
        }
        if err := deleteWhereIn(ctx, tx, rule.Dependent, "id", depIDs); err != nil {
            return fmt.Errorf("force delete %s: %w", rule.Dependent, err)
        }
    }
    for _, pivot := range p.Pivots {
        if pivot.Owner != owner {
            continue
        }
        if err := deleteWhereIn(ctx, tx, pivot.Table, pivot.Column, ids); err != nil {
            return fmt.Errorf("clear pivot %s: %w", pivot.Table, err)
        }
    }
    return nil
}

func deleteWhereIn(ctx context.Context, tx *gorm.DB, table, column string, ids []uint) error {
    return tx.WithContext(ctx).Exec(
        "DELETE FROM ? WHERE ? IN ?",
        clause.Table{Name: table}, clause.Column{Name: column}, ids,
    ).Error
}

func toValues(ids []uint) []any {
    out := make([]any, len(ids))
    for i, id := range ids {
        out[i] = id
    }
    return out
}
