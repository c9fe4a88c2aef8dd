package repository

import (
    "context"
    "database/sql"
    "errors"

    "smart-appointments/internal/model"
)

// ErrOrganizationNotFound is returned when no organization exists
// with the requested ID.
var ErrOrganizationNotFound = errors.New("organization not found")

// OrganizationRepo provides read access to the organizations table.
// Organizations are seeded once at startup and referenced by staff
// and appointments; the application never deletes them.
type OrganizationRepo struct {
    db *sql.DB
}

// NewOrganizationRepo returns a new OrganizationRepo bound to the given database.
func NewOrganizationRepo(db *sql.DB) *OrganizationRepo { return &OrganizationRepo{db: db} }

// List returns all organizations ordered by name, for populating
// lookup pickers.
func (r *OrganizationRepo) List(ctx context.Context) ([]model.Organization, error) {
    const q = `SELECT id, name, location FROM organizations ORDER BY name`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    orgs := make([]model.Organization, 0)
    for rows.Next() {
        var o model.Organization
        var location sql.NullString
        if err := rows.Scan(&o.ID, &o.Name, &location); err != nil {
            return nil, err
        }
        if location.Valid {
            loc := location.String
            o.Location = &loc
        }
        orgs = append(orgs, o)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return orgs, nil
}

// GetByID returns a single organization or ErrOrganizationNotFound.
func (r *OrganizationRepo) GetByID(ctx context.Context, id uint64) (model.Organization, error) {
    const q = `SELECT id, name, location FROM organizations WHERE id = ?`
    var o model.Organization
    var location sql.NullString
    err := r.db.QueryRowContext(ctx, q, id).Scan(&o.ID, &o.Name, &location)
    if err == sql.ErrNoRows {
        return model.Organization{}, ErrOrganizationNotFound
    }
    if err != nil {
        return model.Organization{}, err
    }
    if location.Valid {
        loc := location.String
        o.Location = &loc
    }
    return o, nil
}
