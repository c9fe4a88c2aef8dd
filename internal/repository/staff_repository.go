package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "smart-appointments/internal/model"
)

// ErrStaffNotFound is returned when no staff member exists with the
// requested ID.
var ErrStaffNotFound = errors.New("staff not found")

// StaffRepo provides access to the staff table.  Staff rows are
// scoped to one organization and may be added or hard-deleted through
// the staff management endpoints.
type StaffRepo struct {
    db *sql.DB
}

// NewStaffRepo returns a new StaffRepo bound to the given database.
func NewStaffRepo(db *sql.DB) *StaffRepo { return &StaffRepo{db: db} }

// ListByOrganization returns all staff of an organization ordered by
// name, for populating the staff picker.
func (r *StaffRepo) ListByOrganization(ctx context.Context, orgID uint64) ([]model.Staff, error) {
    const q = `SELECT id, organization_id, name, role FROM staff WHERE organization_id = ? ORDER BY name`
    rows, err := r.db.QueryContext(ctx, q, orgID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    staff := make([]model.Staff, 0)
    for rows.Next() {
        var s model.Staff
        if err := rows.Scan(&s.ID, &s.OrganizationID, &s.Name, &s.Role); err != nil {
            return nil, err
        }
        staff = append(staff, s)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return staff, nil
}

// GetByID returns a single staff member or ErrStaffNotFound.
func (r *StaffRepo) GetByID(ctx context.Context, id uint64) (model.Staff, error) {
    const q = `SELECT id, organization_id, name, role FROM staff WHERE id = ?`
    var s model.Staff
    err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.OrganizationID, &s.Name, &s.Role)
    if err == sql.ErrNoRows {
        return model.Staff{}, ErrStaffNotFound
    }
    if err != nil {
        return model.Staff{}, err
    }
    return s, nil
}

// Create inserts a staff row scoped to its organization and populates
// the generated ID on the provided record.
func (r *StaffRepo) Create(ctx context.Context, s *model.Staff) error {
    const q = `INSERT INTO staff (organization_id, name, role) VALUES (?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, s.OrganizationID, s.Name, s.Role)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    s.ID = uint64(id)
    return nil
}

// Delete hard-deletes a staff row.  Appointments reference staff with
// ON DELETE RESTRICT, so the store rejects the delete while any
// appointment still points at the row; that rejection is surfaced as
// ErrConflict rather than pre-checked.  ErrStaffNotFound is returned
// when the row does not exist.
func (r *StaffRepo) Delete(ctx context.Context, id uint64) error {
    res, err := r.db.ExecContext(ctx, `DELETE FROM staff WHERE id = ?`, id)
    if err != nil {
        // MySQL error 1451: cannot delete a parent row referenced by a foreign key
        msg := strings.ToLower(err.Error())
        if strings.Contains(msg, "1451") || strings.Contains(msg, "foreign key constraint") {
            return ErrConflict
        }
        return err
    }
    affected, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if affected == 0 {
        return ErrStaffNotFound
    }
    return nil
}
