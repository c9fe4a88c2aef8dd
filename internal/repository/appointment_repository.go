package repository

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "smart-appointments/internal/model"
)

// ErrAppointmentNotFound is returned when no appointment exists with
// the requested ID.
var ErrAppointmentNotFound = errors.New("appointment not found")

// AppointmentRepo provides access to the appointments table.  All
// timestamp columns are stored in UTC; callers pass UTC instants and
// receive UTC instants back.  Appointments are never hard-deleted:
// reschedule overwrites the times and cancel overwrites the status.
type AppointmentRepo struct {
    db *sql.DB
}

// NewAppointmentRepo returns a new AppointmentRepo bound to the given database.
func NewAppointmentRepo(db *sql.DB) *AppointmentRepo { return &AppointmentRepo{db: db} }

// AppointmentDetail is an appointment row with the names of its
// organization, customer and staff resolved in the same query.  The
// day listing and single-appointment reads return this shape so the
// caller never walks the object graph lazily.
type AppointmentDetail struct {
    ID               uint64
    OrganizationID   uint64
    OrganizationName string
    CustomerID       uint64
    CustomerName     string
    StaffID          uint64
    StaffName        string
    ServiceType      string
    StartTime        time.Time
    EndTime          time.Time
    Status           model.Status
    Notes            *string
}

const detailColumns = `a.id, a.organization_id, o.name,
       a.customer_id, CONCAT(c.first_name, ' ', c.last_name),
       a.staff_id, s.name,
       a.service_type, a.start_time, a.end_time, a.status, a.notes`

const detailJoins = `FROM appointments a
       JOIN organizations o ON o.id = a.organization_id
       JOIN customers c ON c.id = a.customer_id
       JOIN staff s ON s.id = a.staff_id`

func scanDetail(scan func(dest ...any) error) (AppointmentDetail, error) {
    var d AppointmentDetail
    var status string
    var notes sql.NullString
    err := scan(
        &d.ID, &d.OrganizationID, &d.OrganizationName,
        &d.CustomerID, &d.CustomerName,
        &d.StaffID, &d.StaffName,
        &d.ServiceType, &d.StartTime, &d.EndTime, &status, &notes,
    )
    if err != nil {
        return AppointmentDetail{}, err
    }
    d.Status = model.Status(status)
    if notes.Valid {
        n := notes.String
        d.Notes = &n
    }
    d.StartTime = d.StartTime.UTC()
    d.EndTime = d.EndTime.UTC()
    return d, nil
}

// Create inserts a new appointment and populates the generated ID on
// the provided record.  Times are normalized to UTC before hitting
// the store.
func (r *AppointmentRepo) Create(ctx context.Context, a *model.Appointment) error {
    const q = `INSERT INTO appointments
               (organization_id, customer_id, staff_id, service_type, start_time, end_time, status, notes)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
    var notes sql.NullString
    if a.Notes != nil {
        notes = sql.NullString{String: *a.Notes, Valid: true}
    }
    res, err := r.db.ExecContext(ctx, q,
        a.OrganizationID, a.CustomerID, a.StaffID, a.ServiceType,
        a.StartTime.UTC(), a.EndTime.UTC(), a.Status.String(), notes,
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

// GetByID returns the raw appointment row or ErrAppointmentNotFound.
func (r *AppointmentRepo) GetByID(ctx context.Context, id uint64) (model.Appointment, error) {
    const q = `SELECT id, organization_id, customer_id, staff_id, service_type,
                      start_time, end_time, status, notes
               FROM appointments WHERE id = ?`
    var a model.Appointment
    var status string
    var notes sql.NullString
    err := r.db.QueryRowContext(ctx, q, id).Scan(
        &a.ID, &a.OrganizationID, &a.CustomerID, &a.StaffID, &a.ServiceType,
        &a.StartTime, &a.EndTime, &status, &notes,
    )
    if err == sql.ErrNoRows {
        return model.Appointment{}, ErrAppointmentNotFound
    }
    if err != nil {
        return model.Appointment{}, err
    }
    a.Status = model.Status(status)
    if notes.Valid {
        n := notes.String
        a.Notes = &n
    }
    a.StartTime = a.StartTime.UTC()
    a.EndTime = a.EndTime.UTC()
    return a, nil
}

// GetDetailByID returns one appointment with its organization,
// customer and staff names resolved, or ErrAppointmentNotFound.
func (r *AppointmentRepo) GetDetailByID(ctx context.Context, id uint64) (AppointmentDetail, error) {
    q := `SELECT ` + detailColumns + ` ` + detailJoins + ` WHERE a.id = ?`
    d, err := scanDetail(r.db.QueryRowContext(ctx, q, id).Scan)
    if err == sql.ErrNoRows {
        return AppointmentDetail{}, ErrAppointmentNotFound
    }
    return d, err
}

// ListByDay returns every appointment whose UTC start instant falls
// inside the half-open window [startUTC, endUTC), with related names
// resolved eagerly, ordered by start time ascending.  No status
// filter is applied: cancelled appointments still appear in the day
// listing.
func (r *AppointmentRepo) ListByDay(ctx context.Context, startUTC, endUTC time.Time) ([]AppointmentDetail, error) {
    q := `SELECT ` + detailColumns + ` ` + detailJoins + `
          WHERE a.start_time >= ? AND a.start_time < ?
          ORDER BY a.start_time ASC`
    rows, err := r.db.QueryContext(ctx, q, startUTC, endUTC)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    details := make([]AppointmentDetail, 0)
    for rows.Next() {
        d, err := scanDetail(rows.Scan)
        if err != nil {
            return nil, err
        }
        details = append(details, d)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return details, nil
}

// UpdateTimes overwrites the start and end instants of an existing
// appointment, leaving status and all foreign keys untouched.
func (r *AppointmentRepo) UpdateTimes(ctx context.Context, id uint64, startUTC, endUTC time.Time) error {
    const q = `UPDATE appointments SET start_time = ?, end_time = ? WHERE id = ?`
    _, err := r.db.ExecContext(ctx, q, startUTC.UTC(), endUTC.UTC(), id)
    return err
}

// UpdateStatus overwrites the status of an existing appointment.
// Setting the same value again is a no-op, which keeps cancellation
// idempotent.
func (r *AppointmentRepo) UpdateStatus(ctx context.Context, id uint64, status model.Status) error {
    const q = `UPDATE appointments SET status = ? WHERE id = ?`
    _, err := r.db.ExecContext(ctx, q, status.String(), id)
    return err
}

// HasBookedOnDay reports whether the customer already holds a Booked
// appointment at this organization whose start instant falls inside
// the half-open UTC window [dayStartUTC, dayEndUTC).  Cancelled and
// completed rows never count.  This is the soft
// one-booking-per-day check: a plain existence query, not a store
// constraint, so concurrent writers can still race past it.
func (r *AppointmentRepo) HasBookedOnDay(ctx context.Context, orgID, customerID uint64, dayStartUTC, dayEndUTC time.Time) (bool, error) {
    const q = `SELECT EXISTS (
                   SELECT 1 FROM appointments
                   WHERE organization_id = ? AND customer_id = ?
                     AND start_time >= ? AND start_time < ?
                     AND status = ?
               )`
    var exists bool
    err := r.db.QueryRowContext(ctx, q, orgID, customerID, dayStartUTC, dayEndUTC, model.StatusBooked.String()).Scan(&exists)
    if err != nil {
        return false, err
    }
    return exists, nil
}
