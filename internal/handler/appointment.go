package handler

import (
    "context"
    "errors"
    "log"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "smart-appointments/internal/booking"
    "smart-appointments/internal/model"
    "smart-appointments/internal/queue"
    "smart-appointments/internal/repository"
)

// AppointmentStore is the persistence surface the appointment
// handlers need.  *repository.AppointmentRepo satisfies it; tests
// substitute an in-memory fake.
type AppointmentStore interface {
    Create(ctx context.Context, a *model.Appointment) error
    GetByID(ctx context.Context, id uint64) (model.Appointment, error)
    GetDetailByID(ctx context.Context, id uint64) (repository.AppointmentDetail, error)
    ListByDay(ctx context.Context, startUTC, endUTC time.Time) ([]repository.AppointmentDetail, error)
    UpdateTimes(ctx context.Context, id uint64, startUTC, endUTC time.Time) error
    UpdateStatus(ctx context.Context, id uint64, status model.Status) error
    HasBookedOnDay(ctx context.Context, orgID, customerID uint64, dayStartUTC, dayEndUTC time.Time) (bool, error)
}

// CustomerStore resolves and creates customers during booking.
type CustomerStore interface {
    FindByIdentity(ctx context.Context, first, last, phone string) (model.Customer, error)
    Create(ctx context.Context, c *model.Customer) error
}

// AppointmentHandler implements the booking operations: day listing,
// creation with customer dedup and the soft one-per-day conflict
// check, reschedule and cancel.  Each request runs its own
// independent round trips against the store; the multi-step booking
// flow is intentionally not wrapped in one transaction, preserving
// the soft (race-prone) nature of the conflict check.
type AppointmentHandler struct {
    Appointments  AppointmentStore
    Customers     CustomerStore
    Organizations OrganizationStore
    Staff         StaffStore

    // Publish sends a lifecycle event to the broker; nil disables
    // publishing.  Failures are logged by the publisher and ignored
    // here so the booking flow never depends on the broker.
    Publish func(ctx context.Context, ev queue.AppointmentEvent) error
}

// NewAppointmentHandler constructs an AppointmentHandler and panics
// if any store is nil.
func NewAppointmentHandler(appointments AppointmentStore, customers CustomerStore, organizations OrganizationStore, staff StaffStore) *AppointmentHandler {
    if appointments == nil || customers == nil || organizations == nil || staff == nil {
        panic("nil store passed to NewAppointmentHandler")
    }
    return &AppointmentHandler{
        Appointments:  appointments,
        Customers:     customers,
        Organizations: organizations,
        Staff:         staff,
    }
}

// appointmentResponse is the wire shape of an appointment with its
// related names resolved.  Timestamps are RFC3339 rendered in the
// caller's requested zone.
type appointmentResponse struct {
    ID             uint64  `json:"id"`
    OrganizationID uint64  `json:"organization_id"`
    Organization   string  `json:"organization"`
    CustomerID     uint64  `json:"customer_id"`
    Customer       string  `json:"customer"`
    StaffID        uint64  `json:"staff_id"`
    Staff          string  `json:"staff"`
    ServiceType    string  `json:"service_type"`
    StartTime      string  `json:"start_time"`
    EndTime        string  `json:"end_time"`
    Status         string  `json:"status"`
    Notes          *string `json:"notes,omitempty"`
}

func toResponse(d repository.AppointmentDetail, loc *time.Location) appointmentResponse {
    return appointmentResponse{
        ID:             d.ID,
        OrganizationID: d.OrganizationID,
        Organization:   d.OrganizationName,
        CustomerID:     d.CustomerID,
        Customer:       d.CustomerName,
        StaffID:        d.StaffID,
        Staff:          d.StaffName,
        ServiceType:    d.ServiceType,
        StartTime:      d.StartTime.In(loc).Format(time.RFC3339),
        EndTime:        d.EndTime.In(loc).Format(time.RFC3339),
        Status:         d.Status.String(),
        Notes:          d.Notes,
    }
}

// ListDay handles GET /v1/appointments?date=YYYY-MM-DD&tz=Area/City.
// The calendar day is interpreted in the requested zone, converted to
// the half-open UTC window [day, day+1d), and every appointment whose
// start instant falls inside is returned ordered by start time.
// Cancelled appointments are not filtered out; their status shows as
// Cancelled.
func (h *AppointmentHandler) ListDay(c echo.Context) error {
    dateStr := c.QueryParam("date")
    if dateStr == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "date query parameter is required"})
    }
    loc, err := requestLocation(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown time zone"})
    }
    day, err := booking.ParseDay(dateStr, loc)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be formatted YYYY-MM-DD"})
    }
    startUTC, endUTC := booking.DayWindow(day)

    details, err := h.Appointments.ListByDay(c.Request().Context(), startUTC, endUTC)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    items := make([]appointmentResponse, 0, len(details))
    for _, d := range details {
        items = append(items, toResponse(d, loc))
    }
    return c.JSON(http.StatusOK, echo.Map{
        "date":         dateStr,
        "timezone":     loc.String(),
        "appointments": items,
    })
}

// Get handles GET /v1/appointments/:id and returns one appointment
// with its organization, customer and staff names resolved.
func (h *AppointmentHandler) Get(c echo.Context) error {
    id, err := parseID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid appointment id"})
    }
    loc, err := requestLocation(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown time zone"})
    }
    d, err := h.Appointments.GetDetailByID(c.Request().Context(), id)
    if err != nil {
        if errors.Is(err, repository.ErrAppointmentNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "appointment not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, toResponse(d, loc))
}

type bookRequest struct {
    OrganizationID uint64    `json:"organization_id" validate:"required"`
    StaffID        uint64    `json:"staff_id" validate:"required"`
    FirstName      string    `json:"first_name"`
    LastName       string    `json:"last_name"`
    Phone          string    `json:"phone"`
    Email          string    `json:"email" validate:"omitempty,email"`
    ServiceType    string    `json:"service_type"`
    StartTime      time.Time `json:"start_time" validate:"required"`
    EndTime        time.Time `json:"end_time" validate:"required"`
    Notes          string    `json:"notes"`
}

// Book handles POST /v1/appointments.  Validation happens before any
// write, in a fixed order: customer names, service type, then the
// time interval.  The customer is resolved by exact
// (first, last, phone) match and created when absent; that insert
// commits before the conflict check runs.  The soft check rejects the
// booking when the customer already holds a Booked appointment at the
// same organization on the same UTC calendar day.  Times are stored
// as UTC instants regardless of the offset the client sent.
func (h *AppointmentHandler) Book(c echo.Context) error {
    var body bookRequest
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if err := c.Validate(&body); err != nil {
        return err
    }

    first := strings.TrimSpace(body.FirstName)
    last := strings.TrimSpace(body.LastName)
    phone := strings.TrimSpace(body.Phone)
    service := strings.TrimSpace(body.ServiceType)

    if first == "" || last == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "enter the customer's first and last name"})
    }
    if service == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "enter a service type (e.g. Eye Exam, Road Test, Account Opening)"})
    }
    if !body.EndTime.After(body.StartTime) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "end time must be after start time"})
    }

    ctx := c.Request().Context()
    org, err := h.Organizations.GetByID(ctx, body.OrganizationID)
    if err != nil {
        if errors.Is(err, repository.ErrOrganizationNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "organization not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    staff, err := h.Staff.GetByID(ctx, body.StaffID)
    if err != nil {
        if errors.Is(err, repository.ErrStaffNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "staff member not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if staff.OrganizationID != org.ID {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "staff member does not belong to this organization"})
    }

    // Find-or-create the customer.  The insert commits on its own
    // before the conflict check below; the booking flow is three
    // separate round trips, not one transaction.
    customer, err := h.Customers.FindByIdentity(ctx, first, last, phone)
    if errors.Is(err, repository.ErrCustomerNotFound) {
        customer = model.Customer{FirstName: first, LastName: last, Phone: phone}
        if email := strings.TrimSpace(body.Email); email != "" {
            customer.Email = &email
        }
        if err := h.Customers.Create(ctx, &customer); err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
        }
    } else if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    startUTC := body.StartTime.UTC()
    endUTC := body.EndTime.UTC()

    dayStart, dayEnd := booking.UTCDayWindow(startUTC)
    conflict, err := h.Appointments.HasBookedOnDay(ctx, org.ID, customer.ID, dayStart, dayEnd)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if conflict {
        return c.JSON(http.StatusConflict, echo.Map{"error": "this customer already has a booked appointment that day for this organization"})
    }

    appt := model.Appointment{
        OrganizationID: org.ID,
        CustomerID:     customer.ID,
        StaffID:        staff.ID,
        ServiceType:    service,
        StartTime:      startUTC,
        EndTime:        endUTC,
        Status:         model.StatusBooked,
    }
    if notes := strings.TrimSpace(body.Notes); notes != "" {
        appt.Notes = &notes
    }
    if err := h.Appointments.Create(ctx, &appt); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    h.publish(ctx, queue.EventAppointmentBooked, repository.AppointmentDetail{
        ID:               appt.ID,
        OrganizationID:   org.ID,
        OrganizationName: org.Name,
        CustomerID:       customer.ID,
        CustomerName:     customer.FirstName + " " + customer.LastName,
        StaffID:          staff.ID,
        StaffName:        staff.Name,
        ServiceType:      service,
        StartTime:        startUTC,
        EndTime:          endUTC,
        Status:           model.StatusBooked,
    })

    return c.JSON(http.StatusCreated, appointmentResponse{
        ID:             appt.ID,
        OrganizationID: org.ID,
        Organization:   org.Name,
        CustomerID:     customer.ID,
        Customer:       customer.FirstName + " " + customer.LastName,
        StaffID:        staff.ID,
        Staff:          staff.Name,
        ServiceType:    service,
        StartTime:      startUTC.Format(time.RFC3339),
        EndTime:        endUTC.Format(time.RFC3339),
        Status:         appt.Status.String(),
        Notes:          appt.Notes,
    })
}

type rescheduleRequest struct {
    StartTime time.Time `json:"start_time" validate:"required"`
    EndTime   time.Time `json:"end_time" validate:"required"`
}

// Reschedule handles POST /v1/appointments/:id/reschedule.  Only the
// start and end instants are overwritten; status and the three
// foreign keys are untouched, and the one-booking-per-day check is
// not re-run.
func (h *AppointmentHandler) Reschedule(c echo.Context) error {
    id, err := parseID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid appointment id"})
    }
    var body rescheduleRequest
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if err := c.Validate(&body); err != nil {
        return err
    }
    if !body.EndTime.After(body.StartTime) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "end time must be after start time"})
    }

    ctx := c.Request().Context()
    if _, err := h.Appointments.GetByID(ctx, id); err != nil {
        if errors.Is(err, repository.ErrAppointmentNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "appointment not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    startUTC := body.StartTime.UTC()
    endUTC := body.EndTime.UTC()
    if err := h.Appointments.UpdateTimes(ctx, id, startUTC, endUTC); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "id":         id,
        "start_time": startUTC.Format(time.RFC3339),
        "end_time":   endUTC.Format(time.RFC3339),
    })
}

// Cancel handles POST /v1/appointments/:id/cancel.  It sets the
// status to Cancelled and nothing else; cancelling an already
// cancelled appointment succeeds again with no error.
func (h *AppointmentHandler) Cancel(c echo.Context) error {
    id, err := parseID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid appointment id"})
    }
    ctx := c.Request().Context()
    d, err := h.Appointments.GetDetailByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrAppointmentNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "appointment not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if err := h.Appointments.UpdateStatus(ctx, id, model.StatusCancelled); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    d.Status = model.StatusCancelled
    h.publish(ctx, queue.EventAppointmentCancelled, d)

    return c.JSON(http.StatusOK, echo.Map{"id": id, "status": model.StatusCancelled.String()})
}

// publish emits a lifecycle event when a publisher is configured.
// Broker failures are logged inside the publisher and deliberately
// ignored: the store write already succeeded.
func (h *AppointmentHandler) publish(ctx context.Context, eventType string, d repository.AppointmentDetail) {
    if h.Publish == nil {
        return
    }
    ev := queue.AppointmentEvent{
        Type:             eventType,
        AppointmentID:    d.ID,
        OrganizationID:   d.OrganizationID,
        OrganizationName: d.OrganizationName,
        CustomerID:       d.CustomerID,
        CustomerName:     d.CustomerName,
        StaffID:          d.StaffID,
        StaffName:        d.StaffName,
        ServiceType:      d.ServiceType,
        StartsAt:         d.StartTime.UTC().Format(time.RFC3339),
        EndsAt:           d.EndTime.UTC().Format(time.RFC3339),
        Status:           d.Status.String(),
        OccurredAt:       time.Now().UTC().Format(time.RFC3339),
    }
    if err := h.Publish(ctx, ev); err != nil {
        log.Printf("appointment handler: publish %s failed: %v", eventType, err)
    }
}
