package handler

import (
    "bytes"
    "context"
    "encoding/json"
    "io"
    "net/http/httptest"
    "sort"
    "testing"
    "time"

    "github.com/labstack/echo/v4"

    "smart-appointments/internal/model"
    "smart-appointments/internal/repository"
)

// In-memory stand-ins for the repositories, mimicking the store's
// observable behavior including the FK restriction on staff deletion.

type fakeOrgStore struct {
    orgs map[uint64]model.Organization
}

func (f *fakeOrgStore) List(ctx context.Context) ([]model.Organization, error) {
    out := make([]model.Organization, 0, len(f.orgs))
    for _, o := range f.orgs {
        out = append(out, o)
    }
    sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
    return out, nil
}

func (f *fakeOrgStore) GetByID(ctx context.Context, id uint64) (model.Organization, error) {
    o, ok := f.orgs[id]
    if !ok {
        return model.Organization{}, repository.ErrOrganizationNotFound
    }
    return o, nil
}

type fakeStaffStore struct {
    staff  map[uint64]model.Staff
    nextID uint64
    appts  *fakeApptStore
}

func (f *fakeStaffStore) ListByOrganization(ctx context.Context, orgID uint64) ([]model.Staff, error) {
    out := make([]model.Staff, 0)
    for _, s := range f.staff {
        if s.OrganizationID == orgID {
            out = append(out, s)
        }
    }
    sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
    return out, nil
}

func (f *fakeStaffStore) GetByID(ctx context.Context, id uint64) (model.Staff, error) {
    s, ok := f.staff[id]
    if !ok {
        return model.Staff{}, repository.ErrStaffNotFound
    }
    return s, nil
}

func (f *fakeStaffStore) Create(ctx context.Context, s *model.Staff) error {
    f.nextID++
    s.ID = f.nextID
    f.staff[s.ID] = *s
    return nil
}

func (f *fakeStaffStore) Delete(ctx context.Context, id uint64) error {
    if _, ok := f.staff[id]; !ok {
        return repository.ErrStaffNotFound
    }
    if f.appts != nil {
        for _, a := range f.appts.appts {
            if a.StaffID == id {
                return repository.ErrConflict
            }
        }
    }
    delete(f.staff, id)
    return nil
}

type fakeCustomerStore struct {
    customers map[uint64]model.Customer
    nextID    uint64
}

func (f *fakeCustomerStore) FindByIdentity(ctx context.Context, first, last, phone string) (model.Customer, error) {
    for _, c := range f.customers {
        if c.FirstName == first && c.LastName == last && c.Phone == phone {
            return c, nil
        }
    }
    return model.Customer{}, repository.ErrCustomerNotFound
}

func (f *fakeCustomerStore) Create(ctx context.Context, c *model.Customer) error {
    f.nextID++
    c.ID = f.nextID
    f.customers[c.ID] = *c
    return nil
}

type fakeApptStore struct {
    appts     map[uint64]model.Appointment
    nextID    uint64
    orgs      *fakeOrgStore
    staff     *fakeStaffStore
    customers *fakeCustomerStore
}

func (f *fakeApptStore) Create(ctx context.Context, a *model.Appointment) error {
    f.nextID++
    a.ID = f.nextID
    f.appts[a.ID] = *a
    return nil
}

func (f *fakeApptStore) GetByID(ctx context.Context, id uint64) (model.Appointment, error) {
    a, ok := f.appts[id]
    if !ok {
        return model.Appointment{}, repository.ErrAppointmentNotFound
    }
    return a, nil
}

func (f *fakeApptStore) detail(a model.Appointment) repository.AppointmentDetail {
    org := f.orgs.orgs[a.OrganizationID]
    st := f.staff.staff[a.StaffID]
    cu := f.customers.customers[a.CustomerID]
    return repository.AppointmentDetail{
        ID:               a.ID,
        OrganizationID:   a.OrganizationID,
        OrganizationName: org.Name,
        CustomerID:       a.CustomerID,
        CustomerName:     cu.FirstName + " " + cu.LastName,
        StaffID:          a.StaffID,
        StaffName:        st.Name,
        ServiceType:      a.ServiceType,
        StartTime:        a.StartTime,
        EndTime:          a.EndTime,
        Status:           a.Status,
        Notes:            a.Notes,
    }
}

func (f *fakeApptStore) GetDetailByID(ctx context.Context, id uint64) (repository.AppointmentDetail, error) {
    a, ok := f.appts[id]
    if !ok {
        return repository.AppointmentDetail{}, repository.ErrAppointmentNotFound
    }
    return f.detail(a), nil
}

func (f *fakeApptStore) ListByDay(ctx context.Context, startUTC, endUTC time.Time) ([]repository.AppointmentDetail, error) {
    out := make([]repository.AppointmentDetail, 0)
    for _, a := range f.appts {
        if !a.StartTime.Before(startUTC) && a.StartTime.Before(endUTC) {
            out = append(out, f.detail(a))
        }
    }
    sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
    return out, nil
}

func (f *fakeApptStore) UpdateTimes(ctx context.Context, id uint64, startUTC, endUTC time.Time) error {
    a, ok := f.appts[id]
    if !ok {
        return repository.ErrAppointmentNotFound
    }
    a.StartTime = startUTC
    a.EndTime = endUTC
    f.appts[id] = a
    return nil
}

func (f *fakeApptStore) UpdateStatus(ctx context.Context, id uint64, status model.Status) error {
    a, ok := f.appts[id]
    if !ok {
        return repository.ErrAppointmentNotFound
    }
    a.Status = status
    f.appts[id] = a
    return nil
}

func (f *fakeApptStore) HasBookedOnDay(ctx context.Context, orgID, customerID uint64, dayStartUTC, dayEndUTC time.Time) (bool, error) {
    for _, a := range f.appts {
        if a.OrganizationID == orgID && a.CustomerID == customerID &&
            !a.StartTime.Before(dayStartUTC) && a.StartTime.Before(dayEndUTC) &&
            a.Status == model.StatusBooked {
            return true, nil
        }
    }
    return false, nil
}

// testEnv wires the handlers against the fakes on a real Echo
// instance so tests drive the full bind/validate/respond path.
type testEnv struct {
    e         *echo.Echo
    orgs      *fakeOrgStore
    staff     *fakeStaffStore
    customers *fakeCustomerStore
    appts     *fakeApptStore
}

func newTestEnv(t *testing.T) *testEnv {
    t.Helper()
    hospital := "North Wing"
    orgs := &fakeOrgStore{orgs: map[uint64]model.Organization{
        1: {ID: 1, Name: "General Hospital", Location: &hospital},
        2: {ID: 2, Name: "First National Bank"},
    }}
    customers := &fakeCustomerStore{customers: map[uint64]model.Customer{}}
    appts := &fakeApptStore{appts: map[uint64]model.Appointment{}, orgs: orgs, customers: customers}
    staff := &fakeStaffStore{staff: map[uint64]model.Staff{
        1: {ID: 1, OrganizationID: 1, Name: "Dr. Chen", Role: "Nurse"},
        2: {ID: 2, OrganizationID: 2, Name: "Jamie Patel", Role: "Teller"},
    }, nextID: 2, appts: appts}
    appts.staff = staff

    a := NewAppointmentHandler(appts, customers, orgs, staff)
    s := NewStaffHandler(staff, orgs)
    o := NewOrganizationHandler(orgs)

    e := echo.New()
    e.Validator = NewValidator()
    e.GET("/v1/organizations", o.List)
    e.GET("/v1/organizations/:id/staff", s.ListByOrganization)
    e.POST("/v1/organizations/:id/staff", s.Add)
    e.DELETE("/v1/staff/:id", s.Delete)
    e.GET("/v1/appointments", a.ListDay)
    e.GET("/v1/appointments/:id", a.Get)
    e.POST("/v1/appointments", a.Book)
    e.POST("/v1/appointments/:id/reschedule", a.Reschedule)
    e.POST("/v1/appointments/:id/cancel", a.Cancel)

    return &testEnv{e: e, orgs: orgs, staff: staff, customers: customers, appts: appts}
}

func (env *testEnv) request(method, target string, body any) *httptest.ResponseRecorder {
    var rd io.Reader
    if body != nil {
        b, _ := json.Marshal(body)
        rd = bytes.NewReader(b)
    }
    req := httptest.NewRequest(method, target, rd)
    if body != nil {
        req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    }
    rec := httptest.NewRecorder()
    env.e.ServeHTTP(rec, req)
    return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
    t.Helper()
    if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
        t.Fatalf("decode response %q: %v", rec.Body.String(), err)
    }
}
