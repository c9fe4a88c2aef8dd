package handler

import (
    "net/http"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "smart-appointments/internal/model"
)

func TestListOrganizations(t *testing.T) {
    env := newTestEnv(t)
    rec := env.request(http.MethodGet, "/v1/organizations", nil)
    require.Equal(t, http.StatusOK, rec.Code)

    var orgs []organizationResponse
    decodeJSON(t, rec, &orgs)
    require.Len(t, orgs, 2)
    assert.Equal(t, "First National Bank", orgs[0].Name, "organizations are ordered by name")
    assert.Equal(t, "General Hospital", orgs[1].Name)
}

func TestStaffListByOrganization(t *testing.T) {
    env := newTestEnv(t)
    rec := env.request(http.MethodGet, "/v1/organizations/1/staff", nil)
    require.Equal(t, http.StatusOK, rec.Code)

    var staff []staffResponse
    decodeJSON(t, rec, &staff)
    require.Len(t, staff, 1)
    assert.Equal(t, "Dr. Chen", staff[0].Name)

    rec = env.request(http.MethodGet, "/v1/organizations/99/staff", nil)
    assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddStaff(t *testing.T) {
    env := newTestEnv(t)
    rec := env.request(http.MethodPost, "/v1/organizations/2/staff", map[string]any{
        "name": "Robin Okafor",
        "role": "Teller",
    })
    require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

    var resp staffResponse
    decodeJSON(t, rec, &resp)
    assert.Equal(t, uint64(2), resp.OrganizationID)
    assert.Equal(t, "Robin Okafor", resp.Name)
    assert.Contains(t, env.staff.staff, resp.ID)
}

func TestAddStaff_Invalid(t *testing.T) {
    env := newTestEnv(t)
    rec := env.request(http.MethodPost, "/v1/organizations/2/staff", map[string]any{
        "name": "  ",
        "role": "Teller",
    })
    assert.Equal(t, http.StatusBadRequest, rec.Code)

    rec = env.request(http.MethodPost, "/v1/organizations/99/staff", map[string]any{
        "name": "Robin Okafor",
        "role": "Teller",
    })
    assert.Equal(t, http.StatusNotFound, rec.Code)
    assert.Len(t, env.staff.staff, 2, "failed adds must not insert rows")
}

func TestDeleteStaff(t *testing.T) {
    env := newTestEnv(t)
    rec := env.request(http.MethodDelete, "/v1/staff/2", nil)
    assert.Equal(t, http.StatusNoContent, rec.Code)
    assert.NotContains(t, env.staff.staff, uint64(2))

    rec = env.request(http.MethodDelete, "/v1/staff/99", nil)
    assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteStaff_BlockedByAppointment(t *testing.T) {
    env := newTestEnv(t)
    env.seedAppointment(t, 1, 1,
        time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
        time.Date(2026, 9, 1, 9, 30, 0, 0, time.UTC),
        model.StatusBooked)

    rec := env.request(http.MethodDelete, "/v1/staff/1", nil)
    assert.Equal(t, http.StatusConflict, rec.Code)
    // Both the staff row and the appointment survive.
    assert.Contains(t, env.staff.staff, uint64(1))
    assert.Len(t, env.appts.appts, 1)
}
