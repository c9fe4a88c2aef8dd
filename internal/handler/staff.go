package handler

import (
    "context"
    "errors"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "smart-appointments/internal/model"
    "smart-appointments/internal/repository"
)

// StaffStore is the persistence surface the staff handlers need.
// *repository.StaffRepo satisfies it.
type StaffStore interface {
    ListByOrganization(ctx context.Context, orgID uint64) ([]model.Staff, error)
    GetByID(ctx context.Context, id uint64) (model.Staff, error)
    Create(ctx context.Context, s *model.Staff) error
    Delete(ctx context.Context, id uint64) error
}

// StaffHandler implements the staff management operations: the
// org-scoped listing behind the staff picker, adding a staff member,
// and hard deletion.  Deletion is never pre-checked against
// appointments; the store's FK restriction is the authority and its
// rejection surfaces as a 409.
type StaffHandler struct {
    Staff         StaffStore
    Organizations OrganizationStore
}

// NewStaffHandler constructs a StaffHandler and panics if any store is nil.
func NewStaffHandler(staff StaffStore, organizations OrganizationStore) *StaffHandler {
    if staff == nil || organizations == nil {
        panic("nil store passed to NewStaffHandler")
    }
    return &StaffHandler{Staff: staff, Organizations: organizations}
}

type staffResponse struct {
    ID             uint64 `json:"id"`
    OrganizationID uint64 `json:"organization_id"`
    Name           string `json:"name"`
    Role           string `json:"role"`
}

// ListByOrganization handles GET /v1/organizations/:id/staff and
// returns the organization's staff ordered by name.
func (h *StaffHandler) ListByOrganization(c echo.Context) error {
    orgID, err := parseID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid organization id"})
    }
    ctx := c.Request().Context()
    if _, err := h.Organizations.GetByID(ctx, orgID); err != nil {
        if errors.Is(err, repository.ErrOrganizationNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "organization not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    staff, err := h.Staff.ListByOrganization(ctx, orgID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    items := make([]staffResponse, 0, len(staff))
    for _, s := range staff {
        items = append(items, staffResponse{ID: s.ID, OrganizationID: s.OrganizationID, Name: s.Name, Role: s.Role})
    }
    return c.JSON(http.StatusOK, items)
}

type addStaffRequest struct {
    Name string `json:"name"`
    Role string `json:"role"`
}

// Add handles POST /v1/organizations/:id/staff and inserts a staff
// row scoped to the organization.  Name and role are required
// free-text fields.
func (h *StaffHandler) Add(c echo.Context) error {
    orgID, err := parseID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid organization id"})
    }
    var body addStaffRequest
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    name := strings.TrimSpace(body.Name)
    role := strings.TrimSpace(body.Role)
    if name == "" || role == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "enter the staff member's name and role"})
    }

    ctx := c.Request().Context()
    if _, err := h.Organizations.GetByID(ctx, orgID); err != nil {
        if errors.Is(err, repository.ErrOrganizationNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "organization not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    s := model.Staff{OrganizationID: orgID, Name: name, Role: role}
    if err := h.Staff.Create(ctx, &s); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusCreated, staffResponse{ID: s.ID, OrganizationID: s.OrganizationID, Name: s.Name, Role: s.Role})
}

// Delete handles DELETE /v1/staff/:id.  A staff member referenced by
// any appointment cannot be removed; the store-level restriction is
// reported as a 409 without naming the offending rows.
func (h *StaffHandler) Delete(c echo.Context) error {
    id, err := parseID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid staff id"})
    }
    err = h.Staff.Delete(c.Request().Context(), id)
    switch {
    case errors.Is(err, repository.ErrStaffNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "staff member not found"})
    case errors.Is(err, repository.ErrConflict):
        return c.JSON(http.StatusConflict, echo.Map{"error": "staff member cannot be deleted"})
    case err != nil:
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.NoContent(http.StatusNoContent)
}
