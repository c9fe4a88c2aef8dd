package handler

import (
    "context"
    "net/http"

    "github.com/labstack/echo/v4"

    "smart-appointments/internal/model"
)

// OrganizationStore is the read surface the lookup endpoints need.
// *repository.OrganizationRepo satisfies it.
type OrganizationStore interface {
    List(ctx context.Context) ([]model.Organization, error)
    GetByID(ctx context.Context, id uint64) (model.Organization, error)
}

// OrganizationHandler serves the organization lookup used to populate
// pickers.  Organizations are seeded at startup and never mutated
// through the API.
type OrganizationHandler struct {
    Organizations OrganizationStore
}

// NewOrganizationHandler constructs an OrganizationHandler and panics
// if the store is nil.
func NewOrganizationHandler(organizations OrganizationStore) *OrganizationHandler {
    if organizations == nil {
        panic("nil store passed to NewOrganizationHandler")
    }
    return &OrganizationHandler{Organizations: organizations}
}

type organizationResponse struct {
    ID       uint64  `json:"id"`
    Name     string  `json:"name"`
    Location *string `json:"location,omitempty"`
}

// List handles GET /v1/organizations, ordered by name.
func (h *OrganizationHandler) List(c echo.Context) error {
    orgs, err := h.Organizations.List(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    items := make([]organizationResponse, 0, len(orgs))
    for _, o := range orgs {
        items = append(items, organizationResponse{ID: o.ID, Name: o.Name, Location: o.Location})
    }
    return c.JSON(http.StatusOK, items)
}
