package model

// Organization represents a business offering appointment-based
// services, such as a bank branch, a clinic or a government office.
// Staff members and appointments are always scoped to exactly one
// organization.  This struct corresponds to a row in the
// `organizations` table.
//
// Fields:
//  ID       – primary key identifier.
//  Name     – display name of the organization.
//  Location – free-text city or address (nullable).
type Organization struct {
    ID       uint64  // organizations.id
    Name     string  // organizations.name
    Location *string // organizations.location (nullable)
}
