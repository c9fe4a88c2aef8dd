package model

// Staff is a person who fulfills appointments on behalf of exactly
// one organization (a teller, nurse, examiner and so on).  Deleting
// an organization cascades to its staff; deleting a staff member is
// blocked by any appointment that references them.
//
// Fields:
//  ID             – primary key identifier.
//  OrganizationID – owning organization.
//  Name           – display name.
//  Role           – free-text role label (e.g. "Teller").
type Staff struct {
    ID             uint64 // staff.id
    OrganizationID uint64 // staff.organization_id
    Name           string // staff.name
    Role           string // staff.role
}
