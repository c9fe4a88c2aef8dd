package model

import "time"

// Appointment is a scheduled interval linking one organization, one
// customer and one staff member.  Start and end instants are stored
// in UTC regardless of the operator's local time zone.  Appointments
// are mutated in place by reschedule (times overwritten) or cancel
// (status overwritten); there is no hard delete path.
//
// Fields:
//  ID             – primary key identifier.
//  OrganizationID – organization the appointment belongs to.
//  CustomerID     – customer being served.
//  StaffID        – staff member fulfilling the appointment.
//  ServiceType    – free-text service description (e.g. "Eye Exam").
//  StartTime      – UTC start instant.
//  EndTime        – UTC end instant (must be after StartTime).
//  Status         – one of Booked, Cancelled, Completed.
//  Notes          – optional free-text notes (nullable).
type Appointment struct {
    ID             uint64    // appointments.id
    OrganizationID uint64    // appointments.organization_id
    CustomerID     uint64    // appointments.customer_id
    StaffID        uint64    // appointments.staff_id
    ServiceType    string    // appointments.service_type
    StartTime      time.Time // appointments.start_time (UTC)
    EndTime        time.Time // appointments.end_time (UTC)
    Status         Status    // appointments.status
    Notes          *string   // appointments.notes (nullable)
}
