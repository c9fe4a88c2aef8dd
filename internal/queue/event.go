// Package queue defines message payloads exchanged over the message broker.
package queue

// Event types published to the appointment.events queue.
const (
    EventAppointmentBooked    = "appointment.booked"
    EventAppointmentCancelled = "appointment.cancelled"
)

// AppointmentEvent is published when an appointment is booked or
// cancelled.  It carries enough information for downstream consumers
// to log or trigger analytics without querying the primary database.
// Timestamps are RFC3339 in UTC.
type AppointmentEvent struct {
    Type             string `json:"type"`
    AppointmentID    uint64 `json:"appointment_id"`
    OrganizationID   uint64 `json:"organization_id"`
    OrganizationName string `json:"organization"`
    CustomerID       uint64 `json:"customer_id"`
    CustomerName     string `json:"customer"`
    StaffID          uint64 `json:"staff_id"`
    StaffName        string `json:"staff"`
    ServiceType      string `json:"service_type"`
    StartsAt         string `json:"starts_at"`
    EndsAt           string `json:"ends_at"`
    Status           string `json:"status"`
    OccurredAt       string `json:"occurred_at"`
}
