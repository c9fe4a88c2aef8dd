package model

// Customer is the person an appointment is booked for.  Customers are
// created lazily on first booking and deduplicated by the exact
// (FirstName, LastName, Phone) triple; a blank phone is a valid part
// of the key.  Rows are never deleted.
//
// Fields:
//  ID        – primary key identifier.
//  FirstName – customer's first name.
//  LastName  – customer's last name.
//  Phone     – contact phone, may be empty.
//  Email     – optional contact email (nullable).
type Customer struct {
    ID        uint64  // customers.id
    FirstName string  // customers.first_name
    LastName  string  // customers.last_name
    Phone     string  // customers.phone
    Email     *string // customers.email (nullable)
}
