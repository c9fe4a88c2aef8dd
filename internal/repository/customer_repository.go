package repository

import (
    "context"
    "database/sql"
    "errors"

    "smart-appointments/internal/model"
)

// ErrCustomerNotFound is returned when no customer matches the
// requested identity.
var ErrCustomerNotFound = errors.New("customer not found")

// CustomerRepo provides access to the customers table.  Customers are
// created lazily during booking and deduplicated by the exact
// (first name, last name, phone) triple; rows are never deleted.
type CustomerRepo struct {
    db *sql.DB
}

// NewCustomerRepo returns a new CustomerRepo bound to the given database.
func NewCustomerRepo(db *sql.DB) *CustomerRepo { return &CustomerRepo{db: db} }

// FindByIdentity looks up a customer by exact match on the
// (first, last, phone) triple.  A blank phone is a valid key.  It
// returns ErrCustomerNotFound when no row matches; two customers with
// the same name but different phones are distinct.
func (r *CustomerRepo) FindByIdentity(ctx context.Context, first, last, phone string) (model.Customer, error) {
    const q = `SELECT id, first_name, last_name, phone, email
               FROM customers
               WHERE first_name = ? AND last_name = ? AND phone = ?
               LIMIT 1`
    var c model.Customer
    var email sql.NullString
    err := r.db.QueryRowContext(ctx, q, first, last, phone).Scan(
        &c.ID, &c.FirstName, &c.LastName, &c.Phone, &email,
    )
    if err == sql.ErrNoRows {
        return model.Customer{}, ErrCustomerNotFound
    }
    if err != nil {
        return model.Customer{}, err
    }
    if email.Valid {
        e := email.String
        c.Email = &e
    }
    return c, nil
}

// Create inserts a new customer row and populates the generated ID on
// the provided record.
func (r *CustomerRepo) Create(ctx context.Context, c *model.Customer) error {
    const q = `INSERT INTO customers (first_name, last_name, phone, email) VALUES (?, ?, ?, ?)`
    var email sql.NullString
    if c.Email != nil {
        email = sql.NullString{String: *c.Email, Valid: true}
    }
    res, err := r.db.ExecContext(ctx, q, c.FirstName, c.LastName, c.Phone, email)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    c.ID = uint64(id)
    return nil
}
