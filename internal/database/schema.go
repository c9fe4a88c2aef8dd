package database

import (
	"context"
	"database/sql"
)

// schemaStatements creates the four application tables on first run.
// Foreign keys mirror the booking rules: deleting an organization
// cascades to its staff, while appointments block deletion of any of
// their three referents.  The non-unique index on
// (organization_id, customer_id, start_time) backs the soft
// one-booking-per-customer-per-day check; it is intentionally not a
// uniqueness constraint.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS organizations (
		id       BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name     VARCHAR(255) NOT NULL,
		location VARCHAR(255) NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS customers (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		first_name VARCHAR(100) NOT NULL,
		last_name  VARCHAR(100) NOT NULL,
		phone      VARCHAR(50)  NOT NULL DEFAULT '',
		email      VARCHAR(255) NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS staff (
		id              BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		organization_id BIGINT UNSIGNED NOT NULL,
		name            VARCHAR(255) NOT NULL,
		role            VARCHAR(100) NOT NULL,
		CONSTRAINT fk_staff_org FOREIGN KEY (organization_id)
			REFERENCES organizations (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS appointments (
		id              BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		organization_id BIGINT UNSIGNED NOT NULL,
		customer_id     BIGINT UNSIGNED NOT NULL,
		staff_id        BIGINT UNSIGNED NOT NULL,
		service_type    VARCHAR(255) NOT NULL,
		start_time      DATETIME NOT NULL,
		end_time        DATETIME NOT NULL,
		status          VARCHAR(20) NOT NULL DEFAULT 'Booked',
		notes           TEXT NULL,
		CONSTRAINT fk_appt_org FOREIGN KEY (organization_id)
			REFERENCES organizations (id) ON DELETE RESTRICT,
		CONSTRAINT fk_appt_customer FOREIGN KEY (customer_id)
			REFERENCES customers (id) ON DELETE RESTRICT,
		CONSTRAINT fk_appt_staff FOREIGN KEY (staff_id)
			REFERENCES staff (id) ON DELETE RESTRICT,
		INDEX idx_appt_org_customer_start (organization_id, customer_id, start_time)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// seedStatements inserts the fixed demo rows used by the lookup
// endpoints: three organizations and one staff member per
// organization, with stable IDs 1-3.  INSERT IGNORE keeps the seed
// idempotent across restarts.
var seedStatements = []string{
	`INSERT IGNORE INTO organizations (id, name, location) VALUES
		(1, 'City DMV - Downtown', 'Main St'),
		(2, 'General Hospital', 'North Wing'),
		(3, 'First National Bank', 'Branch A')`,

	`INSERT IGNORE INTO staff (id, organization_id, name, role) VALUES
		(1, 1, 'Alex Rivera', 'Examiner'),
		(2, 2, 'Dr. Chen', 'Nurse'),
		(3, 3, 'Jamie Patel', 'Teller')`,
}

// EnsureSchema creates the application tables when they do not exist
// yet and seeds the demo organizations and staff.  It runs once at
// startup; any error aborts service start.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	for _, stmt := range seedStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
