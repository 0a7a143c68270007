package domain

import "time"

// Submission is a single contact-form entry. The creation timestamp is
// assigned server-side at receipt time; records are never updated and are
// expired by the storage layer after the retention window.
type Submission struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Company   *string
	Service   string
	Message   string
	Urgency   string
	CreatedAt time.Time
}
