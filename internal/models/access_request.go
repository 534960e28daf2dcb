package models

import "time"

// AccessStatus enumerates the lifecycle of a course access request. A request
// starts pending and is moved by an admin to approved or rejected; there is no
// transition back to pending.
type AccessStatus string

const (
	AccessPending  AccessStatus = "pending"
	AccessApproved AccessStatus = "approved"
	AccessRejected AccessStatus = "rejected"
)

// Valid reports whether s is one of the known statuses.
func (s AccessStatus) Valid() bool {
	switch s {
	case AccessPending, AccessApproved, AccessRejected:
		return true
	}
	return false
}

// AccessRequest is a learner's request for access to a course. At most one
// request exists per (user, course) pair, enforced by a unique constraint.
type AccessRequest struct {
	ID        string       `db:"id" json:"id"`
	UserID    string       `db:"user_id" json:"user_id"`
	CourseID  string       `db:"course_id" json:"course_id"`
	Status    AccessStatus `db:"status" json:"status"`
	CreatedAt time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt time.Time    `db:"updated_at" json:"updated_at"`
}

// AccessState is the resolved access outcome for a (user, course) pair used to
// gate content visibility.
type AccessState struct {
	HasRequested bool         `json:"has_requested"`
	HasAccess    bool         `json:"has_access"`
	Status       AccessStatus `json:"status,omitempty"`
	RequestID    string       `json:"request_id,omitempty"`
}
