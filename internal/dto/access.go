package dto

import "time"

// PendingRequestItem is an access request joined with course and requester
// details for the admin review queue.
type PendingRequestItem struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"userId"`
	UserEmail   string    `db:"user_email" json:"userEmail"`
	CourseID    string    `db:"course_id" json:"courseId"`
	CourseTitle string    `db:"course_title" json:"courseTitle"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// AccessRequestFilter filters the admin request listing.
type AccessRequestFilter struct {
	Status   string
	CourseID string
}
