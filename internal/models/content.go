package models

import "time"

// Session is one scheduled unit of course content (a "day"), with an optional
// video and zero or more code files. session_number is unique within a course.
type Session struct {
	ID            string    `db:"id" json:"id"`
	CourseID      string    `db:"course_id" json:"course_id"`
	SessionNumber int       `db:"session_number" json:"session_number"`
	Topic         string    `db:"topic" json:"topic"`
	VideoURL      *string   `db:"video_url" json:"video_url,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// CodeFile is a named text artifact attached to a session, tagged with a
// language for syntax-aware display. file_name is unique within a session.
type CodeFile struct {
	ID          string    `db:"id" json:"id"`
	SessionID   string    `db:"session_id" json:"session_id"`
	FileName    string    `db:"file_name" json:"file_name"`
	FileContent string    `db:"file_content" json:"file_content"`
	Language    string    `db:"language" json:"language"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
