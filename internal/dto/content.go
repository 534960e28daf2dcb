package dto

import "github.com/skillmint/skillmint-api/internal/models"

// CreateSessionRequest defines the payload for adding a session to a course.
type CreateSessionRequest struct {
	SessionNumber int     `json:"sessionNumber" validate:"required,gt=0"`
	Topic         string  `json:"topic" validate:"required"`
	VideoURL      *string `json:"videoUrl,omitempty" validate:"omitempty,url"`
}

// UpdateSessionRequest defines the payload for editing a session.
type UpdateSessionRequest struct {
	SessionNumber int     `json:"sessionNumber" validate:"required,gt=0"`
	Topic         string  `json:"topic" validate:"required"`
	VideoURL      *string `json:"videoUrl,omitempty" validate:"omitempty,url"`
}

// CreateCodeFileRequest defines the payload for attaching a code file to a
// session. FileName rules beyond non-emptiness (extension, path separators)
// are enforced by the content service.
type CreateCodeFileRequest struct {
	FileName    string `json:"fileName" validate:"required"`
	FileContent string `json:"fileContent"`
	Language    string `json:"language" validate:"required"`
}

// UpdateCodeFileRequest defines the payload for editing a code file.
type UpdateCodeFileRequest struct {
	FileName    string `json:"fileName" validate:"required"`
	FileContent string `json:"fileContent"`
	Language    string `json:"language" validate:"required"`
}

// LanguageSuggestion is the advisory language tag derived from a file name,
// used by the admin form to prefill the language field.
type LanguageSuggestion struct {
	FileName string `json:"fileName"`
	Language string `json:"language"`
}

// CourseTree is the assembled session/file hierarchy for a course.
type CourseTree struct {
	Sessions       []models.Session             `json:"sessions"`
	FilesBySession map[string][]models.CodeFile `json:"filesBySession"`
}
