package dto

// OpenFileRequest pins a code file into the multi-tab viewer.
type OpenFileRequest struct {
	FileID string `json:"fileId" validate:"required"`
}

// SelectVideoRequest switches the viewer to a session's video.
type SelectVideoRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
}

// EditFileRequest replaces the in-memory content of an open file.
type EditFileRequest struct {
	Content string `json:"content"`
}
