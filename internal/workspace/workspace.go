// Package workspace tracks the per-user viewing state inside a course:
// the selected session video and the set of open code file tabs.
package workspace

import (
	"sync"

	"github.com/skillmint/skillmint-api/internal/models"
	appErrors "github.com/skillmint/skillmint-api/pkg/errors"
)

// Tab is one open code file in a user's workspace.
type Tab struct {
	FileID   string `json:"fileId"`
	FileName string `json:"fileName"`
	Language string `json:"language"`
}

// State is the snapshot of a user's workspace returned to clients.
type State struct {
	SelectedSessionID string `json:"selectedSessionId,omitempty"`
	OpenTabs          []Tab  `json:"openTabs"`
	ActiveFileID      string `json:"activeFileId,omitempty"`
}

type userState struct {
	selectedSessionID string
	// tabs preserves insertion order; closing the active tab promotes the
	// first remaining tab, not the most recently opened one.
	tabs   []tabEntry
	active string
}

type tabEntry struct {
	fileID   string
	fileName string
	language string
	content  string
	session  string
}

// Manager holds the workspace state for every user. All methods are safe for
// concurrent use.
type Manager struct {
	mu    sync.Mutex
	users map[string]*userState
}

// NewManager constructs an empty workspace manager.
func NewManager() *Manager {
	return &Manager{users: make(map[string]*userState)}
}

func (m *Manager) state(userID string) *userState {
	st, ok := m.users[userID]
	if !ok {
		st = &userState{}
		m.users[userID] = st
	}
	return st
}

// SelectVideo records the session whose video the user is watching. Selecting
// a video does not touch the open tabs.
func (m *Manager) SelectVideo(userID, sessionID string) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.state(userID)
	st.selectedSessionID = sessionID
	return st.snapshot()
}

// Open adds a file tab and makes it active. Opening an already-open file only
// re-activates it; the tab order is unchanged.
func (m *Manager) Open(userID string, file *models.CodeFile) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.state(userID)
	for _, tab := range st.tabs {
		if tab.fileID == file.ID {
			st.active = file.ID
			return st.snapshot()
		}
	}

	st.tabs = append(st.tabs, tabEntry{
		fileID:   file.ID,
		fileName: file.FileName,
		language: file.Language,
		content:  file.FileContent,
		session:  file.SessionID,
	})
	st.active = file.ID
	return st.snapshot()
}

// Activate switches the active tab. Activating a file that is not open is a
// no-op and leaves the current state untouched.
func (m *Manager) Activate(userID, fileID string) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.state(userID)
	for _, tab := range st.tabs {
		if tab.fileID == fileID {
			st.active = fileID
			break
		}
	}
	return st.snapshot()
}

// Edit replaces the scratch content of the active tab. Edits are local to the
// workspace; the stored file is only changed through the admin editor.
func (m *Manager) Edit(userID, fileID, content string) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.state(userID)
	if st.active != fileID {
		return st.snapshot(), appErrors.Clone(appErrors.ErrValidation, "only the active file can be edited")
	}
	for i := range st.tabs {
		if st.tabs[i].fileID == fileID {
			st.tabs[i].content = content
			return st.snapshot(), nil
		}
	}
	return st.snapshot(), appErrors.Clone(appErrors.ErrNotFound, "file is not open")
}

// Close removes a tab. When the active tab is closed the first remaining tab
// in insertion order becomes active; closing the last tab clears the editor.
func (m *Manager) Close(userID, fileID string) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.state(userID)
	for i, tab := range st.tabs {
		if tab.fileID == fileID {
			st.tabs = append(st.tabs[:i], st.tabs[i+1:]...)
			break
		}
	}
	if st.active == fileID {
		if len(st.tabs) > 0 {
			st.active = st.tabs[0].fileID
		} else {
			st.active = ""
		}
	}
	return st.snapshot()
}

// ActiveFile returns the working copy of the active tab.
func (m *Manager) ActiveFile(userID string) (Tab, string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.state(userID)
	if st.active == "" {
		return Tab{}, "", false
	}
	for _, tab := range st.tabs {
		if tab.fileID == st.active {
			return Tab{FileID: tab.fileID, FileName: tab.fileName, Language: tab.language}, tab.content, true
		}
	}
	return Tab{}, "", false
}

// File returns the working copy of any open tab.
func (m *Manager) File(userID, fileID string) (Tab, string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.state(userID)
	for _, tab := range st.tabs {
		if tab.fileID == fileID {
			return Tab{FileID: tab.fileID, FileName: tab.fileName, Language: tab.language}, tab.content, true
		}
	}
	return Tab{}, "", false
}

// Snapshot returns the current workspace state for a user.
func (m *Manager) Snapshot(userID string) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state(userID).snapshot()
}

// DropSession clears the video selection and open tabs that belong to a
// deleted session, for every user.
func (m *Manager) DropSession(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, st := range m.users {
		if st.selectedSessionID == sessionID {
			st.selectedSessionID = ""
		}
		kept := st.tabs[:0]
		activeDropped := false
		for _, tab := range st.tabs {
			if tab.session == sessionID {
				if tab.fileID == st.active {
					activeDropped = true
				}
				continue
			}
			kept = append(kept, tab)
		}
		st.tabs = kept
		if activeDropped {
			if len(st.tabs) > 0 {
				st.active = st.tabs[0].fileID
			} else {
				st.active = ""
			}
		}
	}
}

// DropFile closes a deleted file's tab for every user.
func (m *Manager) DropFile(fileID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, st := range m.users {
		for i, tab := range st.tabs {
			if tab.fileID == fileID {
				st.tabs = append(st.tabs[:i], st.tabs[i+1:]...)
				break
			}
		}
		if st.active == fileID {
			if len(st.tabs) > 0 {
				st.active = st.tabs[0].fileID
			} else {
				st.active = ""
			}
		}
	}
}

func (st *userState) snapshot() State {
	tabs := make([]Tab, 0, len(st.tabs))
	for _, tab := range st.tabs {
		tabs = append(tabs, Tab{FileID: tab.fileID, FileName: tab.fileName, Language: tab.language})
	}
	return State{
		SelectedSessionID: st.selectedSessionID,
		OpenTabs:          tabs,
		ActiveFileID:      st.active,
	}
}
