package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillmint/skillmint-api/internal/models"
)

func file(id, name, session string) *models.CodeFile {
	return &models.CodeFile{ID: id, SessionID: session, FileName: name, Language: "javascript", FileContent: "content of " + name}
}

func TestWorkspaceOpenActivates(t *testing.T) {
	m := NewManager()

	state := m.Open("u1", file("f1", "app.js", "s1"))
	assert.Equal(t, "f1", state.ActiveFileID)
	require.Len(t, state.OpenTabs, 1)

	state = m.Open("u1", file("f2", "index.html", "s1"))
	assert.Equal(t, "f2", state.ActiveFileID)
	require.Len(t, state.OpenTabs, 2)
	assert.Equal(t, "f1", state.OpenTabs[0].FileID)
}

func TestWorkspaceReopenKeepsOrder(t *testing.T) {
	m := NewManager()
	m.Open("u1", file("f1", "app.js", "s1"))
	m.Open("u1", file("f2", "index.html", "s1"))

	state := m.Open("u1", file("f1", "app.js", "s1"))
	assert.Equal(t, "f1", state.ActiveFileID)
	require.Len(t, state.OpenTabs, 2)
	assert.Equal(t, "f1", state.OpenTabs[0].FileID)
	assert.Equal(t, "f2", state.OpenTabs[1].FileID)
}

func TestWorkspaceActivateUnknownIsNoop(t *testing.T) {
	m := NewManager()
	m.Open("u1", file("f1", "app.js", "s1"))

	state := m.Activate("u1", "f9")
	assert.Equal(t, "f1", state.ActiveFileID)
}

func TestWorkspaceCloseActivePromotesFirst(t *testing.T) {
	m := NewManager()
	m.Open("u1", file("f1", "app.js", "s1"))
	m.Open("u1", file("f2", "index.html", "s1"))
	m.Open("u1", file("f3", "styles.css", "s1"))

	state := m.Close("u1", "f3")
	assert.Equal(t, "f1", state.ActiveFileID)
	require.Len(t, state.OpenTabs, 2)
}

func TestWorkspaceCloseInactiveKeepsActive(t *testing.T) {
	m := NewManager()
	m.Open("u1", file("f1", "app.js", "s1"))
	m.Open("u1", file("f2", "index.html", "s1"))

	state := m.Close("u1", "f1")
	assert.Equal(t, "f2", state.ActiveFileID)
	require.Len(t, state.OpenTabs, 1)
}

func TestWorkspaceCloseLastClearsEditor(t *testing.T) {
	m := NewManager()
	m.Open("u1", file("f1", "app.js", "s1"))

	state := m.Close("u1", "f1")
	assert.Empty(t, state.ActiveFileID)
	assert.Empty(t, state.OpenTabs)
}

func TestWorkspaceEditActiveOnly(t *testing.T) {
	m := NewManager()
	m.Open("u1", file("f1", "app.js", "s1"))
	m.Open("u1", file("f2", "index.html", "s1"))

	_, err := m.Edit("u1", "f1", "changed")
	require.Error(t, err)

	_, err = m.Edit("u1", "f2", "<main></main>")
	require.NoError(t, err)

	_, content, ok := m.File("u1", "f2")
	require.True(t, ok)
	assert.Equal(t, "<main></main>", content)
}

func TestWorkspaceEditDoesNotLeakBetweenUsers(t *testing.T) {
	m := NewManager()
	m.Open("u1", file("f1", "app.js", "s1"))
	m.Open("u2", file("f1", "app.js", "s1"))

	_, err := m.Edit("u1", "f1", "user one edit")
	require.NoError(t, err)

	_, content, ok := m.File("u2", "f1")
	require.True(t, ok)
	assert.Equal(t, "content of app.js", content)
}

func TestWorkspaceSelectVideoKeepsTabs(t *testing.T) {
	m := NewManager()
	m.Open("u1", file("f1", "app.js", "s1"))

	state := m.SelectVideo("u1", "s2")
	assert.Equal(t, "s2", state.SelectedSessionID)
	require.Len(t, state.OpenTabs, 1)
	assert.Equal(t, "f1", state.ActiveFileID)
}

func TestWorkspaceDropSession(t *testing.T) {
	m := NewManager()
	m.Open("u1", file("f1", "app.js", "s1"))
	m.Open("u1", file("f2", "index.html", "s2"))
	m.SelectVideo("u1", "s1")

	m.DropSession("s1")

	state := m.Snapshot("u1")
	assert.Empty(t, state.SelectedSessionID)
	require.Len(t, state.OpenTabs, 1)
	assert.Equal(t, "f2", state.OpenTabs[0].FileID)
	assert.Equal(t, "f2", state.ActiveFileID)
}

func TestWorkspaceDropFile(t *testing.T) {
	m := NewManager()
	m.Open("u1", file("f1", "app.js", "s1"))
	m.Open("u1", file("f2", "index.html", "s1"))
	m.Activate("u1", "f2")

	m.DropFile("f2")

	state := m.Snapshot("u1")
	require.Len(t, state.OpenTabs, 1)
	assert.Equal(t, "f1", state.ActiveFileID)
}

func TestWorkspaceActiveFile(t *testing.T) {
	m := NewManager()
	_, _, ok := m.ActiveFile("u1")
	assert.False(t, ok)

	m.Open("u1", file("f1", "app.js", "s1"))
	tab, content, ok := m.ActiveFile("u1")
	require.True(t, ok)
	assert.Equal(t, "app.js", tab.FileName)
	assert.Equal(t, "content of app.js", content)
}
