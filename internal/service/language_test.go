package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLanguage(t *testing.T) {
	cases := []struct {
		fileName string
		expected string
	}{
		{"app.js", "javascript"},
		{"App.JSX", "javascript"},
		{"main.ts", "typescript"},
		{"index.html", "html"},
		{"styles.css", "css"},
		{"data.json", "json"},
		{"script.py", "python"},
		{"README.md", "markdown"},
		{"notes.txt", "plaintext"},
		{"config.YML", "yaml"},
		{"run.sh", "shell"},
		{"archive.tar.gz", "plaintext"},
		{"readme", "plaintext"},
		{"trailing.", "plaintext"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, DetectLanguage(tc.fileName), "file %s", tc.fileName)
	}
}

func TestIsSupportedLanguage(t *testing.T) {
	assert.True(t, IsSupportedLanguage("javascript"))
	assert.True(t, IsSupportedLanguage("plaintext"))
	assert.False(t, IsSupportedLanguage("cobol"))
	assert.False(t, IsSupportedLanguage(""))
}
