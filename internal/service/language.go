package service

import "strings"

// LanguagePlainText is the fallback tag for unrecognized extensions.
const LanguagePlainText = "plaintext"

// supportedLanguages is the set of tags accepted on stored code files.
var supportedLanguages = map[string]struct{}{
	"javascript": {},
	"typescript": {},
	"html":       {},
	"css":        {},
	"scss":       {},
	"sass":       {},
	"json":       {},
	"python":     {},
	"markdown":   {},
	"xml":        {},
	"yaml":       {},
	"shell":      {},
	"plaintext":  {},
}

// extensionLanguages maps file extensions to editor language tags.
var extensionLanguages = map[string]string{
	"js":   "javascript",
	"jsx":  "javascript",
	"ts":   "typescript",
	"tsx":  "typescript",
	"html": "html",
	"htm":  "html",
	"css":  "css",
	"scss": "scss",
	"sass": "sass",
	"json": "json",
	"py":   "python",
	"md":   "markdown",
	"txt":  "plaintext",
	"xml":  "xml",
	"yml":  "yaml",
	"yaml": "yaml",
	"sh":   "shell",
	"bash": "shell",
}

// DetectLanguage derives a language tag from a file name's extension. The
// result is advisory, used to prefill the admin form; the stored language
// field remains authoritative.
func DetectLanguage(fileName string) string {
	idx := strings.LastIndex(fileName, ".")
	if idx < 0 || idx == len(fileName)-1 {
		return LanguagePlainText
	}
	ext := strings.ToLower(fileName[idx+1:])
	if lang, ok := extensionLanguages[ext]; ok {
		return lang
	}
	return LanguagePlainText
}

// IsSupportedLanguage reports whether the tag may be stored on a code file.
func IsSupportedLanguage(tag string) bool {
	_, ok := supportedLanguages[tag]
	return ok
}
