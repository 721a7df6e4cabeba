// Package template fills a daily note template with its date.
package template

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattsolo1/grove-yesterday/pkg/dateformat"
	"github.com/mattsolo1/grove-yesterday/pkg/vault"
)

const datePlaceholder = "{{date:"

// UnreadableError reports a template that is configured but cannot be used.
// It is not fatal: the note is created empty instead.
type UnreadableError struct {
	Path   string
	Reason string
}

func (e *UnreadableError) Error() string {
	return fmt.Sprintf("template %s unusable: %s", e.Path, e.Reason)
}

// Render reads the template at templatePath and expands it for date. An
// empty path renders nothing. Template paths are written without the ".md"
// extension in the host settings, so it is added when missing.
func Render(store vault.Store, templatePath string, date time.Time) (string, error) {
	if templatePath == "" {
		return "", nil
	}
	path := vault.NormalizePath(templatePath)
	if !strings.HasSuffix(strings.ToLower(path), ".md") {
		path += ".md"
	}

	ref, err := store.Find(path)
	if err != nil {
		return "", &UnreadableError{Path: path, Reason: err.Error()}
	}
	if ref == nil {
		return "", &UnreadableError{Path: path, Reason: "not found"}
	}
	if !ref.IsFile() {
		return "", &UnreadableError{Path: path, Reason: "not a file"}
	}

	text, err := store.Read(ref)
	if err != nil {
		return "", &UnreadableError{Path: path, Reason: err.Error()}
	}
	return Expand(text, date), nil
}

// Expand replaces every {{date:<format>}} in text, left to right, with date
// rendered in <format>. The format runs up to the first "}" and must be
// followed by "}}"; anything else is copied through untouched.
func Expand(text string, date time.Time) string {
	var sb strings.Builder
	sb.Grow(len(text))

	for {
		i := strings.Index(text, datePlaceholder)
		if i < 0 {
			sb.WriteString(text)
			return sb.String()
		}
		sb.WriteString(text[:i])
		rest := text[i+len(datePlaceholder):]

		end := strings.IndexByte(rest, '}')
		if end >= 0 && strings.HasPrefix(rest[end:], "}}") {
			sb.WriteString(dateformat.Format(date, rest[:end]))
			text = rest[end+2:]
			continue
		}
		sb.WriteString(datePlaceholder)
		text = rest
	}
}
