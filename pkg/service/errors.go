package service

import (
	"errors"
	"fmt"

	"github.com/mattsolo1/grove-yesterday/pkg/template"
	"github.com/mattsolo1/grove-yesterday/pkg/vault"
)

var (
	// ErrProviderDisabled means the date format has to come from the daily
	// notes plugin, but that plugin is turned off.
	ErrProviderDisabled = errors.New("daily notes plugin is not enabled")

	// ErrNoteNotFound means the note does not exist and auto-create is off.
	ErrNoteNotFound = errors.New("no note found")
)

// PathConflictError means something other than a file sits at the note path.
type PathConflictError struct {
	Path string
}

func (e *PathConflictError) Error() string {
	return fmt.Sprintf("path does not point to a file: %s", e.Path)
}

type (
	// AlreadyExistsError is returned when the note appeared between lookup
	// and creation.
	AlreadyExistsError = vault.AlreadyExistsError

	// TemplateUnreadableError is reported as a warning; the note is still
	// created, empty.
	TemplateUnreadableError = template.UnreadableError
)
