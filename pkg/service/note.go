package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/mattsolo1/grove-yesterday/pkg/dateformat"
	"github.com/mattsolo1/grove-yesterday/pkg/models"
	"github.com/mattsolo1/grove-yesterday/pkg/vault"
)

// BuildPath returns the vault path of the daily note for date.
func BuildPath(format, folder string, date time.Time) string {
	name := dateformat.Format(date, format) + ".md"
	if folder == "" {
		return vault.NormalizePath(name)
	}
	return vault.NormalizePath(folder + "/" + name)
}

// ContentFunc produces the body of a note that is about to be created.
type ContentFunc func() string

// EnsureNote looks up path and, when allowed, creates it.
//
//	found file      -> existing
//	found folder    -> blocked, *PathConflictError
//	missing         -> absent, ErrNoteNotFound   (autoCreate off)
//	missing         -> created                   (autoCreate on)
//
// Creation makes the parent folders first, then creates the file
// exclusively, so a note that appears in between yields *AlreadyExistsError.
func (s *Service) EnsureNote(path string, autoCreate bool, content ContentFunc) (*models.NoteFile, models.Outcome, error) {
	ref, err := s.store.Find(path)
	if err != nil {
		return nil, models.OutcomeFailed, fmt.Errorf("look up %s: %w", path, err)
	}
	if ref != nil {
		if !ref.IsFile() {
			return nil, models.OutcomeBlocked, &PathConflictError{Path: path}
		}
		return noteFile(ref, false), models.OutcomeExisting, nil
	}
	if !autoCreate {
		return nil, models.OutcomeAbsent, fmt.Errorf("%w at: %s", ErrNoteNotFound, path)
	}

	if dir := vault.Dir(path); dir != "" {
		if err := s.store.CreateFolder(dir); err != nil && !errors.Is(err, vault.ErrFolderExists) {
			return nil, models.OutcomeFailed, fmt.Errorf("create folder %s: %w", dir, err)
		}
	}

	body := ""
	if content != nil {
		body = content()
	}
	ref, err = s.store.CreateFile(path, body)
	if err != nil {
		return nil, models.OutcomeFailed, fmt.Errorf("create note: %w", err)
	}
	return noteFile(ref, true), models.OutcomeCreated, nil
}

func noteFile(ref *vault.FileRef, created bool) *models.NoteFile {
	return &models.NoteFile{Path: ref.Path, AbsPath: ref.AbsPath, Created: created}
}
