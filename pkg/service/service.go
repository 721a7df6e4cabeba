package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-yesterday/pkg/dailynotes"
	"github.com/mattsolo1/grove-yesterday/pkg/models"
	"github.com/mattsolo1/grove-yesterday/pkg/pane"
	"github.com/mattsolo1/grove-yesterday/pkg/template"
	"github.com/mattsolo1/grove-yesterday/pkg/vault"
)

// Clock supplies the current local time.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// SettingsSource is read once per invocation; settings.Store satisfies it.
type SettingsSource interface {
	Settings() models.Settings
}

// Recorder stores the outcome of each invocation; history.Store satisfies it.
type Recorder interface {
	Record(ctx context.Context, entry *models.HistoryEntry) error
}

// Config holds service configuration
type Config struct {
	ReusePane bool
}

// Service opens the previous day's daily note.
type Service struct {
	Config *Config

	settings SettingsSource
	provider dailynotes.Provider
	store    vault.Store
	panes    pane.Manager
	history  Recorder
	clock    Clock
	logger   *logrus.Logger
}

// Option customizes a Service.
type Option func(*Service)

// WithHistory records every invocation in h.
func WithHistory(h Recorder) Option {
	return func(s *Service) { s.history = h }
}

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(s *Service) { s.clock = c }
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *logrus.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// New creates a new yesterday note service
func New(config *Config, settings SettingsSource, provider dailynotes.Provider, store vault.Store, panes pane.Manager, options ...Option) (*Service, error) {
	if settings == nil || store == nil || panes == nil {
		return nil, fmt.Errorf("service needs settings, a file store and a pane manager")
	}
	if config == nil {
		config = &Config{ReusePane: true}
	}

	s := &Service{
		Config:   config,
		settings: settings,
		provider: provider,
		store:    store,
		panes:    panes,
		clock:    SystemClock{},
	}
	for _, opt := range options {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logrus.New()
		s.logger.SetOutput(io.Discard)
	}
	return s, nil
}

// Result describes what an invocation did.
type Result struct {
	Date      time.Time
	Config    models.ResolvedConfig
	Path      string
	Outcome   models.Outcome
	Note      *models.NoteFile
	Presented bool
	Warnings  []error
}

type openOptions struct {
	present    bool
	autoCreate *bool
	daysAgo    int
}

// OpenOption adjusts a single OpenYesterday call.
type OpenOption func(*openOptions)

// WithoutPresent resolves and creates the note but does not open it.
func WithoutPresent() OpenOption {
	return func(o *openOptions) { o.present = false }
}

// WithAutoCreate overrides the autoCreateYesterday setting.
func WithAutoCreate(create bool) OpenOption {
	return func(o *openOptions) { o.autoCreate = &create }
}

// WithDaysAgo targets the note n days back instead of yesterday.
func WithDaysAgo(n int) OpenOption {
	return func(o *openOptions) { o.daysAgo = n }
}

// OpenYesterday resolves yesterday's daily note, creates it when the
// settings allow, and shows it in a pane. The returned Result is non-nil
// whenever the note path could be resolved, including on error. Nothing is
// presented unless the note exists at the end.
func (s *Service) OpenYesterday(ctx context.Context, options ...OpenOption) (*Result, error) {
	opts := &openOptions{present: true, daysAgo: 1}
	for _, opt := range options {
		opt(opts)
	}
	if opts.daysAgo < 0 {
		return nil, fmt.Errorf("days ago must not be negative, got %d", opts.daysAgo)
	}

	settings := s.settings.Settings()
	result := &Result{
		Date:    s.clock.Now().AddDate(0, 0, -opts.daysAgo),
		Outcome: models.OutcomeFailed,
	}

	cfg, err := Resolve(settings, s.provider)
	if err != nil {
		s.record(ctx, result, err)
		return nil, err
	}
	result.Config = cfg
	result.Path = BuildPath(cfg.Format, cfg.Folder, result.Date)

	autoCreate := settings.AutoCreateYesterday
	if opts.autoCreate != nil {
		autoCreate = *opts.autoCreate
	}

	s.logger.WithFields(logrus.Fields{
		"path":        result.Path,
		"format":      cfg.Format,
		"folder":      cfg.Folder,
		"template":    cfg.Template,
		"auto_create": autoCreate,
	}).Debug("resolved daily note")

	note, outcome, err := s.EnsureNote(result.Path, autoCreate, func() string {
		s.logger.WithField("path", result.Path).Info("creating daily note")
		content, err := template.Render(s.store, cfg.Template, result.Date)
		if err != nil {
			s.logger.WithError(err).Warn("template skipped, creating empty note")
			result.Warnings = append(result.Warnings, err)
		}
		return content
	})
	result.Outcome = outcome
	result.Note = note
	if err != nil {
		s.record(ctx, result, err)
		return result, err
	}

	if opts.present {
		if err := s.present(ctx, note); err != nil {
			s.record(ctx, result, err)
			return result, err
		}
		result.Presented = true
	}

	s.record(ctx, result, nil)
	return result, nil
}

// present hands the note to a pane.
func (s *Service) present(ctx context.Context, note *models.NoteFile) error {
	p, err := s.panes.GetPane(s.Config.ReusePane)
	if err != nil {
		return fmt.Errorf("get pane: %w", err)
	}
	if err := p.OpenFile(ctx, note); err != nil {
		return fmt.Errorf("open note: %w", err)
	}
	return nil
}

func (s *Service) record(ctx context.Context, result *Result, cause error) {
	if s.history == nil {
		return
	}

	entry := &models.HistoryEntry{
		Date:      result.Date.Format("2006-01-02"),
		Path:      result.Path,
		Outcome:   result.Outcome,
		Presented: result.Presented,
	}
	if cause != nil && !errors.Is(cause, ErrNoteNotFound) {
		entry.Error = cause.Error()
	}
	if err := s.history.Record(ctx, entry); err != nil {
		s.logger.WithError(err).Warn("failed to record history")
	}
}
