package cmd

import (
	"errors"
	"fmt"

	grovelogging "github.com/mattsolo1/grove-core/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-yesterday/cmd/config"
	"github.com/mattsolo1/grove-yesterday/pkg/models"
	"github.com/mattsolo1/grove-yesterday/pkg/service"
)

var openUlog = grovelogging.NewUnifiedLogger("grove-yesterday.cmd.open")

type openFlags struct {
	noCreate bool
	noOpen   bool
	daysAgo  int
}

func (f *openFlags) bind(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCreate, "no-create", false, "Do not create the note when it is missing")
	cmd.Flags().BoolVar(&f.noOpen, "no-open", false, "Resolve and create the note without opening it")
	cmd.Flags().IntVarP(&f.daysAgo, "days-ago", "d", 1, "Open the note this many days back")
}

func (f *openFlags) options() []service.OpenOption {
	opts := []service.OpenOption{service.WithDaysAgo(f.daysAgo)}
	if f.noCreate {
		opts = append(opts, service.WithAutoCreate(false))
	}
	if f.noOpen {
		opts = append(opts, service.WithoutPresent())
	}
	return opts
}

func NewOpenCmd(rt **config.Runtime) *cobra.Command {
	flags := &openFlags{}

	cmd := &cobra.Command{
		Use:   "open",
		Short: "Open yesterday's daily note",
		Long: `Open yesterday's daily note, creating it first when autoCreateYesterday is on.

The note path comes from the plugin's own dateFormat and folder settings,
falling back to the vault's Daily Notes configuration. New notes are
filled from the configured template.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOpen(cmd, *rt, flags)
		},
	}
	flags.bind(cmd)

	return cmd
}

// AttachOpen makes the root command behave like open.
func AttachOpen(root *cobra.Command, rt **config.Runtime) {
	flags := &openFlags{}
	flags.bind(root)
	root.Args = cobra.NoArgs
	root.RunE = func(cmd *cobra.Command, args []string) error {
		return runOpen(cmd, *rt, flags)
	}
}

func runOpen(cmd *cobra.Command, rt *config.Runtime, flags *openFlags) error {
	svc, err := rt.Service()
	if err != nil {
		return err
	}

	result, err := svc.OpenYesterday(cmd.Context(), flags.options()...)
	if result != nil {
		for _, w := range result.Warnings {
			openUlog.Warn("Template skipped").
				Field("error", w.Error()).
				Pretty(fmt.Sprintf("Warning: %s", w)).
				PrettyOnly().
				Emit()
		}
	}

	if errors.Is(err, service.ErrNoteNotFound) {
		openUlog.Info("No note found").
			Field("path", result.Path).
			Pretty(fmt.Sprintf("No note found at: %s", result.Path)).
			PrettyOnly().
			Emit()
		return nil
	}
	if err != nil {
		fields := logrus.Fields{}
		if result != nil {
			fields["path"] = result.Path
			fields["outcome"] = result.Outcome
			fields["date"] = result.Date.Format("2006-01-02")
		}
		rt.Logger.WithFields(fields).Errorf("open yesterday's note: %+v", err)
		return err
	}

	switch {
	case result.Outcome == models.OutcomeCreated:
		openUlog.Success("Note created").
			Field("path", result.Note.Path).
			Field("abs_path", result.Note.AbsPath).
			Pretty(fmt.Sprintf("Created: %s", result.Note.Path)).
			PrettyOnly().
			Emit()
	case result.Presented:
		openUlog.Info("Note opened").
			Field("path", result.Note.Path).
			Pretty(fmt.Sprintf("Opened: %s", result.Note.Path)).
			PrettyOnly().
			Emit()
	default:
		openUlog.Info("Note found").
			Field("path", result.Note.Path).
			Pretty(fmt.Sprintf("Found: %s", result.Note.Path)).
			PrettyOnly().
			Emit()
	}
	return nil
}
