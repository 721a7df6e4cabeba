// Package pane hands a note to whatever displays it: a terminal editor, the
// vault's desktop application, or plain stdout.
package pane

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/mattsolo1/grove-yesterday/pkg/models"
)

// Pane displays a single file.
type Pane interface {
	OpenFile(ctx context.Context, file *models.NoteFile) error
}

// Manager hands out panes. With reuse set, a manager may return a pane that
// is already showing something instead of opening a new one.
type Manager interface {
	GetPane(reuse bool) (Pane, error)
}

// Modes accepted by NewManager.
const (
	ModeEditor   = "editor"
	ModeObsidian = "obsidian"
	ModePrint    = "print"
)

// Options selects and configures a Manager.
type Options struct {
	Mode      string
	Editor    string
	VaultName string
	Out       io.Writer
}

// NewManager builds the manager for opts.Mode.
func NewManager(opts Options) (Manager, error) {
	switch opts.Mode {
	case "", ModeEditor:
		return NewEditorManager(opts.Editor), nil
	case ModeObsidian:
		if opts.VaultName == "" {
			return nil, fmt.Errorf("obsidian pane needs a vault name")
		}
		return NewObsidianManager(opts.VaultName), nil
	case ModePrint:
		out := opts.Out
		if out == nil {
			out = os.Stdout
		}
		return &PrintManager{Out: out}, nil
	default:
		return nil, fmt.Errorf("unknown pane mode %q (want %s, %s or %s)", opts.Mode, ModeEditor, ModeObsidian, ModePrint)
	}
}

// PrintManager writes the note's absolute path, one per line.
type PrintManager struct {
	Out io.Writer
}

func (m *PrintManager) GetPane(reuse bool) (Pane, error) {
	return m, nil
}

func (m *PrintManager) OpenFile(ctx context.Context, file *models.NoteFile) error {
	_, err := fmt.Fprintln(m.Out, file.AbsPath)
	return err
}

// runAttached runs cmd wired to the current terminal.
func runAttached(cmd *exec.Cmd) error {
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
