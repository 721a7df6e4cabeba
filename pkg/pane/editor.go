package pane

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/mattsolo1/grove-yesterday/pkg/models"
)

// EditorManager opens notes in a terminal editor. When reuse is requested
// and we are running inside Neovim ($NVIM is set), the note is sent to that
// instance instead of starting a nested editor.
type EditorManager struct {
	Editor     string
	NvimServer string

	run func(*exec.Cmd) error
}

// NewEditorManager falls back to $EDITOR and then vim.
func NewEditorManager(editor string) *EditorManager {
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "vim"
	}
	return &EditorManager{
		Editor:     editor,
		NvimServer: os.Getenv("NVIM"),
		run:        runAttached,
	}
}

func (m *EditorManager) GetPane(reuse bool) (Pane, error) {
	if reuse && m.NvimServer != "" {
		return &nvimRemotePane{server: m.NvimServer, run: m.run}, nil
	}
	args := strings.Fields(m.Editor)
	if len(args) == 0 {
		return nil, fmt.Errorf("no editor configured")
	}
	return &editorPane{command: args, run: m.run}, nil
}

type editorPane struct {
	command []string
	run     func(*exec.Cmd) error
}

func (p *editorPane) OpenFile(ctx context.Context, file *models.NoteFile) error {
	args := append(append([]string{}, p.command[1:]...), file.AbsPath)
	cmd := exec.CommandContext(ctx, p.command[0], args...)
	if err := p.run(cmd); err != nil {
		return fmt.Errorf("run editor %s: %w", p.command[0], err)
	}
	return nil
}

type nvimRemotePane struct {
	server string
	run    func(*exec.Cmd) error
}

func (p *nvimRemotePane) OpenFile(ctx context.Context, file *models.NoteFile) error {
	cmd := exec.CommandContext(ctx, "nvim", "--server", p.server, "--remote", file.AbsPath)
	if err := p.run(cmd); err != nil {
		return fmt.Errorf("send to nvim %s: %w", p.server, err)
	}
	return nil
}
