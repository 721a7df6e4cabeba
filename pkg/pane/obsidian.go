package pane

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"github.com/mattsolo1/grove-yesterday/pkg/models"
)

// ObsidianManager opens notes in the desktop app through its URI scheme.
// The app reuses its active unpinned leaf, so reuse is ignored.
type ObsidianManager struct {
	VaultName string

	goos string
	run  func(*exec.Cmd) error
}

func NewObsidianManager(vaultName string) *ObsidianManager {
	return &ObsidianManager{
		VaultName: vaultName,
		goos:      runtime.GOOS,
		run:       func(cmd *exec.Cmd) error { return cmd.Run() },
	}
}

func (m *ObsidianManager) GetPane(reuse bool) (Pane, error) {
	return m, nil
}

func (m *ObsidianManager) OpenFile(ctx context.Context, file *models.NoteFile) error {
	uri := OpenURI(m.VaultName, file.Path)

	var cmd *exec.Cmd
	switch m.goos {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", uri)
	case "windows":
		cmd = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", uri)
	default:
		cmd = exec.CommandContext(ctx, "xdg-open", uri)
	}
	if err := m.run(cmd); err != nil {
		return fmt.Errorf("open %s: %w", uri, err)
	}
	return nil
}

// OpenURI builds an obsidian://open link for a vault-relative path.
func OpenURI(vaultName, path string) string {
	return fmt.Sprintf("obsidian://open?vault=%s&file=%s", uriComponent(vaultName), uriComponent(path))
}

// uriComponent escapes like encodeURIComponent, which the app decodes with;
// in particular spaces must be %20, not "+".
func uriComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
