//go:build integration
// +build integration

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mattsolo1/grove-yesterday/pkg/dailynotes"
	"github.com/mattsolo1/grove-yesterday/pkg/history"
	"github.com/mattsolo1/grove-yesterday/pkg/models"
	"github.com/mattsolo1/grove-yesterday/pkg/pane"
	"github.com/mattsolo1/grove-yesterday/pkg/service"
	"github.com/mattsolo1/grove-yesterday/pkg/settings"
	"github.com/mattsolo1/grove-yesterday/pkg/vault"
)

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

func TestIntegration(t *testing.T) {
	// Skip if not running integration tests
	if os.Getenv("RUN_INTEGRATION_TESTS") == "" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=1 to run.")
	}

	root := t.TempDir()
	obsidian := filepath.Join(root, ".obsidian")
	if err := os.MkdirAll(filepath.Join(root, "templates"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(obsidian, 0755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		filepath.Join(obsidian, "core-plugins.json"): `["daily-notes"]`,
		filepath.Join(obsidian, "daily-notes.json"):  `{"format": "YYYY-MM-DD dddd", "folder": "journal"}`,
		filepath.Join(root, "templates", "day.md"):   "# {{date:dddd, MMMM Do}}\n",
	}
	for path, content := range files {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	store, err := vault.Open(root)
	if err != nil {
		t.Fatalf("Failed to open vault: %v", err)
	}
	s, err := settings.Open(settings.PathForVault(root))
	if err != nil {
		t.Fatalf("Failed to open settings: %v", err)
	}
	h, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Failed to open history: %v", err)
	}
	defer h.Close()

	var out bytes.Buffer
	panes, _ := pane.NewManager(pane.Options{Mode: pane.ModePrint, Out: &out})
	clock := fixedClock(time.Date(2024, 3, 16, 8, 0, 0, 0, time.Local))

	svc, err := service.New(nil, s, dailynotes.NewVaultProvider(root), store, panes,
		service.WithHistory(h), service.WithClock(clock))
	if err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}

	// Test 1: Provider settings drive the path, the local template fills it
	t.Run("CreateFromProvider", func(t *testing.T) {
		if err := s.Update("template", "templates/day"); err != nil {
			t.Fatal(err)
		}

		result, err := svc.OpenYesterday(context.Background())
		if err != nil {
			t.Fatalf("OpenYesterday failed: %v", err)
		}
		if result.Path != "journal/2024-03-15 Friday.md" {
			t.Errorf("unexpected path %q", result.Path)
		}
		if result.Outcome != models.OutcomeCreated {
			t.Errorf("expected created, got %s", result.Outcome)
		}

		content, err := os.ReadFile(filepath.Join(root, "journal", "2024-03-15 Friday.md"))
		if err != nil {
			t.Fatal(err)
		}
		if string(content) != "# Friday, March 15th\n" {
			t.Errorf("unexpected content %q", content)
		}
		if !strings.HasSuffix(strings.TrimSpace(out.String()), "2024-03-15 Friday.md") {
			t.Errorf("note was not presented: %q", out.String())
		}
	})

	// Test 2: Local settings win over the provider
	t.Run("LocalOverride", func(t *testing.T) {
		if err := s.Update("dateFormat", "YYYY/MM/DD"); err != nil {
			t.Fatal(err)
		}
		if err := s.Update("folder", ""); err != nil {
			t.Fatal(err)
		}

		result, err := svc.OpenYesterday(context.Background(), service.WithoutPresent())
		if err != nil {
			t.Fatalf("OpenYesterday failed: %v", err)
		}
		// An empty local folder falls through to the provider's.
		if result.Path != "journal/2024/03/15.md" {
			t.Errorf("unexpected path %q", result.Path)
		}
	})

	// Test 3: Every invocation is in the history
	t.Run("History", func(t *testing.T) {
		entries, err := h.Recent(context.Background(), 10)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(entries))
		}
		if entries[0].Presented {
			t.Error("latest entry should not be presented")
		}
	})
}
