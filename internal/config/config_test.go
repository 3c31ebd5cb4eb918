package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.finalize(); err != nil {
		t.Fatalf("default config should finalize cleanly: %v", err)
	}

	if cfg.Clinic.CalendarID != "primary" {
		t.Errorf("expected primary calendar, got %s", cfg.Clinic.CalendarID)
	}
	if cfg.OpenMinute() != 8*60 {
		t.Errorf("expected opening at 480 minutes, got %d", cfg.OpenMinute())
	}
	if cfg.CloseMinute() != 20*60 {
		t.Errorf("expected closing at 1200 minutes, got %d", cfg.CloseMinute())
	}
	if cfg.SlotLength() != 30*time.Minute {
		t.Errorf("expected 30 minute slots, got %s", cfg.SlotLength())
	}
	if cfg.Location().String() != "America/New_York" {
		t.Errorf("expected America/New_York, got %s", cfg.Location())
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFileName)
	content := `
[clinic]
name = "Smile Dental"
calendar_id = "clinic@example.com"
timezone = "Europe/Berlin"
appointment_summary = "Checkup"

[hours]
open = "09:00"
close = "17:00"
slot_minutes = 30
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Clinic.Name != "Smile Dental" {
		t.Errorf("expected Smile Dental, got %s", cfg.Clinic.Name)
	}
	if cfg.Clinic.CalendarID != "clinic@example.com" {
		t.Errorf("expected clinic@example.com, got %s", cfg.Clinic.CalendarID)
	}
	if cfg.OpenMinute() != 9*60 || cfg.CloseMinute() != 17*60 {
		t.Errorf("unexpected hours: open=%d close=%d", cfg.OpenMinute(), cfg.CloseMinute())
	}
	if cfg.Location().String() != "Europe/Berlin" {
		t.Errorf("expected Europe/Berlin, got %s", cfg.Location())
	}
	// Unset fields keep their defaults.
	if cfg.Clinic.SendUpdates != "none" {
		t.Errorf("expected send_updates default none, got %q", cfg.Clinic.SendUpdates)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() with no file should use defaults: %v", err)
	}
	if cfg.Clinic.CalendarID != "primary" {
		t.Errorf("expected default calendar, got %s", cfg.Clinic.CalendarID)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CLINIC_CALENDAR_ID", "front-desk@example.com")
	t.Setenv("CLINIC_TIMEZONE", "UTC")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Clinic.CalendarID != "front-desk@example.com" {
		t.Errorf("env override not applied, got %s", cfg.Clinic.CalendarID)
	}
	if cfg.Location() != time.UTC {
		t.Errorf("expected UTC location, got %s", cfg.Location())
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "bad timezone",
			content: "[clinic]\ntimezone = \"Mars/Olympus\"\n",
		},
		{
			name:    "open after close",
			content: "[hours]\nopen = \"21:00\"\nclose = \"08:00\"\n",
		},
		{
			name:    "zero slot",
			content: "[hours]\nslot_minutes = 0\n",
		},
		{
			name:    "bad send_updates",
			content: "[clinic]\nsend_updates = \"everyone\"\n",
		},
		{
			name:    "not toml",
			content: "{\"clinic\": {}}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), DefaultFileName)
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error for invalid config")
			}
		})
	}
}
