package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultFileName is the clinic configuration file searched for in the
// working directory and in ~/.config/clinicdesk/.
const DefaultFileName = ".clinicdesk.toml"

// Config holds the clinic-wide configuration.
type Config struct {
	Clinic ClinicConfig `toml:"clinic"`
	Hours  HoursConfig  `toml:"hours"`
	OAuth  OAuthConfig  `toml:"oauth"`

	// location is resolved from Clinic.Timezone during Load.
	location *time.Location
}

// ClinicConfig describes the clinic identity and its calendar.
type ClinicConfig struct {
	Name       string `toml:"name"`
	CalendarID string `toml:"calendar_id"`
	Timezone   string `toml:"timezone"`

	// AppointmentSummary is the event title used for bookings.
	AppointmentSummary string `toml:"appointment_summary"`

	// SendUpdates controls whether the calendar service emails invitations
	// to attendees: "all" or "none".
	SendUpdates string `toml:"send_updates"`
}

// HoursConfig describes the bookable hours of the clinic.
type HoursConfig struct {
	Open        string `toml:"open"`  // "08:00"
	Close       string `toml:"close"` // "20:00"
	SlotMinutes int    `toml:"slot_minutes"`
}

// OAuthConfig holds the Google OAuth client used for the calendar identity.
type OAuthConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Clinic: ClinicConfig{
			Name:               "Dental Clinic",
			CalendarID:         "primary",
			Timezone:           "America/New_York",
			AppointmentSummary: "Dentist Appointment",
			SendUpdates:        "none",
		},
		Hours: HoursConfig{
			Open:        "08:00",
			Close:       "20:00",
			SlotMinutes: 30,
		},
	}
}

// Load reads the configuration from path, or when path is empty from
// DefaultFileName in the working directory and then ~/.config/clinicdesk/.
// A missing file yields the defaults; a malformed file is an error.
// Environment variables override file values afterwards.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, found, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if found {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse clinic config: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readFile(path string) ([]byte, bool, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, false, fmt.Errorf("failed to read clinic config %s: %w", path, err)
		}
		return data, true, nil
	}

	// Try the working directory first, then the user config directory.
	candidates := []string{DefaultFileName}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "clinicdesk", DefaultFileName))
	}
	for _, candidate := range candidates {
		data, err := os.ReadFile(candidate)
		if err == nil {
			return data, true, nil
		}
	}
	return nil, false, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CLINIC_NAME"); v != "" {
		cfg.Clinic.Name = v
	}
	if v := os.Getenv("CLINIC_CALENDAR_ID"); v != "" {
		cfg.Clinic.CalendarID = v
	}
	if v := os.Getenv("CLINIC_TIMEZONE"); v != "" {
		cfg.Clinic.Timezone = v
	}
	if v := os.Getenv("GOOGLE_CLIENT_ID"); v != "" {
		cfg.OAuth.ClientID = v
	}
	if v := os.Getenv("GOOGLE_CLIENT_SECRET"); v != "" {
		cfg.OAuth.ClientSecret = v
	}
}

// finalize validates the configuration and resolves derived values.
func (c *Config) finalize() error {
	loc, err := time.LoadLocation(c.Clinic.Timezone)
	if err != nil {
		return fmt.Errorf("invalid clinic timezone %q: %w", c.Clinic.Timezone, err)
	}
	c.location = loc

	if _, err := parseClock(c.Hours.Open); err != nil {
		return fmt.Errorf("invalid opening time %q: %w", c.Hours.Open, err)
	}
	closeMin, err := parseClock(c.Hours.Close)
	if err != nil {
		return fmt.Errorf("invalid closing time %q: %w", c.Hours.Close, err)
	}
	openMin, _ := parseClock(c.Hours.Open)
	if openMin >= closeMin {
		return fmt.Errorf("opening time %s must be before closing time %s", c.Hours.Open, c.Hours.Close)
	}
	if c.Hours.SlotMinutes <= 0 {
		return fmt.Errorf("slot_minutes must be positive, got %d", c.Hours.SlotMinutes)
	}
	switch c.Clinic.SendUpdates {
	case "", "all", "none":
	default:
		return fmt.Errorf("send_updates must be \"all\" or \"none\", got %q", c.Clinic.SendUpdates)
	}
	return nil
}

// Location returns the clinic's resolved timezone.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

// OpenMinute returns the opening time as minutes from midnight.
func (c *Config) OpenMinute() int {
	m, _ := parseClock(c.Hours.Open)
	return m
}

// CloseMinute returns the closing time as minutes from midnight.
func (c *Config) CloseMinute() int {
	m, _ := parseClock(c.Hours.Close)
	return m
}

// SlotLength returns the appointment slot duration.
func (c *Config) SlotLength() time.Duration {
	return time.Duration(c.Hours.SlotMinutes) * time.Minute
}

// parseClock parses an "HH:MM" clock string into minutes from midnight.
func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}
