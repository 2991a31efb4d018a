package toml

import "fmt"

const currentSchemaVersion = 1

type sessionsFileSchema struct {
	Version  int             `toml:"version"`
	Sessions []sessionSchema `toml:"sessions"`
}

func (s *sessionsFileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s sessionsFileSchema) validateVersion() error {
	return validateVersion("sessions", s.Version)
}

type sessionSchema struct {
	ID              string `toml:"id"`
	Console         string `toml:"console"`
	PlayerName      string `toml:"player_name"`
	StartTime       string `toml:"start_time"`
	EndTime         string `toml:"end_time"`
	DurationMinutes int    `toml:"duration_minutes"`
	ControllerCount int    `toml:"controller_count"`
	ColdDrinks      int    `toml:"cold_drinks"`
	Water           int    `toml:"water"`
	Snacks          int    `toml:"snacks"`
	BaseCost        string `toml:"base_cost"`
	TotalAmount     string `toml:"total_amount"`
}

type consolesFileSchema struct {
	Version  int             `toml:"version"`
	Consoles []consoleSchema `toml:"consoles"`
}

func (s *consolesFileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s consolesFileSchema) validateVersion() error {
	return validateVersion("consoles", s.Version)
}

type consoleSchema struct {
	ID     string `toml:"id"`
	Name   string `toml:"name"`
	Status string `toml:"status"`
}

type settingsFileSchema struct {
	Version int          `toml:"version"`
	Prices  pricesSchema `toml:"prices"`
}

func (s *settingsFileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s settingsFileSchema) validateVersion() error {
	return validateVersion("settings", s.Version)
}

type pricesSchema struct {
	ColdDrink string `toml:"cold_drink"`
	Water     string `toml:"water"`
	Snack     string `toml:"snack"`
}

type adminsFileSchema struct {
	Version int      `toml:"version"`
	Actors  []string `toml:"actors"`
}

func (s *adminsFileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s adminsFileSchema) validateVersion() error {
	return validateVersion("admins", s.Version)
}

func validateVersion(table string, version int) error {
	if version > currentSchemaVersion {
		return fmt.Errorf("unsupported %s schema version %d (current %d)", table, version, currentSchemaVersion)
	}

	return nil
}
