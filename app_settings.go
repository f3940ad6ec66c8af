package main

import (
	"log"
	"time"

	"satprobe-desktop/internal/config"
)

// Settings Management Functions (Wails-exported)

// GetSettings returns the current user settings
func (a *App) GetSettings() *config.UserSettings {
	return a.settings
}

// UpdateSettings persists new user settings and applies what can change at
// runtime. Cache sizing takes effect on the next app launch.
func (a *App) UpdateSettings(settings config.UserSettings) error {
	if err := config.SaveSettings(&settings); err != nil {
		log.Printf("Failed to save settings: %v", err)
		return err
	}

	a.settings = &settings
	log.Printf("Settings updated")
	return nil
}

// SetAnalyticsEnabled toggles usage analytics. Disabling closes the client
// immediately; enabling takes effect on the next launch.
func (a *App) SetAnalyticsEnabled(enabled bool) error {
	a.settings.AnalyticsEnabled = enabled
	if !enabled && a.phClient != nil {
		a.phClient.Close()
		a.phClient = nil
	}
	return config.SaveSettings(a.settings)
}

// GetFetchTimeout returns the metadata fetch timeout for display
func (a *App) GetFetchTimeout() string {
	return (time.Duration(a.settings.FetchTimeoutMs) * time.Millisecond).String()
}
