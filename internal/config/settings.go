package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// UserSettings represents persistent user preferences
type UserSettings struct {
	// Geodata cache settings
	GeoCacheMaxEntries   int  `json:"geoCacheMaxEntries"`
	GeoCacheTTLMinutes   int  `json:"geoCacheTTLMinutes"`
	GeoCacheSweepMinutes int  `json:"geoCacheSweepMinutes"`
	DiskCacheEnabled     bool `json:"diskCacheEnabled"`
	DiskCacheTTLHours    int  `json:"diskCacheTTLHours"`

	// Network settings
	FetchTimeoutMs    int `json:"fetchTimeoutMs"`
	PrefetchBatchSize int `json:"prefetchBatchSize"`

	// Imagery source settings
	ImageBaseURL   string `json:"imageBaseURL"` // template with {domain}/{product}/{timestamp}
	DefaultDomain  string `json:"defaultDomain"`
	DefaultProduct string `json:"defaultProduct"`

	// UI preferences
	Theme            string `json:"theme"` // "light", "dark", "system"
	ShowCoordinates  bool   `json:"showCoordinates"`
	AnalyticsEnabled bool   `json:"analyticsEnabled"`
}

// DefaultSettings returns default user settings
func DefaultSettings() *UserSettings {
	return &UserSettings{
		GeoCacheMaxEntries:   50,
		GeoCacheTTLMinutes:   30,
		GeoCacheSweepMinutes: 10,
		DiskCacheEnabled:     true,
		DiskCacheTTLHours:    24,
		FetchTimeoutMs:       10000,
		PrefetchBatchSize:    3,
		ImageBaseURL:         "https://cdn.satprobe.app/frames/{domain}/{product}/{timestamp}.jpg",
		DefaultDomain:        "conus",
		DefaultProduct:       "C13",
		Theme:                "system",
		ShowCoordinates:      true,
		AnalyticsEnabled:     true,
	}
}

// GetSettingsPath returns the OS-specific settings file path
func GetSettingsPath() string {
	homeDir, _ := os.UserHomeDir()

	baseDir := filepath.Join(homeDir, ".satprobe", "desktop", "settings")

	// Ensure directory exists
	os.MkdirAll(baseDir, 0755)

	return filepath.Join(baseDir, "settings.json")
}

// GetGeoCacheDir returns the directory for the persistent geodata cache
func GetGeoCacheDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".satprobe", "desktop", "geodata")
}

// LoadSettings loads user settings from disk
func LoadSettings() (*UserSettings, error) {
	settingsPath := GetSettingsPath()

	// If file doesn't exist, return defaults
	if _, err := os.Stat(settingsPath); os.IsNotExist(err) {
		return DefaultSettings(), nil
	}

	data, err := os.ReadFile(settingsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings UserSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	// Merge with defaults for any missing fields
	defaults := DefaultSettings()
	if settings.GeoCacheMaxEntries == 0 {
		settings.GeoCacheMaxEntries = defaults.GeoCacheMaxEntries
	}
	if settings.GeoCacheTTLMinutes == 0 {
		settings.GeoCacheTTLMinutes = defaults.GeoCacheTTLMinutes
	}
	if settings.GeoCacheSweepMinutes == 0 {
		settings.GeoCacheSweepMinutes = defaults.GeoCacheSweepMinutes
	}
	if settings.DiskCacheTTLHours == 0 {
		settings.DiskCacheTTLHours = defaults.DiskCacheTTLHours
	}
	if settings.FetchTimeoutMs == 0 {
		settings.FetchTimeoutMs = defaults.FetchTimeoutMs
	}
	if settings.PrefetchBatchSize == 0 {
		settings.PrefetchBatchSize = defaults.PrefetchBatchSize
	}
	if settings.ImageBaseURL == "" {
		settings.ImageBaseURL = defaults.ImageBaseURL
	}
	if settings.DefaultDomain == "" {
		settings.DefaultDomain = defaults.DefaultDomain
	}
	if settings.DefaultProduct == "" {
		settings.DefaultProduct = defaults.DefaultProduct
	}
	if settings.Theme == "" {
		settings.Theme = defaults.Theme
	}

	return &settings, nil
}

// SaveSettings saves user settings to disk
func SaveSettings(settings *UserSettings) error {
	settingsPath := GetSettingsPath()

	// Ensure directory exists
	dir := filepath.Dir(settingsPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(settingsPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}
