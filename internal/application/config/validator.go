package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/doeshing/agpt/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if err := validateAPI(cfg.API); err != nil {
		return err
	}
	if err := validatePreferences(cfg.Preferences); err != nil {
		return err
	}
	return cfg.ValidateConsistency()
}

func validateAPI(api domain.APISettings) error {
	if strings.TrimSpace(api.Endpoint) == "" {
		return errors.New("api.endpoint must be set")
	}
	parsed, err := url.Parse(api.Endpoint)
	if err != nil {
		return fmt.Errorf("api.endpoint invalid: %w", err)
	}
	switch parsed.Scheme {
	case "https", "http":
	default:
		return fmt.Errorf("api.endpoint must be an http(s) URL, got %q", api.Endpoint)
	}
	if parsed.Host == "" {
		return fmt.Errorf("api.endpoint has no host: %q", api.Endpoint)
	}
	if strings.TrimSpace(api.Model) == "" {
		return errors.New("api.model must be set")
	}
	if api.TimeoutSeconds < 0 {
		return fmt.Errorf("api.timeout must be >= 0, got %d", api.TimeoutSeconds)
	}
	return nil
}

func validatePreferences(prefs domain.Preferences) error {
	if prefs.HistoryLimit < 0 {
		return fmt.Errorf("preferences.history_limit must be >= 0, got %d", prefs.HistoryLimit)
	}
	return nil
}
