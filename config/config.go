package config

import (
	"errors"
	"fmt"

	"modelmgr/internal/utils"
)

// Store operation errors. Callers match them with errors.Is.
var (
	ErrNotFound      = errors.New("profile does not exist")
	ErrAlreadyExists = errors.New("profile already exists")
)

// Profile is a single named endpoint configuration.
type Profile struct {
	Name    string `json:"name"`
	BaseURL string `json:"base_url"`
	Model   string `json:"model"`
	APIKey  string `json:"api_key"`
}

// Document is the on-disk layout of the config file. CurrentModel is a
// pointer so that an unset active profile round-trips as JSON null.
type Document struct {
	Models       []Profile `json:"models"`
	CurrentModel *string   `json:"current_model"`
}

// Validate checks that a profile carries the required fields.
// The API key is optional.
func (p Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("profile name cannot be empty")
	}
	if p.BaseURL == "" {
		return fmt.Errorf("base URL cannot be empty")
	}
	if !utils.ValidateURL(p.BaseURL) {
		return fmt.Errorf("invalid URL format: %s", p.BaseURL)
	}
	if p.Model == "" {
		return fmt.Errorf("model cannot be empty")
	}
	return nil
}
