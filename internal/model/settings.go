package model

import (
	"errors"
	"time"
)

// Settings are the dashboard preferences of one section, keyed by namespace.
type Settings struct {
	Namespace string    `json:"namespace"`
	PageSize  int       `json:"page_size"`
	Offset    int       `json:"offset"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// DefaultSettings is returned for namespaces nobody saved yet.
func DefaultSettings(namespace string) Settings {
	return Settings{Namespace: namespace, PageSize: DefaultPageSize}
}

// Validate rejects settings the read API could not honor.
func (s Settings) Validate() error {
	switch {
	case s.Namespace == "":
		return errors.New("settings namespace is empty")
	case len(s.Namespace) > 64:
		return errors.New("settings namespace is longer than 64 characters")
	case s.PageSize < 1 || s.PageSize > MaxPageSize:
		return errors.New("page size must be between 1 and 100")
	case s.Offset < 0:
		return errors.New("offset must not be negative")
	}
	return nil
}
