package config

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/hugo-lorenzo-mato/splitview/internal/core"
	"github.com/hugo-lorenzo-mato/splitview/internal/splitview"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config validation: %s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors collects multiple validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Is lets errors.Is match the INVALID_CONFIG domain error.
func (e ValidationErrors) Is(target error) bool {
	var de *core.DomainError
	return errors.As(target, &de) && de.Category == core.ErrCatValidation && de.Code == core.CodeInvalidConfig
}

// HasErrors returns true if there are any validation errors.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Validator validates configuration.
type Validator struct {
	errors ValidationErrors
}

// NewValidator creates a new validator.
func NewValidator() *Validator {
	return &Validator{errors: make(ValidationErrors, 0)}
}

// Validate validates the entire configuration.
func (v *Validator) Validate(cfg *Config) error {
	v.validateLog(&cfg.Log)
	v.validateLayout(&cfg.Layout)
	v.validateViews(cfg.Views)
	v.validateServer(&cfg.Server)
	v.validateUI(&cfg.UI)

	if len(v.errors) > 0 {
		return v.errors
	}
	return nil
}

// Errors returns the collected validation errors.
func (v *Validator) Errors() ValidationErrors {
	return v.errors
}

func (v *Validator) addError(field string, value interface{}, msg string) {
	v.errors = append(v.errors, ValidationError{Field: field, Value: value, Message: msg})
}

func (v *Validator) validateLog(cfg *LogConfig) {
	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[cfg.Level] {
		v.addError("log.level", cfg.Level, "must be one of: debug, info, warn, error")
	}

	validFormats := map[string]bool{
		"auto": true, "text": true, "json": true,
	}
	if !validFormats[cfg.Format] {
		v.addError("log.format", cfg.Format, "must be one of: auto, text, json")
	}
}

func (v *Validator) validateLayout(cfg *LayoutConfig) {
	if _, err := splitview.ParseDirection(cfg.Direction); err != nil {
		v.addError("layout.direction", cfg.Direction, "must be one of: row, column")
	}
	if cfg.PollInterval <= 0 {
		v.addError("layout.poll_interval", cfg.PollInterval, "must be positive")
	}
	if cfg.WarnDelay < 0 {
		v.addError("layout.warn_delay", cfg.WarnDelay, "must not be negative")
	}
	if cfg.HandleSize < 1 || cfg.HandleSize > 5 {
		v.addError("layout.handle_size", cfg.HandleSize, "must be between 1 and 5")
	}
}

func (v *Validator) validateViews(views []ViewConfig) {
	if len(views) == 0 {
		v.addError("views", len(views), "at least one view required")
		return
	}

	seen := make(map[string]bool, len(views))
	for i, view := range views {
		field := fmt.Sprintf("views[%d]", i)
		switch {
		case strings.TrimSpace(view.Name) == "":
			v.addError(field+".name", view.Name, "name required")
		case strings.ContainsAny(view.Name, " \t"):
			v.addError(field+".name", view.Name, "must not contain whitespace")
		case seen[view.Name]:
			v.addError(field+".name", view.Name, "duplicate view name")
		}
		seen[view.Name] = true

		minimum := float64(splitview.DefaultMin)
		if view.Min != nil {
			minimum = *view.Min
			if minimum < 0 {
				v.addError(field+".min", minimum, "must not be negative")
			}
		}
		if view.Max != nil && *view.Max < minimum {
			v.addError(field+".max", *view.Max, "must be at least min")
		}
		if view.Size < 0 {
			v.addError(field+".size", view.Size, "must not be negative")
		}
	}
}

func (v *Validator) validateServer(cfg *ServerConfig) {
	if cfg.Addr == "" {
		return
	}
	if _, _, err := net.SplitHostPort(cfg.Addr); err != nil {
		v.addError("server.addr", cfg.Addr, "must be host:port")
	}
}

func (v *Validator) validateUI(cfg *UIConfig) {
	validThemes := map[string]bool{
		"auto": true, "dark": true, "light": true, "notty": true,
	}
	if !validThemes[cfg.Theme] {
		v.addError("ui.theme", cfg.Theme, "must be one of: auto, dark, light, notty")
	}
}
