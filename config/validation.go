package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// requirements lists the keys that must be non-empty per environment
var requirements = map[Environment][]string{
	Development: {},
	Test:        {},
	CI: {
		"database.host",
		"database.name",
	},
	Production: {
		"database.host",
		"database.name",
		"database.password",
		"llm.api_key",
	},
}

func fieldValue(cfg *Config, key string) string {
	switch key {
	case "database.host":
		return cfg.Database.Host
	case "database.name":
		return cfg.Database.Name
	case "database.password":
		return cfg.Database.Password
	case "llm.api_key":
		return cfg.LLM.APIKey
	}
	return ""
}

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	var errs []string
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg}.Error())
	}

	for _, key := range requirements[cfg.Env] {
		if fieldValue(cfg, key) == "" {
			add(key, fmt.Sprintf("required in %s environment", cfg.Env))
		}
	}

	if port, err := strconv.Atoi(cfg.Server.Port); err != nil || port <= 0 || port > 65535 {
		add("server.port", "must be a valid TCP port")
	}

	switch cfg.Database.Driver {
	case "postgres":
	case "sqlite":
		if cfg.Env == Production {
			add("database.driver", "sqlite is not allowed in production")
		}
		if cfg.Database.SQLitePath == "" {
			add("database.sqlite_path", "required for sqlite driver")
		}
	default:
		add("database.driver", "must be postgres or sqlite")
	}

	if cfg.LLM.APIURL == "" {
		add("llm.api_url", "must not be empty")
	}
	if cfg.LLM.Timeout <= 0 {
		add("llm.timeout", "must be positive")
	}

	if cfg.Catalog.BaseURL == "" {
		add("catalog.base_url", "must not be empty")
	}
	if cfg.Catalog.Limit < 1 || cfg.Catalog.Limit > 100 {
		add("catalog.limit", "must be between 1 and 100")
	}
	if cfg.Catalog.Timeout <= 0 || cfg.Catalog.MediaTimeout <= 0 {
		add("catalog.timeout", "timeouts must be positive")
	}
	if cfg.Catalog.MediaCacheSize < 1 {
		add("catalog.media_cache_size", "must be at least 1")
	}

	if cfg.RateLimit.Requests < 1 || cfg.RateLimit.Window <= 0 {
		add("rate_limit", "requests and window must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "\n"))
	}
	return nil
}
