package openapi

import "os"

// Config supplies the document's info block.
type Config struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
}

type ConfigEnv struct {
	Title       string
	Description string
}

// Finalize fills defaults and applies env overrides. It never fails.
func (c *Config) Finalize(env *ConfigEnv) error {
	if c.Title == "" {
		c.Title = "Registrar API"
	}
	if c.Description == "" {
		c.Description = "Course-planning advisor that turns natural-language requests into four-course schedules."
	}
	if env != nil {
		override(&c.Title, env.Title)
		override(&c.Description, env.Description)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
	if overlay.Description != "" {
		c.Description = overlay.Description
	}
}

func override(dst *string, key string) {
	if key == "" {
		return
	}
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
