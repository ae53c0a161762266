package config

import (
	"fmt"
	"net/url"
	"os"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

const (
	EnvAgentProviderName = "REGISTRAR_AGENT_PROVIDER_NAME"
	EnvAgentBaseURL      = "REGISTRAR_AGENT_BASE_URL"
	EnvAgentToken        = "REGISTRAR_AGENT_TOKEN"
	EnvAgentDeployment   = "REGISTRAR_AGENT_DEPLOYMENT"
	EnvAgentAPIVersion   = "REGISTRAR_AGENT_API_VERSION"
	EnvAgentAuthType     = "REGISTRAR_AGENT_AUTH_TYPE"
	EnvAgentModelName    = "REGISTRAR_AGENT_MODEL_NAME"
)

// providerOptions maps env variables onto provider option keys.
var providerOptions = map[string]string{
	EnvAgentToken:      "token",
	EnvAgentDeployment: "deployment",
	EnvAgentAPIVersion: "api_version",
	EnvAgentAuthType:   "auth_type",
}

// FinalizeAgent layers the TOML agent section over go-agents' defaults,
// applies REGISTRAR_AGENT_* overrides and validates the result. Every
// workflow stage shares this one agent configuration.
func FinalizeAgent(c *gaconfig.AgentConfig) error {
	merged := gaconfig.DefaultAgentConfig()
	merged.Merge(c)
	*c = merged

	if c.Provider == nil {
		c.Provider = &gaconfig.ProviderConfig{}
	}
	if c.Provider.Options == nil {
		c.Provider.Options = make(map[string]any)
	}
	if c.Model == nil {
		c.Model = &gaconfig.ModelConfig{}
	}

	if v := os.Getenv(EnvAgentProviderName); v != "" {
		c.Provider.Name = v
	}
	if v := os.Getenv(EnvAgentBaseURL); v != "" {
		c.Provider.BaseURL = v
	}
	if v := os.Getenv(EnvAgentModelName); v != "" {
		c.Model.Name = v
	}
	for env, key := range providerOptions {
		if v := os.Getenv(env); v != "" {
			c.Provider.Options[key] = v
		}
	}

	return validateAgent(c)
}

func validateAgent(c *gaconfig.AgentConfig) error {
	switch {
	case c.Name == "":
		return fmt.Errorf("name required")
	case c.Provider.Name == "":
		return fmt.Errorf("provider name required")
	case c.Model.Name == "":
		return fmt.Errorf("model name required")
	}

	if c.Provider.BaseURL != "" {
		u, err := url.Parse(c.Provider.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid provider base_url: %q", c.Provider.BaseURL)
		}
	}
	return nil
}
