package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	EnvWorkflowMatchLimit        = "REGISTRAR_WORKFLOW_MATCH_LIMIT"
	EnvWorkflowHighWorkload      = "REGISTRAR_WORKFLOW_HIGH_WORKLOAD"
	EnvWorkflowEnrichBatchSize   = "REGISTRAR_WORKFLOW_ENRICH_BATCH_SIZE"
	EnvWorkflowEnrichConcurrency = "REGISTRAR_WORKFLOW_ENRICH_CONCURRENCY"
)

// WorkflowConfig tunes the planning pipeline. An empty HighWorkload keeps
// the built-in override list. EnrichBatchSize 0 sends every candidate in
// one enrichment call.
type WorkflowConfig struct {
	MatchLimit        int      `toml:"match_limit"`
	HighWorkload      []string `toml:"high_workload"`
	EnrichBatchSize   int      `toml:"enrich_batch_size"`
	EnrichConcurrency int      `toml:"enrich_concurrency"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *WorkflowConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *WorkflowConfig) Merge(overlay *WorkflowConfig) {
	if overlay.MatchLimit != 0 {
		c.MatchLimit = overlay.MatchLimit
	}
	if len(overlay.HighWorkload) > 0 {
		c.HighWorkload = overlay.HighWorkload
	}
	if overlay.EnrichBatchSize != 0 {
		c.EnrichBatchSize = overlay.EnrichBatchSize
	}
	if overlay.EnrichConcurrency != 0 {
		c.EnrichConcurrency = overlay.EnrichConcurrency
	}
}

func (c *WorkflowConfig) loadDefaults() {
	if c.MatchLimit == 0 {
		c.MatchLimit = 10
	}
	if c.EnrichConcurrency == 0 {
		c.EnrichConcurrency = 4
	}
}

func (c *WorkflowConfig) loadEnv() {
	if v := os.Getenv(EnvWorkflowMatchLimit); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MatchLimit = n
		}
	}
	if v := os.Getenv(EnvWorkflowHighWorkload); v != "" {
		codes := strings.Split(v, ",")
		for i := range codes {
			codes[i] = strings.TrimSpace(codes[i])
		}
		c.HighWorkload = codes
	}
	if v := os.Getenv(EnvWorkflowEnrichBatchSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.EnrichBatchSize = n
		}
	}
	if v := os.Getenv(EnvWorkflowEnrichConcurrency); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.EnrichConcurrency = n
		}
	}
}

func (c *WorkflowConfig) validate() error {
	if c.MatchLimit < 4 {
		return fmt.Errorf("match_limit must be at least 4, got %d", c.MatchLimit)
	}
	if c.EnrichBatchSize < 0 {
		return fmt.Errorf("enrich_batch_size must not be negative")
	}
	if c.EnrichConcurrency < 1 {
		return fmt.Errorf("enrich_concurrency must be at least 1")
	}
	return nil
}
