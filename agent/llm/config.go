package llm

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/claraeverett/Sierra-Agent/agent/contract"
	openrouterx "github.com/claraeverett/Sierra-Agent/pkg/openrouter"
)

type Config struct {
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true" default:"https://openrouter.ai/api/v1"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model              string        `envconfig:"MODEL" split_words:"true" required:"true"`
	MaxCompletionToken int           `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"2000"`
	Temperature        float64       `envconfig:"TEMPERATURE" split_words:"true" default:"0.5"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
	SiteURL            string        `envconfig:"SITE_URL" split_words:"true"`
	SiteName           string        `envconfig:"SITE_NAME" split_words:"true"`

	// Per-role overrides; empty means use Model.
	ClassifierModel string `envconfig:"CLASSIFIER_MODEL" split_words:"true"`
	GeneratorModel  string `envconfig:"GENERATOR_MODEL" split_words:"true"`

	EmbeddingModel string `envconfig:"EMBEDDING_MODEL" split_words:"true" default:"text-embedding-3-small"`

	// HistoryWindow caps how many transcript entries are sent per model call.
	HistoryWindow int `envconfig:"HISTORY_WINDOW" split_words:"true" default:"10"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: api key is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("%w: default model is required", contractx.ErrValidation)
	}
	return nil
}

func (c Config) OpenRouter() openrouterx.Config {
	return openrouterx.Config{
		BaseURL:  strings.TrimSpace(c.BaseURL),
		APIKey:   strings.TrimSpace(c.APIKey),
		Timeout:  c.Timeout,
		SiteURL:  strings.TrimSpace(c.SiteURL),
		SiteName: strings.TrimSpace(c.SiteName),
	}
}

func (c Config) classifierModel() string {
	if v := strings.TrimSpace(c.ClassifierModel); v != "" {
		return v
	}
	return strings.TrimSpace(c.Model)
}

func (c Config) generatorModel() string {
	if v := strings.TrimSpace(c.GeneratorModel); v != "" {
		return v
	}
	return strings.TrimSpace(c.Model)
}
