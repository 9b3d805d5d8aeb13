// Package config loads startup settings from the environment, an optional
// .env file and an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Brownie44l1/agricare-api/internal/labels"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port    string `mapstructure:"port"`
	GinMode string `mapstructure:"gin_mode"`

	ModelPath       string `mapstructure:"model_path"`
	ONNXLibrary     string `mapstructure:"onnx_library"`
	ModelInputName  string `mapstructure:"model_input_name"`
	ModelOutputName string `mapstructure:"model_output_name"`
	ImageSize       int    `mapstructure:"image_size"`
	// NumClasses is the width of the model output. Zero means max label index + 1.
	NumClasses int `mapstructure:"num_classes"`

	LLMProvider     string        `mapstructure:"llm_provider"`
	GeminiAPIKey    string        `mapstructure:"gemini_api_key"`
	GeminiModel     string        `mapstructure:"gemini_model"`
	OpenAIAPIKey    string        `mapstructure:"openai_api_key"`
	OpenAIModel     string        `mapstructure:"openai_model"`
	AnthropicAPIKey string        `mapstructure:"anthropic_api_key"`
	ClaudeModel     string        `mapstructure:"claude_model"`
	LLMTimeout      time.Duration `mapstructure:"llm_timeout"`

	MaxUploadBytes int64    `mapstructure:"max_upload_bytes"`
	MaxBodyBytes   int64    `mapstructure:"max_body_bytes"`
	CORSOrigins    []string `mapstructure:"cors_origins"`

	// Labels overrides the built-in class table when non-empty. It is a list
	// rather than a map because viper lowercases map keys.
	Labels []labels.Entry `mapstructure:"labels"`
}

var keys = []string{
	"port", "gin_mode",
	"model_path", "onnx_library", "model_input_name", "model_output_name", "image_size", "num_classes",
	"llm_provider", "gemini_api_key", "gemini_model", "openai_api_key", "openai_model",
	"anthropic_api_key", "claude_model", "llm_timeout",
	"max_upload_bytes", "max_body_bytes", "cors_origins",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "5000")
	v.SetDefault("gin_mode", "release")
	v.SetDefault("model_path", "models/crop_disease_model.onnx")
	v.SetDefault("model_input_name", "input")
	v.SetDefault("model_output_name", "output")
	v.SetDefault("image_size", 224)
	v.SetDefault("llm_provider", "gemini")
	v.SetDefault("llm_timeout", 60*time.Second)
	v.SetDefault("max_upload_bytes", 10<<20)
	v.SetDefault("max_body_bytes", 1<<20)
	v.SetDefault("cors_origins", []string{"*"})
}

// Load reads configuration. configFile may be empty; AGRICARE_CONFIG is
// consulted in that case. A missing model or API key is not an error here.
func Load(configFile string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, k := range keys {
		if err := v.BindEnv(k, strings.ToUpper(k)); err != nil {
			return nil, fmt.Errorf("bind %s: %w", k, err)
		}
	}

	if configFile == "" {
		configFile = v.GetString("agricare_config")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", configFile, err)
		}
		log.Printf("Loaded config file: %s", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Port == "" {
		return errors.New("port must not be empty")
	}
	if c.ImageSize <= 0 {
		return fmt.Errorf("image_size must be positive, got %d", c.ImageSize)
	}
	if c.NumClasses < 0 {
		return fmt.Errorf("num_classes must not be negative, got %d", c.NumClasses)
	}
	if c.MaxUploadBytes <= 0 || c.MaxBodyBytes <= 0 {
		return errors.New("body size limits must be positive")
	}
	return nil
}

// LabelMap returns the configured label table, falling back to the built-in one.
func (c *Config) LabelMap() (*labels.Map, error) {
	if len(c.Labels) == 0 {
		return labels.Default(), nil
	}
	table := make(map[string]int, len(c.Labels))
	for _, e := range c.Labels {
		if _, dup := table[e.Label]; dup {
			return nil, fmt.Errorf("labels: %q listed twice", e.Label)
		}
		table[e.Label] = e.Index
	}
	m, err := labels.New(table)
	if err != nil {
		return nil, fmt.Errorf("labels: %w", err)
	}
	return m, nil
}

// OutputClasses is the classifier output width. It does not depend on how many
// indices have labels; unlabelled indices resolve to labels.UnknownLabel.
func (c *Config) OutputClasses(m *labels.Map) int {
	if c.NumClasses > 0 {
		return c.NumClasses
	}
	return m.MaxIndex() + 1
}

// LLMCredentials returns the API key and model for the configured provider.
func (c *Config) LLMCredentials() (apiKey, model string) {
	switch strings.ToLower(c.LLMProvider) {
	case "openai":
		return c.OpenAIAPIKey, c.OpenAIModel
	case "claude":
		return c.AnthropicAPIKey, c.ClaudeModel
	default:
		return c.GeminiAPIKey, c.GeminiModel
	}
}
