package model

import "time"

// Config is the full runtime configuration, loaded through viper from
// flags, LABELCHECK_* environment variables, and the config file.
type Config struct {
	Data        DataConfig        `yaml:"data" mapstructure:"data"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
}

// DataConfig locates the reference rule tables. Paths are relative to the
// working directory unless absolute.
type DataConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`

	ListedClaims    string `yaml:"listed_claims" mapstructure:"listed_claims"`       // claims for reference-listed foods
	UnlistedClaims  string `yaml:"unlisted_claims" mapstructure:"unlisted_claims"`   // claims for per-100g/ml foods
	Disclaimers     string `yaml:"disclaimers" mapstructure:"disclaimers"`           // disclaimer thresholds
	ServingSizes    string `yaml:"serving_sizes" mapstructure:"serving_sizes"`       // reference serving list
	RDIs            string `yaml:"rdis" mapstructure:"rdis"`                         // Thai RDI values
	ConditionLookup string `yaml:"condition_lookup" mapstructure:"condition_lookup"` // claim condition notes

	// CacheTTL bounds how long parsed tables are cached in-process.
	// Tables are immutable once loaded; the TTL only controls reload after
	// the files change on disk.
	CacheTTL time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// LLMConfig configures the optional plain-language summarizer.
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // "openai" or "" (disabled)
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"-" mapstructure:"api_key"` // never written to config files
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`

	// RequestsPerMinute rate-limits summary calls during batch runs.
	RequestsPerMinute float64 `yaml:"requests_per_minute" mapstructure:"requests_per_minute"`
}

// ConcurrencyConfig sizes the batch worker pool. Evaluations share only
// read-only reference tables, so any worker count is safe.
type ConcurrencyConfig struct {
	BatchWorkers int `yaml:"batch_workers" mapstructure:"batch_workers"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Dir:             "data",
			ListedClaims:    "claims_listed.csv",
			UnlistedClaims:  "claims_unlisted.csv",
			Disclaimers:     "disclaimer_rules.csv",
			ServingSizes:    "serving_sizes.csv",
			RDIs:            "thai_rdis.csv",
			ConditionLookup: "condition_lookup.csv",
			CacheTTL:        time.Hour,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
		LLM: LLMConfig{
			Provider:          "",
			Model:             "",
			Timeout:           30,
			MaxTokens:         800,
			RequestsPerMinute: 20,
		},
		Concurrency: ConcurrencyConfig{
			BatchWorkers: 4,
		},
	}
}
