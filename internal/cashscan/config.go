package cashscan

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// VoteKeyword is one context keyword and the number of votes its presence
// contributes. Votes are cumulative across keywords.
type VoteKeyword struct {
	Keyword string `yaml:"keyword"`
	Votes   int    `yaml:"votes"`
}

// Config holds the scanning policy. Thresholds and keyword weights are
// injected rather than baked in so alternate policies can be tested
// without touching the scanner.
type Config struct {
	MinAmount    float64       `yaml:"min_amount"`
	ContextChars int           `yaml:"context_chars"`
	VoteKeywords []VoteKeyword `yaml:"vote_keywords"`
}

// DefaultConfig returns the embedded default scanning policy.
func DefaultConfig() Config {
	cfg, err := ParseConfig(defaultsYAML)
	if err != nil {
		panic(fmt.Sprintf("cashscan: embedded defaults.yaml: %v", err))
	}
	return cfg
}

// ParseConfig parses a scanning policy from YAML bytes. Omitted fields
// fall back to the embedded defaults.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(defaultsYAML, &cfg); err != nil {
		return Config{}, fmt.Errorf("cashscan: parse defaults: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("cashscan: parse config: %w", err)
	}
	return cfg, nil
}
