package hiddenquery

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goliatone/go-hiddenquery/internal/hydrate"
	"github.com/tailscale/hujson"
	"golang.org/x/text/language"
)

// DefaultMaximumDescriptionLength bounds the breadcrumb description.
const DefaultMaximumDescriptionLength = 100

// Config holds the component options.
type Config struct {
	// MaximumDescriptionLength is the number of characters kept before the
	// description is truncated. Zero is valid and keeps none.
	MaximumDescriptionLength int `json:"maximumDescriptionLength"`
	// Title prefixes the breadcrumb entry. Empty selects the localized default.
	Title string `json:"title"`
	// Language selects the default title translation.
	Language language.Tag `json:"language"`
}

// DefaultConfig returns the configuration used when no option is supplied.
func DefaultConfig() Config {
	return Config{
		MaximumDescriptionLength: DefaultMaximumDescriptionLength,
		Language:                 language.English,
	}
}

// Validate reports configuration errors.
func (c Config) Validate() error {
	if c.MaximumDescriptionLength < 0 {
		return fmt.Errorf("%w: maximumDescriptionLength must be >= 0, got %d", ErrInvalidConfig, c.MaximumDescriptionLength)
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.Language == language.Und {
		c.Language = language.English
	}
	if c.Title == "" {
		c.Title = DefaultTitle(c.Language)
	}
	return c
}

// LoadConfig decodes component attributes into a validated Config. Keys may
// be camelCase, kebab-case or carry a "data-" prefix; the length may be a
// numeric string. Missing keys keep their defaults.
func LoadConfig(raw map[string]any) (Config, error) {
	decoder := hydrate.NewDecoder(
		hydrate.WithDefaults(DefaultConfig()),
		hydrate.WithPreHook[Config](hydrate.NormalizeKeys),
		hydrate.WithPreHook[Config](hydrate.NumericKeys("maximumDescriptionLength")),
		hydrate.WithPreHook[Config](dropEmptyLanguage),
		hydrate.WithPostHook[Config](func(_ hydrate.Context, cfg *Config) error {
			return cfg.Validate()
		}),
	)
	cfg, err := decoder.Decode(hydrate.Context{Component: ComponentID}, raw)
	if err != nil {
		return Config{}, err
	}
	return cfg.withDefaults(), nil
}

// ParseConfig decodes a JSON or JSONC (comments, trailing commas) attribute
// document through LoadConfig.
func ParseConfig(data []byte) (Config, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("%w: invalid JSONC: %w", ErrInvalidConfig, err)
	}
	var raw map[string]any
	if err := json.Unmarshal(standardized, &raw); err != nil {
		return Config{}, fmt.Errorf("%w: invalid JSON: %w", ErrInvalidConfig, err)
	}
	return LoadConfig(raw)
}

func dropEmptyLanguage(_ hydrate.Context, payload map[string]any) (map[string]any, error) {
	if value, ok := payload["language"].(string); ok && strings.TrimSpace(value) == "" {
		delete(payload, "language")
	}
	return payload, nil
}

type settings struct {
	config Config
	logger Logger
}

// Option configures a HiddenQuery.
type Option func(*settings)

// WithConfig replaces the whole configuration. Start from DefaultConfig to
// keep the default length.
func WithConfig(cfg Config) Option {
	return func(s *settings) {
		s.config = cfg
	}
}

// WithMaximumDescriptionLength sets the truncation length.
func WithMaximumDescriptionLength(n int) Option {
	return func(s *settings) {
		s.config.MaximumDescriptionLength = n
	}
}

// WithTitle sets the breadcrumb title prefix.
func WithTitle(title string) Option {
	return func(s *settings) {
		s.config.Title = title
	}
}

// WithLanguage selects the default title translation.
func WithLanguage(tag language.Tag) Option {
	return func(s *settings) {
		s.config.Language = tag
	}
}

// WithLogger sets the logger; nil keeps the noop logger.
func WithLogger(logger Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func applyOptions(opts []Option) settings {
	s := settings{config: DefaultConfig(), logger: noopLogger{}}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}
