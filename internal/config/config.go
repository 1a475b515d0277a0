package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"finitefield.org/hanko-seo/internal/seo"
)

const (
	envPrefix           = "SEOHEAD_"
	defaultEnvFile      = ".env"
	defaultPort         = "8080"
	defaultReadTimeout  = 15 * time.Second
	defaultWriteTimeout = 30 * time.Second
	defaultIdleTimeout  = 120 * time.Second
	defaultContentDir   = "content"
	defaultLang         = "en"
	defaultCacheTTL     = 5 * time.Minute
	defaultLogLevel     = "info"
)

// Config captures runtime configuration organised by concern.
type Config struct {
	Server  ServerConfig
	Content ContentConfig
	SEO     SEOConfig
	Log     LogConfig
}

// ServerConfig configures the preview HTTP server.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Addr returns the listen address for Port.
func (s ServerConfig) Addr() string { return ":" + s.Port }

// ContentConfig locates markdown pages.
type ContentConfig struct {
	Dir         string
	DefaultLang string
	CacheTTL    time.Duration
}

// SEOConfig points at the site-wide defaults.
type SEOConfig struct {
	DefaultsFile string
}

// LogConfig sets the logger level.
type LogConfig struct {
	Level string
}

// ValidationError is returned when configuration values cannot be parsed.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path. An empty path skips the file.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects explicit values. They take precedence over the system
// environment and the .env file.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading the process environment.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles configuration from defaults, the .env file, the process
// environment and the explicit map, in increasing precedence.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		key = envPrefix + key
		if value, ok := options.envMap[key]; ok {
			return value, true
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if value, ok := dotEnvValues[key]; ok {
			return value, true
		}
		return "", false
	}

	p := parser{lookup: lookup}
	cfg := Config{
		Server: ServerConfig{
			Port:         p.port("PORT", defaultPort),
			ReadTimeout:  p.duration("READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout: p.duration("WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:  p.duration("IDLE_TIMEOUT", defaultIdleTimeout),
		},
		Content: ContentConfig{
			Dir:         p.str("CONTENT_DIR", defaultContentDir),
			DefaultLang: p.lang("DEFAULT_LANG", defaultLang),
			CacheTTL:    p.duration("CONTENT_CACHE_TTL", defaultCacheTTL),
		},
		SEO: SEOConfig{
			DefaultsFile: p.str("DEFAULTS_FILE", ""),
		},
		Log: LogConfig{
			Level: p.level("LOG_LEVEL", defaultLogLevel),
		},
	}
	if len(p.invalid) > 0 {
		return Config{}, &ValidationError{fields: p.invalid}
	}
	return cfg, nil
}

// LoadDefaults decodes the site-wide SEO defaults from a YAML file. An empty
// path yields an empty config.
func LoadDefaults(path string) (seo.Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return seo.Config{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return seo.Config{}, fmt.Errorf("config: open defaults %s: %w", path, err)
	}
	defer f.Close()

	var cfg seo.Config
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return seo.Config{}, fmt.Errorf("config: parse defaults %s: %w", path, err)
	}
	return cfg, nil
}

// parser reads typed values and records the keys that failed to parse.
type parser struct {
	lookup  func(string) (string, bool)
	invalid []string
}

func (p *parser) raw(key string) (string, bool) {
	value, ok := p.lookup(key)
	value = strings.TrimSpace(value)
	return value, ok && value != ""
}

func (p *parser) str(key, fallback string) string {
	if value, ok := p.raw(key); ok {
		return value
	}
	return fallback
}

func (p *parser) port(key, fallback string) string {
	value, ok := p.raw(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 || n > 65535 {
		p.invalid = append(p.invalid, envPrefix+key)
		return fallback
	}
	return value
}

func (p *parser) duration(key string, fallback time.Duration) time.Duration {
	value, ok := p.raw(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		p.invalid = append(p.invalid, envPrefix+key)
		return fallback
	}
	return d
}

func (p *parser) lang(key, fallback string) string {
	value, ok := p.raw(key)
	if !ok {
		return fallback
	}
	tag, err := language.Parse(value)
	if err != nil {
		p.invalid = append(p.invalid, envPrefix+key)
		return fallback
	}
	return strings.ToLower(tag.String())
}

func (p *parser) level(key, fallback string) string {
	value, ok := p.raw(key)
	if !ok {
		return fallback
	}
	if _, err := zapcore.ParseLevel(value); err != nil {
		p.invalid = append(p.invalid, envPrefix+key)
		return fallback
	}
	return strings.ToLower(value)
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	file, err := os.Open(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	values := make(map[string]string)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		values[key] = strings.Trim(strings.TrimSpace(value), `"'`)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: scan %s: %w", absPath, err)
	}
	return values, nil
}
