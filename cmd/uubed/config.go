package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/uubed"
	"github.com/hupe1980/uubed/errs"
	"github.com/hupe1980/uubed/internal/resource"
	"github.com/hupe1980/uubed/simhash"
)

// Config is the YAML configuration file format. Command-line flags override
// the values read from the file.
type Config struct {
	Method uubed.Method `yaml:"method"`
	Planes int          `yaml:"planes"`
	K      int          `yaml:"k"`
	Levels []int        `yaml:"levels,omitempty"`

	// Format of embeddings on the command line and in batch input: hex or csv.
	Format string `yaml:"format"`

	Batch BatchConfig `yaml:"batch"`
	Cache CacheConfig `yaml:"cache"`
	Log   LogConfig   `yaml:"log"`

	resources *resource.Controller
}

// BatchConfig configures the batch command.
type BatchConfig struct {
	Threads     int   `yaml:"threads"`
	ChunkSize   int   `yaml:"chunk_size"`
	RateLimit   int64 `yaml:"rate_limit"`
	LocalCaches bool  `yaml:"local_caches"`
}

// CacheConfig configures the SimHash matrix cache.
type CacheConfig struct {
	// Size bounds the number of cached matrices. 0 means unbounded.
	Size int `yaml:"size"`
	// MemoryLimitBytes bounds the memory held by cached matrices. 0 means unlimited.
	MemoryLimitBytes int64 `yaml:"memory_limit_bytes"`
}

// LogConfig configures diagnostics on stderr.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns the configuration used without a config file.
func DefaultConfig() Config {
	return Config{
		Method: uubed.MethodQ64,
		Planes: uubed.DefaultPlanes,
		K:      uubed.DefaultK,
		Format: formatHex,
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()

	if err := cfg.decode(f); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return errs.InvalidInputValues(err.Error())
	}
	return c.Validate()
}

// Validate checks values the encoders do not check themselves.
func (c *Config) Validate() error {
	if c.Format != formatHex && c.Format != formatCSV {
		return errs.InvalidInputValues(fmt.Sprintf("unknown embedding format %q", c.Format))
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return errs.InvalidInputValues(fmt.Sprintf("unknown log format %q", c.Log.Format))
	}
	if c.Cache.Size < 0 || c.Cache.MemoryLimitBytes < 0 {
		return errs.InvalidInputValues("cache limits must not be negative")
	}
	return nil
}

// Logger builds the diagnostics logger.
func (c *Config) Logger(w io.Writer) *uubed.Logger {
	level, _ := parseLevel(c.Log.Level)
	if c.Log.Format == "json" {
		return uubed.NewJSONLogger(w, level)
	}
	return uubed.NewTextLogger(w, level)
}

// Resources returns the controller enforcing the matrix memory budget and
// the batch rate limit. It is created on first use and shared by every
// cache and processor built from c.
func (c *Config) Resources() *resource.Controller {
	if c.resources == nil {
		c.resources = resource.NewController(resource.Config{
			MemoryLimitBytes: c.Cache.MemoryLimitBytes,
			ItemsPerSec:      c.Batch.RateLimit,
		})
	}
	return c.resources
}

// cacheOptions applies the cache section to a matrix cache.
func (c *Config) cacheOptions(o *simhash.CacheOptions) {
	o.Resources = c.Resources()
	o.MaxEntries = c.Cache.Size
}

// MatrixCache builds the SimHash matrix cache described by c.Cache.
func (c *Config) MatrixCache() (simhash.Cache, error) {
	if c.Cache.Size == 0 && c.Cache.MemoryLimitBytes == 0 {
		return simhash.DefaultCache(), nil
	}

	if c.Cache.Size > 0 {
		return simhash.NewLRUCache(c.Cache.Size, c.cacheOptions)
	}
	return simhash.NewSharedCache(c.cacheOptions), nil
}

// EncoderOptions converts c into encoder options.
func (c *Config) EncoderOptions(logger *uubed.Logger) ([]uubed.Option, error) {
	cache, err := c.MatrixCache()
	if err != nil {
		return nil, err
	}

	opts := []uubed.Option{
		uubed.WithPlanes(c.Planes),
		uubed.WithK(c.K),
		uubed.WithMatrixCache(cache),
		uubed.WithLogger(logger),
	}
	if len(c.Levels) > 0 {
		opts = append(opts, uubed.WithLevels(c.Levels...))
	}
	return opts, nil
}

// BatchOptions converts c.Batch into batch processor options.
func (c *Config) BatchOptions(logger *uubed.Logger) []uubed.BatchOption {
	opts := []uubed.BatchOption{
		uubed.WithThreads(c.Batch.Threads),
		uubed.WithChunkSize(c.Batch.ChunkSize),
		uubed.WithResources(c.Resources()),
		uubed.WithBatchLogger(logger),
	}
	if c.Batch.LocalCaches {
		opts = append(opts, uubed.WithLocalMatrixCaches(c.cacheOptions))
	}
	return opts
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, errs.InvalidInputValues(fmt.Sprintf("unknown log level %q", s))
	}
	return level, nil
}
