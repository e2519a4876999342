// Package config loads lineagemap settings.
//
// Settings are layered: built-in defaults, then a TOML file
// (lineagemap.toml), then environment variables. A .env file in the working
// directory is loaded into the environment first, so deployments can keep
// secrets such as MONGO_URI out of the TOML file.
//
//	[server]
//	addr = ":8080"
//
//	[storage]
//	backend = "mongo"
//	mongo_uri = "mongodb://localhost:27017"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[layout]
//	card_width = 180
//	curved = true
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/lineagemap/pkg/errors"
	"github.com/matzehuels/lineagemap/pkg/render/tree/layout"
)

// DefaultFile is the config file looked up in the working directory when
// no path is given.
const DefaultFile = "lineagemap.toml"

// Storage backends.
const (
	StorageFile  = "file"
	StorageMongo = "mongo"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Environment variables that override file settings.
const (
	EnvAddr      = "LINEAGEMAP_ADDR"
	EnvDataDir   = "DATA_DIR"
	EnvRedisAddr = "REDIS_ADDR"
	EnvMongoURI  = "MONGO_URI"
	EnvMongoDB   = "MONGO_DB"
)

// Config is the complete application configuration.
type Config struct {
	Server  Server        `toml:"server"`
	Storage Storage       `toml:"storage"`
	Cache   Cache         `toml:"cache"`
	Layout  layout.Config `toml:"layout"`
}

// Server configures the HTTP API.
type Server struct {
	Addr            string        `toml:"addr"`
	ReadTimeout     time.Duration `toml:"read_timeout"`
	WriteTimeout    time.Duration `toml:"write_timeout"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
	MaxBodyBytes    int64         `toml:"max_body_bytes"`
}

// Storage selects where family documents live.
type Storage struct {
	Backend    string `toml:"backend"`
	DataDir    string `toml:"data_dir"`
	SamplesDir string `toml:"samples_dir"` // optional override for built-in samples
	MongoURI   string `toml:"mongo_uri"`
	MongoDB    string `toml:"mongo_db"`
}

// Cache selects the layout and artifact cache.
type Cache struct {
	Backend   string `toml:"backend"`
	Dir       string `toml:"dir"` // file backend; empty means the user cache dir
	RedisAddr string `toml:"redis_addr"`
	Prefix    string `toml:"prefix"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: Server{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    5 << 20,
		},
		Storage: Storage{
			Backend: StorageFile,
			DataDir: "data",
			MongoDB: "lineagemap",
		},
		Cache: Cache{
			Backend: CacheFile,
			Prefix:  "lineagemap:",
		},
		Layout: layout.DefaultConfig(),
	}
}

// Load reads the configuration. An empty path uses DefaultFile when it
// exists; an explicit path must exist. Environment overrides are applied
// last.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
		}
	}

	LoadDotEnv()
	cfg.applyEnv(os.LookupEnv)
	cfg.Layout = cfg.Layout.WithDefaults()
	return cfg, cfg.Validate()
}

// LoadDotEnv loads .env from the working directory into the process
// environment. Variables already set are not overwritten; a missing file is
// not an error.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// applyEnv overrides settings from the environment. Setting MONGO_URI or
// REDIS_ADDR also switches the matching backend on.
func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvAddr); ok && v != "" {
		if _, err := strconv.Atoi(v); err == nil {
			v = ":" + v
		}
		c.Server.Addr = v
	}
	if v, ok := lookup(EnvDataDir); ok && v != "" {
		c.Storage.DataDir = v
	}
	if v, ok := lookup(EnvMongoURI); ok && v != "" {
		c.Storage.MongoURI = v
		c.Storage.Backend = StorageMongo
	}
	if v, ok := lookup(EnvMongoDB); ok && v != "" {
		c.Storage.MongoDB = v
	}
	if v, ok := lookup(EnvRedisAddr); ok && v != "" {
		c.Cache.RedisAddr = v
		c.Cache.Backend = CacheRedis
	}
}

// Validate checks backend names and required connection settings.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case StorageFile:
		if c.Storage.DataDir == "" {
			return errors.New(errors.ErrCodeInvalidInput, "storage.data_dir is required for the file backend")
		}
	case StorageMongo:
		if c.Storage.MongoURI == "" {
			return errors.New(errors.ErrCodeInvalidInput, "storage.mongo_uri is required for the mongo backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown storage backend %q", c.Storage.Backend)
	}

	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidInput, "cache.redis_addr is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q", c.Cache.Backend)
	}
	return nil
}

// CacheDir returns the file cache directory, defaulting to the XDG cache
// location (~/.cache/lineagemap).
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	return DefaultCacheDir()
}

// DefaultCacheDir returns $XDG_CACHE_HOME/lineagemap or ~/.cache/lineagemap.
func DefaultCacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, "lineagemap"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(home, ".cache", "lineagemap"), nil
}
