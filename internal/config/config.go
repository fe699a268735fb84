// Package config loads the contacts configuration from YAML or TOML with
// environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Backend names accepted by storage.backend.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config holds all contacts configuration.
type Config struct {
	Storage   Storage `yaml:"storage"   toml:"storage"`
	Collation string  `yaml:"collation" toml:"collation"` // BCP 47 tag used to sort names
	Log       Log     `yaml:"log"       toml:"log"`
}

// Storage selects and configures the persistence medium.
type Storage struct {
	Backend string        `yaml:"backend" toml:"backend"`
	Key     string        `yaml:"key"     toml:"key"`
	File    FileStorage   `yaml:"file"    toml:"file"`
	SQLite  SQLiteStorage `yaml:"sqlite"  toml:"sqlite"`
	Redis   RedisStorage  `yaml:"redis"   toml:"redis"`
}

// FileStorage holds settings for the file backend.
type FileStorage struct {
	Dir string `yaml:"dir" toml:"dir"`
}

// SQLiteStorage holds settings for the sqlite backend.
type SQLiteStorage struct {
	Path string `yaml:"path" toml:"path"`
}

// RedisStorage holds settings for the redis backend.
type RedisStorage struct {
	Addr     string `yaml:"addr"     toml:"addr"`
	Password string `yaml:"password" toml:"password"`
	DB       int    `yaml:"db"       toml:"db"`
}

// Log holds logger settings.
type Log struct {
	Level  string `yaml:"level"  toml:"level"`  // debug | info | warn | error
	Format string `yaml:"format" toml:"format"` // text | json
	File   string `yaml:"file"   toml:"file"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Storage: Storage{
			Backend: BackendFile,
			Key:     "contacts_v1",
			File:    FileStorage{Dir: ".contacts"},
			SQLite:  SQLiteStorage{Path: "contacts.db"},
			Redis:   RedisStorage{Addr: "127.0.0.1:6379"},
		},
		Collation: "en",
		Log: Log{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load reads the config file at path on top of DefaultConfig.
// Files ending in .toml are decoded as TOML, anything else as YAML.
// If path is empty or the file does not exist, defaults are returned.
// Unknown fields are an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return &cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return &cfg, nil
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg)
		if err != nil {
			return nil, fmt.Errorf("config: parsing %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("config: parsing %s: unknown field %q", path, undecoded[0].String())
		}
		return &cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &cfg, nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: CONTACTS_BACKEND, CONTACTS_KEY, CONTACTS_FILE_DIR,
// CONTACTS_SQLITE_PATH, CONTACTS_REDIS_ADDR, CONTACTS_REDIS_PASSWORD,
// CONTACTS_REDIS_DB, CONTACTS_COLLATION, CONTACTS_LOG_LEVEL.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("CONTACTS_BACKEND"); v != "" {
		c.Storage.Backend = v
	}
	if v := os.Getenv("CONTACTS_KEY"); v != "" {
		c.Storage.Key = v
	}
	if v := os.Getenv("CONTACTS_FILE_DIR"); v != "" {
		c.Storage.File.Dir = v
	}
	if v := os.Getenv("CONTACTS_SQLITE_PATH"); v != "" {
		c.Storage.SQLite.Path = v
	}
	if v := os.Getenv("CONTACTS_REDIS_ADDR"); v != "" {
		c.Storage.Redis.Addr = v
	}
	if v := os.Getenv("CONTACTS_REDIS_PASSWORD"); v != "" {
		c.Storage.Redis.Password = v
	}
	if v := os.Getenv("CONTACTS_REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid CONTACTS_REDIS_DB %q: %w", v, err)
		}
		c.Storage.Redis.DB = db
	}
	if v := os.Getenv("CONTACTS_COLLATION"); v != "" {
		c.Collation = v
	}
	if v := os.Getenv("CONTACTS_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	if c.Storage.Key == "" {
		return errors.New("config: storage.key cannot be empty")
	}
	switch c.Storage.Backend {
	case BackendMemory:
	case BackendFile:
		if c.Storage.File.Dir == "" {
			return errors.New("config: storage.file.dir cannot be empty")
		}
	case BackendSQLite:
		if c.Storage.SQLite.Path == "" {
			return errors.New("config: storage.sqlite.path cannot be empty")
		}
	case BackendRedis:
		if c.Storage.Redis.Addr == "" {
			return errors.New("config: storage.redis.addr cannot be empty")
		}
		if c.Storage.Redis.DB < 0 {
			return fmt.Errorf("config: storage.redis.db must be non-negative, got %d", c.Storage.Redis.DB)
		}
	default:
		return fmt.Errorf("config: storage.backend must be one of memory, file, sqlite, redis; got %q", c.Storage.Backend)
	}
	if _, err := c.Language(); err != nil {
		return err
	}
	return nil
}

// Language parses the collation tag.
func (c *Config) Language() (language.Tag, error) {
	tag, err := language.Parse(c.Collation)
	if err != nil {
		return language.Und, fmt.Errorf("config: invalid collation %q: %w", c.Collation, err)
	}
	return tag, nil
}
