package app

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"sparse-life/pkg/sims/life"
)

// Store backends understood by Config.Store.
const (
	StoreMemory = "memory"
	StoreValkey = "valkey"
)

// Config represents the command-line parameters for the daemon.
type Config struct {
	Addr            string
	Store           string
	ValkeyHost      string
	ValkeyPort      int
	ValkeyPassword  string
	KeyPrefix       string
	MaxIterations   int
	AlwaysWriteBack bool
	ShutdownTimeout time.Duration
}

// NewConfig returns a Config populated with defaults, taking the Valkey
// location from VALKEY_HOST and VALKEY_PORT when set.
func NewConfig() *Config {
	c := &Config{
		Addr:            ":8000",
		Store:           StoreValkey,
		ValkeyHost:      "localhost",
		ValkeyPort:      6379,
		MaxIterations:   life.DefaultMaxIterations,
		AlwaysWriteBack: true,
		ShutdownTimeout: 10 * time.Second,
	}
	if v := os.Getenv("VALKEY_HOST"); v != "" {
		c.ValkeyHost = v
	}
	if v := os.Getenv("VALKEY_PORT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.ValkeyPort = parsed
		}
	}
	c.ValkeyPassword = os.Getenv("VALKEY_PASSWORD")
	return c
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Addr, "addr", c.Addr, "HTTP listen address")
	fs.StringVar(&c.Store, "store", c.Store, "board store: memory or valkey")
	fs.StringVar(&c.ValkeyHost, "valkey-host", c.ValkeyHost, "Valkey host")
	fs.IntVar(&c.ValkeyPort, "valkey-port", c.ValkeyPort, "Valkey port")
	fs.StringVar(&c.KeyPrefix, "key-prefix", c.KeyPrefix, "prefix for stored board keys")
	fs.IntVar(&c.MaxIterations, "max-iterations", c.MaxIterations, "largest iteration count a request may ask for")
	fs.BoolVar(&c.AlwaysWriteBack, "always-write-back", c.AlwaysWriteBack, "store boards even after zero-step reads")
	fs.DurationVar(&c.ShutdownTimeout, "shutdown-timeout", c.ShutdownTimeout, "grace period for in-flight requests")
}

// ValkeyAddr joins host and port.
func (c *Config) ValkeyAddr() string {
	return net.JoinHostPort(c.ValkeyHost, strconv.Itoa(c.ValkeyPort))
}

// Validate reports the first unusable setting.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr must not be empty")
	}
	switch c.Store {
	case StoreMemory:
	case StoreValkey:
		if c.ValkeyHost == "" || c.ValkeyPort <= 0 {
			return fmt.Errorf("invalid valkey address %q", c.ValkeyAddr())
		}
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	if c.MaxIterations < 0 {
		return fmt.Errorf("max-iterations must be non-negative, got %d", c.MaxIterations)
	}
	return nil
}
