// Package config holds configuration for the shipper release pipeline.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/compose-spec/compose-go/v2/dotenv"
	"github.com/gosimple/slug"
)

const (
	// DefaultAppName is the application the pipeline packages and deploys.
	DefaultAppName = "scrappystats"

	ReleasesDirName = "releases"
	CurrentLinkName = "current"
	BuildDirName    = "dist"
	LockFileName    = "shipper.lock"
	DatabaseName    = "shipper.db"
)

// EnvProvider abstracts environment variable access for testing
type EnvProvider interface {
	Getenv(key string) string
	UserHomeDir() (string, error)
}

// DefaultEnvProvider implements EnvProvider using real OS functions
type DefaultEnvProvider struct{}

func (p *DefaultEnvProvider) Getenv(key string) string {
	return os.Getenv(key)
}

func (p *DefaultEnvProvider) UserHomeDir() (string, error) {
	return os.UserHomeDir()
}

// GetDefaultBaseDir returns the default deployment base directory
func GetDefaultBaseDir() string {
	return getDefaultBaseDirWithEnv(&DefaultEnvProvider{})
}

func getDefaultBaseDirWithEnv(env EnvProvider) string {
	homeDir, _ := env.UserHomeDir()
	return filepath.Join(homeDir, DefaultAppName)
}

// Config holds configuration for all shipper services
type Config struct {
	// Application identity
	AppName string

	// Deploy host layout
	BaseDir      string
	ReleasesDir  string
	CurrentLink  string
	LockPath     string
	DatabasePath string

	// Build output
	BuildDir string

	// Logging
	LogLevel     string
	ColorEnabled bool

	// Docker
	DockerHost    string
	DockerCommand string

	// Compose service under management
	ComposeFile    string
	ComposeService string
	ComposeProject string

	// Archive upload
	UploadEnabled bool
	SSHUser       string
	SSHHost       string
	SSHPort       int
	SSHRemotePath string
	SSHKeyFile    string
	SSHTimeout    time.Duration

	// Deploy behavior
	FollowLogs     bool
	SettleInterval time.Duration
	ProbeTimeout   time.Duration
	RetainCount    int

	// Environment provider for testing
	env EnvProvider
}

// NewConfigForCLI creates a new configuration for CLI usage with optional base directory override
func NewConfigForCLI(cliBaseDir string) (*Config, error) {
	return NewConfigForCLIWithEnv(&DefaultEnvProvider{}, cliBaseDir)
}

// NewConfigForCLIWithEnv creates a new configuration with custom environment provider (for testing)
func NewConfigForCLIWithEnv(env EnvProvider, cliBaseDir string) (*Config, error) {
	c := &Config{env: env}

	c.setDefaults()
	c.loadFromEnv()

	if cliBaseDir != "" {
		c.BaseDir = cliBaseDir
	}

	c.derivePaths()

	// Fill unset upload settings from <base>/.env if one exists
	c.loadFromEnvFile()

	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return c, nil
}

// setDefaults sets sensible default values
func (c *Config) setDefaults() {
	c.AppName = DefaultAppName
	c.BaseDir = getDefaultBaseDirWithEnv(c.env)
	c.BuildDir = BuildDirName
	c.LogLevel = "info"
	c.ColorEnabled = true
	c.DockerHost = "unix:///var/run/docker.sock"
	c.DockerCommand = "docker"
	c.ComposeFile = "docker-compose.yml"
	c.ComposeService = "app"
	c.SSHPort = 22
	c.SSHTimeout = 30 * time.Second
	c.FollowLogs = true
	c.SettleInterval = 3 * time.Second
	c.ProbeTimeout = 60 * time.Second
	c.RetainCount = 5
}

// loadFromEnv loads configuration from environment variables
func (c *Config) loadFromEnv() {
	if v := c.env.Getenv("SHIPPER_APP_NAME"); v != "" {
		c.AppName = v
	}
	if v := c.env.Getenv("SHIPPER_BASE_DIR"); v != "" {
		c.BaseDir = v
	}
	if v := c.env.Getenv("SHIPPER_BUILD_DIR"); v != "" {
		c.BuildDir = v
	}
	if v := c.env.Getenv("SHIPPER_DATABASE_PATH"); v != "" {
		c.DatabasePath = v
	}
	if v := c.env.Getenv("SHIPPER_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := c.env.Getenv("SHIPPER_COLOR_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.ColorEnabled = enabled
		}
	}
	if v := c.env.Getenv("SHIPPER_DOCKER_HOST"); v != "" {
		c.DockerHost = v
	}
	if v := c.env.Getenv("SHIPPER_DOCKER_COMMAND"); v != "" {
		c.DockerCommand = v
	}
	if v := c.env.Getenv("SHIPPER_COMPOSE_SERVICE"); v != "" {
		c.ComposeService = v
	}
	if v := c.env.Getenv("SHIPPER_UPLOAD"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.UploadEnabled = enabled
		}
	}
	if v := c.env.Getenv("SHIPPER_SSH_USER"); v != "" {
		c.SSHUser = v
	}
	if v := c.env.Getenv("SHIPPER_SSH_HOST"); v != "" {
		c.SSHHost = v
	}
	if v := c.env.Getenv("SHIPPER_SSH_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.SSHPort = port
		}
	}
	if v := c.env.Getenv("SHIPPER_SSH_PATH"); v != "" {
		c.SSHRemotePath = v
	}
	if v := c.env.Getenv("SHIPPER_SSH_KEY_FILE"); v != "" {
		c.SSHKeyFile = v
	}
	if v := c.env.Getenv("SHIPPER_FOLLOW_LOGS"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.FollowLogs = enabled
		}
	}
	if v := c.env.Getenv("SHIPPER_SETTLE_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.SettleInterval = d
		}
	}
	if v := c.env.Getenv("SHIPPER_PROBE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.ProbeTimeout = d
		}
	}
	if v := c.env.Getenv("SHIPPER_RETAIN_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RetainCount = n
		}
	}
}

// loadFromEnvFile fills unset upload settings from a .env file in the base directory
func (c *Config) loadFromEnvFile() {
	envFile := filepath.Join(c.BaseDir, ".env")

	envVars, err := dotenv.Read(envFile)
	if err != nil {
		// .env file doesn't exist or can't be read, that's okay
		return
	}

	if c.SSHUser == "" {
		c.SSHUser = envVars["SHIPPER_SSH_USER"]
	}
	if c.SSHHost == "" {
		c.SSHHost = envVars["SHIPPER_SSH_HOST"]
	}
	if c.SSHRemotePath == "" {
		c.SSHRemotePath = envVars["SHIPPER_SSH_PATH"]
	}
	if c.SSHKeyFile == "" {
		c.SSHKeyFile = envVars["SHIPPER_SSH_KEY_FILE"]
	}
}

// derivePaths calculates dependent paths from the base directory
func (c *Config) derivePaths() {
	c.ReleasesDir = filepath.Join(c.BaseDir, ReleasesDirName)
	c.CurrentLink = filepath.Join(c.BaseDir, CurrentLinkName)
	c.LockPath = filepath.Join(c.BaseDir, LockFileName)

	if c.DatabasePath == "" {
		c.DatabasePath = filepath.Join(c.BaseDir, DatabaseName)
	}

	// Compose project name namespaces the managed containers so repeated
	// deploys don't collide on container names
	c.ComposeProject = slug.Make(c.AppName)

	if c.SSHKeyFile == "" {
		if homeDir, err := c.env.UserHomeDir(); err == nil {
			c.SSHKeyFile = filepath.Join(homeDir, ".ssh", "id_rsa")
		}
	}
}

// validate ensures configuration values are valid
func (c *Config) validate() error {
	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warning": true, "error": true, "silent": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warning, error, or silent)", c.LogLevel)
	}

	if c.AppName == "" {
		return fmt.Errorf("app name cannot be empty")
	}

	if c.DockerCommand == "" {
		return fmt.Errorf("docker command cannot be empty")
	}

	if c.ComposeService == "" {
		return fmt.Errorf("compose service cannot be empty")
	}

	if c.SSHPort < 1 || c.SSHPort > 65535 {
		return fmt.Errorf("invalid SSH port: %d (must be 1-65535)", c.SSHPort)
	}

	if c.SettleInterval < 0 {
		return fmt.Errorf("settle interval must not be negative, got: %v", c.SettleInterval)
	}

	if c.ProbeTimeout <= 0 {
		return fmt.Errorf("probe timeout must be positive, got: %v", c.ProbeTimeout)
	}

	if c.RetainCount < 1 {
		return fmt.Errorf("retain count must be at least 1, got: %d", c.RetainCount)
	}

	if c.UploadEnabled {
		if c.SSHUser == "" || c.SSHHost == "" || c.SSHRemotePath == "" {
			return fmt.Errorf(
				"archive upload is enabled but SSH settings are incomplete - set SHIPPER_SSH_USER, SHIPPER_SSH_HOST and SHIPPER_SSH_PATH",
			)
		}
	}

	return nil
}

// GetLogLevel returns the configured log level
func (c *Config) GetLogLevel() string {
	return c.LogLevel
}
