package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Catalog drivers.
const (
	DriverStatic   = "static"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Game holds all configuration for the game.
type Game struct {
	// Logging (stdout belongs to the terminal UI, so logs go to a file)
	LogLevel string `yaml:"log_level" env:"QUINCY_LOG_LEVEL"`
	LogFile  string `yaml:"log_file" env:"QUINCY_LOG_FILE"`

	// Save slots directory
	StorageDir string `yaml:"storage_dir" env:"QUINCY_STORAGE_DIR"`

	// Content catalog
	Database DatabaseConfig `yaml:"database"`

	// Character creation rules
	NewCharacter NewCharacterConfig `yaml:"new_character"`

	// Scripted introduction fight
	Intro IntroConfig `yaml:"intro"`
}

// DatabaseConfig describes where the content catalog lives.
type DatabaseConfig struct {
	// Driver is one of static, sqlite, postgres.
	Driver string `yaml:"driver" env:"QUINCY_DB_DRIVER"`

	// ContentFile is the YAML content for the static driver (empty = embedded).
	ContentFile string `yaml:"content_file" env:"QUINCY_CONTENT_FILE"`

	// Path is the SQLite database file.
	Path string `yaml:"path" env:"QUINCY_DB_PATH"`

	// PostgreSQL connection parameters.
	Host     string `yaml:"host" env:"QUINCY_DB_HOST"`
	Port     int    `yaml:"port" env:"QUINCY_DB_PORT"`
	User     string `yaml:"user" env:"QUINCY_DB_USER"`
	Password string `yaml:"password" env:"QUINCY_DB_PASSWORD"`
	DBName   string `yaml:"dbname" env:"QUINCY_DB_NAME"`
	SSLMode  string `yaml:"sslmode" env:"QUINCY_DB_SSLMODE"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// NewCharacterConfig: правила создания персонажа.
type NewCharacterConfig struct {
	BaseStat      int32 `yaml:"base_stat" env:"QUINCY_BASE_STAT"`
	Points        int   `yaml:"points" env:"QUINCY_CREATION_POINTS"`
	StartingMoney int32 `yaml:"starting_money" env:"QUINCY_STARTING_MONEY"`
}

// IntroConfig: параметры вступительного боя.
type IntroConfig struct {
	Enemy     string  `yaml:"enemy"`
	Physique  int32   `yaml:"physique"`
	Technique int32   `yaml:"technique"`
	Mystique  int32   `yaml:"mystique"`
	HealthPct float64 `yaml:"health_pct"` // fraction of MaxHealth the player starts the fight with
}

// DefaultGame returns Game config with the stock game rules.
func DefaultGame() Game {
	return Game{
		LogLevel:   "info",
		LogFile:    "quincy.log",
		StorageDir: "Players",
		Database: DatabaseConfig{
			Driver:   DriverSQLite,
			Path:     "quincy.db",
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "quincy",
			Password: "quincy",
			DBName:   "quincy",
			SSLMode:  "disable",
		},
		NewCharacter: NewCharacterConfig{
			BaseStat:      1,
			Points:        5,
			StartingMoney: 100,
		},
		Intro: IntroConfig{
			Enemy:     "Rabbit",
			Physique:  1,
			Technique: 1,
			Mystique:  1,
			HealthPct: 0.5,
		},
	}
}

// LoadGame loads game config from a YAML file and applies QUINCY_* environment
// overrides. If the file doesn't exist, defaults are used.
func LoadGame(path string) (Game, error) {
	cfg := DefaultGame()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that would break the game rules.
func (g Game) Validate() error {
	switch g.Database.Driver {
	case DriverStatic, DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unknown database driver %q", g.Database.Driver)
	}
	if g.StorageDir == "" {
		return fmt.Errorf("storage_dir must not be empty")
	}
	if g.NewCharacter.BaseStat < 0 {
		return fmt.Errorf("new_character.base_stat must be >= 0, got %d", g.NewCharacter.BaseStat)
	}
	if g.NewCharacter.Points < 0 {
		return fmt.Errorf("new_character.points must be >= 0, got %d", g.NewCharacter.Points)
	}
	if g.Intro.HealthPct <= 0 || g.Intro.HealthPct > 1 {
		return fmt.Errorf("intro.health_pct must be in (0, 1], got %v", g.Intro.HealthPct)
	}
	if g.Intro.Physique < 0 || g.Intro.Technique < 0 || g.Intro.Mystique < 0 {
		return fmt.Errorf("intro stats must be >= 0")
	}
	return nil
}
