package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
)

const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

type Config struct {
	DataDir      string
	DBPath       string
	StoreDir     string
	GuideDir     string
	FlowsPath    string
	Backend      string
	TimeZone     string
	Location     *time.Location
	TickInterval time.Duration
	LogLevel     string
}

func New(dataDir string) (Config, error) {
	return Load(dataDir, viper.New())
}

// Load resolves configuration from defaults, an optional ritualcoach.yaml in
// dataDir and RITUALCOACH_* environment variables, in increasing priority.
func Load(dataDir string, v *viper.Viper) (Config, error) {
	if dataDir == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	v.SetDefault("storage.backend", BackendSQLite)
	v.SetDefault("storage.db_path", "")
	v.SetDefault("time_zone", "Local")
	v.SetDefault("timer.tick_interval", 100*time.Millisecond)
	v.SetDefault("log.level", "info")
	v.SetDefault("flows.path", "")

	v.SetConfigName("ritualcoach")
	v.SetConfigType("yaml")
	v.AddConfigPath(dataDir)
	v.SetEnvPrefix("RITUALCOACH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	backend := strings.ToLower(strings.TrimSpace(v.GetString("storage.backend")))
	switch backend {
	case BackendSQLite, BackendFile, BackendMemory:
	default:
		return Config{}, fmt.Errorf("unsupported storage backend %q", backend)
	}

	tz := v.GetString("time_zone")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return Config{}, fmt.Errorf("load time zone %q: %w", tz, err)
	}

	tick := v.GetDuration("timer.tick_interval")
	if tick <= 0 {
		return Config{}, fmt.Errorf("timer.tick_interval must be positive")
	}

	dbPath := v.GetString("storage.db_path")
	if dbPath == "" {
		dbPath = filepath.Join(dataDir, "ritualcoach.db")
	}
	flowsPath := v.GetString("flows.path")
	if flowsPath == "" {
		flowsPath = filepath.Join(dataDir, "flows.yaml")
	}

	return Config{
		DataDir:      dataDir,
		DBPath:       dbPath,
		StoreDir:     filepath.Join(dataDir, "store"),
		GuideDir:     filepath.Join(dataDir, "guides"),
		FlowsPath:    flowsPath,
		Backend:      backend,
		TimeZone:     tz,
		Location:     loc,
		TickInterval: tick,
		LogLevel:     v.GetString("log.level"),
	}, nil
}
