package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpiryHours int    `mapstructure:"expiry_hours"`
}

type GoogleAPIConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURL  string `mapstructure:"redirect_url"`
}

// EngineConfig holds the scheduling engine tunables. ResponseBufferHours is
// the number of hours before an activity's target date by which invitees
// must respond; it is configuration, not a hard-coded constant.
type EngineConfig struct {
	ResponseBufferHours   int     `mapstructure:"response_buffer_hours"`
	FlexibleDeadlineHours int     `mapstructure:"flexible_deadline_hours"`
	MinSlotDurationHours  float64 `mapstructure:"min_slot_duration_hours"`
	MaxSuggestions        int     `mapstructure:"max_suggestions"`
	AutoRefreshSeconds    int     `mapstructure:"auto_refresh_seconds"`
	FreeBusyCacheSeconds  int     `mapstructure:"freebusy_cache_seconds"`
	ReminderLeadHours     int     `mapstructure:"reminder_lead_hours"`
}

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	GoogleAPI GoogleAPIConfig `mapstructure:"google_api"`
	Engine    EngineConfig    `mapstructure:"engine"`
}

var (
	instance *Config
	once     sync.Once
)

// Load reads .env, config.yaml (optional) and environment variables
func Load() (*Config, error) {
	var loadErr error

	once.Do(func() {
		_ = godotenv.Load()

		v := viper.New()
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()

		setDefaults(v)

		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				loadErr = fmt.Errorf("failed to read config file: %w", err)
				return
			}
		}

		cfg := &Config{}
		if err := v.Unmarshal(cfg); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal config: %w", err)
			return
		}

		instance = cfg
	})

	if loadErr != nil {
		return nil, loadErr
	}
	return instance, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 7070)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.dbname", "activity_planner")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)

	v.SetDefault("jwt.expiry_hours", 72)

	v.SetDefault("engine.response_buffer_hours", 24)
	v.SetDefault("engine.flexible_deadline_hours", 48)
	v.SetDefault("engine.min_slot_duration_hours", 0.5)
	v.SetDefault("engine.max_suggestions", 5)
	v.SetDefault("engine.auto_refresh_seconds", 30)
	v.SetDefault("engine.freebusy_cache_seconds", 120)
	v.SetDefault("engine.reminder_lead_hours", 6)
}

// Get returns the loaded config, panicking when called before Load
func Get() *Config {
	if instance == nil {
		panic("config.Get called before config.Load")
	}
	return instance
}

// GetSafe returns the loaded config and whether it has been initialized
func GetSafe() (*Config, bool) {
	return instance, instance != nil
}
