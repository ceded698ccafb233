package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"unlock_bot/internal/models"
)

const (
	configDir         = "configs"
	configFilePathENV = "CONFIG_FILE"
	defaultConfigFile = "values_local.yaml"
)

// Config ...
type Config struct {
	Discord struct {
		Token   string `yaml:"token"`
		GuildID string `yaml:"guild_id"` // пусто: глобальные команды
	} `yaml:"discord"`
	Telegram struct {
		Token string `yaml:"token"`
	} `yaml:"telegram"`
	Unlock struct {
		AllowedRoleID string `yaml:"allowed_role_id"` // пусто: без ограничения
	} `yaml:"unlock"`
	DB      string `yaml:"db_dsn"`
	Service struct {
		Name       string `yaml:"name"`
		LogLevel   string `yaml:"log_level"`
		HealthAddr string `yaml:"health_addr"`
	} `yaml:"service"`
	Tracing struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"tracing"`
	Commands struct {
		Rate  float64 `yaml:"rate"`  // команд в секунду на пользователя
		Burst int     `yaml:"burst"` //
	} `yaml:"commands"`
}

func defaults() Config {
	var c Config
	c.Service.Name = "unlock_bot"
	c.Service.LogLevel = "info"
	c.Service.HealthAddr = ":8080"
	c.Tracing.Port = 6831
	c.Commands.Rate = 0.5
	c.Commands.Burst = 3
	return c
}

// NewConfig читает yaml (если есть), затем .env и переменные окружения.
func NewConfig() (*Config, error) {
	config := defaults()

	configFileName := os.Getenv(configFilePathENV)
	if configFileName == "" {
		configFileName = defaultConfigFile
	}
	if err := decodeFile(filepath.Join(configDir, configFileName), &config); err != nil {
		return nil, err
	}

	_ = godotenv.Load()
	applyEnv(newEnv(), &config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func decodeFile(path string, config *Config) error {
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		// без файла работаем на дефолтах и env
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "open config file %s", path)
	}
	defer func() {
		_ = file.Close()
	}()

	if err := yaml.NewDecoder(file).Decode(config); err != nil {
		return errors.Wrapf(err, "decode config file %s", path)
	}
	return nil
}

func newEnv() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	return v
}

func applyEnv(env *viper.Viper, config *Config) {
	overrideString(env, "DISCORD_TOKEN", &config.Discord.Token)
	overrideString(env, "GUILD_ID", &config.Discord.GuildID)
	overrideString(env, "ALLOWED_ROLE_ID", &config.Unlock.AllowedRoleID)
	overrideString(env, "TELEGRAM_TOKEN", &config.Telegram.Token)
	overrideString(env, "DATABASE_DSN", &config.DB)
	overrideString(env, "LOG_LEVEL", &config.Service.LogLevel)
	overrideString(env, "HEALTH_ADDR", &config.Service.HealthAddr)
	overrideString(env, "JAEGER_HOST", &config.Tracing.Host)

	if env.IsSet("JAEGER_PORT") {
		config.Tracing.Port = env.GetInt("JAEGER_PORT")
	}
	if env.IsSet("COMMAND_RATE") {
		config.Commands.Rate = env.GetFloat64("COMMAND_RATE")
	}
	if env.IsSet("COMMAND_BURST") {
		config.Commands.Burst = env.GetInt("COMMAND_BURST")
	}
}

func overrideString(env *viper.Viper, key string, dst *string) {
	if v := strings.TrimSpace(env.GetString(key)); v != "" {
		*dst = v
	}
}

// Validate checks values that would otherwise fail at the first interaction.
func (c *Config) Validate() error {
	if c.Discord.Token == "" && c.Telegram.Token == "" {
		return errors.New("config: DISCORD_TOKEN or TELEGRAM_TOKEN is required")
	}
	if c.Discord.GuildID != "" {
		if _, err := strconv.ParseUint(c.Discord.GuildID, 10, 64); err != nil {
			return errors.Wrap(err, "config: guild_id")
		}
	}
	if _, err := models.ParseRoleID(c.Unlock.AllowedRoleID); err != nil {
		return errors.Wrap(err, "config: allowed_role_id")
	}
	return nil
}

// UnlockConfig is derived once; handlers only ever read it.
func (c *Config) UnlockConfig() models.UnlockConfig {
	// формат уже проверен в Validate
	role, _ := models.ParseRoleID(c.Unlock.AllowedRoleID)
	return models.UnlockConfig{AllowedRoleID: role}
}
