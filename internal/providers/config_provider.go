package providers

import (
	"fmt"
	"path/filepath"
	"sid/internal/structures"
	"strings"

	"github.com/spf13/viper"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "SID_LOG_LEVEL")
	viper.BindEnv("persistence.saveInterval", "SID_SAVE_INTERVAL")
	viper.BindEnv("cache.enabled", "SID_CACHE_ENABLED")
	viper.BindEnv("cache.size", "SID_CACHE_SIZE")
	viper.BindEnv("session.secret", "SID_SESSION_SECRET")
	viper.BindEnv("admin.user", "SID_ADMIN_USER")
	viper.BindEnv("admin.secret", "SID_ADMIN_SECRET")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "SequentialIdentifierDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
