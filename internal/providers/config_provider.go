package providers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"chessetl/internal/structures"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.SetDefault("fetcher.baseURL", "https://api.chess.com")
	viper.SetDefault("fetcher.userAgent", "chessetl (game archive pipeline)")
	viper.SetDefault("fetcher.rawDir", "data/raw")
	viper.SetDefault("fetcher.delay", "1s")
	viper.SetDefault("processor.rawDir", "data/raw")
	viper.SetDefault("processor.processedDir", "data/processed")
	viper.SetDefault("processor.outputFile", "processed.csv")
	viper.SetDefault("perspective.topPlayers", 5)
	viper.SetDefault("perspective.outputFile", "perspective.csv")

	viper.BindEnv("logger.level", "CHESSETL_LOG_LEVEL")
	viper.BindEnv("fetcher.baseURL", "CHESSETL_API_BASE_URL")
	viper.BindEnv("fetcher.delay", "CHESSETL_FETCH_DELAY")
	viper.BindEnv("refresh.interval", "CHESSETL_REFRESH_INTERVAL")
	viper.BindEnv("cache.enabled", "CHESSETL_CACHE_ENABLED")
	viper.BindEnv("cache.size", "CHESSETL_CACHE_SIZE")

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

	conf.AppName = "ChessETL"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
