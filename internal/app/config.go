package app

import (
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/adanyl0v/go-task-store/internal/config"
)

const configPathEnv = "CONFIG_PATH"

func MustReadConfig() {
	var reader config.Reader = config.NewEnvReader()
	if path := os.Getenv(configPathEnv); path != "" {
		reader = config.NewFileReader(path)
	}

	cfg, err := reader.Read()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to read config")
		panic(err)
	}
	globalLogger.Info().
		Str("env", cfg.Env).
		Str("store_driver", cfg.Store.Driver).
		Msg("read config")

	config.SetGlobal(cfg)
}
