package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "rep"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App      AppConfig
	Store    StoreConfig
	Password PasswordConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"REP_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"REP_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"REP_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type StoreConfig struct {
	// Path is the sqlite file backing the key-value store. The whole
	// platform state lives behind this one local boundary.
	Path      string `envconfig:"REP_STORE_PATH" default:"rep.db"`
	KeyPrefix string `envconfig:"REP_STORE_KEY_PREFIX" default:"rep"`
	AutoSeed  bool   `envconfig:"REP_STORE_AUTO_SEED" default:"true"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"REP_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"REP_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"REP_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"REP_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"REP_ARGON_KEY_LEN" default:"32"`
}
