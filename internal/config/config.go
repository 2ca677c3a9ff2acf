package config

import "time"

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMySQL    = "mysql"
)

var globalConfig *Config

func Global() *Config {
	return globalConfig
}

func SetGlobal(cfg *Config) {
	globalConfig = cfg
}

type Config struct {
	Env      string         `yaml:"env" env:"ENV" env-required:"true"`
	Log      LogConfig      `yaml:"log"`
	HTTP     HTTPConfig     `yaml:"http"`
	Store    StoreConfig    `yaml:"store"`
	Postgres PostgresConfig `yaml:"postgres"`
	MySQL    MySQLConfig    `yaml:"mysql"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// LogConfig overrides the level picked from Env when Level is set.
type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL"`
}

type HTTPConfig struct {
	Host              string        `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port              string        `yaml:"port" env:"HTTP_PORT" env-default:"5000"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" env:"HTTP_READ_HEADER_TIMEOUT" env-default:"5s"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
	AllowedOrigins    []string      `yaml:"allowed_origins" env:"HTTP_ALLOWED_ORIGINS" env-default:"*"`
}

type StoreConfig struct {
	Driver             string        `yaml:"driver" env:"STORE_DRIVER" env-default:"postgres"`
	SlowQueryThreshold time.Duration `yaml:"slow_query_threshold" env:"STORE_SLOW_QUERY_THRESHOLD" env-default:"100ms"`
}

type PostgresConfig struct {
	Host           string        `yaml:"host" env:"POSTGRES_HOST" env-default:"localhost"`
	Port           int           `yaml:"port" env:"POSTGRES_PORT" env-default:"5432"`
	Username       string        `yaml:"username" env:"POSTGRES_USERNAME"`
	Password       string        `yaml:"password" env:"POSTGRES_PASSWORD"`
	Database       string        `yaml:"database" env:"POSTGRES_DATABASE" env-default:"tasks"`
	SSLMode        string        `yaml:"ssl_mode" env:"POSTGRES_SSL_MODE" env-default:"disable"`
	MaxConns       int32         `yaml:"max_conns" env:"POSTGRES_MAX_CONNS" env-default:"10"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"POSTGRES_CONNECT_TIMEOUT" env-default:"10s"`
	PingTimeout    time.Duration `yaml:"ping_timeout" env:"POSTGRES_PING_TIMEOUT" env-default:"10s"`
}

type MySQLConfig struct {
	Host        string        `yaml:"host" env:"MYSQL_HOST" env-default:"localhost"`
	Port        int           `yaml:"port" env:"MYSQL_PORT" env-default:"3306"`
	Username    string        `yaml:"username" env:"MYSQL_USERNAME"`
	Password    string        `yaml:"password" env:"MYSQL_PASSWORD"`
	Database    string        `yaml:"database" env:"MYSQL_DATABASE" env-default:"tasks"`
	MaxConns    int           `yaml:"max_conns" env:"MYSQL_MAX_CONNS" env-default:"10"`
	PingTimeout time.Duration `yaml:"ping_timeout" env:"MYSQL_PING_TIMEOUT" env-default:"10s"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED" env-default:"true"`
	Path    string `yaml:"path" env:"METRICS_PATH" env-default:"/metrics"`
}

// StorePingTimeout returns the ping timeout of the selected store driver.
func (c *Config) StorePingTimeout() time.Duration {
	if c.Store.Driver == StoreDriverMySQL {
		return c.MySQL.PingTimeout
	}
	return c.Postgres.PingTimeout
}
