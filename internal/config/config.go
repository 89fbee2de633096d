// Package config loads ideaboard settings from the environment and an
// optional ideaboard.yaml.
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-sql-driver/mysql"
	"github.com/spf13/viper"
)

type Config struct {
	HTTP struct {
		Addr string `mapstructure:"addr"`
		Port int    `mapstructure:"port" validate:"gt=0,lt=65536"`
	} `mapstructure:"http"`
	Store struct {
		Backend string `mapstructure:"backend" validate:"oneof=sql redis memory"`
	} `mapstructure:"store"`
	DB    DBConfig `mapstructure:"db"`
	Redis struct {
		URL string `mapstructure:"url" validate:"omitempty,url"`
	} `mapstructure:"redis"`
	Log struct {
		Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
		Format string `mapstructure:"format" validate:"oneof=json console"`
	} `mapstructure:"log"`
	CORS struct {
		Origins []string `mapstructure:"origins" validate:"min=1"`
	} `mapstructure:"cors"`
}

// DBConfig selects the SQL driver and either a full DSN or the parts to
// build one from.
type DBConfig struct {
	Driver          string        `mapstructure:"driver" validate:"oneof=sqlite3 mysql postgres pgx libsql"`
	DSN             string        `mapstructure:"dsn" validate:"required_if=Driver libsql"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port" validate:"gt=0,lt=65536"`
	Name            string        `mapstructure:"name"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"gt=0"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"gte=0"`
}

// legacyEnv maps config keys to the unprefixed variables older deployments
// set. The prefixed IDEABOARD_ name always wins.
var legacyEnv = map[string]string{
	"http.port":   "PORT",
	"db.host":     "DB_HOST",
	"db.port":     "DB_PORT",
	"db.name":     "DB_NAME",
	"db.user":     "DB_USER",
	"db.password": "DB_PASSWORD",
}

// Load reads config from environment (IDEABOARD_ prefix) and optional ideaboard.yaml.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("IDEABOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("ideaboard")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read ideaboard.yaml: %w", err)
		}
	}

	for key, env := range legacyEnv {
		prefixed := "IDEABOARD_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	setDefaults(v)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":" + strconv.Itoa(cfg.HTTP.Port)
	}
	if cfg.DB.DSN == "" {
		cfg.DB.DSN = cfg.DB.BuildDSN()
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", "")
	v.SetDefault("http.port", 4000)
	v.SetDefault("store.backend", "sql")
	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "ideaboard")
	v.SetDefault("db.user", "ideaboard_user")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("redis.url", "redis://localhost:6379/0")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("cors.origins", []string{"*"})
}

func validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config %s: failed %q check (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Store.Backend == "redis" && cfg.Redis.URL == "" {
		return fmt.Errorf("IDEABOARD_REDIS_URL is required when store.backend is redis")
	}
	return nil
}

// BuildDSN assembles a DSN for Driver from the connection parts. libsql has
// no parts form and returns "".
func (c DBConfig) BuildDSN() string {
	addr := net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	switch c.Driver {
	case "postgres", "pgx":
		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(c.User, c.Password),
			Host:   addr,
			Path:   "/" + c.Name,
		}
		if c.SSLMode != "" {
			u.RawQuery = url.Values{"sslmode": {c.SSLMode}}.Encode()
		}
		return u.String()
	case "mysql":
		mc := mysql.NewConfig()
		mc.User = c.User
		mc.Passwd = c.Password
		mc.Net = "tcp"
		mc.Addr = addr
		mc.DBName = c.Name
		mc.ParseTime = true
		return mc.FormatDSN()
	case "sqlite3":
		return "ideaboard.db"
	default:
		return ""
	}
}
