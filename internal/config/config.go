package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"

	"friendloan-backend/pkg/id"

	"github.com/spf13/viper"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	JWTSecret string

	// OwnerID and MaxNbPayments seed the registry on first start.
	OwnerID       string
	MaxNbPayments uint32

	MigrateOnStart bool
	AuditChannel   string
}

func defaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("MYSQL_HOST", "mysql")
	v.SetDefault("MYSQL_PORT", "3306")
	v.SetDefault("MYSQL_DB", "friendloan")
	v.SetDefault("MYSQL_USER", "friendloan")
	v.SetDefault("MYSQL_PASS", "friendloan")
	v.SetDefault("REDIS_ADDR", "redis:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("IDEMPOTENCY_TTL_SECONDS", 300)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("OWNER_ID", "")
	v.SetDefault("MAX_NB_PAYMENTS", 36)
	v.SetDefault("MIGRATE_ON_START", false)
	v.SetDefault("AUDIT_CHANNEL", "friendloan:audit")
}

// Load reads defaults, then CONFIG_FILE when set, then the environment.
func Load() (*Config, error) {
	v := viper.New()
	defaults(v)
	v.AutomaticEnv()

	if f := os.Getenv("CONFIG_FILE"); f != "" {
		v.SetConfigFile(f)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", f, err)
		}
	}

	return &Config{
		AppPort:        v.GetString("APP_PORT"),
		MySQLHost:      v.GetString("MYSQL_HOST"),
		MySQLPort:      v.GetString("MYSQL_PORT"),
		MySQLDB:        v.GetString("MYSQL_DB"),
		MySQLUser:      v.GetString("MYSQL_USER"),
		MySQLPass:      v.GetString("MYSQL_PASS"),
		RedisAddr:      v.GetString("REDIS_ADDR"),
		RedisDB:        v.GetInt("REDIS_DB"),
		IdempTTLSecs:   v.GetInt("IDEMPOTENCY_TTL_SECONDS"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		OwnerID:        strings.ToLower(v.GetString("OWNER_ID")),
		MaxNbPayments:  v.GetUint32("MAX_NB_PAYMENTS"),
		MigrateOnStart: v.GetBool("MIGRATE_ON_START"),
		AuditChannel:   v.GetString("AUDIT_CHANNEL"),
	}, nil
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	// ensure port is valid
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.JWTSecret == "" {
		return errors.New("missing JWT_SECRET")
	}
	if c.OwnerID != "" && !id.Valid(c.OwnerID) {
		return fmt.Errorf("invalid OWNER_ID %q: want 32 hex chars", c.OwnerID)
	}
	if c.IdempTTLSecs <= 0 {
		return fmt.Errorf("invalid IDEMPOTENCY_TTL_SECONDS %d", c.IdempTTLSecs)
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
