package config

import (
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_NAME", "DB_USER", "JWT_SECRET", "JWT_EXPIRES_IN", "DB_RESET", "CORS_ALLOW_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	assert.Equal(t, "5000", cfg.AppPort)
	assert.Equal(t, "unitrade", cfg.DBName)
	assert.Equal(t, "root", cfg.DBUser)
	assert.False(t, cfg.DBReset)
	assert.Equal(t, 7*24*time.Hour, cfg.JWTExpiration)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowOrigins)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DB_RESET", "true")
	t.Setenv("JWT_EXPIRES_IN", "2h")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://localhost:5173,https://unitrade.example")

	cfg := LoadConfig()
	assert.Equal(t, "8080", cfg.AppPort)
	assert.True(t, cfg.DBReset)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiration)
	assert.Equal(t, []string{"http://localhost:5173", "https://unitrade.example"}, cfg.CORSAllowOrigins)

	t.Setenv("JWT_EXPIRES_IN", "a week")
	assert.Equal(t, 7*24*time.Hour, LoadConfig().JWTExpiration)
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBPort: "3307", DBName: "unitrade", DBUser: "app", DBPassword: "p@ss:word"}

	parsed, err := mysql.ParseDSN(cfg.DSN())
	require.NoError(t, err)
	assert.Equal(t, "app", parsed.User)
	assert.Equal(t, "p@ss:word", parsed.Passwd)
	assert.Equal(t, "db:3307", parsed.Addr)
	assert.Equal(t, "unitrade", parsed.DBName)
	assert.True(t, parsed.ParseTime)
}
