package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "SNAPSHOT_BACKEND", "SNAPSHOT_INTERVAL", "DEV_TOKENS_ENABLED", "JWT_ACCESS_TTL"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, SnapshotNone, cfg.SnapshotBackend)
	assert.Equal(t, 5*time.Minute, cfg.SnapshotInterval)
	assert.Equal(t, time.Hour, cfg.AccessTTL)
	assert.False(t, cfg.DevTokensEnabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SNAPSHOT_BACKEND", "Redis")
	t.Setenv("SNAPSHOT_INTERVAL", "30s")
	t.Setenv("DEV_TOKENS_ENABLED", "true")
	t.Setenv("DB_MAX_CONNS", "25")

	cfg := Load()

	assert.Equal(t, SnapshotRedis, cfg.SnapshotBackend)
	assert.Equal(t, 30*time.Second, cfg.SnapshotInterval)
	assert.True(t, cfg.DevTokensEnabled)
	assert.Equal(t, int32(25), cfg.DBMaxConns)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("SNAPSHOT_INTERVAL", "soon")
	t.Setenv("COOKIE_SECURE", "maybe")
	t.Setenv("REDIS_DB", "x")

	cfg := Load()

	assert.Equal(t, 5*time.Minute, cfg.SnapshotInterval)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, 0, cfg.RedisDB)
}

func TestListHelpers(t *testing.T) {
	cfg := &Config{
		CORSAllowedOrigins: " http://a.test, ,http://b.test ",
		ElasticsearchAddrs: "http://es1:9200",
	}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())
	assert.Equal(t, []string{"http://es1:9200"}, cfg.ESAddrs())
	assert.Empty(t, (&Config{}).CORSOrigins())
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "5432", DBName: "d", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/d?sslmode=disable", cfg.PostgresDSN())
}
