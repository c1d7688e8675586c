package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/linemk/storefront/internal/config"
	"github.com/stretchr/testify/assert"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "config_test_*.yaml")
	assert.NoError(t, err)
	t.Cleanup(func() { os.Remove(tmpFile.Name()) })

	_, err = tmpFile.WriteString(content)
	assert.NoError(t, err)
	assert.NoError(t, tmpFile.Close())

	return tmpFile.Name()
}

func TestMustLoadByPath_Success(t *testing.T) {
	t.Setenv("DB_PASSWORD", "mypassword")
	t.Setenv("JWT_SECRET", "mysecret")

	content := `
env: "local"
http_server:
  address: "localhost:8080"
  timeout: "4s"
  idle_timeout: "60s"
database:
  host: "localhost"
  port: 5432
  user: "postgres"
  name: "storefront"
auth:
  mode: "jwt"
jwt:
  token_ttl: 60
migrations:
  path: "./migrations"
`
	cfg := config.MustLoadByPath(writeTempConfig(t, content))

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "localhost:8080", cfg.HTTPServer.Address)
	assert.Equal(t, 4*time.Second, cfg.HTTPServer.Timeout)
	assert.Equal(t, 60*time.Second, cfg.HTTPServer.IdleTimeout)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "postgres", cfg.Database.User)
	assert.Equal(t, "storefront", cfg.Database.Name)
	assert.Equal(t, config.AuthModeJWT, cfg.Auth.Mode)
	assert.Equal(t, "X-API-Key", cfg.Auth.APIKeyHeader)
	assert.Equal(t, 60, cfg.JWT.TokenTTL)
	assert.Equal(t, "./migrations", cfg.Migrations.Path)
}

func TestMustLoadByPath_SharedSecretMode(t *testing.T) {
	t.Setenv("DB_PASSWORD", "mypassword")
	t.Setenv("API_KEY", "service-to-service-key")

	content := `
env: "local"
database:
  host: "localhost"
  port: 5432
  user: "postgres"
  name: "storefront"
auth:
  mode: "shared_secret"
  api_key_header: "X-Internal-Key"
`
	cfg := config.MustLoadByPath(writeTempConfig(t, content))

	assert.Equal(t, config.AuthModeSharedSecret, cfg.Auth.Mode)
	assert.Equal(t, "X-Internal-Key", cfg.Auth.APIKeyHeader)
	assert.Equal(t, "service-to-service-key", cfg.Auth.APIKey)
}

func TestMustLoadByPath_FileNotFound(t *testing.T) {
	assert.Panics(t, func() {
		config.MustLoadByPath("non_existent_config.yaml")
	})
}
