package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	return dir
}

func TestLoadWithEnv_ReadsYAML(t *testing.T) {
	dir := writeConfigFile(t, `
env:
  env: test
  serviceName: taskhub
  debug: true
  log:
    level: debug
http:
  port: 8080
  frontendUrl: http://localhost:3000
secretKey:
  access: access-secret
  refresh: refresh-secret
auth:
  bcryptCost: 4
  accessTokenTTL: 30m
  refreshTokenTTL: 72h
`)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	rel, err := filepath.Rel(cwd, dir)
	require.NoError(t, err)

	cfg, err := LoadWithEnv[Config]("config", rel)
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Env.Env)
	assert.Equal(t, "taskhub", cfg.Env.ServiceName)
	assert.True(t, cfg.Env.Debug)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "http://localhost:3000", cfg.HTTP.FrontendURL)
	assert.Equal(t, "access-secret", cfg.SecretKey.Access)
	require.NotNil(t, cfg.Auth)
	assert.Equal(t, 4, cfg.Auth.BcryptCost)
	assert.Equal(t, 30*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, 72*time.Hour, cfg.Auth.RefreshTokenTTL)
}

func TestLoadWithEnv_EnvOverrides(t *testing.T) {
	dir := writeConfigFile(t, `
secretKey:
  access: from-file
  refresh: from-file
`)

	t.Setenv("SECRETKEY_ACCESS", "from-env")

	cwd, err := os.Getwd()
	require.NoError(t, err)
	rel, err := filepath.Rel(cwd, dir)
	require.NoError(t, err)

	cfg, err := LoadWithEnv[Config]("config", rel)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.SecretKey.Access)
	assert.Equal(t, "from-file", cfg.SecretKey.Refresh)
}

func TestLoadWithEnv_EnvOverrideKeepsCamelCaseSiblings(t *testing.T) {
	dir := writeConfigFile(t, `
auth:
  bcryptCost: 4
  accessTokenTTL: 1h
  refreshTokenTTL: 168h
googleOAuth:
  clientId: file-client
  clientSecret: file-secret
`)

	// The env key must land on the YAML's camelCase path, not a lowercased
	// sibling subtree that would wipe the other values on unmarshal.
	t.Setenv("AUTH_ACCESSTOKENTTL", "30m")
	t.Setenv("GOOGLEOAUTH_CLIENTID", "env-client")

	cwd, err := os.Getwd()
	require.NoError(t, err)
	rel, err := filepath.Rel(cwd, dir)
	require.NoError(t, err)

	cfg, err := LoadWithEnv[Config]("config", rel)
	require.NoError(t, err)

	require.NotNil(t, cfg.Auth)
	assert.Equal(t, 30*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, 4, cfg.Auth.BcryptCost)
	assert.Equal(t, 168*time.Hour, cfg.Auth.RefreshTokenTTL)

	require.NotNil(t, cfg.GoogleOAuth)
	assert.Equal(t, "env-client", cfg.GoogleOAuth.ClientID)
	assert.Equal(t, "file-secret", cfg.GoogleOAuth.ClientSecret)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	_, err := LoadWithEnv[Config]("missing-env-name")
	assert.Error(t, err)
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	require.NotNil(t, cfg.Auth)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, time.Hour, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.RefreshTokenTTL)
}

func TestApplyDefaults_ResponseType(t *testing.T) {
	cfg := &Config{GoogleOAuth: &GoogleOAuthConfig{ClientID: "id"}}
	cfg.applyDefaults()

	assert.Equal(t, "code", cfg.GoogleOAuth.ResponseType)
}
