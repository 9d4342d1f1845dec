package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const testYAML = `
server:
  port: "8080"
  mode: debug

database:
  host: localhost
  port: 3306
  user: tamamali
  password: secret
  dbname: tamamali
  charset: utf8mb4
  parsetime: true

jwt:
  secret: test-secret
  expire_hours: 24

redis:
  host: localhost
  port: 6379
  password: ""
  db: 0

ai:
  base_url: https://api.example.com/v1
  api_key: test-key
  model: test-model
  session_ttl_minutes: 45
`

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoadConfig(t *testing.T) {
	dir := writeTestConfig(t, testYAML)

	cfg, err := LoadConfig(dir)
	assert.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "tamamali", cfg.Database.DBName)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, 45*time.Minute, cfg.AI.SessionTTL)
}

func TestLoadConfigDefaultSessionTTL(t *testing.T) {
	yaml := `
server:
  port: "8080"
  mode: debug
jwt:
  secret: test-secret
  expire_hours: 24
`
	dir := writeTestConfig(t, yaml)

	cfg, err := LoadConfig(dir)
	assert.NoError(t, err)
	assert.Equal(t, 30*time.Minute, cfg.AI.SessionTTL)
}

func TestLoadConfigRejectsWeakSecretInRelease(t *testing.T) {
	yaml := `
server:
  port: "8080"
  mode: release
jwt:
  secret: short
  expire_hours: 24
`
	dir := writeTestConfig(t, yaml)

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
}
