package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

const sampleYAML = `
env: "prod"
http:
  host: "127.0.0.1"
  port: "8081"
mysql:
  dsn: "root:pw@tcp(db:3306)/redddate?parseTime=true"
redis:
  host: "cache"
  port: "6380"
rabbitmq:
  url: "amqp://u:p@mq"
search:
  buffer_size: 500
  buffer_ttl: 2m
  page_size: 10
  around_count: 3
  min_link_karma: 20
  min_comment_karma: 50
  exclude_all_flagged: true
session:
  ttl: 1h
`

const brokenYAML = `
search:
  buffer_size: [1
`

func TestLoad_WithExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", sampleYAML)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "127.0.0.1:8081", cfg.HTTP.Addr())
	assert.Equal(t, "cache:6380", cfg.Redis.Addr())
	assert.Equal(t, "amqp://u:p@mq", cfg.RabbitMQ.URL)
	assert.Equal(t, 500, cfg.Search.BufferSize)
	assert.Equal(t, 2*time.Minute, cfg.Search.BufferTTL)
	assert.Equal(t, 10, cfg.Search.PageSize)
	assert.Equal(t, 3, cfg.Search.AroundCount)
	assert.Equal(t, 20, cfg.Search.MinLinkKarma)
	assert.Equal(t, 50, cfg.Search.MinCommentKarma)
	assert.True(t, cfg.Search.ExcludeAllFlagged)
	assert.Equal(t, time.Hour, cfg.Session.TTL)
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", "env: test\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1000, cfg.Search.BufferSize)
	assert.Equal(t, 5*time.Minute, cfg.Search.BufferTTL)
	assert.Equal(t, 20, cfg.Search.PageSize)
	assert.Equal(t, 5, cfg.Search.AroundCount)
	assert.False(t, cfg.Search.ExcludeAllFlagged)
	assert.Equal(t, "mongodb://redddate-mongo:27017", cfg.Mongo.URI())
}

func TestLoad_ConfigPathEnv(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "env.yaml", sampleYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "prod", cfg.Env)
}

func TestLoad_LocalYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "local.yaml", sampleYAML)
	chdir(t, dir)
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.Search.BufferSize)
}

func TestLoad_EnvOnly(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("SEARCH_PAGE_SIZE", "7")
	t.Setenv("HTTP_PORT", "9000")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Search.PageSize)
	assert.Equal(t, "9000", cfg.HTTP.Port)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, dir, "broken.yaml", brokenYAML))
	assert.Error(t, err)

	_, err = Load(writeFile(t, dir, "bad.yaml", "search:\n  page_size: -1\n"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, dir, "port.yaml", "http:\n  port: \"99999\"\n"))
	assert.Error(t, err)
}

func TestMustLoad_Panics(t *testing.T) {
	assert.Panics(t, func() { MustLoad(filepath.Join(t.TempDir(), "nope.yaml")) })
}
