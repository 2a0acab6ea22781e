package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	admin "github.com/paulvitic/members-admin"
	"github.com/paulvitic/members-admin/config"
	"github.com/paulvitic/members-admin/inMemory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *admin.Logger {
	logger := admin.NewLogger("test")
	logger.SetOutput(io.Discard)
	return logger
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
	})
}

func TestArgs_Apply(t *testing.T) {
	cfg := config.Defaults()
	args{Port: 9090, SourceFile: "members.json", PageSize: 5, Debug: true}.apply(&cfg)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 5, cfg.PageSize)
	assert.Equal(t, config.SourceFile, cfg.Source.Kind)
	assert.Equal(t, "members.json", cfg.Source.File)
	assert.True(t, cfg.Debug)

	cfg = config.Defaults()
	args{SourceURL: "http://example.com/members.json"}.apply(&cfg)
	assert.Equal(t, config.SourceHTTP, cfg.Source.Kind)
	assert.Equal(t, "http://example.com/members.json", cfg.Source.URL)
	assert.Equal(t, 8080, cfg.Port)
}

func TestLoadConfig_DefaultsWithoutFile(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := loadConfig(args{Port: 9000}, testLogger())
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, config.DefaultSourceURL, cfg.Source.URL)

	_, err = loadConfig(args{Profile: "missing"}, testLogger())
	assert.ErrorIs(t, err, config.ErrNotFound)
}

func TestLoadConfig_FlagsValidated(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "properties.json"), []byte(`{"port": 7000}`), 0o600))
	chdir(t, dir)

	cfg, err := loadConfig(args{}, testLogger())
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Port)

	_, err = loadConfig(args{PageSize: -1}, testLogger())
	assert.ErrorContains(t, err, "page size")
}

func TestNewPublisher(t *testing.T) {
	journal := inMemory.NewEventLog(10)

	publisher, consumer, err := newPublisher(config.Publisher{Kind: config.PublisherMemory, BufferSize: 1}, journal, testLogger())
	require.NoError(t, err)
	assert.IsType(t, &inMemory.EventPublisher{}, publisher)
	assert.NotNil(t, consumer)

	publisher, consumer, err = newPublisher(config.Publisher{Kind: config.PublisherNone}, journal, testLogger())
	require.NoError(t, err)
	assert.Same(t, journal, publisher)
	assert.Nil(t, consumer)
}
