package app

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/waybill-recon/internal/common"
	"github.com/joseph-ayodele/waybill-recon/internal/normalize"
)

func validConfig() *common.Config {
	return &common.Config{
		Pipeline: common.PipelineConfig{Workers: 2, DocumentTimeout: time.Second},
		Extract:  common.ExtractConfig{Pdftotext: "pdftotext"},
		Output:   common.OutputConfig{Format: "json", Path: "-"},
		Server:   common.ServerConfig{GRPCAddr: ":0"},
		Log:      common.LogConfig{Level: "info", Format: "text"},
	}
}

func TestNewWiresComponents(t *testing.T) {
	dir := t.TempDir()
	aliases := filepath.Join(dir, "paises.yaml")
	require.NoError(t, os.WriteFile(aliases, []byte("EEUU: ESTADOS UNIDOS\nNIPPON: JAPAN\n"), 0o644))

	cfg := validConfig()
	cfg.Countries = common.CountryConfig{AliasFile: aliases, Aliases: map[string]string{"nippon": "japon"}}

	a, err := New(cfg)
	require.NoError(t, err)
	assert.NotNil(t, a.Processor)
	assert.NotNil(t, a.Exporter)
	assert.NotNil(t, a.Ingestor)
	assert.Equal(t, "ESTADOS UNIDOS", a.Countries.Normalize("eeuu"))
	assert.Equal(t, "JAPON", a.Countries.Normalize("Nippon"), "inline aliases override the file")
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := validConfig()
	cfg.Pipeline.Workers = 0
	_, err := New(cfg)
	require.Error(t, err)
	assert.Equal(t, common.CodeConfig, common.CodeOf(err))

	cfg = validConfig()
	cfg.Countries.AliasFile = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = New(cfg)
	require.Error(t, err)
	assert.Equal(t, common.CodeConfig, common.CodeOf(err))

	cfg = validConfig()
	cfg.Countries.Aliases = map[string]string{"EEUU": "USA", "usa": "eeuu"}
	_, err = New(cfg)
	require.Error(t, err)
	assert.Equal(t, common.CodeConfig, common.CodeOf(err))
	assert.ErrorIs(t, err, normalize.ErrAliasCycle)
}

func TestNewLoggerLevels(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, levelOf("", false, false))
	assert.Equal(t, slog.LevelError, levelOf("error", false, false))
	assert.Equal(t, slog.LevelDebug, levelOf("error", true, false))
	assert.Equal(t, slog.LevelWarn, levelOf("debug", true, true))

	var buf bytes.Buffer
	NewLogger(common.LogConfig{Level: "info", Format: "json"}, false, false, &buf).Info("app.test", "k", 1)
	assert.Contains(t, buf.String(), `"msg":"app.test"`)
}
