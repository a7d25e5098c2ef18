package common

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Pipeline.Workers)
	assert.Equal(t, 60*time.Second, cfg.Pipeline.DocumentTimeout)
	assert.Equal(t, "xlsx", cfg.Output.Format)
	assert.Equal(t, ":8080", cfg.Server.GRPCAddr)
	assert.True(t, cfg.Extract.ValidatePDF)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("RECON_PIPELINE_WORKERS", "9")
	t.Setenv("RECON_OUTPUT_FORMAT", "JSON")
	t.Setenv("RECON_PIPELINE_DOCUMENT_TIMEOUT", "5s")
	t.Setenv("RECON_LOG_FORMAT", "json")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Pipeline.Workers)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, 5*time.Second, cfg.Pipeline.DocumentTimeout)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recon.yaml")
	content := `pipeline:
  workers: 2
output:
  format: csv
  path: out.csv
countries:
  aliases:
    DE: GERMANY
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Pipeline.Workers)
	assert.Equal(t, "csv", cfg.Output.Format)
	assert.Equal(t, "out.csv", cfg.Output.Path)
	assert.Equal(t, "GERMANY", cfg.Countries.Aliases["de"])
	assert.Equal(t, path, cfg.ConfigFile)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Equal(t, CodeConfig, CodeOf(err))
}

func TestConfigValidate(t *testing.T) {
	cfg := &Config{
		Pipeline: PipelineConfig{Workers: 0},
		Output:   OutputConfig{Format: "pdf"},
		Extract:  ExtractConfig{UsePdftotext: true},
		Log:      LogConfig{Level: "info", Format: "text"},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Contains(t, err.Error(), "pipeline.workers")
	assert.Contains(t, err.Error(), "output.format")
	assert.Contains(t, err.Error(), "server.grpc_addr")
	assert.Contains(t, err.Error(), "extract.pdftotext")
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{fmt.Errorf("open: %w", ErrUnsupportedFormat), CodeUnsupported},
		{WrapError(ErrNoExtractableText, "scan.pdf"), CodeNoText},
		{NewAppError(CodeExtractor, "pdftotext missing", ErrExtractorUnavailable), CodeExtractor},
		{context.DeadlineExceeded, CodeTimeout},
		{errors.New("boom"), CodeInternal},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, CodeOf(tc.err), "%v", tc.err)
	}
}

func TestStatusError(t *testing.T) {
	assert.Nil(t, StatusError(nil))
	assert.Equal(t, codes.InvalidArgument, status.Code(StatusError(ErrInvalidInput)))
	assert.Equal(t, codes.FailedPrecondition, status.Code(StatusError(ErrExtractorUnavailable)))
	assert.Equal(t, codes.Internal, status.Code(StatusError(errors.New("boom"))))

	already := status.Error(codes.NotFound, "gone")
	assert.Equal(t, already, StatusError(already))
}

func TestRunIDContext(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, RunIDFromContext(ctx))

	id := NewRunID()
	assert.Len(t, id, 36)
	ctx = WithRunID(ctx, id)
	assert.Equal(t, id, RunIDFromContext(ctx))
	assert.NotNil(t, LoggerFromContext(ctx, nil))
}

func TestValidatorError(t *testing.T) {
	v := NewValidator().Field("format", "pdf", OneOf("xlsx", "csv"))
	require.True(t, v.HasErrors())
	assert.ErrorIs(t, v.Error(), ErrValidation)
	assert.Equal(t, codes.InvalidArgument, status.Code(ValidateAndReturnError(v)))
	assert.NoError(t, NewValidator().Field("name", "x", Required).Error())
}
