// Package app wires configuration into the components shared by the CLI and
// the gRPC daemon.
package app

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/joseph-ayodele/waybill-recon/internal/common"
	"github.com/joseph-ayodele/waybill-recon/internal/export"
	"github.com/joseph-ayodele/waybill-recon/internal/ingest"
	"github.com/joseph-ayodele/waybill-recon/internal/normalize"
	"github.com/joseph-ayodele/waybill-recon/internal/pipeline"
	"github.com/joseph-ayodele/waybill-recon/internal/reconcile"
	"github.com/joseph-ayodele/waybill-recon/internal/textextract"
)

// App holds the wired components of one process.
type App struct {
	Config    *common.Config
	Logger    *slog.Logger
	Countries *normalize.Countries
	Extractor *textextract.Extractor
	Ingestor  *ingest.FSIngestor
	Processor *pipeline.Processor
	Exporter  *export.Service
}

// Option overrides a setting after the config is loaded.
type Option func(*App)

func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.Logger = logger
		}
	}
}

// New validates cfg and builds every component from it.
func New(cfg *common.Config, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &App{Config: cfg, Logger: slog.Default()}
	for _, opt := range opts {
		opt(a)
	}

	countries, err := loadCountries(cfg.Countries)
	if err != nil {
		return nil, err
	}
	a.Countries = countries
	a.Extractor = textextract.NewExtractor(textextract.Config{
		Pdftotext:    cfg.Extract.Pdftotext,
		UsePdftotext: cfg.Extract.UsePdftotext,
		ValidatePDF:  cfg.Extract.ValidatePDF,
	}, a.Logger)
	a.Ingestor = ingest.NewFSIngestor(true, a.Logger)
	a.Processor = pipeline.NewProcessor(a.Extractor, a.Logger,
		pipeline.WithWorkers(cfg.Pipeline.Workers),
		pipeline.WithDocumentTimeout(cfg.Pipeline.DocumentTimeout),
		pipeline.WithEngine(reconcile.NewEngine(countries)),
	)
	a.Exporter = export.NewService(a.Logger)

	a.Logger.Debug("app.ready",
		"config_file", cfg.ConfigFile,
		"workers", cfg.Pipeline.Workers,
		"countries", countries.Len(),
	)
	return a, nil
}

// loadCountries merges the alias file and the inline aliases, inline last.
func loadCountries(cfg common.CountryConfig) (*normalize.Countries, error) {
	extra := map[string]string{}
	if cfg.AliasFile != "" {
		fromFile, err := normalize.LoadCountryAliases(cfg.AliasFile)
		if err != nil {
			return nil, common.NewAppError(common.CodeConfig, fmt.Sprintf("country aliases %s", cfg.AliasFile), err)
		}
		addAliases(extra, fromFile)
	}
	addAliases(extra, cfg.Aliases)
	countries, err := normalize.NewCountries(extra)
	if err != nil {
		return nil, common.NewAppError(common.CodeConfig, "country aliases", err)
	}
	return countries, nil
}

func addAliases(dst, src map[string]string) {
	for k, v := range src {
		dst[strings.ToUpper(strings.TrimSpace(k))] = strings.ToUpper(strings.TrimSpace(v))
	}
}
