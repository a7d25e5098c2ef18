package common

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable the tools read.
const EnvPrefix = "RECON"

// Output formats understood by the export package.
var OutputFormats = []string{"xlsx", "csv", "json", "yaml", "table"}

// Config holds all application configuration
type Config struct {
	Pipeline  PipelineConfig
	Extract   ExtractConfig
	Output    OutputConfig
	Countries CountryConfig
	Server    ServerConfig
	Log       LogConfig

	// ConfigFile is the YAML file that was read, if any.
	ConfigFile string
}

// PipelineConfig controls the per-document worker pool.
type PipelineConfig struct {
	Workers         int
	DocumentTimeout time.Duration
}

// ExtractConfig holds text-extraction settings
type ExtractConfig struct {
	Pdftotext    string
	UsePdftotext bool
	// ValidatePDF runs a structural check before text extraction.
	ValidatePDF bool
}

// OutputConfig selects the report writer.
type OutputConfig struct {
	Format string
	Path   string
}

// CountryConfig extends the built-in destination-country aliases.
type CountryConfig struct {
	Aliases   map[string]string
	AliasFile string
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	GRPCAddr string
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string
	Format string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("pipeline.workers", 4)
	v.SetDefault("pipeline.document_timeout", 60*time.Second)
	v.SetDefault("extract.pdftotext", "pdftotext")
	v.SetDefault("extract.use_pdftotext", false)
	v.SetDefault("extract.validate_pdf", true)
	v.SetDefault("output.format", "xlsx")
	v.SetDefault("output.path", "conciliacion.xlsx")
	v.SetDefault("countries.file", "")
	v.SetDefault("server.grpc_addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// LoadConfig loads configuration in order of precedence:
// environment (RECON_*), .env and .env.local, the YAML file at configFile
// (or ./waybill-recon.yaml when present), then defaults.
func LoadConfig(configFile string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, NewAppError(CodeConfig, fmt.Sprintf("read config %s", configFile), err)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName("waybill-recon")
		// A missing default file is fine.
		_ = v.ReadInConfig()
	}

	return &Config{
		Pipeline: PipelineConfig{
			Workers:         v.GetInt("pipeline.workers"),
			DocumentTimeout: v.GetDuration("pipeline.document_timeout"),
		},
		Extract: ExtractConfig{
			Pdftotext:    v.GetString("extract.pdftotext"),
			UsePdftotext: v.GetBool("extract.use_pdftotext"),
			ValidatePDF:  v.GetBool("extract.validate_pdf"),
		},
		Output: OutputConfig{
			Format: strings.ToLower(v.GetString("output.format")),
			Path:   v.GetString("output.path"),
		},
		Countries: CountryConfig{
			Aliases:   v.GetStringMapString("countries.aliases"),
			AliasFile: v.GetString("countries.file"),
		},
		Server: ServerConfig{
			GRPCAddr: v.GetString("server.grpc_addr"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString("log.level")),
			Format: strings.ToLower(v.GetString("log.format")),
		},
		ConfigFile: v.ConfigFileUsed(),
	}, nil
}

// loadEnvFiles loads .env then .env.local; neither has to exist.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	v := NewValidator().
		Field("pipeline.workers", c.Pipeline.Workers, Positive).
		Field("pipeline.document_timeout", c.Pipeline.DocumentTimeout, NonNegativeDuration).
		Field("output.format", c.Output.Format, OneOf(OutputFormats...)).
		Field("server.grpc_addr", c.Server.GRPCAddr, Required).
		Field("log.level", c.Log.Level, OneOf("debug", "info", "warn", "error")).
		Field("log.format", c.Log.Format, OneOf("text", "json"))
	if c.Extract.UsePdftotext {
		v.Field("extract.pdftotext", c.Extract.Pdftotext, Required)
	}
	if v.HasErrors() {
		return NewAppError(CodeConfig, v.ErrorMessage(), ErrInvalidInput)
	}
	return nil
}
