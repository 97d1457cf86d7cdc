package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultServerPort      = "5001"
	DefaultGSTAPIBaseURL   = "https://sheet.gstincheck.co.in/check"
	DefaultIFSCAPIBaseURL  = "https://ifsc.razorpay.com"
	DefaultUpstreamTimeout = 10 * time.Second
	DefaultMaxBatchSize    = 10
	DefaultMaxFileSize     = 10 * 1024 * 1024 // 10 MB
	DefaultTessdataPrefix  = "/usr/share/tesseract-ocr/5/tessdata/"
)

type Config struct {
	ServerPort string

	GSTAPIBaseURL   string
	GSTAPIKey       string
	IFSCAPIBaseURL  string
	UpstreamTimeout time.Duration

	MaxBatchSize     int
	BatchConcurrency int

	MaxFileSize       int64
	TesseractDataPath string

	LogLevel        string
	GinMode         string
	ShutdownTimeout time.Duration
}

// SetDefaults registers every key with its default so that environment
// variables are picked up by AutomaticEnv.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server_port", DefaultServerPort)
	v.SetDefault("gst_api_base_url", DefaultGSTAPIBaseURL)
	v.SetDefault("gst_api_key", "")
	v.SetDefault("ifsc_api_base_url", DefaultIFSCAPIBaseURL)
	v.SetDefault("upstream_timeout", DefaultUpstreamTimeout)
	v.SetDefault("max_batch_size", DefaultMaxBatchSize)
	v.SetDefault("batch_concurrency", 1)
	v.SetDefault("max_file_size", DefaultMaxFileSize)
	v.SetDefault("tessdata_prefix", DefaultTessdataPrefix)
	v.SetDefault("log_level", "info")
	v.SetDefault("gin_mode", "release")
	v.SetDefault("shutdown_timeout", 15*time.Second)
}

// LoadConfig builds the service configuration from v. Values come from, in
// order of precedence, bound flags, environment variables (SERVER_PORT,
// GST_API_KEY, ...), the optional config file and the defaults.
func LoadConfig(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		ServerPort:        v.GetString("server_port"),
		GSTAPIBaseURL:     strings.TrimRight(v.GetString("gst_api_base_url"), "/"),
		GSTAPIKey:         v.GetString("gst_api_key"),
		IFSCAPIBaseURL:    v.GetString("ifsc_api_base_url"),
		UpstreamTimeout:   v.GetDuration("upstream_timeout"),
		MaxBatchSize:      v.GetInt("max_batch_size"),
		BatchConcurrency:  v.GetInt("batch_concurrency"),
		MaxFileSize:       v.GetInt64("max_file_size"),
		TesseractDataPath: v.GetString("tessdata_prefix"),
		LogLevel:          v.GetString("log_level"),
		GinMode:           v.GetString("gin_mode"),
		ShutdownTimeout:   v.GetDuration("shutdown_timeout"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.ServerPort == "" {
		errs = append(errs, errors.New("server_port is required"))
	}
	if c.GSTAPIBaseURL == "" {
		errs = append(errs, errors.New("gst_api_base_url is required"))
	}
	if c.IFSCAPIBaseURL == "" {
		errs = append(errs, errors.New("ifsc_api_base_url is required"))
	}
	if c.UpstreamTimeout <= 0 {
		errs = append(errs, errors.New("upstream_timeout must be positive"))
	}
	if c.MaxBatchSize <= 0 {
		errs = append(errs, errors.New("max_batch_size must be positive"))
	}
	if c.BatchConcurrency <= 0 {
		errs = append(errs, errors.New("batch_concurrency must be positive"))
	}
	if c.MaxFileSize <= 0 {
		errs = append(errs, errors.New("max_file_size must be positive"))
	}
	return errors.Join(errs...)
}

// Address returns the listen address for the HTTP server.
func (c *Config) Address() string {
	return ":" + c.ServerPort
}
