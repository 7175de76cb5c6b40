package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config carries the startup configuration read from the environment.
type Config struct {
	Port string

	BotToken string
	StartPic string

	WasabiAccessKey string
	WasabiSecretKey string
	WasabiBucket    string
	WasabiRegion    string
	WasabiEndpoint  string

	DownloadDir string
	APIKey      string
}

// Load reads the environment. It returns an error naming every missing
// required value so the process can exit with a single clear diagnostic.
func Load() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		BotToken:        getEnv("BOT_TOKEN", ""),
		StartPic:        getEnv("START_PIC", ""),
		WasabiAccessKey: getEnv("WASABI_ACCESS_KEY", ""),
		WasabiSecretKey: getEnv("WASABI_SECRET_KEY", ""),
		WasabiBucket:    getEnv("WASABI_BUCKET", ""),
		WasabiRegion:    getEnv("WASABI_REGION", ""),
		WasabiEndpoint:  getEnv("WASABI_ENDPOINT", ""),
		DownloadDir:     getEnv("DOWNLOAD_DIR", "downloads"),
		APIKey:          getEnv("API_KEY", ""),
	}

	var missing []string
	for _, req := range []struct{ name, value string }{
		{"BOT_TOKEN", cfg.BotToken},
		{"WASABI_ACCESS_KEY", cfg.WasabiAccessKey},
		{"WASABI_SECRET_KEY", cfg.WasabiSecretKey},
		{"WASABI_BUCKET", cfg.WasabiBucket},
		{"WASABI_REGION", cfg.WasabiRegion},
	} {
		if req.value == "" {
			missing = append(missing, req.name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	if cfg.WasabiEndpoint == "" {
		cfg.WasabiEndpoint = fmt.Sprintf("https://s3.%s.wasabisys.com", cfg.WasabiRegion)
	}
	return cfg, nil
}

// TransferOptions tunes both transfer legs and the status surfaces.
type TransferOptions struct {
	MultipartThresholdMB  int64   `yaml:"multipart_threshold_mb"`
	PartSizeMB            int64   `yaml:"part_size_mb"`
	MaxConcurrentParts    int     `yaml:"max_concurrent_parts"`
	UpdateIntervalSeconds float64 `yaml:"update_interval_seconds"`
	RateLimit             int     `yaml:"rate_limit"`
	RatePeriodSeconds     float64 `yaml:"rate_period_seconds"`
	MaxFileSizeGB         int64   `yaml:"max_file_size_gb"`
	SuccessLinkTTLHours   int     `yaml:"success_link_ttl_hours"`
	StreamLinkTTLHours    int     `yaml:"stream_link_ttl_hours"`
	RecentFilesLimit      int     `yaml:"recent_files_limit"`
}

// LoadTransferOptions reads the tuning file pointed to by
// TRANSFER_CONFIG_PATH. A missing file yields the defaults.
func LoadTransferOptions() (*TransferOptions, error) {
	path := getEnv("TRANSFER_CONFIG_PATH", "transfer-config.yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultTransferOptions(), nil
		}
		return nil, fmt.Errorf("failed to read transfer config: %w", err)
	}

	opts := DefaultTransferOptions()
	if err := yaml.Unmarshal(data, opts); err != nil {
		return nil, fmt.Errorf("failed to parse transfer config: %w", err)
	}
	return opts, nil
}

func DefaultTransferOptions() *TransferOptions {
	return &TransferOptions{
		MultipartThresholdMB:  25,
		PartSizeMB:            25,
		MaxConcurrentParts:    10,
		UpdateIntervalSeconds: 1.5,
		RateLimit:             10,
		RatePeriodSeconds:     1,
		MaxFileSizeGB:         4,
		SuccessLinkTTLHours:   24,
		StreamLinkTTLHours:    1,
		RecentFilesLimit:      20,
	}
}

func (o *TransferOptions) MultipartThreshold() int64 { return o.MultipartThresholdMB * 1024 * 1024 }

func (o *TransferOptions) PartSize() int64 { return o.PartSizeMB * 1024 * 1024 }

func (o *TransferOptions) MaxFileSize() int64 { return o.MaxFileSizeGB * 1024 * 1024 * 1024 }

func (o *TransferOptions) UpdateInterval() time.Duration {
	return time.Duration(o.UpdateIntervalSeconds * float64(time.Second))
}

func (o *TransferOptions) RatePeriod() time.Duration {
	return time.Duration(o.RatePeriodSeconds * float64(time.Second))
}

func (o *TransferOptions) SuccessLinkTTL() time.Duration {
	return time.Duration(o.SuccessLinkTTLHours) * time.Hour
}

func (o *TransferOptions) StreamLinkTTL() time.Duration {
	return time.Duration(o.StreamLinkTTLHours) * time.Hour
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
