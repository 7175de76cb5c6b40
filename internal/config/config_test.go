package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("WASABI_ACCESS_KEY", "ak")
	t.Setenv("WASABI_SECRET_KEY", "sk")
	t.Setenv("WASABI_BUCKET", "files")
	t.Setenv("WASABI_REGION", "eu-central-1")
}

func TestLoadMissingRequiredValues(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	t.Setenv("WASABI_ACCESS_KEY", "")
	t.Setenv("WASABI_SECRET_KEY", "sk")
	t.Setenv("WASABI_BUCKET", "files")
	t.Setenv("WASABI_REGION", "eu-central-1")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BOT_TOKEN")
	assert.Contains(t, err.Error(), "WASABI_ACCESS_KEY")
	assert.NotContains(t, err.Error(), "WASABI_BUCKET")
}

func TestLoadDerivesWasabiEndpoint(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("WASABI_ENDPOINT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://s3.eu-central-1.wasabisys.com", cfg.WasabiEndpoint)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "downloads", cfg.DownloadDir)
}

func TestLoadExplicitEndpointWins(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("WASABI_ENDPOINT", "http://localhost:9000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000", cfg.WasabiEndpoint)
}

func TestLoadTransferOptionsDefaultsWhenFileAbsent(t *testing.T) {
	t.Setenv("TRANSFER_CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))

	opts, err := LoadTransferOptions()
	require.NoError(t, err)
	assert.Equal(t, DefaultTransferOptions(), opts)
	assert.Equal(t, int64(25*1024*1024), opts.MultipartThreshold())
	assert.Equal(t, int64(4*1024*1024*1024), opts.MaxFileSize())
	assert.Equal(t, 1500*time.Millisecond, opts.UpdateInterval())
	assert.Equal(t, time.Second, opts.RatePeriod())
	assert.Equal(t, 24*time.Hour, opts.SuccessLinkTTL())
}

func TestLoadTransferOptionsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transfer-config.yaml")
	body := []byte("multipart_threshold_mb: 50\nmax_concurrent_parts: 4\nrate_limit: 2\nupdate_interval_seconds: 2\n")
	require.NoError(t, os.WriteFile(path, body, 0o644))
	t.Setenv("TRANSFER_CONFIG_PATH", path)

	opts, err := LoadTransferOptions()
	require.NoError(t, err)
	assert.Equal(t, int64(50*1024*1024), opts.MultipartThreshold())
	assert.Equal(t, 4, opts.MaxConcurrentParts)
	assert.Equal(t, 2, opts.RateLimit)
	assert.Equal(t, 2*time.Second, opts.UpdateInterval())
	// Values absent from the file keep their defaults.
	assert.Equal(t, int64(4), opts.MaxFileSizeGB)
	assert.Equal(t, 20, opts.RecentFilesLimit)
}

func TestLoadTransferOptionsRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transfer-config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("multipart_threshold_mb: [oops"), 0o644))
	t.Setenv("TRANSFER_CONFIG_PATH", path)

	_, err := LoadTransferOptions()
	assert.Error(t, err)
}
