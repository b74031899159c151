package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestGetenv(t *testing.T) {
	t.Setenv("TEST_GETENV", "")
	if got := getenv("TEST_GETENV", "default"); got != "default" {
		t.Errorf("Expected default value 'default', got '%s'", got)
	}

	t.Setenv("TEST_GETENV", "test-value")
	if got := getenv("TEST_GETENV", "default"); got != "test-value" {
		t.Errorf("Expected 'test-value', got '%s'", got)
	}
}

func TestGetenvInt(t *testing.T) {
	t.Setenv("TEST_GETENV_INT", "")
	if got := getenvInt("TEST_GETENV_INT", 42); got != 42 {
		t.Errorf("Expected default value 42, got %d", got)
	}

	t.Setenv("TEST_GETENV_INT", "100")
	if got := getenvInt("TEST_GETENV_INT", 42); got != 100 {
		t.Errorf("Expected 100, got %d", got)
	}

	t.Setenv("TEST_GETENV_INT", "not-an-int")
	if got := getenvInt("TEST_GETENV_INT", 42); got != 42 {
		t.Errorf("Expected default value 42, got %d", got)
	}
}

func TestGetenvBool(t *testing.T) {
	t.Setenv("TEST_GETENV_BOOL", "")
	if got := getenvBool("TEST_GETENV_BOOL", true); got != true {
		t.Errorf("Expected default value true, got %v", got)
	}

	t.Setenv("TEST_GETENV_BOOL", "false")
	if got := getenvBool("TEST_GETENV_BOOL", true); got != false {
		t.Errorf("Expected false, got %v", got)
	}

	t.Setenv("TEST_GETENV_BOOL", "not-a-bool")
	if got := getenvBool("TEST_GETENV_BOOL", true); got != true {
		t.Errorf("Expected default value true, got %v", got)
	}
}

func TestGetenvDuration(t *testing.T) {
	testCases := []struct {
		value    string
		expected time.Duration
	}{
		{"", 100 * time.Millisecond},
		{"250ms", 250 * time.Millisecond},
		{"2s", 2 * time.Second},
		{"300", 300 * time.Millisecond},
		{"-1s", 100 * time.Millisecond},
		{"soon", 100 * time.Millisecond},
	}

	for _, tc := range testCases {
		t.Setenv("TEST_GETENV_DURATION", tc.value)
		if got := getenvDuration("TEST_GETENV_DURATION", 100*time.Millisecond); got != tc.expected {
			t.Errorf("getenvDuration(%q) = %v, want %v", tc.value, got, tc.expected)
		}
	}
}

func TestLoad(t *testing.T) {
	for _, k := range []string{
		"STRAPI_URL", "STRAPI_API_TOKEN", "STRAPI_PAGE_SIZE", "STRAPI_PAGE_DELAY", "STRAPI_WRITE_DELAY",
		"SPOTIFY_SHOW_ID", "BUZZSPROUT_SHOW_ID", "SFTP_PORT", "SFTP_DIR", "SFTP_INSECURE_IGNORE_HOSTKEY", "SFTP_WORKERS",
	} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.StrapiURL != "http://localhost:1337" {
		t.Errorf("Expected default StrapiURL, got '%s'", cfg.StrapiURL)
	}
	if cfg.PageSize != 100 {
		t.Errorf("Expected default PageSize 100, got %d", cfg.PageSize)
	}
	if cfg.WriteDelay != 500*time.Millisecond || cfg.PageDelay != 100*time.Millisecond {
		t.Errorf("Unexpected default delays: write=%v page=%v", cfg.WriteDelay, cfg.PageDelay)
	}
	if cfg.SpotifyShowID != "0xcYcgrzcnsff0mkNX0fGh" || cfg.BuzzsproutShowID != "2036436" {
		t.Errorf("Unexpected default show ids: %q %q", cfg.SpotifyShowID, cfg.BuzzsproutShowID)
	}
	if cfg.SFTPPort != 22 || !cfg.SFTPInsecureIgnoreHostKey || cfg.SFTPWorkers != 1 {
		t.Errorf("Unexpected SFTP defaults: port=%d insecure=%v workers=%d", cfg.SFTPPort, cfg.SFTPInsecureIgnoreHostKey, cfg.SFTPWorkers)
	}

	t.Setenv("STRAPI_URL", "https://cms.example.com/")
	t.Setenv("STRAPI_API_TOKEN", "secret")
	t.Setenv("STRAPI_PAGE_SIZE", "25")
	t.Setenv("SFTP_PORT", "2222")
	t.Setenv("SFTP_INSECURE_IGNORE_HOSTKEY", "false")

	cfg = Load()
	if cfg.StrapiURL != "https://cms.example.com" {
		t.Errorf("Expected trailing slash trimmed, got '%s'", cfg.StrapiURL)
	}
	if cfg.StrapiToken != "secret" || cfg.PageSize != 25 {
		t.Errorf("Unexpected strapi settings: %+v", cfg)
	}
	if cfg.SFTPPort != 2222 || cfg.SFTPInsecureIgnoreHostKey {
		t.Errorf("Unexpected SFTP settings: port=%d insecure=%v", cfg.SFTPPort, cfg.SFTPInsecureIgnoreHostKey)
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	dump := filepath.Join(dir, "dump.sql")
	if err := os.WriteFile(dump, []byte("-- dump"), 0o644); err != nil {
		t.Fatal(err)
	}

	base := Config{StrapiURL: "http://localhost:1337", PageSize: 100, SQLDumpPath: dump}

	if err := base.Validate(); err != nil {
		t.Errorf("Expected no error without needs, got %v", err)
	}

	err := base.Validate(NeedStrapi)
	if err == nil || !strings.Contains(err.Error(), "STRAPI_API_TOKEN is required") {
		t.Errorf("Expected missing token error, got %v", err)
	}

	withToken := base
	withToken.StrapiToken = "tok"
	if err := withToken.Validate(NeedStrapi, NeedSQLDump); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	badURL := withToken
	badURL.StrapiURL = "not a url"
	if err := badURL.Validate(NeedStrapi); err == nil {
		t.Error("Expected invalid URL error")
	}

	missingDump := withToken
	missingDump.SQLDumpPath = filepath.Join(dir, "missing.sql")
	if err := missingDump.Validate(NeedSQLDump); err == nil || !strings.Contains(err.Error(), "file not found") {
		t.Errorf("Expected file not found error, got %v", err)
	}

	media := Config{UploadsDir: dir, SFTPHost: "media.example.com", SFTPUser: "deploy", SFTPDir: "/srv/uploads"}
	if err := media.Validate(NeedMedia); err == nil || !strings.Contains(err.Error(), "SFTP_PASS or SFTP_KEY_FILE") {
		t.Errorf("Expected credential error, got %v", err)
	}
	media.SFTPKeyFile = "/home/deploy/.ssh/id_ed25519"
	if err := media.Validate(NeedMedia); err != nil {
		t.Errorf("Expected no error with key file, got %v", err)
	}
}
