// Package config loads the migration settings from the environment and the
// optional .env.server / .env files.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/joho/godotenv"
)

// EnvFiles are read in order; values already set in the environment win.
var EnvFiles = []string{".env.server", ".env"}

type Config struct {
	// Strapi
	StrapiURL   string
	StrapiToken string
	PageSize    int
	PageDelay   time.Duration
	WriteDelay  time.Duration

	// Shortcode markers
	SpotifyShowID    string
	BuzzsproutShowID string

	// WordPress sources
	SQLDumpPath   string
	XMLExportPath string
	UploadsDir    string

	// Media SFTP
	SFTPHost                  string
	SFTPPort                  int
	SFTPUser                  string
	SFTPPass                  string
	SFTPKeyFile               string
	SFTPDir                   string
	SFTPInsecureIgnoreHostKey bool
	SFTPWorkers               int

	ReportDir string
	LogLevel  string
	LogFormat string
}

// Load reads the env files (missing files are ignored) and the environment.
func Load() Config {
	for _, f := range EnvFiles {
		_ = godotenv.Load(f)
	}

	return Config{
		StrapiURL:   strings.TrimRight(getenv("STRAPI_URL", "http://localhost:1337"), "/"),
		StrapiToken: os.Getenv("STRAPI_API_TOKEN"),
		PageSize:    getenvInt("STRAPI_PAGE_SIZE", 100),
		PageDelay:   getenvDuration("STRAPI_PAGE_DELAY", 100*time.Millisecond),
		WriteDelay:  getenvDuration("STRAPI_WRITE_DELAY", 500*time.Millisecond),

		SpotifyShowID:    getenv("SPOTIFY_SHOW_ID", "0xcYcgrzcnsff0mkNX0fGh"),
		BuzzsproutShowID: getenv("BUZZSPROUT_SHOW_ID", "2036436"),

		SQLDumpPath:   getenv("WP_SQL_DUMP", "wordpress.sql"),
		XMLExportPath: getenv("WP_XML_EXPORT", "wordpress-export.xml"),
		UploadsDir:    getenv("WP_UPLOADS_DIR", "wp-content/uploads"),

		SFTPHost:                  os.Getenv("SFTP_HOST"),
		SFTPPort:                  getenvInt("SFTP_PORT", 22),
		SFTPUser:                  os.Getenv("SFTP_USER"),
		SFTPPass:                  os.Getenv("SFTP_PASS"),
		SFTPKeyFile:               os.Getenv("SFTP_KEY_FILE"),
		SFTPDir:                   getenv("SFTP_DIR", "public/uploads"),
		SFTPInsecureIgnoreHostKey: getenvBool("SFTP_INSECURE_IGNORE_HOSTKEY", true),
		SFTPWorkers:               getenvInt("SFTP_WORKERS", 1),

		ReportDir: getenv("REPORT_DIR", "docs"),
		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", "console"),
	}
}

// Need names a group of settings a command depends on.
type Need int

const (
	NeedStrapi Need = iota
	NeedSQLDump
	NeedXMLExport
	NeedMedia
)

// Validate checks the settings the given needs depend on.
func (c Config) Validate(needs ...Need) error {
	has := func(n Need) bool {
		for _, x := range needs {
			if x == n {
				return true
			}
		}
		return false
	}
	strapi, media := has(NeedStrapi), has(NeedMedia)

	return validation.ValidateStruct(&c,
		validation.Field(&c.StrapiURL, validation.When(strapi, validation.Required, is.URL)),
		validation.Field(&c.StrapiToken, validation.When(strapi, validation.Required.Error("STRAPI_API_TOKEN is required"))),
		validation.Field(&c.PageSize, validation.When(strapi, validation.Required, validation.Min(1))),
		validation.Field(&c.SQLDumpPath, validation.When(has(NeedSQLDump), validation.Required, validation.By(fileExists))),
		validation.Field(&c.XMLExportPath, validation.When(has(NeedXMLExport), validation.Required, validation.By(fileExists))),
		validation.Field(&c.UploadsDir, validation.When(media, validation.Required, validation.By(dirExists))),
		validation.Field(&c.SFTPHost, validation.When(media, validation.Required.Error("SFTP_HOST is required"))),
		validation.Field(&c.SFTPUser, validation.When(media, validation.Required.Error("SFTP_USER is required"))),
		validation.Field(&c.SFTPPass, validation.When(media && c.SFTPKeyFile == "", validation.Required.Error("SFTP_PASS or SFTP_KEY_FILE is required"))),
		validation.Field(&c.SFTPDir, validation.When(media, validation.Required)),
		validation.Field(&c.SFTPWorkers, validation.When(media, validation.Min(1))),
	)
}

func fileExists(value any) error {
	st, err := os.Stat(value.(string))
	if err != nil {
		return errors.New("file not found")
	}
	if st.IsDir() {
		return errors.New("is a directory")
	}
	return nil
}

func dirExists(value any) error {
	st, err := os.Stat(value.(string))
	if err != nil {
		return errors.New("directory not found")
	}
	if !st.IsDir() {
		return errors.New("not a directory")
	}
	return nil
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(k string, def int) int {
	v, err := strconv.Atoi(os.Getenv(k))
	if err != nil {
		return def
	}
	return v
}

func getenvBool(k string, def bool) bool {
	v, err := strconv.ParseBool(os.Getenv(k))
	if err != nil {
		return def
	}
	return v
}

// getenvDuration accepts Go durations ("250ms") or plain milliseconds.
func getenvDuration(k string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil && d >= 0 {
		return d
	}
	if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return def
}
