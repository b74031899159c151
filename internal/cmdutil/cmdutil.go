// Package cmdutil holds the setup shared by the cmd/* tools: config loading
// and validation, logger construction, the Strapi client and the console
// banner.
package cmdutil

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/urfave/cli/v2"

	"wp2strapi/internal/config"
	"wp2strapi/internal/logging"
	"wp2strapi/internal/media"
	"wp2strapi/internal/strapi"
)

// Rule separates banner and summary blocks.
const Rule = "======================================================================"

// Env is what every tool builds before its action runs.
type Env struct {
	Config config.Config
	Logs   *logging.Provider
	Out    io.Writer
}

// Flag names that override a configured source path.
const (
	FlagSQL     = "sql"
	FlagXML     = "xml"
	FlagUploads = "uploads"
)

// SQLFlag overrides WP_SQL_DUMP.
func SQLFlag() cli.Flag {
	return &cli.StringFlag{Name: FlagSQL, Usage: "WordPress SQL dump (default $WP_SQL_DUMP)"}
}

// XMLFlag overrides WP_XML_EXPORT.
func XMLFlag() cli.Flag {
	return &cli.StringFlag{Name: FlagXML, Usage: "WordPress WXR export (default $WP_XML_EXPORT)"}
}

// UploadsFlag overrides WP_UPLOADS_DIR.
func UploadsFlag() cli.Flag {
	return &cli.StringFlag{Name: FlagUploads, Usage: "WordPress uploads directory (default $WP_UPLOADS_DIR)"}
}

// Run executes app with an interrupt-aware context and returns the process
// exit code. Errors are printed to the app's error writer.
func Run(app *cli.App, args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	err := app.RunContext(ctx, args)
	if err == nil {
		return 0
	}

	w := app.ErrWriter
	if w == nil {
		w = os.Stderr
	}
	var exit cli.ExitCoder
	if errors.As(err, &exit) {
		if msg := exit.Error(); msg != "" {
			fmt.Fprintf(w, "error: %s\n", msg)
		}
		return exit.ExitCode()
	}
	fmt.Fprintf(w, "error: %v\n", err)
	return 1
}

// Setup loads and validates the configuration for the given needs. Path
// flags set on c override the configured paths. A validation failure is
// returned as a cli exit error with code 1.
func Setup(c *cli.Context, needs ...config.Need) (*Env, error) {
	cfg := config.Load()
	if c != nil {
		override(c, FlagSQL, &cfg.SQLDumpPath)
		override(c, FlagXML, &cfg.XMLExportPath)
		override(c, FlagUploads, &cfg.UploadsDir)
	}
	if err := cfg.Validate(needs...); err != nil {
		return nil, cli.Exit(fmt.Sprintf("configuration error: %v", err), 1)
	}

	logs, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, cli.Exit(err.Error(), 1)
	}

	out := io.Writer(os.Stdout)
	if c != nil && c.App != nil && c.App.Writer != nil {
		out = c.App.Writer
	}
	return &Env{Config: cfg, Logs: logs, Out: out}, nil
}

func override(c *cli.Context, flag string, dst *string) {
	if v := c.String(flag); v != "" {
		*dst = v
	}
}

// Strapi builds the API client from the configuration.
func (e *Env) Strapi() *strapi.Client {
	return strapi.New(e.Config.StrapiURL, e.Config.StrapiToken, strapi.Options{
		PageSize:   e.Config.PageSize,
		PageDelay:  e.Config.PageDelay,
		WriteDelay: e.Config.WriteDelay,
		Logger:     e.Logs.Get("strapi"),
	})
}

// ConnectStrapi builds the client and checks it can reach the API.
func (e *Env) ConnectStrapi(ctx context.Context) (*strapi.Client, error) {
	client := e.Strapi()
	if err := client.Ping(ctx); err != nil {
		return nil, cli.Exit(fmt.Sprintf("cannot reach Strapi at %s: %v", e.Config.StrapiURL, err), 1)
	}
	return client, nil
}

// MediaConfig derives the SFTP settings.
func (e *Env) MediaConfig() media.Config {
	return media.Config{
		Host:                  e.Config.SFTPHost,
		Port:                  e.Config.SFTPPort,
		User:                  e.Config.SFTPUser,
		Pass:                  e.Config.SFTPPass,
		KeyFile:               e.Config.SFTPKeyFile,
		RemoteDir:             e.Config.SFTPDir,
		InsecureIgnoreHostKey: e.Config.SFTPInsecureIgnoreHostKey,
		Workers:               e.Config.SFTPWorkers,
	}
}

// Printf writes a progress line.
func (e *Env) Printf(format string, args ...any) {
	fmt.Fprintf(e.Out, format, args...)
}

// Banner prints a title block followed by key/value lines.
func Banner(w io.Writer, title string, lines ...string) {
	fmt.Fprintln(w, Rule)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, Rule)
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
	if len(lines) > 0 {
		fmt.Fprintln(w, Rule)
	}
}

// Confirm asks a yes/no question on in and reports whether the answer was y
// or yes.
func Confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s (y/N) ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
