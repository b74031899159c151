package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"wp2strapi/internal/cmdutil"
	"wp2strapi/internal/config"
	"wp2strapi/internal/media"
)

const sampleSize = 10

func main() {
	os.Exit(cmdutil.Run(newApp(), os.Args))
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "migratemedia",
		Usage: "Upload the WordPress uploads directory to the Strapi server over SFTP",
		Flags: []cli.Flag{
			cmdutil.UploadsFlag(),
			&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Skip confirmation prompt"},
			&cli.IntFlag{Name: "workers", Usage: "Parallel file transfers (default $SFTP_WORKERS)"},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	env, err := cmdutil.Setup(c, config.NeedMedia)
	if err != nil {
		return err
	}
	cfg := env.Config
	log := env.Logs.Get("media")

	cmdutil.Banner(env.Out, "WordPress Media Migration to Strapi Server",
		"Source: "+cfg.UploadsDir,
		fmt.Sprintf("Target: %s@%s:%s", cfg.SFTPUser, cfg.SFTPHost, cfg.SFTPDir),
	)

	env.Printf("\nAnalyzing source directory...\n")
	stats, err := media.Scan(cfg.UploadsDir)
	if err != nil {
		return cli.Exit(fmt.Sprintf("analyzing %s: %v", cfg.UploadsDir, err), 1)
	}
	env.Printf("   Files to transfer: %s\n   Total size: %s\n", humanize.Comma(int64(stats.Files)), humanize.Bytes(uint64(stats.Bytes)))

	if !c.Bool("yes") {
		question := fmt.Sprintf("\nThis will transfer %s to the server. Continue?", stats)
		if !cmdutil.Confirm(c.App.Reader, env.Out, question) {
			env.Printf("Migration cancelled.\n")
			return nil
		}
	} else {
		env.Printf("\nAuto-confirmed: will transfer %s\n", stats)
	}

	env.Printf("\nTesting SFTP connection...\n")
	mcfg := env.MediaConfig()
	if n := c.Int("workers"); n > 0 {
		mcfg.Workers = n
	}
	up, err := media.Dial(c.Context, mcfg, log)
	if err != nil {
		return cli.Exit(fmt.Sprintf("cannot connect to %s: %v", cfg.SFTPHost, err), 1)
	}
	defer up.Close()
	if err := up.Ping(); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	env.Printf("   Connection successful\n")

	env.Printf("\nEnsuring remote directory exists...\n")
	if err := up.Prepare(); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	env.Printf("   Remote directory ready: %s\n", cfg.SFTPDir)

	env.Printf("\nStarting media transfer (this may take several minutes)...\n")
	start := time.Now()
	res, err := up.UploadTree(c.Context, cfg.UploadsDir)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	duration := time.Since(start)

	env.Printf("\n%s\nMedia migration completed\n%s\n", cmdutil.Rule, cmdutil.Rule)
	env.Printf("Duration: %.1f seconds (%.1f minutes)\n", duration.Seconds(), duration.Minutes())
	env.Printf("Files transferred: %s (%s)\n", humanize.Comma(int64(res.Uploaded)), humanize.Bytes(uint64(res.Bytes)))
	env.Printf("Files already present: %s\n", humanize.Comma(int64(res.Skipped)))
	if len(res.Failed) > 0 {
		env.Printf("Files failed: %d\n", len(res.Failed))
		for i, f := range res.Failed {
			if i == sampleSize {
				env.Printf("   ... and %d more\n", len(res.Failed)-sampleSize)
				break
			}
			env.Printf("   - %s\n", f)
		}
	}

	env.Printf("\nVerifying files on server...\n")
	sample, err := up.List(sampleSize)
	if err != nil {
		log.Warn("could not verify files on server", "error", err)
		return nil
	}
	env.Printf("   Sample files on server:\n")
	for _, fi := range sample {
		env.Printf("   %s %8s %s %s\n", fi.Mode(), humanize.Bytes(uint64(fi.Size())), fi.ModTime().Format("Jan _2 15:04"), fi.Name())
	}
	return nil
}
