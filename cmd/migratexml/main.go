package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"wp2strapi/internal/cmdutil"
	"wp2strapi/internal/config"
	"wp2strapi/internal/domain"
	"wp2strapi/internal/migrate"
	"wp2strapi/internal/report"
	"wp2strapi/internal/wxr"
)

func main() {
	os.Exit(cmdutil.Run(newApp(), os.Args))
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "migratexml",
		Usage: "Migrate published posts and pages from a WordPress WXR export into Strapi",
		Flags: []cli.Flag{
			cmdutil.XMLFlag(),
			&cli.BoolFlag{Name: "resume", Usage: "Skip posts and pages already in Strapi (matched by WordPress id)"},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	env, err := cmdutil.Setup(c, config.NeedStrapi, config.NeedXMLExport)
	if err != nil {
		return err
	}
	cfg := env.Config

	cmdutil.Banner(env.Out, "WordPress to Strapi Migration (XML)",
		"Source: "+cfg.XMLExportPath,
		"Target: "+cfg.StrapiURL,
	)

	env.Printf("\nParsing WordPress XML export...\n")
	doc, err := wxr.Open(cfg.XMLExportPath)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	all, err := doc.Posts()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	client, err := env.ConnectStrapi(c.Context)
	if err != nil {
		return err
	}

	posts, pages := domain.SplitByType(all)
	env.Printf("\nContent Summary:\n   - Posts: %d\n   - Pages: %d\n", len(posts), len(pages))

	m := migrate.New(client, env.Out, env.Logs.Get("migrate"))
	if c.Bool("resume") {
		env.Printf("\nChecking what is already migrated...\n")
		if all, err = m.Missing(c.Context, all); err != nil {
			return cli.Exit(err.Error(), 1)
		}
	}

	rep := m.Content(c.Context, doc.Name(), all)

	env.Printf("\n%s\nMigration Complete!\n%s\n", cmdutil.Rule, cmdutil.Rule)
	env.Printf("Posts: %s\n", rep.Posts)
	if rep.Pages.Total > 0 {
		env.Printf("Pages: %s\n", rep.Pages)
	}
	env.Printf("\nNext steps:\n  1. Review content in Strapi admin: %s/admin\n  2. Verify post content and formatting\n", cfg.StrapiURL)

	textPath, csvPath, err := report.Save(cfg.ReportDir, rep)
	if err != nil {
		env.Logs.Get("report").Error("could not save report", "error", err)
	} else {
		env.Printf("\nMigration report saved to: %s (%s)\n", textPath, csvPath)
	}

	env.Printf("\nVerifying migration...\n")
	v, err := m.Verify(c.Context, rep)
	if err != nil {
		return cli.Exit(fmt.Sprintf("verification: %v", err), 1)
	}
	env.Printf("   Strapi now has %d posts and %d pages\n", v.Posts, v.Pages)
	if v.Passed {
		env.Printf("   Verification passed\n")
	} else {
		env.Printf("   Verification mismatch, please review Strapi admin\n")
	}
	return nil
}
