package main

import (
	"os"

	"github.com/urfave/cli/v2"

	"wp2strapi/internal/cmdutil"
	"wp2strapi/internal/config"
	"wp2strapi/internal/domain"
	"wp2strapi/internal/migrate"
	"wp2strapi/internal/report"
	"wp2strapi/internal/sqldump"
)

func main() {
	os.Exit(cmdutil.Run(newApp(), os.Args))
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "migratesql",
		Usage: "Migrate published posts, pages and terms from a WordPress SQL dump into Strapi",
		Flags: []cli.Flag{
			cmdutil.SQLFlag(),
			&cli.BoolFlag{Name: "skip-terms", Usage: "Do not create categories from the dump's terms"},
			&cli.BoolFlag{Name: "resume", Usage: "Skip posts and pages already in Strapi (matched by WordPress id)"},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	env, err := cmdutil.Setup(c, config.NeedStrapi, config.NeedSQLDump)
	if err != nil {
		return err
	}
	cfg := env.Config
	log := env.Logs.Get("migratesql")

	cmdutil.Banner(env.Out, "WordPress to Strapi Migration (SQL)",
		"Source: "+cfg.SQLDumpPath,
		"Target: "+cfg.StrapiURL,
	)

	env.Printf("\nParsing WordPress SQL dump...\n")
	dump, err := sqldump.Open(cfg.SQLDumpPath)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	env.Printf("   Table prefix: %s\n", dump.Prefix())

	all, stats := dump.ScanPosts()
	log.Info("scanned posts table", "statements", stats.Statements, "rows", stats.Rows, "accepted", stats.Accepted)
	terms, _ := dump.ScanTerms()

	client, err := env.ConnectStrapi(c.Context)
	if err != nil {
		return err
	}

	posts, pages := domain.SplitByType(all)
	env.Printf("\nContent Summary:\n   - Posts: %d\n   - Pages: %d\n   - Terms: %d\n", len(posts), len(pages), len(terms.Categories)+len(terms.Tags))

	m := migrate.New(client, env.Out, env.Logs.Get("migrate"))

	if !c.Bool("skip-terms") {
		if terms.Approximate {
			log.Warn("the SQL dump does not separate categories from tags; every term is created as a category. Run swapterms or migrateterms afterwards to fix the taxonomy.")
		}
		cats := map[string]domain.TermRef{}
		for _, t := range terms.Categories {
			cats[t.Slug] = t.Ref()
		}
		tags := map[string]domain.TermRef{}
		for _, t := range terms.Tags {
			tags[t.Slug] = t.Ref()
		}
		m.CreateTerms(c.Context, cats, tags)
	}

	if c.Bool("resume") {
		env.Printf("\nChecking what is already migrated...\n")
		if all, err = m.Missing(c.Context, all); err != nil {
			return cli.Exit(err.Error(), 1)
		}
	}

	rep := m.Content(c.Context, dump.Name(), all)

	env.Printf("\n%s\nMigration Complete!\n%s\n", cmdutil.Rule, cmdutil.Rule)
	env.Printf("Posts: %s\n", rep.Posts)
	if rep.Pages.Total > 0 {
		env.Printf("Pages: %s\n", rep.Pages)
	}

	textPath, _, err := report.Save(cfg.ReportDir, rep)
	if err != nil {
		log.Error("could not save report", "error", err)
		return nil
	}
	env.Printf("\nMigration report saved to: %s\n", textPath)
	return nil
}
