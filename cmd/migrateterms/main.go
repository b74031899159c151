package main

import (
	"os"

	"github.com/urfave/cli/v2"

	"wp2strapi/internal/cmdutil"
	"wp2strapi/internal/config"
	"wp2strapi/internal/domain"
	"wp2strapi/internal/migrate"
	"wp2strapi/internal/wxr"
)

func main() {
	os.Exit(cmdutil.Run(newApp(), os.Args))
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "migrateterms",
		Usage: "Replace Strapi categories and tags with the WXR export's terms and link posts to them",
		Flags: []cli.Flag{
			cmdutil.XMLFlag(),
			&cli.BoolFlag{Name: "keep-existing", Usage: "Do not purge existing categories and tags first"},
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

	cmdutil.Banner(env.Out, "WordPress Categories & Tags Migration",
		"Source: "+cfg.XMLExportPath,
		"Target: "+cfg.StrapiURL,
	)

	doc, err := wxr.Open(cfg.XMLExportPath)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	client, err := env.ConnectStrapi(c.Context)
	if err != nil {
		return err
	}
	m := migrate.New(client, env.Out, env.Logs.Get("migrate"))

	if !c.Bool("keep-existing") {
		env.Printf("\nStep 1: Purging existing categories and tags...\n")
		purged, err := m.PurgeTerms(c.Context)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		env.Printf("   Deleted %d categories and %d tags (%d failed)\n", purged.Categories, purged.Tags, purged.Failed)
	}

	env.Printf("\nStep 2: Extracting categories and tags from WordPress XML...\n")
	posts, err := doc.Posts()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	cats, tags := domain.UniqueTerms(posts)
	env.Printf("   Found %d unique categories\n   Found %d unique tags\n", len(cats), len(tags))

	env.Printf("\nStep 3: Creating categories and tags in Strapi...\n")
	created := m.CreateTerms(c.Context, cats, tags)

	env.Printf("\nStep 4: Linking posts to categories and tags...\n")
	linked, err := m.Link(c.Context, posts)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	env.Printf("\n%s\nCategory & Tag Migration Complete!\n%s\n", cmdutil.Rule, cmdutil.Rule)
	env.Printf("Categories created: %d/%d\n", created.Categories.Succeeded, created.Categories.Total)
	env.Printf("Tags created: %d/%d\n", created.Tags.Succeeded, created.Tags.Total)
	env.Printf("Posts updated: %d/%d\n", linked.Updated, linked.Total)
	return nil
}
