package main

import (
	"os"

	"github.com/urfave/cli/v2"

	"wp2strapi/internal/cmdutil"
	"wp2strapi/internal/config"
	"wp2strapi/internal/migrate"
	"wp2strapi/internal/wxr"
)

func main() {
	os.Exit(cmdutil.Run(newApp(), os.Args))
}

func newApp() *cli.App {
	return &cli.App{
		Name:   "linkterms",
		Usage:  "Link Strapi posts to their existing categories and tags using the WXR export",
		Flags:  []cli.Flag{cmdutil.XMLFlag()},
		Action: run,
	}
}

func run(c *cli.Context) error {
	env, err := cmdutil.Setup(c, config.NeedStrapi, config.NeedXMLExport)
	if err != nil {
		return err
	}
	cfg := env.Config

	cmdutil.Banner(env.Out, "Linking Posts to Categories & Tags",
		"Source: "+cfg.XMLExportPath,
		"Target: "+cfg.StrapiURL,
	)

	doc, err := wxr.Open(cfg.XMLExportPath)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	posts, err := doc.Posts()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	client, err := env.ConnectStrapi(c.Context)
	if err != nil {
		return err
	}

	res, err := migrate.New(client, env.Out, env.Logs.Get("migrate")).Link(c.Context, posts)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	env.Printf("\n%s\nLinking Complete!\n%s\n", cmdutil.Rule, cmdutil.Rule)
	env.Printf("Posts updated: %d\n", res.Updated)
	env.Printf("Already linked: %d\n", res.AlreadyLinked)
	env.Printf("No terms: %d\n", res.Skipped)
	env.Printf("Not found in Strapi: %d\n", res.NotFound)
	env.Printf("Failed: %d\n", res.Failed)
	return nil
}
