package main

import (
	"os"

	"github.com/urfave/cli/v2"

	"wp2strapi/internal/cmdutil"
	"wp2strapi/internal/config"
	"wp2strapi/internal/migrate"
	"wp2strapi/internal/shortcode"
)

func main() {
	os.Exit(cmdutil.Run(newApp(), os.Args))
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "replaceshortcodes",
		Usage: "Rewrite legacy WordPress shortcodes in Strapi posts into content markers",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "execute", Usage: "Write changes to Strapi (default is a dry run)"},
			&cli.StringFlag{Name: "filter", Usage: "Only process posts whose slug starts with this prefix"},
			&cli.BoolFlag{Name: "inventory", Usage: "List the shortcodes still present and exit"},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	env, err := cmdutil.Setup(c, config.NeedStrapi)
	if err != nil {
		return err
	}
	cfg := env.Config
	execute, filter := c.Bool("execute"), c.String("filter")

	client, err := env.ConnectStrapi(c.Context)
	if err != nil {
		return err
	}
	m := migrate.New(client, env.Out, env.Logs.Get("migrate"))

	if c.Bool("inventory") {
		return inventory(c, env, m, filter)
	}

	if execute {
		env.Printf("LIVE MODE: changes will be written to Strapi\n")
	} else {
		env.Printf("DRY RUN MODE: no changes will be made\n   Run with --execute to apply changes\n\n")
	}
	lines := []string{"Strapi URL: " + cfg.StrapiURL}
	if filter != "" {
		lines = append(lines, "Filter: slugs starting with '"+filter+"'")
	}
	cmdutil.Banner(env.Out, "WordPress Shortcode Replacement", lines...)

	pipeline := shortcode.New(shortcode.Options{
		SpotifyShowID:    cfg.SpotifyShowID,
		BuzzsproutShowID: cfg.BuzzsproutShowID,
	})

	env.Printf("\nFetching posts from Strapi...\n")
	stats, err := m.Shortcodes(c.Context, pipeline, migrate.ShortcodeOptions{Execute: execute, SlugPrefix: filter})
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	env.Printf("\n%s\nSummary\n%s\n", cmdutil.Rule, cmdutil.Rule)
	env.Printf("Posts processed: %d\n", stats.Processed)
	env.Printf("Posts modified: %d\n", stats.Modified)
	if execute {
		env.Printf("Posts failed: %d\n", stats.Failed)
	}
	if stats.Skipped > 0 {
		env.Printf("Posts skipped: %d\n", stats.Skipped)
	}
	env.Printf("\nShortcodes replaced:\n")
	for _, kind := range pipeline.Kinds() {
		env.Printf("  - [%s]: %d\n", kind, stats.Counts[kind])
	}

	if !execute {
		env.Printf("\nThis was a DRY RUN, no changes were made\n   Run with --execute to apply changes\n")
	}
	return nil
}

func inventory(c *cli.Context, env *cmdutil.Env, m *migrate.Migrator, filter string) error {
	inv, n, err := m.Inventory(c.Context, filter)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	cmdutil.Banner(env.Out, "WordPress Shortcode Analysis")
	entries := inv.Sorted()
	total := 0
	for _, e := range entries {
		total += e.Count
	}
	env.Printf("\nScanned %d posts\n", n)
	env.Printf("Found %d total shortcode instances\n", total)
	env.Printf("Found %d unique shortcode types\n\n", len(entries))
	for _, e := range entries {
		env.Printf("  [%s] %d\n", e.Name, e.Count)
	}
	return nil
}
