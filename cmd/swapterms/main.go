package main

import (
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"wp2strapi/internal/cmdutil"
	"wp2strapi/internal/config"
	"wp2strapi/internal/migrate"
)

func main() {
	os.Exit(cmdutil.Run(newApp(), os.Args))
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "swapterms",
		Usage: "Swap the Strapi categories and tags collections and remap post relations",
		Flags: []cli.Flag{
			&cli.DurationFlag{Name: "wait", Value: 5 * time.Second, Usage: "Grace period before writing (Ctrl+C to cancel)"},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	env, err := cmdutil.Setup(c, config.NeedStrapi)
	if err != nil {
		return err
	}

	client, err := env.ConnectStrapi(c.Context)
	if err != nil {
		return err
	}
	cats, err := client.ListCategories(c.Context)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	tags, err := client.ListTags(c.Context)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	env.Printf("Current state:\n   Categories: %d\n   Tags: %d\n", len(cats), len(tags))
	env.Printf("\nThis will:\n   - Move %d categories to tags\n   - Move %d tags to categories\n", len(cats), len(tags))

	if wait := c.Duration("wait"); wait > 0 {
		env.Printf("\nStarting in %s... (Ctrl+C to cancel)\n", wait)
		select {
		case <-time.After(wait):
		case <-c.Context.Done():
			return cli.Exit("cancelled", 0)
		}
	}

	res, err := migrate.New(client, env.Out, env.Logs.Get("migrate")).Swap(c.Context)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	env.Printf("\nSwap completed\n")
	env.Printf("   Posts updated: %d (%d failed)\n", res.PostsUpdated, res.PostsFailed)
	env.Printf("   Old entries deleted: %d (%d failed)\n", res.Deleted, res.DeleteFailed)
	env.Printf("\nNew state:\n   Categories: %d (was %d)\n   Tags: %d (was %d)\n",
		res.CategoriesAfter, res.TagsBefore, res.TagsAfter, res.CategoriesBefore)
	return nil
}
