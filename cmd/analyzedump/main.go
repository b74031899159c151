package main

import (
	"os"

	"github.com/urfave/cli/v2"

	"wp2strapi/internal/cmdutil"
	"wp2strapi/internal/config"
	"wp2strapi/internal/sqldump"
)

func main() {
	os.Exit(cmdutil.Run(newApp(), os.Args))
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "analyzedump",
		Usage:     "Print content statistics for a WordPress SQL dump",
		ArgsUsage: "[path to SQL dump]",
		Flags:     []cli.Flag{cmdutil.SQLFlag()},
		Action:    run,
	}
}

func run(c *cli.Context) error {
	if c.NArg() > 0 && !c.IsSet(cmdutil.FlagSQL) {
		if err := c.Set(cmdutil.FlagSQL, c.Args().First()); err != nil {
			return err
		}
	}
	env, err := cmdutil.Setup(c, config.NeedSQLDump)
	if err != nil {
		return err
	}

	env.Printf("Analyzing SQL dump: %s\n", env.Config.SQLDumpPath)
	dump, err := sqldump.Open(env.Config.SQLDumpPath)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	a := dump.Analyze()

	env.Printf("\n=== Database Info ===\n")
	env.Printf("  - Table prefix: %s\n", a.Prefix)
	env.Printf("  - Total tables: %d\n", len(a.Tables))

	env.Printf("\n=== Published Content by Type ===\n")
	for _, n := range sqldump.SortedCounts(a.PublishedByType) {
		env.Printf("  - %s: %d\n", n.Key, n.N)
	}
	env.Printf("\n  Total published: %d\n", a.TotalPublished)

	env.Printf("\n=== Content by Status ===\n")
	for _, n := range sqldump.SortedCounts(a.ByStatus) {
		env.Printf("  - %s: %d\n", n.Key, n.N)
	}

	env.Printf("\n=== Taxonomy ===\n")
	env.Printf("  - Term insert statements: %d\n", a.TermStatements)

	env.Printf("\n=== File Size ===\n")
	env.Printf("  - %.2f MB\n", a.SizeMB)

	env.Printf("\nAnalysis complete\n")
	return nil
}
