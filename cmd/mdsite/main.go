package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"

	"github.com/goliatone/go-mdsite/cmd/mdsite/internal/bootstrap"
	articlescmd "github.com/goliatone/go-mdsite/internal/commands/articles"
	"github.com/goliatone/go-mdsite/pkg/interfaces"
)

const stripCommand = "strip-backlinks"

var moduleBuilder = bootstrap.BuildModule

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run dispatches to the sync batch or the strip-backlinks subcommand and
// returns the process exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var err error
	if len(args) > 0 && args[0] == stripCommand {
		err = runStrip(ctx, args[1:], stdout, stderr)
	} else {
		err = runSync(ctx, args, stdout, stderr)
	}
	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		return 0
	default:
		fmt.Fprintf(stderr, "mdsite: %v\n", err)
		return 1
	}
}

func runSync(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("mdsite", flag.ContinueOnError)
	fs.SetOutput(stderr)
	opts := bindCommonFlags(fs)
	dryRun := fs.Bool("dry-run", false, "Report outcomes without writing pages or the store")
	keepOrphans := fs.Bool("keep-orphans", false, "Skip removing pages and records without a Markdown source")
	noSeed := fs.Bool("no-seed", false, "Do not create the source directory with an example article")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(*opts)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer closeModule(module, stderr)

	cmd := articlescmd.SyncArticlesCommand{
		Trigger:        articlescmd.TriggerCLI,
		DryRun:         *dryRun,
		DeleteOrphaned: !*keepOrphans && !module.Config.Output.KeepOrphans,
		SeedExample:    !*noSeed && module.Config.Source.SeedExample,
	}
	execErr := module.Sync.Execute(ctx, cmd)

	result := module.Sync.LastResult()
	if result != nil {
		printSyncResult(stdout, stderr, result, cmd.DryRun)
	}
	if execErr != nil {
		return fmt.Errorf("sync articles: %w", execErr)
	}
	if result.HasFailures() {
		return fmt.Errorf("sync articles: %d file(s) failed", len(result.Failed()))
	}
	return nil
}

func runStrip(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("mdsite "+stripCommand, flag.ContinueOnError)
	fs.SetOutput(stderr)
	opts := bindCommonFlags(fs)
	dryRun := fs.Bool("dry-run", false, "Report pages that would change without rewriting them")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(*opts)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer closeModule(module, stderr)

	execErr := module.Strip.Execute(ctx, articlescmd.StripBacklinksCommand{
		Trigger: articlescmd.TriggerCLI,
		DryRun:  *dryRun,
	})
	if result := module.Strip.LastResult(); result != nil {
		printStripResult(stdout, stderr, result)
	}
	if execErr != nil {
		return fmt.Errorf("strip backlinks: %w", execErr)
	}
	return nil
}

func bindCommonFlags(fs *flag.FlagSet) *bootstrap.Options {
	opts := &bootstrap.Options{}
	fs.StringVar(&opts.ConfigPath, "config", "", "Path to a YAML configuration file")
	fs.StringVar(&opts.SourceDir, "source", "", "Markdown source directory (default md-articles)")
	fs.StringVar(&opts.OutputDir, "output", "", "Article output directory (default article)")
	fs.StringVar(&opts.StorePath, "store", "", "Store file, or the DSN for the sqlite driver (default script.js)")
	fs.StringVar(&opts.StoreDriver, "store-driver", "", "Store driver: script, yaml, sqlite or memory")
	fs.StringVar(&opts.LogProvider, "log-provider", "", "Logging provider: console or gologger")
	fs.StringVar(&opts.LogLevel, "log-level", "", "Minimum log level")
	fs.StringVar(&opts.LogFormat, "log-format", "", "go-logger output format: json, console or pretty")
	return opts
}

func printSyncResult(stdout, stderr io.Writer, result *interfaces.SyncResult, dryRun bool) {
	prefix := ""
	if dryRun {
		prefix = "[dry-run] "
	}
	for _, name := range result.DeletedFiles {
		fmt.Fprintf(stdout, "%sdeleted page %s\n", prefix, name)
	}
	for _, title := range result.RemovedTitles {
		fmt.Fprintf(stdout, "%sremoved record %q\n", prefix, title)
	}
	for _, file := range result.Files {
		switch file.Status {
		case interfaces.FileStatusFailed:
			fmt.Fprintf(stderr, "failed %s: %v\n", file.Path, file.Error)
		case interfaces.FileStatusSkipped:
			fmt.Fprintf(stderr, "skipped %s: %v\n", file.Path, file.Error)
		}
	}
	fmt.Fprintf(stdout, "%screated=%d updated=%d skipped=%d failed=%d deleted=%d removed=%d\n",
		prefix, result.Created, result.Updated, result.Skipped, len(result.Failed()), result.Deleted, result.Removed)
}

func printStripResult(stdout, stderr io.Writer, result *interfaces.StripResult) {
	names := make([]string, 0, len(result.Failed))
	for name := range result.Failed {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(stderr, "failed %s: %v\n", name, result.Failed[name])
	}
	fmt.Fprintf(stdout, "processed=%d changed=%d failed=%d\n", len(result.Processed), len(result.Changed), len(result.Failed))
}

func closeModule(module *bootstrap.Module, stderr io.Writer) {
	if module.Close == nil {
		return
	}
	if err := module.Close(); err != nil {
		fmt.Fprintf(stderr, "mdsite: close: %v\n", err)
	}
}
