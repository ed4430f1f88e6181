// Package cli wires the minigrep command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/altinukshini/minigrep/internal/api"
	"github.com/altinukshini/minigrep/internal/cache"
	"github.com/altinukshini/minigrep/internal/config"
	"github.com/altinukshini/minigrep/internal/logging"
	"github.com/altinukshini/minigrep/internal/runner"
	"github.com/altinukshini/minigrep/internal/tui"
	"github.com/altinukshini/minigrep/internal/tui/pager"
)

type clientFunc func(owner, repo string) (*api.Client, error)

type options struct {
	lookup    config.LookupFunc
	environ   []string
	newClient clientFunc

	lineNumbers bool
	color       string
	interactive bool
	repo        string
	ref         string
	refresh     bool
	envFile     string
	verbose     bool
}

// NewRootCmd builds the minigrep command. lookup backs the CASE_INSENSITIVE
// toggle and environ (os.Environ format) backs the MINIGREP_* settings.
func NewRootCmd(lookup config.LookupFunc, environ []string) *cobra.Command {
	return newRootCmd(lookup, environ, api.NewClient)
}

func newRootCmd(lookup config.LookupFunc, environ []string, newClient clientFunc) *cobra.Command {
	o := &options{lookup: lookup, environ: environ, newClient: newClient}

	cmd := &cobra.Command{
		Use:   "minigrep [flags] <query> <target_path>",
		Short: "Print the lines of a file that contain a query",
		Long: `minigrep reads target_path and prints every line containing query, in
file order. Set CASE_INSENSITIVE (to any value) to ignore letter case.
Put -- before a query that starts with a dash.`,
		Example: `  minigrep frog poem.txt
  CASE_INSENSITIVE=1 minigrep -n to poem.txt
  minigrep -- -x notes.txt
  minigrep -R cli/cli --ref trunk gh README.md`,
		Args: cobra.ArbitraryArgs,
		RunE: o.run,
	}

	f := cmd.Flags()
	f.BoolVarP(&o.lineNumbers, "line-number", "n", false, "prefix each line with its line number")
	f.StringVar(&o.color, "color", string(runner.ColorAuto), "highlight matches: auto, always or never")
	f.BoolVarP(&o.interactive, "interactive", "i", false, "browse the results in a pager")
	f.StringVarP(&o.repo, "repo", "R", "", "read target_path from a GitHub repository (owner/repo)")
	f.StringVar(&o.ref, "ref", "", "git ref to read with --repo (default: the repository's default branch)")
	f.BoolVar(&o.refresh, "refresh", false, "bypass the content cache for --repo reads")
	f.StringVar(&o.envFile, "env-file", "", "dotenv file whose variables are also consulted")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

func (o *options) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	lookup := o.lookup
	var fileVars map[string]string
	if o.envFile != "" {
		vars, err := config.ReadEnvFile(o.envFile)
		if err != nil {
			return err
		}
		fileVars = vars
		lookup = config.Layered(lookup, vars)
	}

	settings, err := config.LoadSettings(o.environ, fileVars)
	if err != nil {
		return err
	}
	level := settings.LogLevel
	if o.verbose {
		level = "debug"
	}
	logger := logging.New(cmd.ErrOrStderr(), level)

	cfg, err := config.Resolve(append([]string{cmd.Root().Name()}, args...), lookup)
	if err != nil {
		return err
	}
	if len(args) > 2 {
		logger.Debug("ignoring extra arguments", "args", args[2:])
	}

	colorMode, err := runner.ParseColorMode(o.color)
	if err != nil {
		return err
	}
	if o.ref != "" && o.repo == "" {
		return errors.New("--ref requires --repo")
	}

	reader, source, err := o.fileReader(settings, logger, cfg.TargetPath())
	if err != nil {
		return err
	}
	logger.Debug("searching", "query", cfg.Query(), "source", source, "case_sensitive", cfg.CaseSensitive())

	if o.interactive {
		contents, results, err := runner.Collect(ctx, cfg, reader)
		if err != nil {
			return err
		}
		return tui.Run(ctx, pager.New(source, contents, results), cmd.InOrStdin(), cmd.OutOrStdout())
	}

	sink := runner.NewLineSink(cmd.OutOrStdout(), cfg, runner.SinkOptions{
		LineNumbers: o.lineNumbers,
		Color:       colorMode,
	})
	return runner.Run(ctx, cfg, reader, sink)
}

// fileReader picks local disk or GitHub as the source of target paths.
func (o *options) fileReader(s *config.Settings, logger *log.Logger, target string) (runner.FileReader, string, error) {
	if o.repo == "" {
		return runner.OSReader{}, target, nil
	}

	repo, err := config.ParseRepo(o.repo, o.ref)
	if err != nil {
		return nil, "", err
	}
	client, err := o.newClient(repo.Owner, repo.Name)
	if err != nil {
		return nil, "", err
	}

	readerOpts := []api.ContentReaderOption{
		api.WithLogger(logger),
		api.WithRefresh(o.refresh),
	}
	contentCache, err := cache.NewContentCache(s.CacheDir, s.CacheSizeMB, s.CacheTTL)
	if err != nil {
		logger.Warn("content cache disabled", "err", err)
	} else {
		readerOpts = append(readerOpts, api.WithCache(contentCache))
	}

	source := fmt.Sprintf("%s:%s", repo.NWO(), target)
	if repo.Ref != "" {
		source = fmt.Sprintf("%s@%s:%s", repo.NWO(), repo.Ref, target)
	}
	return api.NewContentReader(client, repo.Ref, readerOpts...), source, nil
}

// Execute runs root through fang and returns the process exit code. Errors
// have already been printed to root's stderr when it returns non-zero.
func Execute(ctx context.Context, root *cobra.Command, version string) int {
	// Queries are free-form, so no subcommands may shadow them.
	if err := fang.Execute(
		ctx,
		root,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithoutManpage(),
		fang.WithoutCompletions(),
	); err != nil {
		return 1
	}
	return 0
}
