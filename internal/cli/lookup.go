package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tipjar/internal/config"
	errs "github.com/matzehuels/tipjar/pkg/errors"
	"github.com/matzehuels/tipjar/pkg/funding"
	"github.com/matzehuels/tipjar/pkg/integrations/github"
)

type lookupFlags struct {
	json bool
}

func (c *CLI) addLookupFlags(cmd *cobra.Command, f *lookupFlags) {
	cmd.Flags().BoolVar(&f.json, "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&c.noCache, "no-cache", false, "disable the response cache")
	cmd.Flags().BoolVar(&c.refresh, "refresh", false, "bypass cached responses and refetch")
}

// npmCommand creates the command that ranks an npm package's funding handles.
func (c *CLI) npmCommand() *cobra.Command {
	var flags lookupFlags

	cmd := &cobra.Command{
		Use:     "npm <package>",
		Short:   "Rank funding handles behind an npm package and its direct dependencies",
		Example: "  tipjar npm express",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := errs.SanitizeIdentifier("package", args[0])
			if err != nil {
				return err
			}
			return c.lookup(cmd.Context(), flags, "Resolving "+name, func(ctx context.Context, r *funding.Resolver) (funding.Result, error) {
				return r.ByPackage(ctx, name)
			})
		},
	}
	c.addLookupFlags(cmd, &flags)
	return cmd
}

// githubCommand creates the command that ranks a repository's funding handles.
func (c *CLI) githubCommand() *cobra.Command {
	var flags lookupFlags

	cmd := &cobra.Command{
		Use:     "github <owner>/<repo>",
		Short:   "Rank funding handles of a GitHub repository's collaborators",
		Example: "  tipjar github expressjs/express\n  tipjar github expressjs express",
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := parseRepoArgs(args)
			if err != nil {
				return err
			}
			return c.lookup(cmd.Context(), flags, "Resolving "+repo.String(), func(ctx context.Context, r *funding.Resolver) (funding.Result, error) {
				return r.ByRepo(ctx, repo.Owner, repo.Name)
			})
		},
	}
	c.addLookupFlags(cmd, &flags)
	return cmd
}

// lookup builds a resolver, runs resolve behind a spinner and prints the
// outcome.
func (c *CLI) lookup(ctx context.Context, flags lookupFlags, message string, resolve func(context.Context, *funding.Resolver) (funding.Result, error)) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	resolver, respCache, err := c.newResolver(ctx, cfg)
	if err != nil {
		return err
	}
	defer respCache.Close()
	installHooks(c.Logger)
	if cfg.GitHubToken == "" && !flags.json {
		printWarning("GITHUB_TOKEN is not set; GitHub may refuse collaborator listings")
	}

	elapsed := stopwatch(loggerFromContext(ctx))
	stop := startSpinner(ctx, message)
	res, err := resolve(ctx, resolver)
	stop()
	if err != nil {
		return err
	}
	elapsed(fmt.Sprintf("Resolved %s: %d handles", res.Subject, len(res.Users)))

	return writeResult(res, cfg, flags)
}

func writeResult(res funding.Result, cfg *config.Config, flags lookupFlags) error {
	if flags.json {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	printResult(res, strings.TrimRight(cfg.GittipURL, "/"))
	return nil
}

// parseRepoArgs accepts either "owner/repo" or "owner repo".
func parseRepoArgs(args []string) (github.Repo, error) {
	if len(args) == 2 {
		return github.ValidateRepoRef(args[0], args[1])
	}
	return github.ParseRepoRef(args[0])
}
