// Package resolve implements the resolve command, which turns one Google
// News redirect URL into the publisher article URL and prints it.
package resolve

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/newsurl/cmd/common"
	"github.com/jonesrussell/newsurl/internal/logger"
)

// timeout overrides the configured resolve timeout when set.
var timeout time.Duration

// Cmd represents the resolve command.
var Cmd = &cobra.Command{
	Use:   "resolve <url>",
	Short: "Resolve a Google News redirect URL to the article URL",
	Long: `Resolve a Google News RSS redirect URL to the publisher article URL.

The article URL is printed to stdout, so the command can be piped:

  newsurl resolve "https://news.google.com/rss/articles/CBMi..." | xargs open
`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

// Command returns the resolve command for use in the root command.
func Command() *cobra.Command {
	Cmd.Flags().DurationVar(&timeout, "timeout", 0, "override the resolve timeout (e.g. 10s)")
	return Cmd
}

// runResolve executes the resolve command.
func runResolve(cmd *cobra.Command, args []string) error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer func() { _ = deps.Logger.Sync() }()

	if timeout > 0 {
		deps.Config.Resolver.Timeout = timeout
	}

	res := common.NewResolver(deps)

	// The configured timeout bounds the whole operation, not each request:
	// the GET and the POST share one deadline.
	ctx, cancel := context.WithTimeout(cmd.Context(), deps.Config.Resolver.Timeout)
	defer cancel()

	articleURL, err := res.Resolve(ctx, args[0])
	if err != nil {
		deps.Logger.Error("Resolve failed",
			logger.String("url", args[0]),
			logger.Error(err),
		)
		return fmt.Errorf("resolve %s: %w", args[0], err)
	}

	fmt.Fprintln(os.Stdout, articleURL)
	return nil
}
