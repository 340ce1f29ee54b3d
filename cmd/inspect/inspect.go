// Package inspect implements the inspect command, which resolves a redirect
// URL while showing each protocol step.
package inspect

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/newsurl/cmd/common"
	"github.com/jonesrussell/newsurl/internal/resolver"
)

// detailColumnWidth caps the detail column so envelopes stay readable.
const detailColumnWidth = 100

// timeout overrides the configured resolve timeout when set.
var timeout time.Duration

// Cmd represents the inspect command.
var Cmd = &cobra.Command{
	Use:   "inspect <url>",
	Short: "Resolve a redirect URL and show each protocol step",
	Long: `Resolve a Google News redirect URL like the resolve command, but print
a table of each protocol step as it runs: page fetch, token extraction,
payload construction, and the endpoint call.

On failure the steps completed before the error are still shown, which makes
it the tool to reach for when Google changes the page format.
`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

// Command returns the inspect command for use in the root command.
func Command() *cobra.Command {
	Cmd.Flags().DurationVar(&timeout, "timeout", 0, "override the resolve timeout (e.g. 10s)")
	return Cmd
}

// runInspect executes the inspect command.
func runInspect(cmd *cobra.Command, args []string) error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer func() { _ = deps.Logger.Sync() }()

	if timeout > 0 {
		deps.Config.Resolver.Timeout = timeout
	}

	res := common.NewResolver(deps)

	// One deadline across both network calls, same as the resolve command.
	ctx, cancel := context.WithTimeout(cmd.Context(), deps.Config.Resolver.Timeout)
	defer cancel()

	trace, resolveErr := res.Inspect(ctx, args[0])
	renderTrace(trace)

	if resolveErr != nil {
		return fmt.Errorf("inspect %s: %w", args[0], resolveErr)
	}

	fmt.Fprintln(os.Stdout, trace.ResolvedURL)
	return nil
}

// renderTrace formats and displays the trace steps in a table.
func renderTrace(trace *resolver.Trace) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, WidthMax: detailColumnWidth},
	})

	t.AppendHeader(table.Row{"#", "Step", "Detail"})
	for i, step := range trace.Steps {
		t.AppendRow(table.Row{i + 1, step.Name, step.Detail})
	}
	t.AppendFooter(table.Row{"", "Steps", len(trace.Steps)})

	t.Render()
}
