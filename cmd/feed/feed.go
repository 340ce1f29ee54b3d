// Package feed implements the feed command, which lists Google News RSS
// entries whose links can be resolved.
package feed

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/newsurl/cmd/common"
	"github.com/jonesrussell/newsurl/internal/feed"
	"github.com/jonesrussell/newsurl/internal/httpclient"
)

// Column width limits for the results table.
const (
	titleColumnWidth = 60
	urlColumnWidth   = 70
)

// Command-line flag values.
var (
	search string
	topic  string
	geo    string
	limit  int
)

// Cmd represents the feed command.
var Cmd = &cobra.Command{
	Use:   "feed",
	Short: "List Google News feed entries with resolvable links",
	Long: `List entries from a Google News RSS feed. Each listed link is a redirect
URL that the resolve command can turn into the article URL.

Examples:
  # Top stories
  newsurl feed

  # A topic section
  newsurl feed --topic TECHNOLOGY

  # A search feed
  newsurl feed --query "quantum computing" --limit 5
`,
	RunE: runFeed,
}

// Command returns the feed command for use in the root command.
func Command() *cobra.Command {
	Cmd.Flags().StringVarP(&search, "query", "q", "", "search feed query")
	Cmd.Flags().StringVarP(&topic, "topic", "t", "", "topic section (e.g. TECHNOLOGY, SPORTS)")
	Cmd.Flags().StringVarP(&geo, "geo", "g", "", "local headlines for a place")
	Cmd.Flags().IntVarP(&limit, "limit", "n", 0, "max entries to list (overrides feed.limit)")
	return Cmd
}

// runFeed executes the feed command.
func runFeed(cmd *cobra.Command, _ []string) error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer func() { _ = deps.Logger.Sync() }()

	q := feed.Query{
		Search:   search,
		Topic:    topic,
		Geo:      geo,
		Language: deps.Config.Feed.Language,
		Country:  deps.Config.Feed.Country,
		Edition:  deps.Config.Feed.Edition,
		Limit:    deps.Config.Feed.Limit,
	}
	if limit > 0 {
		q.Limit = limit
	}

	client := httpclient.New(httpclient.Config{Timeout: deps.Config.Resolver.Timeout})
	lister := feed.NewLister(client, deps.Config.Resolver.UserAgent, deps.Logger)

	items, err := lister.List(cmd.Context(), q)
	if err != nil {
		return fmt.Errorf("list feed: %w", err)
	}

	if len(items) == 0 {
		fmt.Fprintln(os.Stdout, "No resolvable entries found.")
		return nil
	}

	renderItems(items)
	return nil
}

// renderItems formats and displays the feed entries in a table.
func renderItems(items []feed.Item) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: titleColumnWidth},
		{Number: 5, WidthMax: urlColumnWidth},
	})

	t.AppendHeader(table.Row{"#", "Title", "Source", "Published", "Redirect URL"})
	for i, item := range items {
		published := ""
		if !item.PublishedAt.IsZero() {
			published = item.PublishedAt.Format("2006-01-02 15:04")
		}
		t.AppendRow(table.Row{i + 1, item.Title, item.Source, published, item.RedirectURL})
	}
	t.AppendFooter(table.Row{"Total", len(items), "", "", ""})

	t.Render()
}
