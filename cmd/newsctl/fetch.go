package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"drupal-news/internal/domain/entity"
)

// titleWidth wraps long titles in the article table.
const titleWidth = 60

func newFetchCommand(load func() (aggregator, error)) *cobra.Command {
	var (
		sourceID string
		asJSON   bool
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Run one aggregation and print the articles",
		Long: `Fetch articles from every source, or from one with --source.

Examples:
  newsctl fetch                    # all sources, newest first
  newsctl fetch --source dries     # one source
  newsctl fetch --json --limit 5   # envelope as JSON`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative")
			}
			agg, err := load()
			if err != nil {
				return err
			}
			env, err := agg.Aggregate(cmd.Context(), sourceID)
			if err != nil {
				return err
			}
			if limit > 0 && len(env.Articles) > limit {
				env.Articles = env.Articles[:limit]
			}

			writeErrors(cmd.ErrOrStderr(), env.Errors)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(env)
			}
			renderArticles(cmd.OutOrStdout(), env.Articles)
			return nil
		},
	}

	cmd.Flags().StringVarP(&sourceID, "source", "s", "", "only fetch this source id")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full envelope as JSON")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "print at most n articles (0 means all)")
	return cmd
}

func renderArticles(w io.Writer, articles []entity.Article) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Published", "Source", "Title", "Link"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Title", WidthMax: titleWidth},
	})
	for _, a := range articles {
		t.AppendRow(table.Row{a.PublishedAt, a.SourceID, a.Title, a.Link})
	}
	t.AppendFooter(table.Row{"", "", fmt.Sprintf("%d articles", len(articles)), ""})
	t.Render()
}

// writeErrors prints failed sources in id order.
func writeErrors(w io.Writer, errs map[string]string) {
	ids := make([]string, 0, len(errs))
	for id := range errs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Fprintf(w, "source %s failed: %s\n", id, errs[id])
	}
}
