package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"drupal-news/internal/domain/entity"
	"drupal-news/internal/infra/fetcher"
	"drupal-news/internal/observability/logging"
	"drupal-news/internal/registry"
	"drupal-news/internal/usecase/news"
)

// Catalog lists the configured sources.
type Catalog interface {
	All() []entity.Source
}

type aggregator interface {
	Aggregate(ctx context.Context, sourceID string) (*entity.Envelope, error)
}

// deps builds the collaborators lazily so --sources can be read first.
type deps struct {
	catalog    func(path string) (Catalog, error)
	aggregator func(path string) (aggregator, error)
}

func defaultDeps() deps {
	return deps{
		catalog: func(path string) (Catalog, error) {
			return registry.FromFileOrDefault(path)
		},
		aggregator: func(path string) (aggregator, error) {
			reg, err := registry.FromFileOrDefault(path)
			if err != nil {
				return nil, err
			}
			cfg, err := fetcher.LoadConfigFromEnv()
			if err != nil {
				return nil, err
			}
			return news.NewService(reg, fetcher.New(cfg)), nil
		},
	}
}

func newRootCommand(d deps) *cobra.Command {
	var (
		sourcesFile string
		verbose     bool
	)

	root := &cobra.Command{
		Use:          "newsctl",
		Short:        "Inspect and query the Drupal news aggregator",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			opts := logging.LoadOptionsFromEnv()
			opts.Format = logging.FormatText
			opts.Output = cmd.ErrOrStderr()
			if !verbose {
				opts.Level = slog.LevelError
			}
			slog.SetDefault(logging.New(opts))
		},
	}
	root.PersistentFlags().StringVar(&sourcesFile, "sources", os.Getenv("NEWS_SOURCES_FILE"),
		"YAML source catalog (default: built-in catalog)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log fetch activity to stderr")

	root.AddCommand(
		newSourcesCommand(func() (Catalog, error) { return d.catalog(sourcesFile) }),
		newFetchCommand(func() (aggregator, error) { return d.aggregator(sourcesFile) }),
	)
	return root
}
