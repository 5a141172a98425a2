package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/facade/internal/server"
	"github.com/matzehuels/facade/pkg/cache"
	"github.com/matzehuels/facade/pkg/pipeline"
	"github.com/matzehuels/facade/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string // listen address
	storeURL string // memory, a directory path, or mongodb://...
	cacheURL string // off, a directory path, or redis://...
}

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:     ":8080",
		storeURL: "memory",
		cacheURL: "",
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the plan generation HTTP API",
		Long: `Serve runs the HTTP API for generating, storing, and rendering
plans. Plans persist in memory by default; pass a directory path or a
mongodb:// URL for durable storage. The cache defaults to the local
file cache; pass a redis:// URL to share it between instances, or
"off" to disable caching.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.storeURL, "store", opts.storeURL, "plan store: memory, a directory, or mongodb://...")
	cmd.Flags().StringVar(&opts.cacheURL, "cache", opts.cacheURL, "cache: a directory, redis://..., or off")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	st, err := openStore(ctx, opts.storeURL)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	ca, err := openCache(ctx, opts.cacheURL)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(ca, nil, c.Logger)
	defer runner.Close()

	srv := server.New(st, runner, c.Logger)
	c.Logger.Info("starting server", "addr", opts.addr, "store", opts.storeURL)
	return srv.ListenAndServe(ctx, opts.addr)
}

// openStore picks the store backend from the --store flag.
func openStore(ctx context.Context, url string) (store.Store, error) {
	switch {
	case url == "" || url == "memory":
		return store.NewMemoryStore(), nil
	case strings.HasPrefix(url, "mongodb://") || strings.HasPrefix(url, "mongodb+srv://"):
		// Mongo may still be coming up when the server starts.
		var st store.Store
		err := cache.RetryWithBackoff(ctx, func() error {
			var err error
			if st, err = store.NewMongoStore(ctx, url); err != nil {
				return cache.Retryable(err)
			}
			return nil
		})
		return st, err
	default:
		return store.NewFileStore(url)
	}
}

// openCache picks the cache backend from the --cache flag.
func openCache(ctx context.Context, url string) (cache.Cache, error) {
	switch {
	case url == "off":
		return cache.NewNullCache(), nil
	case url == "":
		return newCache(false)
	case strings.HasPrefix(url, "redis://") || strings.HasPrefix(url, "rediss://"):
		var ca cache.Cache
		err := cache.RetryWithBackoff(ctx, func() error {
			var err error
			if ca, err = cache.NewRedisCache(ctx, url); err != nil {
				return cache.Retryable(err)
			}
			return nil
		})
		return ca, err
	default:
		return cache.NewFileCache(url)
	}
}
