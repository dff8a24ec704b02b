package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/filmframe/internal/server"
	"github.com/matzehuels/filmframe/pkg/cache"
	"github.com/matzehuels/filmframe/pkg/pipeline"
)

// shutdownTimeout bounds graceful shutdown of the preview server.
const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command that runs the HTTP preview server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		style   styleFlags
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP preview server",
		Long: `Run the HTTP preview server.

Style flags set the defaults that requests override field by field. When
FILMFRAME_REDIS_ADDR is set, palettes and frames are cached in Redis and
shared between server instances; otherwise the local file cache is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.settings().Server.Addr
			}
			return c.runServe(cmd.Context(), addr, &style, noCache)
		},
	}

	style.register(cmd.Flags())
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from settings)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	registerCompletions(cmd)
	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, style *styleFlags, noCache bool) error {
	s := c.settings()
	cfg, err := style.resolve(s)
	if err != nil {
		return err
	}

	runner, err := c.newServerRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()
	if err := c.useFonts(runner, style); err != nil {
		return err
	}

	srv := server.New(runner, c.Logger, server.Options{
		Style:          cfg,
		Product:        product(s.Product),
		Quality:        s.Quality.Preview,
		MaxUploadBytes: s.Server.MaxUploadBytes,
	})
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      srv.Handler(),
		ReadTimeout:  s.Server.ReadTimeout,
		WriteTimeout: s.Server.WriteTimeout,
		IdleTimeout:  s.Server.IdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr, "variant", cfg.Variant)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		c.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}

// newServerRunner prefers the shared Redis cache and falls back to the
// local file cache.
func (c *CLI) newServerRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	s := c.settings()
	if noCache || !s.Cache.Enabled || s.Cache.RedisAddr == "" {
		return c.newRunner(noCache)
	}

	rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
		Addr:     s.Cache.RedisAddr,
		Password: s.Cache.RedisPassword,
		DB:       s.Cache.RedisDB,
	})
	if err != nil {
		c.Logger.Warn("redis unavailable, using file cache", "error", err)
		return c.newRunner(false)
	}
	c.Logger.Info("using redis cache", "addr", s.Cache.RedisAddr)
	return pipeline.NewRunner(rc, cache.NewScopedKeyer(nil, s.Cache.RedisPrefix), c.Logger), nil
}
