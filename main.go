package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Dipto9999/portfolio/internal/assets"
	"github.com/Dipto9999/portfolio/internal/config"
	"github.com/Dipto9999/portfolio/internal/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "portfolio",
		Short:        "Serve the portfolio site",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), configPath)
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "portfolio.toml", "config file (skipped if missing)")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), configPath)
		},
	})
	root.AddCommand(newManifestCmd())
	return root
}

func serve(ctx context.Context, configPath string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	defer logger.Sync()
	gin.SetMode(cfg.Server.Mode)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	handler, err := app.routes()
	if err != nil {
		return fmt.Errorf("build routes: %w", err)
	}
	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server starting", zap.String("addr", srv.Addr), zap.String("mode", cfg.Server.Mode))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		app.sessions.Run(ctx, cfg.Session.GetSweepInterval())
		return nil
	})
	g.Go(func() error {
		app.cleanupVisitors(ctx)
		return nil
	})
	if cfg.Charts.Dir != "" && cfg.Charts.Watch {
		g.Go(func() error {
			return app.charts.Watch(ctx, cfg.Charts.Dir)
		})
	}
	return g.Wait()
}

func newManifestCmd() *cobra.Command {
	var (
		dir      string
		prefix   string
		ext      string
		label    string
		out      string
		count    int
		captions bool
	)

	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Write an asset manifest listing the images that resolve",
		Long: `Probes prefix_1.ext through prefix_count.ext under --dir and writes a YAML
manifest of the ones that exist and sniff as images. Serving from a manifest
avoids probing missing indices at startup.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New("warn", "console")
			if err != nil {
				return err
			}
			defer logger.Sync()

			loader := &assets.Loader{
				FS:     os.DirFS(dir),
				Label:  label,
				Logger: logger,
			}
			m, err := loader.Resolved(cmd.Context(), assets.Enumerate(prefix, ext, count, captions))
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("create manifest: %w", err)
				}
				defer f.Close()
				w = f
			}
			if err := m.Write(w); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d images resolved\n", len(m.Items), count)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "directory holding the images")
	cmd.Flags().StringVar(&prefix, "prefix", "Games", "image file name prefix")
	cmd.Flags().StringVar(&ext, "ext", "jpeg", "image file extension")
	cmd.Flags().StringVar(&label, "label", "Game", "default caption label")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().IntVar(&count, "count", 36, "highest index to probe")
	cmd.Flags().BoolVar(&captions, "captions", false, "require a prefix_N.txt caption per image")
	return cmd
}
