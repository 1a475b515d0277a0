package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"finitefield.org/hanko-seo/internal/config"
	"finitefield.org/hanko-seo/internal/content"
	"finitefield.org/hanko-seo/internal/httpserver"
	"finitefield.org/hanko-seo/internal/observability"
	"finitefield.org/hanko-seo/internal/seo"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	var (
		envFile string
		baseURL string
		console bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the page preview server",
		Long: `Serve renders markdown pages from the content directory with resolved head
tags and exposes the resolver over JSON.

Configuration is read from SEOHEAD_* environment variables and, optionally,
a .env file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var loadOpts []config.Option
			if envFile != "" {
				loadOpts = append(loadOpts, config.WithEnvFile(envFile))
			}
			cfg, err := config.Load(loadOpts...)
			if err != nil {
				return err
			}

			var logOpts []observability.LoggerOption
			if console {
				logOpts = append(logOpts, observability.WithConsoleEncoding())
			}
			logger, err := observability.NewLogger(cfg.Log.Level, logOpts...)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			defaults, err := config.LoadDefaults(cfg.SEO.DefaultsFile)
			if err != nil {
				return err
			}
			resolver := seo.New(defaults, seo.WithWarner(observability.Warner(logger)))
			store := content.NewStore(cfg.Content.Dir,
				content.WithDefaultLang(cfg.Content.DefaultLang),
				content.WithCacheTTL(cfg.Content.CacheTTL),
			)

			serverOpts := []httpserver.Option{
				httpserver.WithLogger(logger),
				httpserver.WithBaseURL(baseURL),
			}
			if langs, err := store.Languages(); err != nil {
				logger.Warn("language negotiation disabled", zap.Error(err))
			} else {
				serverOpts = append(serverOpts, httpserver.WithLanguages(langs...))
			}
			server := httpserver.New(resolver, store, serverOpts...)
			srv := server.HTTPServer(cfg.Server)

			color.New(color.FgCyan, color.Bold).Fprintf(cmd.ErrOrStderr(), "Serving %s on %s\n", cfg.Content.Dir, srv.Addr)
			logger.Info("starting", zap.String("content_dir", cfg.Content.Dir), zap.String("defaults", cfg.SEO.DefaultsFile))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return httpserver.Run(ctx, srv, logger)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "optional .env file with SEOHEAD_* settings")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "public origin used for derived canonical URLs")
	cmd.Flags().BoolVar(&console, "console", false, "human-readable log output")

	return cmd
}
