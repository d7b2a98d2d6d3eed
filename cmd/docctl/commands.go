package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Lllllllleong/linkedlens/internal/api"
	"github.com/Lllllllleong/linkedlens/internal/config"
	"github.com/Lllllllleong/linkedlens/internal/metrics"
	"github.com/Lllllllleong/linkedlens/internal/models"
	"github.com/Lllllllleong/linkedlens/internal/services"
	"github.com/Lllllllleong/linkedlens/internal/store"
)

const shutdownTimeout = 10 * time.Second

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "docctl",
		Short:         "Serve and inspect posts, jobs and users from the document store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCommand(), newGetCommand())
	return root
}

// newServeCommand runs the HTTP API as a standalone server.
func newServeCommand() *cobra.Command {
	var port, fixtures string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the document API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(withFixtures(fixtures), func(c *config.Config) {
				if port != "" {
					c.Port = port
				}
			})
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			cfg.SetupLogging(os.Stdout)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides PORT)")
	cmd.Flags().StringVar(&fixtures, "fixtures", "", "serve documents from a JSON fixtures file instead of DOCUMENT_BACKEND")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	s, err := store.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	gin.SetMode(gin.ReleaseMode)
	reg := prometheus.NewRegistry()
	metrics.RegisterCollectors(reg)
	svc := services.NewDocumentService(metrics.InstrumentStore(s, cfg.Backend))

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           api.NewRouter(svc, cfg.Backend, reg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg, gctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		slog.Info("Document API listening.", "addr", srv.Addr, "backend", cfg.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		slog.Info("Shutting down document API.")
		return srv.Shutdown(shutdownCtx)
	})
	return eg.Wait()
}

// newGetCommand fetches one document and prints it as JSON.
func newGetCommand() *cobra.Command {
	var (
		raw      bool
		fixtures string
	)

	cmd := &cobra.Command{
		Use:   "get <collection> <id>",
		Short: "Fetch a single document",
		Long:  "Fetch a single document. Posts are returned with their author resolved unless --raw is set.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(withFixtures(fixtures))
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			// stdout carries the document only.
			cfg.SetupLogging(cmd.ErrOrStderr())

			s, err := store.Open(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			doc, err := getDocument(cmd.Context(), services.NewDocumentService(s), args[0], args[1], raw)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "skip author resolution for posts")
	cmd.Flags().StringVar(&fixtures, "fixtures", "", "read documents from a JSON fixtures file instead of DOCUMENT_BACKEND")
	return cmd
}

// withFixtures switches to the memory backend loaded from path when path is set.
func withFixtures(path string) func(*config.Config) {
	return func(c *config.Config) {
		if path == "" {
			return
		}
		c.Backend = config.BackendMemory
		c.Memory.FixturesFile = path
	}
}

func getDocument(ctx context.Context, svc *services.DocumentService, collection, id string, raw bool) (models.Document, error) {
	if collection == models.PostsCollection && !raw {
		return svc.GetEnrichedPost(ctx, id)
	}
	return svc.Fetch(ctx, collection, id)
}
