package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/auth"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/middleware"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/remote/fake"
)

func init() {
	var seed []string
	devCmd := &cobra.Command{
		Use:   "devserver",
		Short: "Serve an in-memory inventory endpoint for local development",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Config.DevServer
			logger := app.Logger

			backend := fake.New()
			for _, name := range seed {
				h := backend.SeedHousehold(name, name+" Kitchen")
				logger.Info("Seeded household", "name", h.Name, "household_id", h.ID)
			}

			jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
			token, err := jwtManager.Generate("dev-user", "dev@localhost")
			if err != nil {
				return err
			}

			mux := http.NewServeMux()
			mux.Handle("/graphql", middleware.RequireAuth(jwtManager)(backend.Handler(logger)))
			mux.Handle("/metrics", promhttp.Handler())
			mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			handler := middleware.Logging(logger)(middleware.CORS(mux))

			// h2c lets HTTP/2 clients connect without TLS.
			srv := &http.Server{
				Addr:              cfg.Addr,
				Handler:           h2c.NewHandler(handler, &http2.Server{}),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logger.Info("Dev server starting", "address", cfg.Addr, "url", fmt.Sprintf("http://localhost%s/graphql", cfg.Addr))
				errCh <- srv.ListenAndServe()
			}()
			_, _ = fmt.Fprintf(os.Stdout, "dev token (valid %s):\n%s\n", cfg.TokenTTL, token)

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			logger.Info("Dev server shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	devCmd.Flags().StringSliceVar(&seed, "seed-household", nil, "Household to create at startup, repeatable")
	rootCmd.AddCommand(devCmd)
}
