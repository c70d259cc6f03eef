package main

import (
	"context"
	stderrors "errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"pharmarisk/internal/api"
	"pharmarisk/internal/container"
	"pharmarisk/ui"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := bootstrap(opts)
			if err != nil {
				return err
			}
			if port != "" {
				rt.Config.Server.Port = port
			}
			return runServe(cmd.Context(), rt)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "HTTP port (overrides PORT)")
	return cmd
}

func runServe(parent context.Context, rt *container.Container) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gin.SetMode(rt.Config.Server.GinMode)
	page, err := ui.NewServer(rt.Dashboard, ui.Assets, rt.Logger)
	if err != nil {
		return err
	}

	servers := []*http.Server{{
		Addr:              ":" + rt.Config.Server.Port,
		Handler:           page.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}}
	if rt.Config.Profiling.Enabled {
		servers = append(servers, &http.Server{
			Addr:              ":" + rt.Config.Profiling.Port,
			Handler:           api.NewOpsRouter(rt.Dashboard, true),
			ReadHeaderTimeout: 10 * time.Second,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		g.Go(func() error {
			rt.Logger.Info("listening on http://localhost%s", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		rt.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				rt.Logger.Warn("shutdown %s: %v", srv.Addr, err)
			}
		}
		return nil
	})
	return g.Wait()
}
