package cmd

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/debnit/MsmeBazaar-sub001/internal/logger"
	"github.com/debnit/MsmeBazaar-sub001/internal/remote"
	"github.com/debnit/MsmeBazaar-sub001/internal/web"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the observability endpoints and poll the remote scorer's health",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	if config == nil {
		zlog.Fatal("config is required")
	}

	rt, err := buildRuntime(config, zlog)
	if err != nil {
		zlog.Fatal("building matching engine", zap.Error(err))
	}

	serverCfg := web.Config{Host: "localhost", Port: "9090"}
	if config.Server != nil {
		serverCfg = *config.Server
	}

	var remoteStatus web.RemoteStatus
	if rt.remote != nil {
		remoteStatus = rt.remote

		interval := time.Duration(0)
		if config.Remote != nil {
			interval = time.Duration(config.Remote.PollIntervalSeconds) * time.Second
		}

		poller := remote.NewPoller(rt.remote, zlog, interval)
		go func() {
			if err := poller.Run(ctx); err != nil && ctx.Err() == nil {
				zlog.Warn("health poller stopped", zap.Error(err))
			}
		}()
	}

	server := web.NewServer(zlog, serverCfg, remoteStatus, rt.registry)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zlog.Warn("server shutdown", zap.Error(err))
		}
	}()

	if err := server.Start(); err != nil && ctx.Err() == nil {
		zlog.Fatal("server failed", zap.Error(err))
	}

	zlog.Info("exiting", zap.String("reason", "shutdown signal received"))
}
