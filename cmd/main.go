package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mechgenz/mechgenz-backend/internal/app"
	"github.com/mechgenz/mechgenz-backend/internal/observability"
	"github.com/mechgenz/mechgenz-backend/internal/platform/envutil"
)

func main() {
	application, err := app.New()
	if err != nil {
		fmt.Printf("Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	shutdownOTel := observability.InitOTel(context.Background(), application.Log, observability.OtelConfig{
		ServiceName: "mechgenz-backend",
		Environment: envutil.String("DEPLOY_ENV", "development"),
		Version:     envutil.String("SERVICE_VERSION", ""),
	})
	if shutdownOTel != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownOTel(ctx)
		}()
	}

	addr := ":" + application.Cfg.Port
	application.Log.Info("Server listening", "addr", addr)
	if err := application.Run(addr); err != nil {
		application.Log.Error("Server exited", "error", err)
		os.Exit(1)
	}
}
