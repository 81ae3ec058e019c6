package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/mechgenz/mechgenz-backend/internal/platform/logger"
	"github.com/mechgenz/mechgenz-backend/internal/platform/resend"
)

type Clients struct {
	Mail resend.Client
}

func wireClients(log *logger.Logger) (Clients, error) {
	log.Info("Wiring clients...")

	// Mail is optional: without an API key the notifier runs disabled.
	var mail resend.Client
	if strings.TrimSpace(os.Getenv("RESEND_API_KEY")) != "" {
		m, err := resend.NewFromEnv(log)
		if err != nil {
			return Clients{}, fmt.Errorf("init resend client: %w", err)
		}
		mail = m
	}

	return Clients{Mail: mail}, nil
}
