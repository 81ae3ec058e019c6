package app

import (
	"strings"

	"github.com/mechgenz/mechgenz-backend/internal/platform/envutil"
	"github.com/mechgenz/mechgenz-backend/internal/platform/logger"
)

type Config struct {
	Port           string
	AllowedOrigins []string
	CompanyEmail   string
	FromEmail      string
	FromName       string
	AdminPanelURL  string
}

func LoadConfig(log *logger.Logger) Config {
	origins := []string{}
	for _, o := range strings.Split(envutil.String("ALLOWED_ORIGINS", ""), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			origins = append(origins, o)
		}
	}

	cfg := Config{
		Port:           envutil.String("PORT", "8000"),
		AllowedOrigins: origins,
		CompanyEmail:   envutil.String("COMPANY_EMAIL", "mechgenz4@gmail.com"),
		FromEmail:      envutil.String("REPLY_FROM_EMAIL", "info@mechgenz.com"),
		FromName:       envutil.String("REPLY_FROM_NAME", "MECHGENZ Trading Contracting and Services"),
		AdminPanelURL:  envutil.String("ADMIN_PANEL_URL", ""),
	}
	log.Info("Configuration loaded", "port", cfg.Port, "allowed_origins", len(cfg.AllowedOrigins))
	return cfg
}
