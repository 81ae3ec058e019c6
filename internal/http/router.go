package http

import (
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/gin-gonic/gin"

	httpH "github.com/mechgenz/mechgenz-backend/internal/http/handlers"
	httpMW "github.com/mechgenz/mechgenz-backend/internal/http/middleware"
	"github.com/mechgenz/mechgenz-backend/internal/platform/envutil"
	"github.com/mechgenz/mechgenz-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	AllowedOrigins []string
	UploadsDir     string

	HealthHandler  *httpH.HealthHandler
	ContactHandler *httpH.ContactHandler
	MailHandler    *httpH.MailHandler
	ImagesHandler  *httpH.ImagesHandler
	AdminHandler   *httpH.AdminHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if envutil.Bool("OTEL_ENABLED", false) {
		r.Use(otelgin.Middleware("mechgenz-backend"))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	if cfg.UploadsDir != "" {
		r.Static("/uploads", cfg.UploadsDir)
	}

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/", cfg.HealthHandler.HealthCheck)
		r.GET("/health", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Contact form + submissions
		if cfg.ContactHandler != nil {
			api.POST("/contact", cfg.ContactHandler.Submit)
			api.GET("/submissions", cfg.ContactHandler.List)
			api.GET("/submissions/:id", cfg.ContactHandler.Get)
			api.PUT("/submissions/:id/status", cfg.ContactHandler.UpdateStatus)
			api.PATCH("/submissions/:id/status", cfg.ContactHandler.UpdateStatus)
			api.DELETE("/submissions/:id", cfg.ContactHandler.Delete)
			api.GET("/submissions/:id/file/:filename", cfg.ContactHandler.DownloadFile)
			api.GET("/stats", cfg.ContactHandler.Stats)
		}

		// Reply email
		if cfg.MailHandler != nil {
			api.POST("/send-reply", cfg.MailHandler.SendReply)
		}

		// Website image catalog
		if cfg.ImagesHandler != nil {
			api.GET("/website-images", cfg.ImagesHandler.List)
			api.GET("/website-images/categories", cfg.ImagesHandler.Categories)
			api.POST("/website-images/:id/upload", cfg.ImagesHandler.Upload)
			api.PUT("/website-images/:id", cfg.ImagesHandler.UpdateMetadata)
			api.DELETE("/website-images/:id/reset", cfg.ImagesHandler.Reset)
			api.DELETE("/website-images/:id", cfg.ImagesHandler.Delete)
		}

		// Admin account
		if cfg.AdminHandler != nil {
			api.POST("/admin/login", cfg.AdminHandler.Login)
			api.GET("/admin/profile", cfg.AdminHandler.GetProfile)
			api.PUT("/admin/profile", cfg.AdminHandler.UpdateProfile)
		}
	}

	return r
}
