package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"resume-screener/internal/intake"
	"resume-screener/internal/llm/openai"
	"resume-screener/internal/screening"
	"resume-screener/internal/shared/config"
	"resume-screener/internal/shared/server/middleware"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
	)
	r.SetHTMLTemplate(screening.Templates())

	client, err := openai.NewClient(cfg.OpenAIBaseURL, cfg.LLMModel, time.Duration(cfg.LLMTimeoutSeconds)*time.Second)
	if err != nil {
		return nil, err
	}

	in := intake.New(cfg.UploadDir, cfg.AllowedExtensions)
	svc := screening.NewService(client, screening.ModeFromString(cfg.Mode))
	handler := screening.NewHandler(in, svc, cfg.AllowedExtensions, cfg.MaxUploadBytes)
	handler.RegisterRoutes(r)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return r, nil
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
