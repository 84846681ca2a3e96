package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	httpMiddleware "github.com/johnquangdev/video-summarizer/internal/infrastructure/http/middleware"
	sessionUsecase "github.com/johnquangdev/video-summarizer/internal/usecase/session"
	"github.com/johnquangdev/video-summarizer/pkg/config"
	pkgMiddleware "github.com/johnquangdev/video-summarizer/pkg/middleware"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	sessions       sessionUsecase.Service
	summaryHandler *Summary
	sessionHandler *Session
	historyHandler *History
	exportHandler  *Export
}

// NewRouter creates a new router with all handlers
func NewRouter(
	cfg *config.Config,
	sessions sessionUsecase.Service,
	summaryHandler *Summary,
	sessionHandler *Session,
	historyHandler *History,
	exportHandler *Export,
) *Router {
	return &Router{
		cfg:            cfg,
		sessions:       sessions,
		summaryHandler: summaryHandler,
		sessionHandler: sessionHandler,
		historyHandler: historyHandler,
		exportHandler:  exportHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group; every request is bound to a session
	v1 := e.Group("/v1",
		httpMiddleware.EchoSession(httpMiddleware.SessionConfig{
			CookieName: rt.cfg.Session.CookieName,
			TTL:        rt.cfg.Session.TTL,
			Secure:     rt.cfg.IsProduction(),
		}),
		pkgMiddleware.LoadSession(rt.sessions),
	)

	// Setup route groups
	rt.setupSummaryRoutes(v1)
	rt.setupSessionRoutes(v1)
	rt.setupHistoryRoutes(v1)
}

// setupSummaryRoutes configures summary generation routes
func (rt *Router) setupSummaryRoutes(g *echo.Group) {
	g.POST("/summaries", rt.summaryHandler.Create)
}

// setupSessionRoutes configures routes against the active video
func (rt *Router) setupSessionRoutes(g *echo.Group) {
	sessionGroup := g.Group("/session")
	sessionGroup.GET("", rt.sessionHandler.Get)
	sessionGroup.DELETE("", rt.sessionHandler.Reset)
	sessionGroup.GET("/exports", rt.exportHandler.ListPublished)

	requireActive := pkgMiddleware.RequireActiveTranscript()
	sessionGroup.POST("/mindmap", rt.sessionHandler.MindMap, requireActive)
	sessionGroup.POST("/chat", rt.sessionHandler.Ask, requireActive)
	sessionGroup.DELETE("/chat", rt.sessionHandler.ClearChat, requireActive)
	sessionGroup.POST("/save", rt.sessionHandler.Save, requireActive)
	sessionGroup.GET("/export", rt.exportHandler.Download, requireActive)
	sessionGroup.POST("/export/publish", rt.exportHandler.Publish, requireActive)
}

// setupHistoryRoutes configures saved summary routes
func (rt *Router) setupHistoryRoutes(g *echo.Group) {
	historyGroup := g.Group("/history")
	historyGroup.GET("", rt.historyHandler.List)
	historyGroup.GET("/:id", rt.historyHandler.Get)
	historyGroup.PATCH("/:id/favorite", rt.historyHandler.ToggleFavorite)
	historyGroup.DELETE("/:id", rt.historyHandler.Delete)
	historyGroup.POST("/:id/load", rt.historyHandler.Load)
	historyGroup.GET("/:id/export", rt.exportHandler.DownloadRecord)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"time":        time.Now().Format(time.RFC3339),
		"environment": rt.cfg.Server.Environment,
	})
}
