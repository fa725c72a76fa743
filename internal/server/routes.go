package server

import (
	"github.com/labstack/echo/v4"

	"example.com/nexus/backend/internal/handlers"
)

func registerRoutes(
	e *echo.Echo,
	authHandler *handlers.AuthHandler,
	metricsHandler *handlers.MetricsHandler,
	habitsHandler *handlers.HabitsHandler,
	insightsHandler *handlers.InsightsHandler,
	financeHandler *handlers.FinanceHandler,
	blueprintHandler *handlers.BlueprintHandler,
	journalHandler *handlers.JournalHandler,
	chatHandler *handlers.ChatHandler,
	authMiddleware echo.MiddlewareFunc,
	authRateLimiter echo.MiddlewareFunc,
	aiRateLimiter echo.MiddlewareFunc,
) {
	e.GET("/health", handlers.Health)

	api := e.Group("/api/v1")
	authGroup := api.Group("/auth", authRateLimiter)

	authGroup.POST("/signup", authHandler.Signup)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/logout", authHandler.Logout, authMiddleware)
	authGroup.GET("/me", authHandler.Me, authMiddleware)

	metrics := api.Group("/metrics", authMiddleware)
	metrics.GET("/health", metricsHandler.List)
	metrics.POST("/health", metricsHandler.Log)

	habits := api.Group("/habits", authMiddleware)
	habits.GET("", habitsHandler.List)
	habits.POST("", habitsHandler.Create)
	habits.PATCH("/:id/toggle", habitsHandler.Toggle)
	habits.POST("/suggestions", habitsHandler.Suggest, aiRateLimiter)
	habits.POST("/accept", habitsHandler.Accept)

	insights := api.Group("/insights", authMiddleware)
	insights.GET("", insightsHandler.List)
	insights.POST("/generate", insightsHandler.Generate, aiRateLimiter)
	insights.DELETE("/:id", insightsHandler.Dismiss)

	finance := api.Group("/finance", authMiddleware)
	finance.GET("/overview", financeHandler.Overview)
	finance.POST("/analyze", financeHandler.Analyze, aiRateLimiter)

	api.POST("/blueprint", blueprintHandler.Generate, authMiddleware, aiRateLimiter)

	journal := api.Group("/journal", authMiddleware)
	journal.GET("", journalHandler.List)
	journal.POST("/analyze", journalHandler.Analyze, aiRateLimiter)

	chat := api.Group("/chat", authMiddleware)
	chat.GET("", chatHandler.List)
	chat.POST("", chatHandler.Send, aiRateLimiter)
	chat.DELETE("", chatHandler.Clear)
}
