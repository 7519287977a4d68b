package fx

import (
	"context"
	"time"

	"Finora/config"
	"Finora/internal/logger"
	"Finora/internal/middleware"
	"Finora/internal/routes"

	"github.com/gin-gonic/gin"

	"go.uber.org/fx"
)

// ServerModule fornece a configuração do servidor HTTP
var ServerModule = fx.Module("server",
	fx.Provide(
		newRouter,
	),
	fx.Invoke(
		setupRoutes,
	),
)

func newRouter() *gin.Engine {
	return gin.Default()
}

func setupRoutes(
	lc fx.Lifecycle,
	cfg *config.Config,
	router *gin.Engine,
	handler *routes.Handler,
	jwtSvc *middleware.JwtService,
) {
	router.Use(middleware.CORSMiddleware(cfg.App.FrontendOrigin))

	publicLimiter := middleware.NewRateLimiter(cfg.RateLimit.PublicPerMinute, time.Minute)
	userLimiter := middleware.NewRateLimiter(cfg.RateLimit.UserPerMinute, time.Minute)

	public := router.Group("/api")
	public.Use(middleware.RateLimit(publicLimiter, middleware.ByClientIP))
	{
		public.POST("/auth/login", handler.Authenticate)
		public.POST("/auth/register", handler.Registration)
		public.POST("/auth/google", handler.GoogleAuth)
	}

	private := router.Group("/api")
	private.Use(middleware.AuthMiddleware(jwtSvc))
	private.Use(middleware.RateLimit(userLimiter, middleware.ByUserID))
	{
		users := private.Group("/users")
		{
			users.GET("/me", handler.GetMe)
			users.PATCH("/me", handler.UpdateUserName)
			users.PATCH("/me/phone", handler.UpdateUserPhone)
			users.PATCH("/me/password", handler.UpdateUserPassword)
			users.DELETE("/me", handler.DeleteUser)
		}

		transactions := private.Group("/transactions")
		{
			transactions.POST("", handler.CreateTransaction)
			transactions.POST("/parse-voice", handler.ParseVoiceTransaction)
			transactions.GET("", handler.GetTransactions)
			transactions.GET("/:id", handler.GetTransaction)
			transactions.PATCH("/:id", handler.UpdateTransaction)
			transactions.DELETE("/:id", handler.DeleteTransaction)
		}

		reports := private.Group("/reports")
		{
			reports.GET("", handler.GetReportHistory)
			reports.GET("/settings", handler.GetReportSetting)
			reports.PATCH("/settings", handler.UpdateReportSetting)
			reports.GET("/generate", handler.GenerateReport)
			reports.POST("/test-email", handler.SendTestEmail)
			reports.POST("/test-whatsapp", handler.SendTestWhatsApp)
			reports.POST("/trigger", handler.TriggerReportJob)
		}
	}

	serverAddr := ":" + cfg.Server.Port
	logger.Info().
		Str("address", serverAddr).
		Str("environment", cfg.App.Environment).
		Msg("Servidor iniciando")

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := router.Run(serverAddr); err != nil {
					logger.Fatal().Err(err).Msg("Falha ao iniciar servidor")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("Servidor parando...")
			return nil
		},
	})
}
