package router

import (
	"fmt"
	"strings"

	"github.com/fretehub/fretehub/internal/cache"
	"github.com/fretehub/fretehub/internal/config"
	"github.com/fretehub/fretehub/internal/constants"
	publichandlers "github.com/fretehub/fretehub/internal/http/handlers/public"
	"github.com/fretehub/fretehub/internal/logger"
	"github.com/fretehub/fretehub/internal/models"
	"github.com/fretehub/fretehub/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter wires middlewares and all API routes.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "too many login attempts",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		public := apiV1.Group("/public")
		{
			public.GET("/captcha/config", publicHandler.CaptchaConfig)
			public.GET("/captcha/image", publicHandler.GenerateCaptcha)
		}

		auth := apiV1.Group("/auth")
		{
			auth.POST("/register/embarcador", publicHandler.RegisterEmbarcador)
			auth.POST("/register/transportador", publicHandler.RegisterTransportador)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.Login)
			auth.GET("/verify-email", publicHandler.VerifyEmail)
			auth.POST("/forgot-password", publicHandler.ForgotPassword)
			auth.POST("/reset-password", publicHandler.ResetPassword)
		}

		user := apiV1.Group("")
		user.Use(AuthMiddleware(c))
		{
			user.POST("/auth/logout", publicHandler.Logout)
			user.GET("/me", publicHandler.Me)
			user.PUT("/me/profile", publicHandler.UpdateMe)
			user.PUT("/me/password", publicHandler.ChangePassword)

			user.POST("/me/enderecos", publicHandler.CreateEndereco)
			user.GET("/me/enderecos", publicHandler.ListEnderecos)
			user.GET("/me/enderecos/:id", publicHandler.GetEndereco)
			user.PUT("/me/enderecos/:id", publicHandler.UpdateEndereco)
			user.DELETE("/me/enderecos/:id", publicHandler.DeleteEndereco)
			user.POST("/me/enderecos/:id/principal", publicHandler.SetEnderecoPrincipal)

			user.GET("/cargas/:id", publicHandler.GetCarga)
			user.GET("/ofertas/:id", publicHandler.GetOferta)
		}

		embarcador := apiV1.Group("")
		embarcador.Use(AuthMiddleware(c), RequireEmbarcador(c))
		{
			embarcador.PUT("/me/embarcador", publicHandler.UpdateEmbarcadorPerfil)
			embarcador.POST("/cargas", publicHandler.CreateCarga)
			embarcador.GET("/cargas", publicHandler.ListMinhasCargas)
			embarcador.PUT("/cargas/:id", publicHandler.UpdateCarga)
			embarcador.POST("/cargas/:id/cancel", publicHandler.CancelCarga)
			embarcador.GET("/cargas/:id/ofertas", publicHandler.ListOfertasByCarga)
			embarcador.GET("/ofertas", publicHandler.ListOfertasRecebidas)
			embarcador.POST("/ofertas/:id/accept", publicHandler.AcceptOferta)
			embarcador.POST("/ofertas/:id/reject", publicHandler.RejectOferta)
		}

		transportador := apiV1.Group("")
		transportador.Use(AuthMiddleware(c), RequireTransportador(c))
		{
			transportador.PUT("/me/transportador", publicHandler.UpdateTransportadorPerfil)
			transportador.POST("/me/veiculos", publicHandler.CreateVeiculo)
			transportador.GET("/me/veiculos", publicHandler.ListVeiculos)
			transportador.GET("/me/veiculos/:id", publicHandler.GetVeiculo)
			transportador.PUT("/me/veiculos/:id", publicHandler.UpdateVeiculo)
			transportador.DELETE("/me/veiculos/:id", publicHandler.DeleteVeiculo)

			transportador.GET("/cargas/disponiveis", publicHandler.ListCargasDisponiveis)
			transportador.GET("/me/cargas", publicHandler.ListCargasAtribuidas)
			transportador.PATCH("/cargas/:id/status", publicHandler.SetCargaStatus)

			transportador.POST("/ofertas", publicHandler.CreateOferta)
			transportador.GET("/me/ofertas", publicHandler.ListMinhasOfertas)
			transportador.POST("/ofertas/:id/cancel", publicHandler.CancelOferta)
		}
	}

	r.GET("/health", func(c *gin.Context) {
		db := "ok"
		if sqlDB, err := models.DB.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			db = "down"
		}
		status := 200
		if db != "ok" {
			status = 503
		}
		c.JSON(status, gin.H{"status": "ok", "db": db})
	})

	return r
}
