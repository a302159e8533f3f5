package router

import (
	"strconv"
	"strings"
	"time"

	"github.com/fretehub/fretehub/internal/config"
	"github.com/fretehub/fretehub/internal/constants"
	"github.com/fretehub/fretehub/internal/http/response"
	"github.com/fretehub/fretehub/internal/provider"
	"github.com/fretehub/fretehub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDKey = "request_id"
const requestIDHeader = "X-Request-ID"

// CORSMiddleware handles cross-origin requests.
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	allowedMethods := cfg.AllowedMethods
	if len(allowedMethods) == 0 {
		allowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	allowedHeaders := cfg.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{
			"Content-Type",
			"Content-Length",
			"Accept-Encoding",
			"Authorization",
			"Cache-Control",
			"X-Requested-With",
		}
	}
	methodsHeader := strings.Join(allowedMethods, ", ")
	headersHeader := strings.Join(allowedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowedOrigin := resolveAllowedOrigin(origin, allowedOrigins, cfg.AllowCredentials)
		if allowedOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			if allowedOrigin != "*" {
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		if cfg.AllowCredentials {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", headersHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", methodsHeader)
		if cfg.MaxAge > 0 {
			c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func resolveAllowedOrigin(origin string, allowedOrigins []string, allowCredentials bool) string {
	if len(allowedOrigins) == 0 {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			if allowCredentials && origin != "" {
				return origin
			}
			return "*"
		}
	}
	if origin == "" {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

// RequestIDMiddleware tags every request with an ID.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware emits one structured log line per request.
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}
	sugar := logger.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log := sugar.With(
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if len(c.Errors) > 0 {
			log.Errorw("request", "errors", c.Errors.String())
			return
		}
		log.Infow("request")
	}
}

func getRequestID(c *gin.Context) string {
	value, ok := c.Get(requestIDKey)
	if !ok {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return requestID
	}
	return ""
}

// AuthMiddleware validates the bearer JWT and the server-side session behind
// it, then loads the account into the request context.
func AuthMiddleware(c *provider.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(ctx, "authorization header missing")
			ctx.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			response.Unauthorized(ctx, "authorization header invalid")
			ctx.Abort()
			return
		}

		claims, err := c.AuthService.ParseJWT(parts[1])
		if err != nil || claims.UsuarioID == 0 || claims.Sessao == "" {
			response.Unauthorized(ctx, "token invalid")
			ctx.Abort()
			return
		}

		sessao, err := c.UsuarioService.ValidateSession(claims.Sessao)
		if err != nil || sessao.UsuarioID != claims.UsuarioID {
			response.Unauthorized(ctx, "session expired")
			ctx.Abort()
			return
		}

		usuario, err := c.UsuarioService.GetByID(claims.UsuarioID)
		if err != nil {
			response.Unauthorized(ctx, "token invalid")
			ctx.Abort()
			return
		}
		if !usuario.Ativo {
			response.Unauthorized(ctx, "account disabled")
			ctx.Abort()
			return
		}

		ctx.Set("usuario_id", usuario.ID)
		ctx.Set("tipo_usuario", usuario.TipoUsuario)
		ctx.Set("session_token", claims.Sessao)
		ctx.Next()
	}
}

// RequireEmbarcador resolves the shipper profile and puts its ID in context.
func RequireEmbarcador(c *provider.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if tipo := ctx.GetString("tipo_usuario"); tipo != constants.TipoUsuarioEmbarcador {
			response.Forbidden(ctx, "shipper profile required")
			ctx.Abort()
			return
		}
		usuarioID := ctx.GetUint("usuario_id")
		embarcador, err := c.PerfilService.GetEmbarcadorByUsuario(usuarioID)
		if err != nil {
			if err == service.ErrNotFound {
				response.Forbidden(ctx, "shipper profile required")
			} else {
				response.Error(ctx, response.CodeInternal, "internal error")
			}
			ctx.Abort()
			return
		}
		ctx.Set("embarcador_id", embarcador.ID)
		ctx.Next()
	}
}

// RequireTransportador resolves the carrier profile and puts its ID in context.
func RequireTransportador(c *provider.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if tipo := ctx.GetString("tipo_usuario"); tipo != constants.TipoUsuarioTransportador {
			response.Forbidden(ctx, "carrier profile required")
			ctx.Abort()
			return
		}
		usuarioID := ctx.GetUint("usuario_id")
		transportador, err := c.PerfilService.GetTransportadorByUsuario(usuarioID)
		if err != nil {
			if err == service.ErrNotFound {
				response.Forbidden(ctx, "carrier profile required")
			} else {
				response.Error(ctx, response.CodeInternal, "internal error")
			}
			ctx.Abort()
			return
		}
		ctx.Set("transportador_id", transportador.ID)
		ctx.Next()
	}
}
