package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/klabeseguimientos-netizen/intranet-sub005/config"
	"github.com/klabeseguimientos-netizen/intranet-sub005/internal/api/handler"
	"github.com/klabeseguimientos-netizen/intranet-sub005/internal/api/middleware"
	"github.com/klabeseguimientos-netizen/intranet-sub005/pkg/redis"
)

// Setup inicializa y devuelve el motor de rutas de Gin
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── Middleware global ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.RateLimit(rdb, 300, time.Minute))

	// ── Comprobación de salud ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.Identity())
	{
		// Módulo de notificaciones
		notificaciones := v1.Group("/notificaciones")
		{
			notificaciones.GET("", h.Notificacion.ListarActivas)
			notificaciones.GET("/programadas", h.Notificacion.ListarProgramadas)
			notificaciones.GET("/no-leidas", h.Notificacion.ContarNoLeidas)
			notificaciones.PUT("/:id/leer", h.Notificacion.MarcarLeida)
			notificaciones.PUT("/leer-todas", h.Notificacion.MarcarTodasLeidas)
			notificaciones.DELETE("/:id", h.Notificacion.Eliminar)
		}

		// Módulo de leads
		leads := v1.Group("/leads")
		{
			leads.POST("/:id/comentarios", h.Lead.RegistrarComentario)
			leads.GET("/:id/comentarios", h.Lead.ListarComentarios)
			leads.GET("/:id/historial-estados", h.Lead.HistorialEstados)
			leads.GET("/:id/historial-estados/export", h.Lead.ExportarHistorialEstados)
		}

		// Módulo de contratos
		contratos := v1.Group("/contratos")
		{
			contratos.POST("", h.Contrato.Crear)
			contratos.GET("/:id", h.Contrato.Ver)
			contratos.PUT("/:id/instalar", h.Contrato.Instalar)
			contratos.POST("/barrido", h.Contrato.Barrer)
		}
	}

	return r
}
