package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/klabeseguimientos-netizen/intranet-sub005/config"
	"github.com/klabeseguimientos-netizen/intranet-sub005/internal/api/handler"
	"github.com/klabeseguimientos-netizen/intranet-sub005/internal/api/router"
	"github.com/klabeseguimientos-netizen/intranet-sub005/internal/repository"
	"github.com/klabeseguimientos-netizen/intranet-sub005/internal/scheduler"
	"github.com/klabeseguimientos-netizen/intranet-sub005/internal/service"
	"github.com/klabeseguimientos-netizen/intranet-sub005/pkg/database"
	applogger "github.com/klabeseguimientos-netizen/intranet-sub005/pkg/logger"
	"github.com/klabeseguimientos-netizen/intranet-sub005/pkg/redis"
)

func main() {
	// 1. Cargar configuración
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error al cargar la configuración: %v\n", err)
		os.Exit(1)
	}

	// 2. Inicializar el log
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error al inicializar el log: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("arrancando la aplicación...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. Conectar a la base de datos
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("error de conexión a la base de datos", zap.Error(err))
	}
	logger.Info("conexión a la base de datos establecida")

	// 3.1 Ejecutar las migraciones
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("error al obtener el sql.DB subyacente", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("error en las migraciones", zap.Error(err))
	}

	// 4. Conectar a Redis (opcional: si falla se degrada sin limitación de tasa)
	var rdb *redis.Client
	rdb, err = redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("conexión a Redis fallida, la limitación de tasa queda desactivada", zap.Error(err))
		rdb = nil
	}

	// 5. Inyección de dependencias: Repository → Service → Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(repo, logger)
	h := handler.NewHandler(svc)

	// 6. Inicializar las rutas
	engine := router.Setup(cfg, h, rdb, logger)

	// 7. Planificador del barrido diario de contratos estancados
	var sched *scheduler.Scheduler
	if cfg.Barrido.Enabled {
		sched, err = scheduler.New(svc.Contrato, cfg.Barrido.Cron, logger)
		if err != nil {
			logger.Fatal("expresión cron del barrido no válida", zap.Error(err))
		}
		sched.Start()
	}

	// 8. Arrancar el servidor HTTP (con cierre ordenado)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("servidor HTTP arrancado", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("fallo del servidor HTTP", zap.Error(err))
		}
	}()

	// 9. Escuchar señales del sistema y cerrar de forma ordenada
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("señal de cierre recibida, iniciando cierre ordenado...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("error durante el cierre del servidor", zap.Error(err))
	}

	// Detener el planificador
	if sched != nil {
		sched.Stop()
	}

	// Cerrar la conexión a la base de datos
	closeDB, _ := db.DB()
	if closeDB != nil {
		closeDB.Close()
	}

	// Cerrar la conexión a Redis
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("aplicación detenida")
}
