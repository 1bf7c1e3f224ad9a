package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Freeeeeet/booking_bot/internal/config"
	"github.com/Freeeeeet/booking_bot/internal/model"
	"github.com/Freeeeeet/booking_bot/internal/service"
)

// BookingService — операции, которые HTTP API делегирует сервисному слою
type BookingService interface {
	CreateBooking(ctx context.Context, req service.CreateBookingRequest) (*model.Booking, error)
	CreateSlot(ctx context.Context, datetimeUTC time.Time) (*model.Slot, error)
	ListAvailableSlots(ctx context.Context, now time.Time) ([]*model.Slot, error)
	ListBookings(ctx context.Context, now time.Time) ([]*model.Booking, error)
}

// Server — HTTP сервер публичного API и Telegram вебхука
type Server struct {
	httpServer     *http.Server
	engine         *gin.Engine
	cfg            *config.Config
	bookingService BookingService
	webhookHandler http.HandlerFunc
	logger         *zap.Logger
}

func New(
	cfg *config.Config,
	bookingService BookingService,
	webhookHandler http.HandlerFunc,
	logger *zap.Logger,
) *Server {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:            cfg,
		bookingService: bookingService,
		webhookHandler: webhookHandler,
		logger:         logger,
	}

	s.engine = s.setupRoutes()
	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      s.engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s
}

// setupRoutes настраивает маршруты и middleware
func (s *Server) setupRoutes() *gin.Engine {
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(RequestLogger(s.logger))
	engine.Use(PrometheusMiddleware())

	// Фронтенд живёт на другом домене
	engine.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type", "X-Telegram-ID"},
	}))

	engine.GET("/health", s.handleHealth)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api")
	{
		api.GET("/test", s.handleTest)
		api.POST("/whoami", s.handleWhoAmI)
		api.GET("/slots", s.handleListSlots)
		api.POST("/bookings", s.handleCreateBooking)

		// Вебхук Telegram; секретный токен проверяет сама библиотека бота
		if s.webhookHandler != nil {
			api.POST("/bot", gin.WrapF(s.webhookHandler))
		}

		admin := api.Group("", s.AdminRequired())
		{
			admin.POST("/slots", s.handleCreateSlot)
			admin.GET("/bookings", s.handleListBookings)
		}
	}

	return engine
}

// Engine возвращает gin engine (используется в тестах)
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run запускает HTTP сервер, блокируется до остановки
func (s *Server) Run() error {
	s.logger.Info("HTTP server listening", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown останавливает сервер, дожидаясь активных запросов
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
