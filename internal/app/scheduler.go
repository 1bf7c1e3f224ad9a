package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Freeeeeet/booking_bot/internal/metrics"
	"github.com/Freeeeeet/booking_bot/internal/service"
)

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	bookingService *service.BookingService
	logger         *zap.Logger
	stopChan       chan struct{}
}

// NewScheduler создаёт новый планировщик
func NewScheduler(bookingService *service.BookingService, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		bookingService: bookingService,
		logger:         logger,
		stopChan:       make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler")

	go s.runGaugeRefreshTask(ctx)
}

// Stop останавливает фоновые задачи
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
}

// runGaugeRefreshTask периодически обновляет gauge-метрики по данным стора
func (s *Scheduler) runGaugeRefreshTask(ctx context.Context) {
	// Первый запуск сразу при старте
	s.refreshGauges(ctx)

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.refreshGauges(ctx)
		case <-s.stopChan:
			s.logger.Info("Gauge refresh task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Gauge refresh task cancelled")
			return
		}
	}
}

// refreshGauges пересчитывает количество доступных слотов и pending заявок
func (s *Scheduler) refreshGauges(ctx context.Context) {
	now := time.Now().UTC()

	availableSlots, err := s.bookingService.CountAvailableSlots(ctx, now)
	if err != nil {
		s.logger.Error("Failed to count available slots", zap.Error(err))
		return
	}

	pendingBookings, err := s.bookingService.CountPendingBookings(ctx)
	if err != nil {
		s.logger.Error("Failed to count pending bookings", zap.Error(err))
		return
	}

	metrics.AvailableSlots.Set(float64(availableSlots))
	metrics.PendingBookings.Set(float64(pendingBookings))

	s.logger.Debug("Gauges refreshed",
		zap.Int64("available_slots", availableSlots),
		zap.Int64("pending_bookings", pendingBookings),
	)
}
