package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Freeeeeet/booking_bot/internal/metrics"
	"github.com/Freeeeeet/booking_bot/internal/model"
)

// BookingService управляет жизненным циклом заявок и связанных слотов
type BookingService struct {
	userStore    UserStore
	slotStore    SlotStore
	bookingStore BookingStore
	notifier     Notifier
	logger       *zap.Logger
}

func NewBookingService(
	userStore UserStore,
	slotStore SlotStore,
	bookingStore BookingStore,
	notifier Notifier,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		userStore:    userStore,
		slotStore:    slotStore,
		bookingStore: bookingStore,
		notifier:     notifier,
		logger:       logger,
	}
}

// CreateBookingRequest — данные заявки из публичного API
type CreateBookingRequest struct {
	TelegramID int64
	Name       string
	Email      string
	Phone      string
	Motive     string
	SlotID     int64
}

// CreateBooking создаёт заявку на слот: находит или создаёт пользователя,
// резервирует слот и записывает pending заявку. Администратору уходит
// уведомление с кнопками решения.
func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*model.Booking, error) {
	if req.SlotID == 0 {
		return nil, fmt.Errorf("slotId is required: %w", model.ErrValidation)
	}
	if req.TelegramID == 0 {
		return nil, fmt.Errorf("telegramId is required: %w", model.ErrValidation)
	}

	slot, err := s.slotStore.GetByID(ctx, req.SlotID)
	if err != nil {
		return nil, fmt.Errorf("get slot: %w", err)
	}
	if slot == nil {
		return nil, fmt.Errorf("slot %d: %w", req.SlotID, model.ErrNotFound)
	}

	user := &model.User{
		TelegramID: req.TelegramID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Motive:     req.Motive,
	}
	if err := s.userStore.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}

	// Сначала резервируем слот: условный UPDATE гарантирует, что из двух
	// одновременных заявок пройдёт ровно одна
	if err := s.slotStore.Reserve(ctx, req.SlotID); err != nil {
		return nil, fmt.Errorf("reserve slot: %w", err)
	}

	booking := &model.Booking{
		UserID: user.ID,
		SlotID: slot.ID,
		Motive: req.Motive,
		Status: model.BookingStatusPending,
	}

	if err := s.bookingStore.Create(ctx, booking); err != nil {
		// Компенсация: заявка не записалась — возвращаем слот в доступные
		if releaseErr := s.slotStore.Release(ctx, req.SlotID); releaseErr != nil {
			s.logger.Error("Failed to release slot after booking create failure",
				zap.Int64("slot_id", req.SlotID),
				zap.Error(releaseErr))
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	slot.Available = false
	booking.User = user
	booking.Slot = slot

	metrics.BookingsCreated.Inc()

	s.logger.Info("Booking created",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("user_id", user.ID),
		zap.Int64("slot_id", slot.ID),
		zap.Time("slot_time", slot.DatetimeUTC),
	)

	// Уведомление администратора не участвует в "транзакции":
	// при сбое отправки заявка остаётся pending
	if err := s.notifier.NotifyAdminNewBooking(ctx, booking); err != nil {
		s.logger.Error("Failed to notify admin about new booking",
			zap.Int64("booking_id", booking.ID),
			zap.Error(err))
	}

	return booking, nil
}

// CreateSlot создаёт новый доступный слот
func (s *BookingService) CreateSlot(ctx context.Context, datetimeUTC time.Time) (*model.Slot, error) {
	if datetimeUTC.IsZero() {
		return nil, fmt.Errorf("datetimeUtc is required: %w", model.ErrValidation)
	}

	slot := &model.Slot{
		DatetimeUTC: datetimeUTC.UTC(),
		Available:   true,
	}

	if err := s.slotStore.Create(ctx, slot); err != nil {
		return nil, fmt.Errorf("create slot: %w", err)
	}

	metrics.SlotsCreated.Inc()

	s.logger.Info("Slot created",
		zap.Int64("slot_id", slot.ID),
		zap.Time("slot_time", slot.DatetimeUTC),
	)

	return slot, nil
}

// ListAvailableSlots возвращает доступные слоты в будущем
func (s *BookingService) ListAvailableSlots(ctx context.Context, now time.Time) ([]*model.Slot, error) {
	return s.slotStore.GetAvailableFrom(ctx, now)
}

// ListBookings возвращает заявки с непрошедшим слотом,
// вместе с данными пользователя и слота
func (s *BookingService) ListBookings(ctx context.Context, now time.Time) ([]*model.Booking, error) {
	return s.bookingStore.ListUpcoming(ctx, now)
}

// Decide применяет решение администратора к заявке.
// approve: заявка → approved, слот остаётся занятым.
// decline: заявка → declined, слот возвращается в доступные.
// Несуществующая заявка — no-op для вызывающего (model.ErrNotFound),
// но с warn-логом и метрикой: повторное нажатие кнопки неотличимо от бага
// только по стору, сигнал остаётся в телеметрии.
func (s *BookingService) Decide(ctx context.Context, bookingID int64, status model.BookingStatus) (*model.Booking, error) {
	if status != model.BookingStatusApproved && status != model.BookingStatusDeclined {
		return nil, fmt.Errorf("invalid decision %q: %w", status, model.ErrValidation)
	}

	booking, err := s.bookingStore.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		metrics.UnknownBookingDecisions.Inc()
		s.logger.Warn("Decision for unknown booking ignored",
			zap.Int64("booking_id", bookingID),
			zap.String("decision", string(status)))
		return nil, fmt.Errorf("booking %d: %w", bookingID, model.ErrNotFound)
	}

	if booking.Status != model.BookingStatusPending {
		return booking, fmt.Errorf("booking %d is %s: %w", bookingID, booking.Status, model.ErrAlreadyDecided)
	}

	updated, err := s.bookingStore.UpdateStatusFromPending(ctx, bookingID, status)
	if err != nil {
		return nil, fmt.Errorf("update booking status: %w", err)
	}
	if !updated {
		// Гонка двух нажатий: статус уже сменили между чтением и UPDATE
		return booking, fmt.Errorf("booking %d: %w", bookingID, model.ErrAlreadyDecided)
	}

	booking.Status = status

	if status == model.BookingStatusDeclined {
		if err := s.slotStore.Release(ctx, booking.SlotID); err != nil {
			return nil, fmt.Errorf("release slot: %w", err)
		}
		if booking.Slot != nil {
			booking.Slot.Available = true
		}
	}

	metrics.BookingDecisions.WithLabelValues(string(status)).Inc()

	s.logger.Info("Booking decided",
		zap.Int64("booking_id", booking.ID),
		zap.String("status", string(status)),
	)

	if err := s.notifier.NotifyUserDecision(ctx, booking); err != nil {
		s.logger.Error("Failed to notify user about decision",
			zap.Int64("booking_id", booking.ID),
			zap.Error(err))
	}

	return booking, nil
}

// CountAvailableSlots считает доступные будущие слоты (для метрик)
func (s *BookingService) CountAvailableSlots(ctx context.Context, now time.Time) (int64, error) {
	return s.slotStore.CountAvailableFrom(ctx, now)
}

// CountPendingBookings считает заявки в ожидании решения (для метрик)
func (s *BookingService) CountPendingBookings(ctx context.Context) (int64, error) {
	return s.bookingStore.CountPending(ctx)
}
