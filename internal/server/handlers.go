package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Freeeeeet/booking_bot/internal/model"
	"github.com/Freeeeeet/booking_bot/internal/service"
)

func (s *Server) handleTest(c *gin.Context) {
	c.String(http.StatusOK, "Hello World")
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleWhoAmI определяет роль по telegram ID
func (s *Server) handleWhoAmI(c *gin.Context) {
	var in struct {
		TelegramID int64 `json:"telegramId"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	role := "user"
	if s.cfg.IsAdmin(in.TelegramID) {
		role = "admin"
	}

	c.JSON(http.StatusOK, gin.H{"role": role})
}

// handleListSlots возвращает доступные будущие слоты
func (s *Server) handleListSlots(c *gin.Context) {
	slots, err := s.bookingService.ListAvailableSlots(c.Request.Context(), time.Now().UTC())
	if err != nil {
		s.serviceError(c, err)
		return
	}

	if slots == nil {
		slots = []*model.Slot{}
	}
	c.JSON(http.StatusOK, slots)
}

// handleCreateSlot создаёт слот (только администратор)
func (s *Server) handleCreateSlot(c *gin.Context) {
	var in struct {
		DatetimeUTC string `json:"datetimeUtc"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if in.DatetimeUTC == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "datetimeUtc is required"})
		return
	}

	datetime, err := time.Parse(time.RFC3339, in.DatetimeUTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "datetimeUtc must be an RFC3339 timestamp"})
		return
	}

	slot, err := s.bookingService.CreateSlot(c.Request.Context(), datetime)
	if err != nil {
		s.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, slot)
}

// handleCreateBooking создаёт заявку на слот
func (s *Server) handleCreateBooking(c *gin.Context) {
	var in struct {
		TelegramID int64  `json:"telegramId"`
		Name       string `json:"name"`
		Email      string `json:"email"`
		Phone      string `json:"phone"`
		Motive     string `json:"motive"`
		SlotID     int64  `json:"slotId"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	_, err := s.bookingService.CreateBooking(c.Request.Context(), service.CreateBookingRequest{
		TelegramID: in.TelegramID,
		Name:       in.Name,
		Email:      in.Email,
		Phone:      in.Phone,
		Motive:     in.Motive,
		SlotID:     in.SlotID,
	})
	if err != nil {
		s.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// handleListBookings возвращает будущие заявки (только администратор)
func (s *Server) handleListBookings(c *gin.Context) {
	bookings, err := s.bookingService.ListBookings(c.Request.Context(), time.Now().UTC())
	if err != nil {
		s.serviceError(c, err)
		return
	}

	if bookings == nil {
		bookings = []*model.Booking{}
	}
	c.JSON(http.StatusOK, bookings)
}

// serviceError переводит доменные ошибки в HTTP статусы
func (s *Server) serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrSlotUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": "slot is not available"})
	case errors.Is(err, model.ErrAlreadyDecided):
		c.JSON(http.StatusConflict, gin.H{"error": "booking already decided"})
	default:
		s.logger.Error("Internal error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
