package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Freeeeeet/booking_bot/internal/config"
	"github.com/Freeeeeet/booking_bot/internal/model"
	"github.com/Freeeeeet/booking_bot/internal/service"
)

// fakeBookingService подменяет сервисный слой в HTTP тестах
type fakeBookingService struct {
	createBookingErr error
	createdBookings  []service.CreateBookingRequest
	slots            []*model.Slot
	bookings         []*model.Booking
}

func (f *fakeBookingService) CreateBooking(_ context.Context, req service.CreateBookingRequest) (*model.Booking, error) {
	if f.createBookingErr != nil {
		return nil, f.createBookingErr
	}
	f.createdBookings = append(f.createdBookings, req)
	return &model.Booking{ID: 1, SlotID: req.SlotID, Status: model.BookingStatusPending}, nil
}

func (f *fakeBookingService) CreateSlot(_ context.Context, datetimeUTC time.Time) (*model.Slot, error) {
	slot := &model.Slot{ID: int64(len(f.slots) + 1), DatetimeUTC: datetimeUTC, Available: true}
	f.slots = append(f.slots, slot)
	return slot, nil
}

func (f *fakeBookingService) ListAvailableSlots(_ context.Context, _ time.Time) ([]*model.Slot, error) {
	return f.slots, nil
}

func (f *fakeBookingService) ListBookings(_ context.Context, _ time.Time) ([]*model.Booking, error) {
	return f.bookings, nil
}

const adminID = "100500"

func newTestServer(fake *fakeBookingService) *Server {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		TelegramToken:   "test-token",
		AdminTelegramID: 100500,
		DBDSN:           "test-dsn",
		Port:            "0",
		Environment:     "test",
	}

	return New(cfg, fake, nil, zap.NewNop())
}

func doRequest(s *Server, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	return w
}

func TestWhoAmI(t *testing.T) {
	s := newTestServer(&fakeBookingService{})

	// Администратор
	w := doRequest(s, http.MethodPost, "/api/whoami", `{"telegramId": 100500}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["role"] != "admin" {
		t.Errorf("expected role admin, got %q", resp["role"])
	}

	// Любой другой ID
	w = doRequest(s, http.MethodPost, "/api/whoami", `{"telegramId": 42}`, nil)
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["role"] != "user" {
		t.Errorf("expected role user, got %q", resp["role"])
	}
}

func TestAdminRequired(t *testing.T) {
	s := newTestServer(&fakeBookingService{})

	// Без заголовка
	w := doRequest(s, http.MethodGet, "/api/bookings", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without header, got %d", w.Code)
	}

	// Чужой ID
	w = doRequest(s, http.MethodGet, "/api/bookings", "", map[string]string{"X-Telegram-ID": "42"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for non-admin, got %d", w.Code)
	}

	// Мусор вместо числа
	w = doRequest(s, http.MethodGet, "/api/bookings", "", map[string]string{"X-Telegram-ID": "abc"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for malformed id, got %d", w.Code)
	}

	// Администратор
	w = doRequest(s, http.MethodGet, "/api/bookings", "", map[string]string{"X-Telegram-ID": adminID})
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 for admin, got %d", w.Code)
	}
}

func TestCreateSlot_Validation(t *testing.T) {
	s := newTestServer(&fakeBookingService{})
	headers := map[string]string{"X-Telegram-ID": adminID}

	// Без datetimeUtc
	w := doRequest(s, http.MethodPost, "/api/slots", `{}`, headers)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing datetimeUtc, got %d", w.Code)
	}

	// Непарсящийся timestamp
	w = doRequest(s, http.MethodPost, "/api/slots", `{"datetimeUtc": "tomorrow"}`, headers)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unparseable datetimeUtc, got %d", w.Code)
	}

	// Корректный запрос
	w = doRequest(s, http.MethodPost, "/api/slots", `{"datetimeUtc": "2030-01-01T10:00:00Z"}`, headers)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var slot model.Slot
	json.Unmarshal(w.Body.Bytes(), &slot)
	if !slot.Available {
		t.Error("created slot must be available")
	}
}

func TestCreateBooking_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{name: "validation", serviceErr: model.ErrValidation, wantStatus: http.StatusBadRequest},
		{name: "slot not found", serviceErr: model.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "slot taken", serviceErr: model.ErrSlotUnavailable, wantStatus: http.StatusConflict},
	}

	body := `{"telegramId": 42, "name": "Иван", "slotId": 1}`

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(&fakeBookingService{createBookingErr: tt.serviceErr})
			w := doRequest(s, http.MethodPost, "/api/bookings", body, nil)
			if w.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestCreateBooking_Success(t *testing.T) {
	fake := &fakeBookingService{}
	s := newTestServer(fake)

	body := `{"telegramId": 42, "name": "Иван", "email": "i@example.com", "phone": "+7", "motive": "звонок", "slotId": 3}`
	w := doRequest(s, http.MethodPost, "/api/bookings", body, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]bool
	json.Unmarshal(w.Body.Bytes(), &resp)
	if !resp["success"] {
		t.Error("expected success: true")
	}

	if len(fake.createdBookings) != 1 || fake.createdBookings[0].SlotID != 3 {
		t.Errorf("service got wrong request: %+v", fake.createdBookings)
	}
}

func TestListSlots_EmptyIsArray(t *testing.T) {
	s := newTestServer(&fakeBookingService{})

	w := doRequest(s, http.MethodGet, "/api/slots", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	// Пустой список сериализуется как [], а не null
	if got := strings.TrimSpace(w.Body.String()); got != "[]" {
		t.Errorf("expected [], got %q", got)
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(&fakeBookingService{})

	w := doRequest(s, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}
