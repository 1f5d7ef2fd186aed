//go:build unit

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"venue-booking/internal/handler/api"
	"venue-booking/internal/handler/httperr"
	"venue-booking/internal/handler/middleware"
	"venue-booking/internal/pkg/errs"
	"venue-booking/internal/usecase/commands"
	"venue-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCommands struct {
	view *queries.BookingView
	err  error
}

func (s *stubCommands) CreateBooking(_ context.Context, _ commands.CreateBookingInput) (*queries.BookingView, error) {
	return s.view, s.err
}

func (s *stubCommands) ConfirmBooking(_ context.Context, _ commands.ConfirmBookingInput) (*queries.BookingView, error) {
	return s.view, s.err
}

func (s *stubCommands) CancelBooking(_ context.Context, _ commands.CancelBookingInput) (*queries.BookingView, error) {
	return s.view, s.err
}

type stubQueries struct {
	view  *queries.BookingView
	items []*queries.BookingListItem
	err   error
}

func (s *stubQueries) GetByID(_ context.Context, _ uuid.UUID) (*queries.BookingView, error) {
	return s.view, s.err
}

func (s *stubQueries) ListByUser(_ context.Context, _ uuid.UUID, _ *string) ([]*queries.BookingListItem, error) {
	return s.items, s.err
}

func (s *stubQueries) ListByOwner(_ context.Context, _ uuid.UUID) ([]*queries.BookingListItem, error) {
	return s.items, s.err
}

func setupRouter(cmds commands.BookingCommands, qrys queries.BookingQueries) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	h := api.NewBookingHandler(cmds, qrys)

	engine.Use(middleware.ErrorHandler())
	// Inject the authenticated user the way the auth middleware would
	engine.Use(func(c *gin.Context) {
		c.Set("user_id", uuid.New())
		c.Next()
	})

	engine.POST("/api/bookings", h.CreateBooking)
	engine.GET("/api/bookings", h.ListUserBookings)
	engine.GET("/api/bookings/:id", h.GetBooking)
	engine.POST("/api/bookings/:id/confirm", h.ConfirmBooking)
	engine.POST("/api/bookings/:id/cancel", h.CancelBooking)
	return engine
}

func sampleView() *queries.BookingView {
	now := time.Date(2030, time.June, 3, 9, 0, 0, 0, time.UTC)
	return &queries.BookingView{
		ID:              uuid.New(),
		VenueID:         uuid.New(),
		VenueName:       "Grand Hall",
		BookerID:        uuid.New(),
		StartTime:       now,
		EndTime:         now.Add(2 * time.Hour),
		TotalPriceCents: 10000,
		Status:          "pending",
		PaymentStatus:   "pending",
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func createBody(t *testing.T) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(gin.H{
		"venue_id":   uuid.New(),
		"start_time": "2030-06-03T09:00:00Z",
		"end_time":   "2030-06-03T11:00:00Z",
	})
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func TestBookingHandler_CreateBooking_StatusMapping(t *testing.T) {
	testCases := []struct {
		name           string
		commandErr     error
		expectedStatus int
	}{
		{
			name:           "success",
			commandErr:     nil,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "invalid time slot",
			commandErr:     errs.ErrInvalidTimeSlot,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "venue not found",
			commandErr:     errs.ErrVenueNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "slot unavailable",
			commandErr:     errs.ErrSlotUnavailable,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "inactive venue",
			commandErr:     errs.ErrVenueInactive,
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "system busy",
			commandErr:     errs.ErrBookingSystemBusy,
			expectedStatus: http.StatusServiceUnavailable,
		},
		{
			name:           "unexpected error",
			commandErr:     errs.New("connection refused"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := setupRouter(&stubCommands{view: sampleView(), err: tc.commandErr}, &stubQueries{})

			req := httptest.NewRequest(http.MethodPost, "/api/bookings", createBody(t))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.expectedStatus, w.Code)
		})
	}
}

func TestBookingHandler_ErrorEnvelope(t *testing.T) {
	// Marked errors coming out of the command layer must surface as the
	// matching status with the shared error envelope, not as a bare 500.
	commandErr := errs.Mark(errs.New("CONFLICT: interval overlaps"), errs.ErrSlotUnavailable)
	router := setupRouter(&stubCommands{err: commandErr}, &stubQueries{})

	req := httptest.NewRequest(http.MethodPost, "/api/bookings", createBody(t))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)

	var resp httperr.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Time slot is no longer available", resp.Error.Message)
}

func TestBookingHandler_ConfirmBooking_StatusMapping(t *testing.T) {
	testCases := []struct {
		name           string
		commandErr     error
		expectedStatus int
	}{
		{
			name:           "success",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "not the booker",
			commandErr:     errs.ErrNotAuthorized,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "price changed",
			commandErr:     errs.ErrPriceMismatch,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "not pending",
			commandErr:     errs.ErrBookingNotPending,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "not found",
			commandErr:     errs.ErrBookingNotFound,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := setupRouter(&stubCommands{view: sampleView(), err: tc.commandErr}, &stubQueries{})

			body, err := json.Marshal(gin.H{"payment_ref": "pay_123"})
			require.NoError(t, err)

			url := fmt.Sprintf("/api/bookings/%s/confirm", uuid.New())
			req := httptest.NewRequest(http.MethodPost, url, bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.expectedStatus, w.Code)
		})
	}
}

func TestBookingHandler_CancelBooking_StatusMapping(t *testing.T) {
	testCases := []struct {
		name           string
		commandErr     error
		expectedStatus int
	}{
		{
			name:           "success without body",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "already cancelled",
			commandErr:     errs.ErrAlreadyCancelled,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "not authorized",
			commandErr:     errs.ErrNotAuthorized,
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := setupRouter(&stubCommands{view: sampleView(), err: tc.commandErr}, &stubQueries{})

			url := fmt.Sprintf("/api/bookings/%s/cancel", uuid.New())
			req := httptest.NewRequest(http.MethodPost, url, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.expectedStatus, w.Code)
		})
	}
}

func TestBookingHandler_GetBooking(t *testing.T) {
	t.Run("invalid id format", func(t *testing.T) {
		router := setupRouter(&stubCommands{}, &stubQueries{})

		req := httptest.NewRequest(http.MethodGet, "/api/bookings/not-a-uuid", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		router := setupRouter(&stubCommands{}, &stubQueries{err: errs.ErrBookingNotFound})

		req := httptest.NewRequest(http.MethodGet, "/api/bookings/"+uuid.NewString(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("found", func(t *testing.T) {
		view := sampleView()
		router := setupRouter(&stubCommands{}, &stubQueries{view: view})

		req := httptest.NewRequest(http.MethodGet, "/api/bookings/"+view.ID.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, view.ID.String(), resp["id"])
		assert.Equal(t, "Grand Hall", resp["venueName"])
	})
}

func TestBookingHandler_ListUserBookings(t *testing.T) {
	t.Run("unknown status filter", func(t *testing.T) {
		router := setupRouter(&stubCommands{}, &stubQueries{err: errs.Mark(errs.New("unknown status"), errs.ErrDomainValidation)})

		req := httptest.NewRequest(http.MethodGet, "/api/bookings?status=bogus", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("empty list serializes as an array", func(t *testing.T) {
		router := setupRouter(&stubCommands{}, &stubQueries{items: []*queries.BookingListItem{}})

		req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})
}
