//go:build e2e

package booking_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"venue-booking/internal/pkg/jwt"
	"venue-booking/tests/common/dbtest"
	"venue-booking/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	bookingsURL      = "/api/bookings"
	ownerBookingsURL = "/api/owner/bookings"
)

type bookingSuite struct {
	e2e.SharedSuite
	tokens *jwt.Service

	bookerID uuid.UUID
	start    time.Time
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(bookingSuite))
}

func (s *bookingSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.tokens = jwt.NewService(s.Config.JWT.Secret, s.Config.JWT.Duration)
	s.bookerID = uuid.New()
	s.start = time.Now().UTC().Add(48 * time.Hour).Truncate(time.Hour)
}

func (s *bookingSuite) token(userID uuid.UUID) string {
	token, err := s.tokens.GenerateToken(userID)
	require.NoError(s.T(), err)
	return token
}

func (s *bookingSuite) do(method, url string, body any, userID uuid.UUID) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.T(), err)
		reader = bytes.NewBuffer(raw)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != uuid.Nil {
		req.Header.Set("Authorization", "Bearer "+s.token(userID))
	}

	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

func (s *bookingSuite) createBooking(venueID uuid.UUID, start, end time.Time, userID uuid.UUID) *httptest.ResponseRecorder {
	return s.do(http.MethodPost, bookingsURL, map[string]any{
		"venue_id":   venueID,
		"start_time": start.Format(time.RFC3339),
		"end_time":   end.Format(time.RFC3339),
	}, userID)
}

func (s *bookingSuite) decodeBooking(w *httptest.ResponseRecorder) map[string]any {
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func (s *bookingSuite) TestCreateBooking() {
	s.Run("hourly venue quotes rate times hours", func() {
		w := s.createBooking(dbtest.HourlyVenueID, s.start, s.start.Add(2*time.Hour), s.bookerID)
		require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())

		resp := s.decodeBooking(w)
		require.Equal(s.T(), float64(2*dbtest.HourlyRateCents), resp["totalPriceCents"])
		require.Equal(s.T(), "pending", resp["status"])
		require.Equal(s.T(), "pending", resp["paymentStatus"])
	})

	s.Run("daily venue rounds partial days up", func() {
		w := s.createBooking(dbtest.DailyVenueID, s.start, s.start.Add(30*time.Hour), s.bookerID)
		require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())

		resp := s.decodeBooking(w)
		// 30h -> 2 days; expected rate depends on whether the slot starts
		// on a weekend (seeded venue has a weekend rate)
		rate := float64(dbtest.DailyRateCents)
		if wd := s.start.Weekday(); wd == time.Saturday || wd == time.Sunday {
			rate = float64(dbtest.WeekendRateCents)
		}
		require.Equal(s.T(), 2*rate, resp["totalPriceCents"])
	})

	s.Run("overlapping booking conflicts", func() {
		w := s.createBooking(dbtest.HourlyVenueID, s.start, s.start.Add(2*time.Hour), s.bookerID)
		require.Equal(s.T(), http.StatusCreated, w.Code)

		w = s.createBooking(dbtest.HourlyVenueID, s.start.Add(time.Hour), s.start.Add(3*time.Hour), uuid.New())
		require.Equal(s.T(), http.StatusConflict, w.Code, w.Body.String())
	})

	s.Run("back to back bookings share an endpoint without conflict", func() {
		w := s.createBooking(dbtest.HourlyVenueID, s.start, s.start.Add(2*time.Hour), s.bookerID)
		require.Equal(s.T(), http.StatusCreated, w.Code)

		w = s.createBooking(dbtest.HourlyVenueID, s.start.Add(2*time.Hour), s.start.Add(4*time.Hour), uuid.New())
		require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())
	})

	s.Run("same slot on another venue does not conflict", func() {
		w := s.createBooking(dbtest.HourlyVenueID, s.start, s.start.Add(2*time.Hour), s.bookerID)
		require.Equal(s.T(), http.StatusCreated, w.Code)

		w = s.createBooking(dbtest.DailyVenueID, s.start, s.start.Add(2*time.Hour), s.bookerID)
		require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())
	})

	s.Run("slot in the past is rejected", func() {
		past := time.Now().UTC().Add(-24 * time.Hour)
		w := s.createBooking(dbtest.HourlyVenueID, past, past.Add(time.Hour), s.bookerID)
		require.Equal(s.T(), http.StatusBadRequest, w.Code)
	})

	s.Run("unknown venue is not found", func() {
		w := s.createBooking(uuid.New(), s.start, s.start.Add(time.Hour), s.bookerID)
		require.Equal(s.T(), http.StatusNotFound, w.Code)
	})

	s.Run("inactive venue cannot be booked", func() {
		w := s.createBooking(dbtest.InactiveVenueID, s.start, s.start.Add(time.Hour), s.bookerID)
		require.Equal(s.T(), http.StatusUnprocessableEntity, w.Code)
	})

	s.Run("unauthenticated request is rejected", func() {
		w := s.createBooking(dbtest.HourlyVenueID, s.start, s.start.Add(time.Hour), uuid.Nil)
		require.Equal(s.T(), http.StatusUnauthorized, w.Code)
	})
}

func (s *bookingSuite) TestBookingLifecycle() {
	s.Run("confirm then cancel, slot reopens", func() {
		w := s.createBooking(dbtest.HourlyVenueID, s.start, s.start.Add(2*time.Hour), s.bookerID)
		require.Equal(s.T(), http.StatusCreated, w.Code)
		bookingID := s.decodeBooking(w)["id"].(string)

		confirmURL := fmt.Sprintf("%s/%s/confirm", bookingsURL, bookingID)
		w = s.do(http.MethodPost, confirmURL, map[string]any{"payment_ref": "pay_e2e_1"}, s.bookerID)
		require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())

		resp := s.decodeBooking(w)
		require.Equal(s.T(), "confirmed", resp["status"])
		require.Equal(s.T(), "paid", resp["paymentStatus"])

		// Confirming twice conflicts
		w = s.do(http.MethodPost, confirmURL, map[string]any{"payment_ref": "pay_e2e_2"}, s.bookerID)
		require.Equal(s.T(), http.StatusConflict, w.Code)

		// Cancel refunds a paid booking
		cancelURL := fmt.Sprintf("%s/%s/cancel", bookingsURL, bookingID)
		w = s.do(http.MethodPost, cancelURL, map[string]any{"reason": "event moved"}, s.bookerID)
		require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())

		resp = s.decodeBooking(w)
		require.Equal(s.T(), "cancelled", resp["status"])
		require.Equal(s.T(), "refunded", resp["paymentStatus"])
		require.Equal(s.T(), "event moved", resp["cancellationReason"])

		// Cancelling twice conflicts
		w = s.do(http.MethodPost, cancelURL, nil, s.bookerID)
		require.Equal(s.T(), http.StatusConflict, w.Code)

		// The freed slot is bookable again
		w = s.createBooking(dbtest.HourlyVenueID, s.start, s.start.Add(2*time.Hour), uuid.New())
		require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())
	})

	s.Run("only the booker may confirm", func() {
		w := s.createBooking(dbtest.HourlyVenueID, s.start, s.start.Add(time.Hour), s.bookerID)
		require.Equal(s.T(), http.StatusCreated, w.Code)
		bookingID := s.decodeBooking(w)["id"].(string)

		confirmURL := fmt.Sprintf("%s/%s/confirm", bookingsURL, bookingID)
		w = s.do(http.MethodPost, confirmURL, map[string]any{"payment_ref": "pay_x"}, dbtest.OwnerID)
		require.Equal(s.T(), http.StatusForbidden, w.Code)
	})

	s.Run("venue owner may cancel, stranger may not", func() {
		w := s.createBooking(dbtest.HourlyVenueID, s.start, s.start.Add(time.Hour), s.bookerID)
		require.Equal(s.T(), http.StatusCreated, w.Code)
		bookingID := s.decodeBooking(w)["id"].(string)

		cancelURL := fmt.Sprintf("%s/%s/cancel", bookingsURL, bookingID)

		w = s.do(http.MethodPost, cancelURL, nil, uuid.New())
		require.Equal(s.T(), http.StatusForbidden, w.Code)

		w = s.do(http.MethodPost, cancelURL, map[string]any{"reason": "maintenance"}, dbtest.OwnerID)
		require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())
	})
}

func (s *bookingSuite) TestConcurrentCreate() {
	s.Run("one winner per slot under concurrency", func() {
		const workers = 8

		results := make([]int, workers)
		var wg sync.WaitGroup
		wg.Add(workers)

		for i := range workers {
			go func(idx int) {
				defer wg.Done()
				w := s.createBooking(dbtest.HourlyVenueID, s.start, s.start.Add(2*time.Hour), uuid.New())
				results[idx] = w.Code
			}(i)
		}
		wg.Wait()

		created, conflicted := 0, 0
		for _, code := range results {
			switch code {
			case http.StatusCreated:
				created++
			case http.StatusConflict:
				conflicted++
			default:
				s.T().Fatalf("unexpected status %d", code)
			}
		}
		require.Equal(s.T(), 1, created)
		require.Equal(s.T(), workers-1, conflicted)
	})
}

func (s *bookingSuite) TestListings() {
	s.Run("booker listing filters by status", func() {
		booker := uuid.New()
		w := s.createBooking(dbtest.HourlyVenueID, s.start, s.start.Add(time.Hour), booker)
		require.Equal(s.T(), http.StatusCreated, w.Code)
		w = s.createBooking(dbtest.HourlyVenueID, s.start.Add(2*time.Hour), s.start.Add(3*time.Hour), booker)
		require.Equal(s.T(), http.StatusCreated, w.Code)
		cancelled := s.decodeBooking(w)["id"].(string)

		w = s.do(http.MethodPost, fmt.Sprintf("%s/%s/cancel", bookingsURL, cancelled), nil, booker)
		require.Equal(s.T(), http.StatusOK, w.Code)

		w = s.do(http.MethodGet, bookingsURL, nil, booker)
		require.Equal(s.T(), http.StatusOK, w.Code)
		var all []map[string]any
		require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &all))
		require.Len(s.T(), all, 2)

		w = s.do(http.MethodGet, bookingsURL+"?status=pending", nil, booker)
		require.Equal(s.T(), http.StatusOK, w.Code)
		var pending []map[string]any
		require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &pending))
		require.Len(s.T(), pending, 1)

		w = s.do(http.MethodGet, bookingsURL+"?status=bogus", nil, booker)
		require.Equal(s.T(), http.StatusUnprocessableEntity, w.Code)
	})

	s.Run("owner sees bookings across venues", func() {
		w := s.createBooking(dbtest.HourlyVenueID, s.start, s.start.Add(time.Hour), uuid.New())
		require.Equal(s.T(), http.StatusCreated, w.Code)
		w = s.createBooking(dbtest.DailyVenueID, s.start, s.start.Add(24*time.Hour), uuid.New())
		require.Equal(s.T(), http.StatusCreated, w.Code)

		w = s.do(http.MethodGet, ownerBookingsURL, nil, dbtest.OwnerID)
		require.Equal(s.T(), http.StatusOK, w.Code)

		var items []map[string]any
		require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &items))
		require.Len(s.T(), items, 2)
	})
}

func (s *bookingSuite) TestAvailability() {
	availabilityURL := func(venueID uuid.UUID, from, to time.Time) string {
		return fmt.Sprintf("/api/venues/%s/availability?from=%s&to=%s",
			venueID, from.Format(time.RFC3339), to.Format(time.RFC3339))
	}

	s.Run("booked intervals appear in the window", func() {
		w := s.createBooking(dbtest.HourlyVenueID, s.start, s.start.Add(2*time.Hour), s.bookerID)
		require.Equal(s.T(), http.StatusCreated, w.Code)
		w = s.createBooking(dbtest.HourlyVenueID, s.start.Add(4*time.Hour), s.start.Add(5*time.Hour), s.bookerID)
		require.Equal(s.T(), http.StatusCreated, w.Code)

		// Availability is public, no token needed
		w = s.do(http.MethodGet, availabilityURL(dbtest.HourlyVenueID, s.start.Add(-time.Hour), s.start.Add(8*time.Hour)), nil, uuid.Nil)
		require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())

		var resp struct {
			BookedSlots []struct {
				Start time.Time `json:"start"`
				End   time.Time `json:"end"`
			} `json:"bookedSlots"`
		}
		require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(s.T(), resp.BookedSlots, 2)
		require.True(s.T(), resp.BookedSlots[0].Start.Before(resp.BookedSlots[1].Start))
	})

	s.Run("cancelled booking disappears from availability", func() {
		w := s.createBooking(dbtest.HourlyVenueID, s.start, s.start.Add(2*time.Hour), s.bookerID)
		require.Equal(s.T(), http.StatusCreated, w.Code)
		bookingID := s.decodeBooking(w)["id"].(string)

		w = s.do(http.MethodPost, fmt.Sprintf("%s/%s/cancel", bookingsURL, bookingID), nil, s.bookerID)
		require.Equal(s.T(), http.StatusOK, w.Code)

		w = s.do(http.MethodGet, availabilityURL(dbtest.HourlyVenueID, s.start.Add(-time.Hour), s.start.Add(8*time.Hour)), nil, uuid.Nil)
		require.Equal(s.T(), http.StatusOK, w.Code)

		var resp struct {
			BookedSlots []any `json:"bookedSlots"`
		}
		require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
		require.Empty(s.T(), resp.BookedSlots)
	})

	s.Run("window outside bookings is empty", func() {
		w := s.createBooking(dbtest.HourlyVenueID, s.start, s.start.Add(2*time.Hour), s.bookerID)
		require.Equal(s.T(), http.StatusCreated, w.Code)

		w = s.do(http.MethodGet, availabilityURL(dbtest.HourlyVenueID, s.start.Add(24*time.Hour), s.start.Add(48*time.Hour)), nil, uuid.Nil)
		require.Equal(s.T(), http.StatusOK, w.Code)

		var resp struct {
			BookedSlots []any `json:"bookedSlots"`
		}
		require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
		require.Empty(s.T(), resp.BookedSlots)
	})

	s.Run("invalid window is rejected", func() {
		w := s.do(http.MethodGet, availabilityURL(dbtest.HourlyVenueID, s.start.Add(time.Hour), s.start), nil, uuid.Nil)
		require.Equal(s.T(), http.StatusBadRequest, w.Code)
	})
}
