package api

import (
	"net/http"
	"time"

	resdto "venue-booking/internal/handler/dto/response"
	"venue-booking/internal/handler/httperr"
	"venue-booking/internal/pkg/errs"
	"venue-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Callers must bound the window; unbounded scans over a venue's whole
// history are not served.
const maxAvailabilityWindow = 366 * 24 * time.Hour

type AvailabilityHandler struct {
	queries queries.AvailabilityQueries
}

func NewAvailabilityHandler(qrys queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{queries: qrys}
}

// @Summary Get venue availability
// @Description List booked intervals for a venue within a time window
// @Tags venues
// @Produce json
// @Param id path string true "Venue ID"
// @Param from query string true "Window start (RFC3339)"
// @Param to query string true "Window end (RFC3339)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Router /venues/{id}/availability [get]
func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	venueID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid venue ID format", nil)
		return
	}

	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid or missing 'from' parameter, expected RFC3339", nil)
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid or missing 'to' parameter, expected RFC3339", nil)
		return
	}

	if !from.Before(to) {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.New("inverted availability window"), "'from' must be before 'to'", nil)
		return
	}
	if to.Sub(from) > maxAvailabilityWindow {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.Newf("availability window exceeds %s", maxAvailabilityWindow), "Requested window too large", nil)
		return
	}

	slots, err := h.queries.GetAvailability(c.Request.Context(), venueID, from, to)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromSlotViews(from, to, slots))
}
