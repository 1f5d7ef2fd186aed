package api

import (
	"errors"
	"net/http"

	reqdto "venue-booking/internal/handler/dto/request"
	resdto "venue-booking/internal/handler/dto/response"
	"venue-booking/internal/handler/httperr"
	"venue-booking/internal/handler/middleware"
	"venue-booking/internal/pkg/errs"
	"venue-booking/internal/usecase/commands"
	"venue-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	commands commands.BookingCommands
	queries  queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, qrys queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		commands: cmds,
		queries:  qrys,
	}
}

// @Summary Create booking
// @Description Reserve a venue time slot; the price is quoted server-side
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("user id missing from context"), "Internal server error", nil)
		return
	}

	var req reqdto.CreateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	view, err := h.commands.CreateBooking(c.Request.Context(), commands.CreateBookingInput{
		VenueID:         req.VenueID,
		BookerID:        userID,
		EventID:         req.EventID,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		SpecialRequests: req.GetSpecialRequests(),
	})
	if err != nil {
		h.respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBookingView(view))
}

// @Summary Confirm booking
// @Description Confirm a pending booking after payment; re-quotes the price first
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.ConfirmBookingRequest true "Confirmation request"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id}/confirm [post]
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("user id missing from context"), "Internal server error", nil)
		return
	}

	bookingID, err := parseIDParam(c)
	if err != nil {
		return
	}

	var req reqdto.ConfirmBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	view, err := h.commands.ConfirmBooking(c.Request.Context(), commands.ConfirmBookingInput{
		BookingID:  bookingID,
		ActorID:    userID,
		PaymentRef: req.PaymentRef,
	})
	if err != nil {
		h.respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Cancel booking
// @Description Cancel a booking and release its time slot
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.CancelBookingRequest false "Cancellation request"
// @Success 200 {object} resdto.BookingResponse
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("user id missing from context"), "Internal server error", nil)
		return
	}

	bookingID, err := parseIDParam(c)
	if err != nil {
		return
	}

	// Body is optional; a bare cancel carries no reason.
	var req reqdto.CancelBookingRequest
	_ = c.ShouldBindJSON(&req)

	view, err := h.commands.CancelBooking(c.Request.Context(), commands.CancelBookingInput{
		BookingID: bookingID,
		ActorID:   userID,
		Reason:    req.GetReason(),
	})
	if err != nil {
		h.respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Get booking
// @Description Get booking by ID
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	bookingID, err := parseIDParam(c)
	if err != nil {
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), bookingID)
	if err != nil {
		if errors.Is(err, errs.ErrBookingNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
		} else {
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List user bookings
// @Description List bookings made by the current user, optionally filtered by status
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter (pending, confirmed, cancelled)"
// @Success 200 {array} resdto.BookingListResponse
// @Failure 401 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings [get]
func (h *BookingHandler) ListUserBookings(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("user id missing from context"), "Internal server error", nil)
		return
	}

	var status *string
	if s := c.Query("status"); s != "" {
		status = &s
	}

	items, err := h.queries.ListByUser(c.Request.Context(), userID, status)
	if err != nil {
		if errors.Is(err, errs.ErrDomainValidation) {
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Unknown status filter", nil)
		} else {
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, toListResponse(items))
}

// @Summary List owner bookings
// @Description List bookings across all venues owned by the current user
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.BookingListResponse
// @Failure 401 {object} httperr.Response
// @Router /owner/bookings [get]
func (h *BookingHandler) ListOwnerBookings(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("user id missing from context"), "Internal server error", nil)
		return
	}

	items, err := h.queries.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, toListResponse(items))
}

func (h *BookingHandler) respondCommandError(c *gin.Context, err error) {
	var (
		status int
		msg    string
	)
	switch {
	case errors.Is(err, errs.ErrInvalidTimeSlot):
		status, msg = http.StatusBadRequest, "Invalid time slot"
	case errors.Is(err, errs.ErrNotAuthorized):
		status, msg = http.StatusForbidden, "Not authorized for this booking"
	case errors.Is(err, errs.ErrVenueNotFound):
		status, msg = http.StatusNotFound, "Venue not found"
	case errors.Is(err, errs.ErrBookingNotFound):
		status, msg = http.StatusNotFound, "Booking not found"
	case errors.Is(err, errs.ErrSlotUnavailable):
		status, msg = http.StatusConflict, "Time slot is no longer available"
	case errors.Is(err, errs.ErrPriceMismatch):
		status, msg = http.StatusConflict, "Price has changed, please re-quote"
	case errors.Is(err, errs.ErrBookingNotPending):
		status, msg = http.StatusConflict, "Booking is not pending"
	case errors.Is(err, errs.ErrAlreadyCancelled):
		status, msg = http.StatusConflict, "Booking is already cancelled"
	case errors.Is(err, errs.ErrVenueInactive), errors.Is(err, errs.ErrDomainValidation):
		status, msg = http.StatusUnprocessableEntity, "Domain validation failed"
	case errors.Is(err, errs.ErrBookingSystemBusy):
		status, msg = http.StatusServiceUnavailable, "Booking system busy, please retry"
	default:
		status, msg = http.StatusInternalServerError, "Internal server error"
	}
	httperr.AbortWithError(c, status, err, msg, nil)
}

func toListResponse(items []*queries.BookingListItem) []*resdto.BookingListResponse {
	response := make([]*resdto.BookingListResponse, len(items))
	for i, rm := range items {
		response[i] = resdto.FromBookingListItem(rm)
	}
	return response
}

func parseIDParam(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return uuid.Nil, err
	}
	return id, nil
}
