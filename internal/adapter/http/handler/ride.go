package handler

import (
	"context"
	"net/http"

	"github.com/fareline/fareline/internal/adapter/http/handler/dto"
	"github.com/fareline/fareline/internal/domain/models"
	"github.com/fareline/fareline/pkg/logger"
	wrap "github.com/fareline/fareline/pkg/logger/wrapper"
	"github.com/fareline/fareline/pkg/uuid"
	"github.com/fareline/fareline/pkg/validator"
)

type QuoteService interface {
	Search(ctx context.Context, userID uuid.UUID, origin, destination string) ([]models.Quote, error)
}

type BookingService interface {
	Confirm(ctx context.Context, userID uuid.UUID, req models.BookingRequest) (*models.Booking, error)
	History(ctx context.Context, userID uuid.UUID) ([]models.Booking, error)
}

type Ride struct {
	quotes   QuoteService
	bookings BookingService
	l        logger.Logger
}

func NewRide(quotes QuoteService, bookings BookingService, l logger.Logger) *Ride {
	return &Ride{
		quotes:   quotes,
		bookings: bookings,
		l:        l,
	}
}

// Search godoc
// @Summary      Search rides
// @Description  Collects live quotes from every available provider
// @Tags         Rides
// @Produce      json
// @Security     BearerAuth
// @Param        origin       query     string  true  "Pickup point"
// @Param        destination  query     string  true  "Drop-off point"
// @Success      200  {array}   models.Quote
// @Failure      400  {object}  map[string]any
// @Failure      503  {object}  map[string]any
// @Router       /rides/search [get]
func (h *Ride) Search(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "search_rides")

	user := models.UserFromContext(ctx)
	ctx = wrap.WithUserID(ctx, user.ID.String())

	req := &dto.SearchRidesRequest{
		Origin:      r.URL.Query().Get("origin"),
		Destination: r.URL.Query().Get("destination"),
	}

	// missing endpoints are a malformed search, not a validation layer
	// concern: the route contract is a plain 400
	v := validator.New()
	req.Validate(v)
	if !v.Valid() {
		badRequestResponse(w, v.Errors)
		return
	}

	quotes, err := h.quotes.Search(ctx, user.ID, req.Origin, req.Destination)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to search rides", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	if err := writeJSON(w, http.StatusOK, quotes, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Book godoc
// @Summary      Book a ride
// @Description  Confirms a booking against a previously returned quote
// @Tags         Rides
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      dto.BookRideRequest  true  "Selected quote"
// @Success      200      {object}  map[string]any
// @Failure      400      {object}  map[string]any
// @Router       /rides/book [post]
func (h *Ride) Book(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "book_ride")

	user := models.UserFromContext(ctx)
	ctx = wrap.WithUserID(ctx, user.ID.String())

	req := &dto.BookRideRequest{}
	if err := readJSON(w, r, req); err != nil {
		h.l.Error(ctx, "failed to read request JSON data", err)
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	req.Validate(v)
	if !v.Valid() {
		badRequestResponse(w, v.Errors)
		return
	}

	booking, err := h.bookings.Confirm(ctx, user.ID, req.ToModel())
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to confirm booking", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{
		"message": "Ride booked successfully",
		"booking": booking,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// History godoc
// @Summary      Booking history
// @Description  Lists the user's bookings, newest first
// @Tags         Rides
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.Booking
// @Failure      401  {object}  map[string]any
// @Router       /rides/history [get]
func (h *Ride) History(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "ride_history")

	user := models.UserFromContext(ctx)
	ctx = wrap.WithUserID(ctx, user.ID.String())

	bookings, err := h.bookings.History(ctx, user.ID)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to load ride history", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	if err := writeJSON(w, http.StatusOK, bookings, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}
