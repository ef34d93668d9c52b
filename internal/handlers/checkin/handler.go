package checkin

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/checkin/model"
	"hotel/internal/domains/checkin/model/dto"
	"hotel/internal/domains/checkin/service"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.CheckIn
	otel    otel.Otel
}

func New(service service.CheckIn, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/checkins", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateCheckIn)
		routerGroup.Get("/", handler.GetCheckIns)
		routerGroup.Get("/{id}", handler.GetCheckInByID)
		routerGroup.Post("/{id}/checkout", handler.Checkout)
		routerGroup.Delete("/{id}", handler.DeleteCheckIn)
	})
}

// CreateCheckIn checks a guest in against a booking.
// @Summary Check in a booking
// @Description Opens the stay of a Pending or Confirmed booking, optionally in another room, and marks it CheckedIn.
// @Tags CheckIn
// @Accept json
// @Produce json
// @Param request body dto.CreateCheckInRequest true "Check-in details"
// @Success 201 {object} response.Data[dto.CreateCheckInResponse] "Check-in created"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/checkins [post]
// @Security BearerAuth
func (handler *Handler) CreateCheckIn(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateCheckIn")
	defer scope.End()

	req := dto.CreateCheckInRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	id, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create check-in")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, dto.CreateCheckInResponse{ID: id})
}

// GetCheckIns lists check-ins.
// @Summary Get all check-ins
// @Tags CheckIn
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param booking_id query string false "Filter by booking"
// @Param room_id query string false "Filter by room"
// @Param customer_id query string false "Filter by customer"
// @Success 200 {object} response.Data[dto.GetCheckInsResponse] "List of check-ins"
// @Failure 500 {object} response.Error
// @Router /v1/checkins [get]
// @Security BearerAuth
func (handler *Handler) GetCheckIns(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCheckIns")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	query := r.URL.Query()

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	for _, field := range []string{model.FieldBookingID, model.FieldRoomID, model.FieldCustomerID} {
		if value := query.Get(field); value != "" {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	checkIns, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get check-ins")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, checkIns)
}

// GetCheckInByID retrieves a check-in by its ID.
// @Summary Get a check-in by ID
// @Tags CheckIn
// @Produce json
// @Param id path string true "Check-in ID"
// @Success 200 {object} response.Data[dto.CheckInResponse] "Check-in details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/checkins/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetCheckInByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCheckInByID")
	defer scope.End()

	checkIn, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get check-in by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, checkIn)
}

// Checkout closes a stay.
// @Summary Check out
// @Description Records the actual check-out date, early or late, and completes the booking.
// @Tags CheckIn
// @Accept json
// @Produce json
// @Param id path string true "Check-in ID"
// @Param request body dto.CheckoutRequest false "Check-out date, defaults to today"
// @Success 200 {object} response.Message "Checked out"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/checkins/{id}/checkout [post]
// @Security BearerAuth
func (handler *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Checkout")
	defer scope.End()

	req := dto.CheckoutRequest{}

	if r.ContentLength != 0 {
		if err := validator.Validate(r.Body, &req); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to validate request body")

			response.WithError(w, err)

			return
		}
	}

	if err := handler.service.Checkout(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check out")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Checked out successfully")
}

// DeleteCheckIn undoes a check-in whose stay is still open.
// @Summary Delete a check-in by ID
// @Tags CheckIn
// @Produce json
// @Param id path string true "Check-in ID"
// @Success 200 {object} response.Message "Check-in deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/checkins/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteCheckIn(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteCheckIn")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete check-in")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Check-in deleted successfully")
}
