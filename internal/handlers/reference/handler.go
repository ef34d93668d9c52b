package reference

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/reference/model/dto"
	"hotel/internal/domains/reference/service"
	"hotel/shared/constant"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Reference
	otel    otel.Otel
}

func New(service service.Reference, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/references", handler.GetReferences)
}

// GetReferences lists booking statuses, room statuses and room types.
// @Summary Get lookup tables
// @Tags Reference
// @Produce json
// @Success 200 {object} response.Data[dto.CatalogResponse]
// @Failure 503 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/references [get]
// @Security BearerAuth
func (handler *Handler) GetReferences(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReferences")
	defer scope.End()

	catalog, err := handler.service.Catalog(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to load references")

		response.WithError(w, err)

		return
	}

	var res dto.CatalogResponse
	res.FromModel(catalog)

	response.WithJSON(w, http.StatusOK, res)
}
