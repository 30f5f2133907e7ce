package planner

import (
	"net/http"

	"eventhub/infras/otel"
	"eventhub/internal/domains/planner/model/dto"
	"eventhub/internal/domains/planner/service"
	"eventhub/shared/constant"
	"eventhub/shared/validator"
	"eventhub/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Planner
	otel    otel.Otel
}

func New(service service.Planner, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/planner", func(routerGroup chi.Router) {
		routerGroup.Post("/generate", handler.GeneratePlan)
	})
}

// GeneratePlan builds an event plan suggestion
// @Summary Generate an event plan
// @Description Generate a themed event plan for the given event type and budget. Falls back to a curated offline plan when the AI backend is unavailable.
// @Tags Planner
// @Accept json
// @Produce json
// @Param request body dto.GeneratePlanRequest true "Plan request"
// @Success 200 {object} dto.PlanResponse "Plan generated successfully"
// @Failure 400 {object} response.Error
// @Router /v1/planner/generate [post]
func (handler *Handler) GeneratePlan(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GeneratePlan")
	defer scope.End()

	req := dto.GeneratePlanRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.GeneratePlan(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to generate event plan")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
