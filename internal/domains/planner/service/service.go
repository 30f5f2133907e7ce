package service

import (
	"context"
	"encoding/json"
	"fmt"

	"eventhub/config"
	"eventhub/infras/otel"
	"eventhub/infras/planner"
	"eventhub/internal/domains/planner/model/dto"
	"eventhub/shared/constant"

	"github.com/rs/zerolog/log"
)

type Planner interface {
	GeneratePlan(ctx context.Context, req dto.GeneratePlanRequest) (dto.PlanResponse, error)
}

type serviceImpl struct {
	client planner.Client
	cfg    *config.Config
	otel   otel.Otel
}

func New(client planner.Client, cfg *config.Config, otel otel.Otel) Planner {
	return &serviceImpl{
		client: client,
		cfg:    cfg,
		otel:   otel,
	}
}

// GeneratePlan asks the model for an event plan. Any failure along the way
// degrades to a fixed offline plan, so this endpoint never errors on planner
// trouble.
func (s *serviceImpl) GeneratePlan(ctx context.Context, req dto.GeneratePlanRequest) (res dto.PlanResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GeneratePlan")
	defer scope.End()

	prompt := buildPrompt(req)

	raw, err := s.client.GenerateJSON(ctx, prompt)
	if err != nil {
		log.Warn().Err(err).Msg("plan generation failed, using offline fallback")
		scope.TraceError(err)

		return fallbackPlan(), nil
	}

	if err = json.Unmarshal(raw, &res); err != nil {
		log.Warn().Err(err).Msg("plan response was not valid JSON, using offline fallback")
		scope.TraceError(err)

		return fallbackPlan(), nil
	}

	if res.Theme == constant.Empty {
		log.Warn().Msg("plan response missing theme, using offline fallback")

		return fallbackPlan(), nil
	}

	return res, nil
}

func buildPrompt(req dto.GeneratePlanRequest) string {
	return fmt.Sprintf(`Act as an expert event planner for "Tirupalappa Events".
Create a brief event plan for a %s.
Budget Level: %s.
Preferences: %s.

Provide a creative theme name, a list of 4 specific decoration/activity suggestions, and an estimated budget range in INR.
Respond with a JSON object with keys "theme" (string), "suggestions" (array of strings) and "estimatedBudgetRange" (string).`,
		req.EventType, req.Budget, req.Preferences)
}

func fallbackPlan() dto.PlanResponse {
	return dto.PlanResponse{
		Theme: "Classic Celebration (Offline Mode)",
		Suggestions: []string{
			"Standard Floral Decor",
			"Buffet Setup",
			"Welcome Drinks",
			"Light Music",
		},
		EstimatedBudgetRange: "Consult for price",
	}
}
