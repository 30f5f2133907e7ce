package dto

type GeneratePlanRequest struct {
	EventType   string `json:"event_type"  validate:"required,max=100"`
	Budget      string `json:"budget"      validate:"required,oneof=Low Medium High"`
	Preferences string `json:"preferences" validate:"omitempty,max=500"`
}

type PlanResponse struct {
	Theme                string   `json:"theme"`
	Suggestions          []string `json:"suggestions"`
	EstimatedBudgetRange string   `json:"estimatedBudgetRange"`
}
