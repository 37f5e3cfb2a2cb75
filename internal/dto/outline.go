package dto

// OutlineDraftRequest asks the LLM provider for suggested outcomes and
// module titles based on pasted source material.
type OutlineDraftRequest struct {
	Client        string `json:"client"`
	Scope         string `json:"scope"`
	Text          string `json:"text" validate:"required"`
	MaxOutcomes   int    `json:"max_outcomes"`
	TargetModules int    `json:"target_modules"`
}

// OutlineDraftResponse mirrors the provider's structured suggestion.
type OutlineDraftResponse struct {
	Outcomes []string `json:"outcomes"`
	Modules  []string `json:"modules"`
	Notes    string   `json:"notes"`
}
