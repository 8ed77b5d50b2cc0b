package action

import (
	"context"

	"github.com/vasptech/vaspx-actions/internal/catalog"
)

// ProvideRecommendation pitches the product matching the user's industry.
type ProvideRecommendation struct {
	responder
}

// NewProvideRecommendation creates the action_provide_recommendation handler.
func NewProvideRecommendation(store *catalog.Store) *ProvideRecommendation {
	return &ProvideRecommendation{responder{store: store}}
}

// Name implements Action.
func (a *ProvideRecommendation) Name() string { return ProvideRecommendationName }

// Run implements Action. Education is checked before logistics before storage.
func (a *ProvideRecommendation) Run(_ context.Context, req Request) (Outcome, error) {
	text := req.Normalized

	switch {
	case containsAny(text, educationKeywords):
		return a.single(catalog.RecommendEducation, catalog.Data{})
	case containsAny(text, logisticsKeywords):
		return a.single(catalog.RecommendLogistics, catalog.Data{})
	case containsAny(text, storageKeywords):
		return a.single(catalog.RecommendStorage, catalog.Data{})
	default:
		return a.single(catalog.RecommendAskIndustry, catalog.Data{})
	}
}
