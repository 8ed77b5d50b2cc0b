package action

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/vasptech/vaspx-actions/internal/catalog"
	"github.com/vasptech/vaspx-actions/internal/product"
)

var schoolPair = product.NewMentionSet(product.Ednect, product.Desalite)

// IntelligentResponse handles multi-product and "all features" questions and
// stays silent otherwise so the runtime's default flow can answer.
type IntelligentResponse struct {
	responder
}

// NewIntelligentResponse creates the action_intelligent_response handler.
func NewIntelligentResponse(store *catalog.Store) *IntelligentResponse {
	return &IntelligentResponse{responder{store: store}}
}

// Name implements Action.
func (a *IntelligentResponse) Name() string { return IntelligentResponseName }

// Run implements Action. An empty outcome is the expected result for most input.
func (a *IntelligentResponse) Run(_ context.Context, req Request) (Outcome, error) {
	mentions := product.DetectMentions(req.Normalized)

	if mentions.Len() > 1 {
		if mentions.Equal(schoolPair) {
			return a.scanned(catalog.IntelligentSchoolPair, catalog.Data{}, mentions)
		}
		return a.scanned(catalog.IntelligentMultiProduct, catalog.Data{Products: upperList(mentions)}, mentions)
	}

	if containsAny(req.Normalized, aggregateKeywords) && containsAny(req.Normalized, featureKeywords) {
		return a.scanned(catalog.IntelligentFeatures, catalog.Data{}, mentions)
	}

	return Outcome{Mentions: mentions, Scanned: true}, nil
}

// upperList renders the mentioned identifiers upper-cased in detection order.
func upperList(mentions product.MentionSet) string {
	upper := cases.Upper(language.Und)
	ids := mentions.IDs()
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = upper.String(string(id))
	}
	return strings.Join(parts, ", ")
}
