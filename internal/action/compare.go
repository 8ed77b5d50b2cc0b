package action

import (
	"context"

	"github.com/vasptech/vaspx-actions/internal/catalog"
	"github.com/vasptech/vaspx-actions/internal/product"
)

// CompareProducts answers comparison questions from the set of products the
// utterance mentions.
type CompareProducts struct {
	responder
}

// NewCompareProducts creates the action_compare_products handler.
func NewCompareProducts(store *catalog.Store) *CompareProducts {
	return &CompareProducts{responder{store: store}}
}

// Name implements Action.
func (a *CompareProducts) Name() string { return CompareProductsName }

// Run implements Action.
func (a *CompareProducts) Run(_ context.Context, req Request) (Outcome, error) {
	mentions := product.DetectMentions(req.Normalized)
	return a.scanned(a.selectReply(mentions), catalog.Data{}, mentions)
}

// selectReply picks the comparison for two or more products, the follow-up
// suggestion for one, and the overview for none or for an unknown key.
func (a *CompareProducts) selectReply(mentions product.MentionSet) catalog.ID {
	switch {
	case mentions.Len() >= 2:
		if id := catalog.ComparisonID(mentions.Key()); a.has(id) {
			return id
		}
	case mentions.Len() == 1:
		only, _ := mentions.Single()
		if id := catalog.SuggestionID(only); a.has(id) {
			return id
		}
	}
	return catalog.Overview
}

func (a *CompareProducts) has(id catalog.ID) bool {
	_, ok := a.store.Text(id)
	return ok
}
