package action

import (
	"context"
	"strings"

	"github.com/vasptech/vaspx-actions/internal/catalog"
	"github.com/vasptech/vaspx-actions/internal/product"
)

// FallbackWithContext answers anything no other action claimed. It always
// sends exactly one message.
type FallbackWithContext struct {
	responder
}

// NewFallbackWithContext creates the action_fallback_with_context handler.
func NewFallbackWithContext(store *catalog.Store) *FallbackWithContext {
	return &FallbackWithContext{responder{store: store}}
}

// Name implements Action.
func (a *FallbackWithContext) Name() string { return FallbackWithContextName }

// Run implements Action. Checks run in priority order and the first match wins.
func (a *FallbackWithContext) Run(_ context.Context, req Request) (Outcome, error) {
	text := req.Normalized

	switch {
	case containsAny(text, careerKeywords):
		return a.single(catalog.FallbackCareer, catalog.Data{})
	case containsAny(text, purchaseKeywords):
		return a.single(catalog.FallbackPurchase, catalog.Data{})
	case containsAny(text, supportKeywords) && !containsAny(text, brandKeywords):
		return a.single(catalog.FallbackOutOfScope, catalog.Data{})
	}

	mentions := product.DetectMentions(text)
	if mentions.Empty() {
		return a.scanned(catalog.FallbackMenu, catalog.Data{}, mentions)
	}
	data := catalog.Data{Products: strings.Join(mentions.DisplayNames(), ", ")}
	return a.scanned(catalog.FallbackProducts, data, mentions)
}
