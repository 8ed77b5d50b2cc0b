package action

import (
	"context"

	"github.com/vasptech/vaspx-actions/internal/product"
)

// ExtractContext records the product and institute type the user is talking
// about. It never sends a message.
type ExtractContext struct{}

// NewExtractContext creates the action_extract_context handler.
func NewExtractContext() *ExtractContext {
	return &ExtractContext{}
}

// Name implements Action.
func (a *ExtractContext) Name() string { return ExtractContextName }

// Run implements Action. At most one product_name and one institute_type
// update is proposed, whatever the utterance mentions.
func (a *ExtractContext) Run(_ context.Context, req Request) (Outcome, error) {
	out := Outcome{
		Mentions: product.DetectMentions(req.Normalized),
		Scanned:  true,
	}

	if id, ok := product.FirstMention(req.Normalized); ok {
		out.Slots = append(out.Slots, SlotUpdate{Name: SlotProductName, Value: string(id)})
	}
	if kind, ok := firstOf(req.Normalized, instituteKeywords); ok {
		out.Slots = append(out.Slots, SlotUpdate{Name: SlotInstituteType, Value: kind})
	}

	return out, nil
}
