// Package action implements the custom actions the dialogue runtime invokes
// by name. Every action reads the latest utterance, picks canned replies from
// the catalog and may propose slot updates; none of them keep state between
// calls.
package action

import (
	"context"

	"github.com/vasptech/vaspx-actions/internal/catalog"
	"github.com/vasptech/vaspx-actions/internal/product"
	"github.com/vasptech/vaspx-actions/internal/sdk"
)

// Action names registered with the dialogue runtime.
const (
	CompareProductsName       = "action_compare_products"
	IntelligentResponseName   = "action_intelligent_response"
	ExtractContextName        = "action_extract_context"
	FallbackWithContextName   = "action_fallback_with_context"
	ProvideRecommendationName = "action_provide_recommendation"
)

// Slot names and institute types understood by the runtime's domain.
const (
	SlotProductName   = "product_name"
	SlotInstituteType = "institute_type"

	InstituteSchool     = "school"
	InstituteCollege    = "college"
	InstituteUniversity = "university"
)

// Action is one named handler.
type Action interface {
	// Name is the wire name the runtime dispatches on.
	Name() string

	// Run computes the replies and slot updates for one utterance. Unmatched
	// input is an ordinary branch with its own reply, not an error; an error
	// means the catalog could not produce a reply.
	Run(ctx context.Context, req Request) (Outcome, error)
}

// Request is the input of an action call.
type Request struct {
	// Text is the utterance as received. Missing text is the empty string.
	Text string

	// Normalized is Text after product.Normalize.
	Normalized string

	// Sender identifies the conversation.
	Sender string
}

// NewRequest builds a request for text, normalizing it once.
func NewRequest(text string) Request {
	return Request{
		Text:       text,
		Normalized: product.Normalize(text),
	}
}

// Reply is one outgoing message and the catalog entry it came from.
type Reply struct {
	Template catalog.ID
	Text     string
}

// SlotUpdate asks the runtime to set a slot.
type SlotUpdate struct {
	Name  string
	Value string
}

// Outcome is the result of running an action.
type Outcome struct {
	Replies []Reply
	Slots   []SlotUpdate

	// Mentions is the product set found in the utterance. Meaningful only
	// when Scanned is set; reported as metrics only.
	Mentions product.MentionSet

	// Scanned is set when the action ran product detection on the utterance.
	Scanned bool
}

// Result converts the outcome into the body returned to the runtime.
func (o Outcome) Result() *sdk.ActionResult {
	result := sdk.NewActionResult()
	for _, s := range o.Slots {
		result.Events = append(result.Events, sdk.SlotSet(s.Name, s.Value))
	}
	for _, r := range o.Replies {
		result.Responses = append(result.Responses, sdk.TextResponse(r.Text))
	}
	return result
}

// responder looks up replies in the catalog. Embedded by every action.
type responder struct {
	store *catalog.Store
}

func (r responder) reply(id catalog.ID) (Reply, error) {
	return r.render(id, catalog.Data{})
}

func (r responder) render(id catalog.ID, data catalog.Data) (Reply, error) {
	text, err := r.store.Render(id, data)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Template: id, Text: text}, nil
}

// single wraps one reply into an outcome.
func (r responder) single(id catalog.ID, data catalog.Data) (Outcome, error) {
	reply, err := r.render(id, data)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Replies: []Reply{reply}}, nil
}

// scanned is single for actions that ran product detection.
func (r responder) scanned(id catalog.ID, data catalog.Data, mentions product.MentionSet) (Outcome, error) {
	out, err := r.single(id, data)
	if err != nil {
		return Outcome{}, err
	}
	out.Mentions, out.Scanned = mentions, true
	return out, nil
}
