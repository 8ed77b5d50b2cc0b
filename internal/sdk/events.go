package sdk

import "fmt"

// EventSlot is the event type of a slot update.
const EventSlot = "slot"

// Event is a tracker event returned to the runtime. Only slot updates are emitted.
type Event struct {
	Event     string   `json:"event"`
	Timestamp *float64 `json:"timestamp"`
	Name      string   `json:"name,omitempty"`
	Value     any      `json:"value,omitempty"`
}

// SlotSet builds a slot-update event. The runtime stamps the timestamp.
func SlotSet(name string, value any) Event {
	return Event{Event: EventSlot, Name: name, Value: value}
}

func (e Event) String() string {
	return fmt.Sprintf("%s(%s=%v)", e.Event, e.Name, e.Value)
}

// Response is one outgoing bot message. Fields other than Text are always
// present so the runtime's dispatcher sees the shape it expects.
type Response struct {
	Text       string         `json:"text"`
	Buttons    []any          `json:"buttons"`
	Elements   []any          `json:"elements"`
	Custom     map[string]any `json:"custom"`
	Template   *string        `json:"template"`
	Response   *string        `json:"response"`
	Image      *string        `json:"image"`
	Attachment *string        `json:"attachment"`
}

// TextResponse builds a plain text message.
func TextResponse(text string) Response {
	return Response{
		Text:     text,
		Buttons:  []any{},
		Elements: []any{},
		Custom:   map[string]any{},
	}
}

// ActionResult is the success body of an action call.
type ActionResult struct {
	Events    []Event    `json:"events"`
	Responses []Response `json:"responses"`
}

// NewActionResult returns a result with non-nil slices so they encode as [].
func NewActionResult() *ActionResult {
	return &ActionResult{
		Events:    []Event{},
		Responses: []Response{},
	}
}

// ErrorBody is returned with a non-2xx status when a call is rejected.
type ErrorBody struct {
	Error      string `json:"error"`
	ActionName string `json:"action_name"`
}

// ActionInfo is one entry of the action listing.
type ActionInfo struct {
	Name string `json:"name"`
}

// UnknownActionMessage is the error text for an unregistered action name.
func UnknownActionMessage(name string) string {
	return fmt.Sprintf("No registered action found for name '%s'.", name)
}
