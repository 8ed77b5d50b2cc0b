// Package sdk defines the JSON contract between the dialogue runtime and
// this action server: the action call the runtime POSTs, the events and
// responses returned, and the error body for rejected calls.
package sdk

// ActionCall is the body the runtime sends to the action endpoint.
// Only the fields the handler reads are decoded; the rest are ignored.
type ActionCall struct {
	NextAction string   `json:"next_action"`
	SenderID   string   `json:"sender_id"`
	Tracker    *Tracker `json:"tracker,omitempty"`
}

// Tracker is the conversation state snapshot attached to an action call.
type Tracker struct {
	SenderID      string   `json:"sender_id"`
	LatestMessage *Message `json:"latest_message,omitempty"`
}

// Message is the latest user message.
type Message struct {
	Text string `json:"text"`
}

// Text returns the latest user utterance. A missing tracker, message or text
// field yields the empty string rather than an error.
func (c *ActionCall) Text() string {
	if c == nil || c.Tracker == nil || c.Tracker.LatestMessage == nil {
		return ""
	}
	return c.Tracker.LatestMessage.Text
}

// Sender returns the conversation ID, preferring the top-level field.
func (c *ActionCall) Sender() string {
	if c == nil {
		return ""
	}
	if c.SenderID != "" {
		return c.SenderID
	}
	if c.Tracker != nil {
		return c.Tracker.SenderID
	}
	return ""
}
