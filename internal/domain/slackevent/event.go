package slackevent

import (
	"encoding/json"

	sonic "github.com/bytedance/sonic"
)

const (
	TypeURLVerification = "url_verification"
	TypeEventCallback   = "event_callback"
)

// Event is one of URLVerification, EventCallback or Unknown.
type Event interface {
	eventType() string
}

// URLVerification is the handshake Slack sends when the request URL is set.
type URLVerification struct {
	Challenge string
}

// EventCallback wraps a subscribed workspace event.
type EventCallback struct {
	TeamID    string
	APIAppID  string
	EventID   string
	EventTime int64
	Event     InnerEvent
}

// InnerEvent is the subset of a message event the bot acts on.
type InnerEvent struct {
	Type    string `json:"type"`
	Subtype string `json:"subtype,omitempty"`
	Text    string `json:"text"`
	Channel string `json:"channel"`
	User    string `json:"user,omitempty"`
	BotID   string `json:"bot_id,omitempty"`
	TS      string `json:"ts,omitempty"`
}

const SubtypeBotMessage = "bot_message"

// FromBot reports whether the message was posted by a bot or integration.
func (e InnerEvent) FromBot() bool {
	return e.BotID != "" || e.Subtype == SubtypeBotMessage
}

// Unknown carries any other payload, including undecodable bodies.
type Unknown struct {
	Type string
	Raw  []byte
}

func (URLVerification) eventType() string { return TypeURLVerification }
func (EventCallback) eventType() string   { return TypeEventCallback }
func (u Unknown) eventType() string       { return u.Type }

// TypeOf returns the wire discriminator for e.
func TypeOf(e Event) string {
	if e == nil {
		return ""
	}
	return e.eventType()
}

// Parse decodes a request body into one of the Event variants. It never
// returns an error: bodies that are not JSON objects become Unknown. The
// discriminator is read on its own so a malformed field elsewhere cannot
// turn a url_verification into an Unknown and skip the signature gate.
func Parse(body []byte) Event {
	var fields map[string]json.RawMessage
	if err := sonic.Unmarshal(body, &fields); err != nil {
		return Unknown{Raw: body}
	}

	var typ string
	decodeField(fields, "type", &typ)

	switch typ {
	case TypeURLVerification:
		var v URLVerification
		decodeField(fields, "challenge", &v.Challenge)
		return v
	case TypeEventCallback:
		var cb EventCallback
		decodeField(fields, "team_id", &cb.TeamID)
		decodeField(fields, "api_app_id", &cb.APIAppID)
		decodeField(fields, "event_id", &cb.EventID)
		decodeField(fields, "event_time", &cb.EventTime)
		decodeField(fields, "event", &cb.Event)
		return cb
	default:
		return Unknown{Type: typ, Raw: body}
	}
}

// decodeField leaves dst untouched when key is absent or has the wrong shape.
func decodeField(fields map[string]json.RawMessage, key string, dst any) {
	raw, ok := fields[key]
	if !ok {
		return
	}
	_ = sonic.Unmarshal(raw, dst)
}
