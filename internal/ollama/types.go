package ollama

import "encoding/json"

// GenerateRequest is the payload for POST /api/generate.
type GenerateRequest struct {
	Model   string  `json:"model"`
	Prompt  string  `json:"prompt"`
	Stream  bool    `json:"stream"`
	Options Options `json:"options"`
}

// Options carries sampling parameters understood by Ollama.
type Options struct {
	Stop        []string `json:"stop,omitempty"`
	Temperature float64  `json:"temperature"`
}

// GenerateResponse holds the subset of the /api/generate (or chat-shaped)
// payload the service reads. Everything else in the body is ignored.
// Pointer fields distinguish absent from empty; done and done_reason are kept
// raw so an unexpected type in a hint never fails decoding.
type GenerateResponse struct {
	Response   *string         `json:"response,omitempty"`
	Message    *ChatMessage    `json:"message,omitempty"`
	Done       json.RawMessage `json:"done,omitempty"`
	DoneReason json.RawMessage `json:"done_reason,omitempty"`
}

// ChatMessage is the nested message object of chat-shaped responses.
type ChatMessage struct {
	Content *string `json:"content,omitempty"`
}

// Content returns the generated text. A present response field is authoritative,
// even when empty; message.content is only consulted when response is absent.
// ok is false when the selected field holds no text.
func (r GenerateResponse) Content() (text string, ok bool) {
	switch {
	case r.Response != nil:
		text = *r.Response
	case r.Message != nil && r.Message.Content != nil:
		text = *r.Message.Content
	}
	return text, text != ""
}

// IsDone reports whether the backend flagged the generation as finished.
// Any JSON truthy value counts.
func (r GenerateResponse) IsDone() bool { return truthy(r.Done) }

// LoadedOnly reports whether the backend only loaded the model (done_reason "load").
func (r GenerateResponse) LoadedOnly() bool {
	var reason string
	if err := json.Unmarshal(r.DoneReason, &reason); err != nil {
		return false
	}
	return reason == "load"
}

func truthy(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return false
	}
}
