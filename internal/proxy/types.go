package proxy

import "encoding/json"

// DefaultModel is substituted when the inbound request carries no model.
const DefaultModel = "gpt-4o"

// ChatRequest is the inbound chat-completion payload. Model and Messages
// hold the raw JSON values so anything the caller sent passes through
// untouched; nil means the field was absent. Fields beyond these two are
// dropped at forward time.
type ChatRequest struct {
	Model    json.RawMessage
	Messages json.RawMessage
}

func (r *ChatRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if v, ok := raw["model"]; ok {
		r.Model = v
	}
	if v, ok := raw["messages"]; ok {
		r.Messages = v
	}
	return nil
}

// ForwardBody returns the exact JSON object sent upstream: model and
// messages only, with defaults for absent fields. A present field of any
// JSON type, including null, is forwarded as-is.
func (r ChatRequest) ForwardBody() []byte {
	model := r.Model
	if model == nil {
		model, _ = json.Marshal(DefaultModel)
	}
	messages := r.Messages
	if messages == nil {
		messages = json.RawMessage(`[]`)
	}
	body, _ := json.Marshal(struct {
		Model    json.RawMessage `json:"model"`
		Messages json.RawMessage `json:"messages"`
	}{model, messages})
	return body
}

// ModelLabel returns the resolved model for log lines: bare text for JSON
// strings, the raw JSON otherwise. A JSON null must stay "null", so only
// quoted values are decoded.
func (r ChatRequest) ModelLabel() string {
	if r.Model == nil {
		return DefaultModel
	}
	if len(r.Model) > 0 && r.Model[0] == '"' {
		var s string
		if err := json.Unmarshal(r.Model, &s); err == nil {
			return s
		}
	}
	return string(r.Model)
}
