package dto

// HistoryMessageDTO is one prior conversation turn supplied by the
// client widget.
type HistoryMessageDTO struct {
	Role    string `json:"role" validate:"required,oneof=user assistant system"`
	Content string `json:"content" validate:"required"`
}

type SendChatRequest struct {
	Message string              `json:"message"`
	Image   string              `json:"image,omitempty" validate:"omitempty,uri"`
	History []HistoryMessageDTO `json:"history" validate:"max=50,dive"`
}

// SendChatResponse is the chat endpoint payload. Type selects how the
// widget renders it: plain text, the programme catalogue, or an
// embedded player/map.
type SendChatResponse struct {
	Response string                 `json:"response"`
	Type     string                 `json:"type"`
	Data     map[string]interface{} `json:"data,omitempty"`
	Scenario string                 `json:"scenario,omitempty"`
	Source   string                 `json:"source,omitempty"`
}

type HealthResponse struct {
	Status           string `json:"status"`
	Timestamp        string `json:"timestamp"`
	OpenAIConfigured bool   `json:"openai_configured"`
}
