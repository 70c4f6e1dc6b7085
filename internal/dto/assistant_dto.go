package dto

import "time"

// AssistantMessageRequest carries a chat message typed by the student.
type AssistantMessageRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

// AssistantMessageResponse is one transcript line.
type AssistantMessageResponse struct {
	ID        uint      `json:"id"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Fallback  bool      `json:"fallback"`
	CreatedAt time.Time `json:"created_at"`
}

// AssistantExchangeResponse is the user message and the single model reply appended for it.
type AssistantExchangeResponse struct {
	UserMessage  AssistantMessageResponse `json:"user_message"`
	ModelMessage AssistantMessageResponse `json:"model_message"`
}
