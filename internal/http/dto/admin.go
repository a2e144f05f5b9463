package dto

type CreateBaristaRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ValidationErrorResponse struct {
	Error         string   `json:"error"`
	Fields        []string `json:"fields"`
	CorrelationID string   `json:"correlationId,omitempty"`
}
