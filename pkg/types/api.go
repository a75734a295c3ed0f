package types

// AskRequest is the payload accepted by POST /api/ask.
type AskRequest struct {
	// Math question to forward to the model. The field must be present;
	// its content is passed through as-is.
	// example: Berapakah 2+2?
	Question *string `json:"question" example:"Berapakah 2+2?"`
}

// AskResponse is returned by POST /api/ask with HTTP 200.
// Exactly one of Answer or Error is set.
type AskResponse struct {
	// Final LaTeX expression with its delimiters stripped.
	// example: 4
	Answer string `json:"answer,omitempty" example:"4"`
	// Human-readable diagnostic (Indonesian) when no answer could be produced.
	// example: Permintaan ke Ollama habis waktu. Model mungkin membutuhkan waktu lebih lama untuk merespons.
	Error string `json:"error,omitempty"`
}

// ErrorResponse is a consistent JSON error payload for malformed requests.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}
