package model

type CalculationRequest struct {
	RequestID string      `json:"request_id,omitempty"`
	Policy    PolicyInput `json:"policy"`
}

type LetterRequest struct {
	Policy PolicyInput `json:"policy"`
}
