package models

type VerifyRequest struct {
	SessionID string `json:"sessionId"`
}

type VerifyResponse struct {
	Paid       bool              `json:"paid"`
	Amount     *float64          `json:"amount,omitempty"`
	CustomerID *string           `json:"customerId,omitempty"`
	Status     string            `json:"status,omitempty"`
	Metadata   map[string]string `json:"metadata"`
	Success    bool              `json:"success"`
}
