package models

type CancellationRequest struct {
	UserID    string `json:"userId"`
	Timestamp any    `json:"timestamp"`
}

type CancellationResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	UserID    string `json:"userId"`
	Timestamp any    `json:"timestamp"`
}
