package models

const (
	CheckoutTypePackage         = "package"
	CheckoutTypeActivityUpgrade = "activity_upgrade"
)

type CartItem struct {
	Title    string   `json:"title"`
	Quantity *float64 `json:"quantity,omitempty"`
	Price    *float64 `json:"price,omitempty"`
}

type CheckoutRequest struct {
	UserID    string     `json:"userId"`
	Amount    *float64   `json:"amount,omitempty"`
	Items     []CartItem `json:"items,omitempty"`
	Type      string     `json:"type,omitempty"`
	PackageID string     `json:"packageId,omitempty"`
}

type CheckoutResponse struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"timestamp"`
	Success   bool   `json:"success"`
}
