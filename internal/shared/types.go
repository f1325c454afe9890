package shared

// Task type names and queues shared between the API (enqueue side) and
// the worker (handler side).
const (
	TypeSendClaimEmail = "email:order_claim"
	TypeExpireBanners  = "banner:expire"

	QueueEmail       = "email"
	QueueMaintenance = "maintenance"
)

// OrderClaimEmailPayload is the task payload for the order confirmation
// email carrying the pickup claim code.
type OrderClaimEmailPayload struct {
	Email     string `json:"email"`
	FullName  string `json:"fullName"`
	OrderID   int    `json:"orderId"`
	ClaimCode string `json:"claimCode"`
	Total     string `json:"total"`
}
