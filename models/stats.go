package models

// UserHomeStats is the member dashboard composite
type UserHomeStats struct {
	CustomRequests  []CustomRequest `json:"customRequests"`
	PendingRequests []Request       `json:"pendingRequests"`
	MonthlyRequests []Request       `json:"monthlyRequests"`
	MostRequested   []Asset         `json:"mostRequested"`
}

// AdminHomeStats is the admin dashboard composite
type AdminHomeStats struct {
	PendingRequests    []Request `json:"pendingRequests"`
	TopRequestedItems  []Asset   `json:"topRequestedItems"`
	LimitedStockItems  []Asset   `json:"limitedStockItems"`
	ReturnableItems    int64     `json:"returnableItems"`
	NonReturnableItems int64     `json:"nonReturnableItems"`
}

// Feed event types
const (
	EventRequestCreated        = "request_created"
	EventRequestApproved       = "request_approved"
	EventRequestRejected       = "request_rejected"
	EventCustomRequestCreated  = "custom_request_created"
	EventCustomRequestApproved = "custom_request_approved"
	EventCustomRequestRejected = "custom_request_rejected"
)

// Event is pushed to the company feed when a request changes
type Event struct {
	Type    string      `json:"type"`
	Company string      `json:"company"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
