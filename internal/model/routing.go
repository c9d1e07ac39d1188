package model

type RouteMethod string

const (
	RouteMethodEmail  RouteMethod = "email"
	RouteMethodPortal RouteMethod = "portal"
)

// IOUser is an investigation officer eligible for portal-based routing.
type IOUser struct {
	ID     int    `json:"id"`
	Email  string `json:"email"`
	Office string `json:"office,omitempty"`
}

// RouteRequest is the payload forwarded to route_via_email / route_via_portal.
type RouteRequest struct {
	ComplaintID string      `json:"complaint_id"`
	Method      RouteMethod `json:"method"`
	Recipient   string      `json:"recipient"`
	Message     string      `json:"message"`
}

// RouteHistoryItem is one prior routing attempt, as returned by the portal
// (newest first).
type RouteHistoryItem struct {
	ID        int         `json:"id"`
	Method    RouteMethod `json:"method"`
	Recipient string      `json:"recipient"`
	Office    string      `json:"office,omitempty"`
	Date      string      `json:"date"`
	Message   string      `json:"message"`
	Status    string      `json:"status"`
}
