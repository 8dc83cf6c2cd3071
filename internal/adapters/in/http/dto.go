package http

import "time"

// Error is the uniform error body returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewParcel is the request body for booking a parcel.
type NewParcel struct {
	Sender          string  `json:"sender"`
	Recipient       string  `json:"recipient"`
	PickupAddress   string  `json:"pickupAddress"`
	DeliveryAddress string  `json:"deliveryAddress"`
	WeightKg        float64 `json:"weightKg"`
	Category        string  `json:"category"`
	Priority        string  `json:"priority"`
	PaymentMethod   string  `json:"paymentMethod"`
	CodAmount       float64 `json:"codAmount,omitempty"`
	Amount          float64 `json:"amount"`
}

// ParcelCreated is returned after a successful booking.
type ParcelCreated struct {
	TrackingNumber string `json:"trackingNumber"`
}

// Parcel is the list representation of a parcel.
type Parcel struct {
	ID             string    `json:"id"`
	TrackingNumber string    `json:"trackingNumber"`
	Sender         string    `json:"sender"`
	Recipient      string    `json:"recipient"`
	Status         string    `json:"status"`
	Priority       string    `json:"priority"`
	AgentID        *string   `json:"agentId,omitempty"`
	Amount         float64   `json:"amount"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ParcelProgress is the customer-facing tracking view.
type ParcelProgress struct {
	TrackingNumber  string    `json:"trackingNumber"`
	Sender          string    `json:"sender"`
	Recipient       string    `json:"recipient"`
	DeliveryAddress string    `json:"deliveryAddress"`
	Status          string    `json:"status"`
	Priority        string    `json:"priority"`
	RequiresCOD     bool      `json:"requiresCod"`
	CodAmount       float64   `json:"codAmount"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ParcelStats carries the dashboard counters.
type ParcelStats struct {
	PendingCount     int     `json:"pendingCount"`
	AssignedCount    int     `json:"assignedCount"`
	PickedUpCount    int     `json:"pickedUpCount"`
	InTransitCount   int     `json:"inTransitCount"`
	DeliveredCount   int     `json:"deliveredCount"`
	FailedCount      int     `json:"failedCount"`
	DeliveredRevenue float64 `json:"deliveredRevenue"`
	OutstandingCod   float64 `json:"outstandingCod"`
}

// NewAgent is the request body for registering a delivery agent.
type NewAgent struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	VehicleType  string `json:"vehicleType"`
	VehicleModel string `json:"vehicleModel"`
	MaxActive    int    `json:"maxActive"`
}

// Agent is the fleet view of a delivery agent.
type Agent struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	Phone               string  `json:"phone"`
	VehicleType         string  `json:"vehicleType"`
	VehicleModel        string  `json:"vehicleModel"`
	Availability        string  `json:"availability"`
	ActiveDeliveries    int     `json:"activeDeliveries"`
	MaxActive           int     `json:"maxActive"`
	CompletedDeliveries int     `json:"completedDeliveries"`
	Rating              float64 `json:"rating"`
}

// AssignRequest names the agent for a manual assignment or reassignment.
type AssignRequest struct {
	AgentID string `json:"agentId"`
}

// CompleteRequest closes out a delivery attempt.
type CompleteRequest struct {
	Delivered bool `json:"delivered"`
}

// StatusRequest moves a parcel along its lifecycle.
type StatusRequest struct {
	Status string `json:"status"`
}

// AvailabilityRequest changes an agent's duty state.
type AvailabilityRequest struct {
	Availability string `json:"availability"`
}
