package listing

import "time"

// Status is the moderation state of a listing. New listings always start
// in StatusPending and become publicly visible only after an admin
// approves them.
type Status string

const (
	StatusPending  Status = "pending"
	StatusActive   Status = "active"
	StatusRejected Status = "rejected"
	StatusSold     Status = "sold"
)

// ValidStatus reports whether s is one of the four moderation states.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusActive, StatusRejected, StatusSold:
		return true
	}
	return false
}

// Availability only carries meaning for dealer listings.
type Availability string

const (
	AvailabilityInStock Availability = "pe_stoc"
	AvailabilityOnOrder Availability = "la_comanda"
)

// Seller types as stored on the denormalized seller reference.
const (
	SellerTypeDealer     = "dealer"
	SellerTypeIndividual = "individual"
)

type Listing struct {
	ID             string       `json:"id"`
	Title          string       `json:"title"`
	Brand          string       `json:"brand"`
	Model          string       `json:"model"`
	Category       string       `json:"category"`
	Color          string       `json:"color"`
	Description    string       `json:"description"`
	Price          float64      `json:"price"`
	Year           int          `json:"year"`
	Mileage        int          `json:"mileage"`
	EngineCapacity int          `json:"engine_capacity"`
	FuelType       string       `json:"fuel_type"`
	Transmission   string       `json:"transmission"`
	Condition      string       `json:"condition"`
	Features       []string     `json:"features"`
	Images         []string     `json:"images"`
	Location       string       `json:"location"`
	Availability   Availability `json:"availability,omitempty"`
	Status         Status       `json:"status"`
	SellerID       string       `json:"seller_id"`
	SellerName     string       `json:"seller_name"`
	SellerType     string       `json:"seller_type"`
	Phone          string       `json:"phone"`
	Email          string       `json:"email"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}
