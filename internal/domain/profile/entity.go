package profile

import "time"

// Profile is the seller record. The marketplace core consumes it
// read-only: seller type drives the dealer-only availability rule and
// the denormalized seller reference copied onto listings.
type Profile struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	SellerType string    `json:"seller_type"`
	Verified   bool      `json:"verified"`
	CreatedAt  time.Time `json:"created_at"`
}
