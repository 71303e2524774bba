package listing

// CreateRequest carries the listing form as the user typed it. Numeric
// fields stay strings until validation so a malformed value produces a
// field error instead of a bind failure; select fields arrive as display
// labels and are mapped to stored values by the submission pipeline.
type CreateRequest struct {
	Title        string   `json:"title"`
	Category     string   `json:"category"`
	Brand        string   `json:"brand"`
	Model        string   `json:"model"`
	Year         string   `json:"year"`
	Mileage      string   `json:"mileage"`
	Engine       string   `json:"engine"`
	Fuel         string   `json:"fuel"`
	Transmission string   `json:"transmission"`
	Color        string   `json:"color"`
	Condition    string   `json:"condition"`
	Price        string   `json:"price"`
	Location     string   `json:"location"`
	Description  string   `json:"description"`
	Features     []string `json:"features"`
	Phone        string   `json:"phone"`
	Email        string   `json:"email"`
	Availability string   `json:"availability"`
}

// Patch is the editable subset applied on update. Status is set by the
// submission pipeline (back to pending on edit), never by the client.
type Patch struct {
	Title          string       `json:"title"`
	Category       string       `json:"category"`
	Brand          string       `json:"brand"`
	Model          string       `json:"model"`
	Year           int          `json:"year"`
	Mileage        int          `json:"mileage"`
	EngineCapacity int          `json:"engine_capacity"`
	FuelType       string       `json:"fuel_type"`
	Transmission   string       `json:"transmission"`
	Color          string       `json:"color"`
	Condition      string       `json:"condition"`
	Price          float64      `json:"price"`
	Location       string       `json:"location"`
	Description    string       `json:"description"`
	Features       []string     `json:"features"`
	Images         []string     `json:"images"`
	Availability   Availability `json:"availability"`
	Status         Status       `json:"status"`
}
