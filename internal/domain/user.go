package domain

// Medicine is a single cart line item.
type Medicine struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Pharmacy is a user's preferred pharmacy, embedded in the user record.
type Pharmacy struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Contact  string `json:"contact"`
}

// Represents a registered user of the application.
// The cart and pharmacy sub-documents are stored with the user record and
// always written as a whole (single-document writes only).
type User struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	CNIC      string     `json:"cnic"`
	Contact   string     `json:"contact,omitempty"`
	Email     string     `json:"email"`
	Password  string     `json:"-"`
	IsPremium bool       `json:"is_premium"`
	Cart      []Medicine `json:"cart"`
	Pharmacy  *Pharmacy  `json:"pharmacy,omitempty"`
}
