package models

// ShippingForm holds the shipping details collected during checkout. The
// same shape is cached for shoppers who opt in to "save my information".
type ShippingForm struct {
	FirstName  string `json:"first_name" validate:"required"`
	LastName   string `json:"last_name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required"`
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required"`
	Occupation string `json:"occupation" validate:"required"`
}

// FullName joins first and last name.
func (f ShippingForm) FullName() string {
	switch {
	case f.FirstName == "":
		return f.LastName
	case f.LastName == "":
		return f.FirstName
	}
	return f.FirstName + " " + f.LastName
}
