package dto

// InquiryPayload is the body of POST /api/inquiries. Text fields are sent as
// typed; QuantityKg is left out entirely when the form field was blank.
type InquiryPayload struct {
	Name       string   `json:"name"`
	Phone      string   `json:"phone"`
	Email      string   `json:"email"`
	ProductID  string   `json:"product_id"`
	QuantityKg *float64 `json:"quantity_kg,omitempty"`
	Message    string   `json:"message"`
}
