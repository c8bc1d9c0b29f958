package domain

// Field names one input of the inquiry form. Values double as the HTML form
// keys and the JSON payload keys.
type Field string

const (
	FieldName       Field = "name"
	FieldPhone      Field = "phone"
	FieldEmail      Field = "email"
	FieldProductID  Field = "product_id"
	FieldQuantityKg Field = "quantity_kg"
	FieldMessage    Field = "message"
)

// Fields lists the form inputs in display order.
func Fields() []Field {
	return []Field{FieldName, FieldPhone, FieldEmail, FieldProductID, FieldQuantityKg, FieldMessage}
}

func (f Field) Required() bool {
	return f == FieldName || f == FieldPhone
}

// InquiryForm holds the raw text of every input, exactly as typed.
type InquiryForm struct {
	Name       string
	Phone      string
	Email      string
	ProductID  string
	QuantityKg string
	Message    string
}

func (f InquiryForm) Get(field Field) string {
	switch field {
	case FieldName:
		return f.Name
	case FieldPhone:
		return f.Phone
	case FieldEmail:
		return f.Email
	case FieldProductID:
		return f.ProductID
	case FieldQuantityKg:
		return f.QuantityKg
	case FieldMessage:
		return f.Message
	}
	return ""
}

// Set returns false for an unknown field.
func (f *InquiryForm) Set(field Field, value string) bool {
	switch field {
	case FieldName:
		f.Name = value
	case FieldPhone:
		f.Phone = value
	case FieldEmail:
		f.Email = value
	case FieldProductID:
		f.ProductID = value
	case FieldQuantityKg:
		f.QuantityKg = value
	case FieldMessage:
		f.Message = value
	default:
		return false
	}
	return true
}

func (f InquiryForm) IsEmpty() bool {
	return f == InquiryForm{}
}
