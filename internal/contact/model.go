package contact

// Request is the contact form payload. Name fields accept letters
// (including accented) and spaces only.
type Request struct {
	FirstName string `json:"firstName" validate:"required,max=50,namechars"`
	LastName  string `json:"lastName" validate:"required,max=50,namechars"`
	Email     string `json:"email" validate:"required,email"`
	Subject   string `json:"subject" validate:"required,max=200"`
	Message   string `json:"message" validate:"required,min=10,max=1000"`
}

type sentResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}
