package models

// ContactMessage is appended by the public contact form and only ever read by the admin.
type ContactMessage struct {
	Base    `bson:",inline"`
	Name    string `json:"name" bson:"name"`
	Email   string `json:"email" bson:"email"`
	Subject string `json:"subject" bson:"subject"`
	Message string `json:"message" bson:"message"`
	Read    bool   `json:"read" bson:"read"`
}

func (ContactMessage) Kind() string { return "contact_message" }
func (m ContactMessage) Missing() []string {
	return missing("name", m.Name, "email", m.Email, "subject", m.Subject, "message", m.Message)
}

// ContactRequest is the public form payload.
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// MessageResponse is the generic acknowledgement body.
type MessageResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
