package domain

// Profile is the contact-person identity linked to an Organization via the
// organization's contact_person_id.
type Profile struct {
	ID               string `json:"id"`
	UserID           string `json:"user_id"` // identity provider uid
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Title            string `json:"title"`
	OrganizationName string `json:"organization_name"`
	CreatedOn        string `json:"created_on"`
}

type UserRole struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}
