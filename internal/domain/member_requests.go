package domain

// Invitation is a pending invite for an additional portal user at a member
// organization.
type Invitation struct {
	ID             string `json:"id"`
	OrganizationID string `json:"organization_id"`
	Email          string `json:"email"`
	Token          string `json:"token"`
	CreatedOn      string `json:"created_on"`
}

// TransferRequest asks to move primary-contact ownership to another person.
type TransferRequest struct {
	ID             string `json:"id"`
	OrganizationID string `json:"organization_id"`
	FromEmail      string `json:"from_email"`
	ToEmail        string `json:"to_email"`
	Status         string `json:"status"`
	CreatedOn      string `json:"created_on"`
}

// ReassignmentRequest asks to reassign an organization to a different
// portal account.
type ReassignmentRequest struct {
	ID             string `json:"id"`
	OrganizationID string `json:"organization_id"`
	RequestedBy    string `json:"requested_by"`
	Status         string `json:"status"`
	CreatedOn      string `json:"created_on"`
}
