package domain

import "time"

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

type SubmissionType string

const (
	SubmissionTypeNewMember            SubmissionType = "new_member"
	SubmissionTypeMemberUpdate         SubmissionType = "member_update"
	SubmissionTypePrimaryContactChange SubmissionType = "primary_contact_change"
)

// RegistrationUpdateRequest is an admin-reviewable proposal to change an
// organization's (or new applicant's) data. Rows are never deleted; resolved
// requests are the audit trail of who changed what.
type RegistrationUpdateRequest struct {
	ID                     string         `json:"id"`
	SubmittedEmail         string         `json:"submitted_email"`
	Status                 RequestStatus  `json:"status"`
	RegistrationData       map[string]any `json:"registration_data"`
	OrganizationData       map[string]any `json:"organization_data"`
	ExistingOrganizationID *string        `json:"existing_organization_id,omitempty"`
	SubmissionType         SubmissionType `json:"submission_type"`
	AdminNotes             *string        `json:"admin_notes,omitempty"`
	ReviewedBy             *string        `json:"reviewed_by,omitempty"`
	ReviewedAt             *time.Time     `json:"reviewed_at,omitempty"`
	CreatedOn              string         `json:"created_on"`
}

// PendingRegistration is a point-in-time snapshot of an Organization+Profile
// pair re-entering the new-registration approval queue. At most one row exists
// per email.
type PendingRegistration struct {
	ID             string         `json:"id"`
	Email          string         `json:"email"`
	ApprovalStatus RequestStatus  `json:"approval_status"`
	Data           map[string]any `json:"data"`
	CreatedOn      string         `json:"created_on"`
}
