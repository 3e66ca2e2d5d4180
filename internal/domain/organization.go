package domain

type MembershipStatus string

const (
	MembershipStatusActive    MembershipStatus = "active"
	MembershipStatusPending   MembershipStatus = "pending"
	MembershipStatusExpired   MembershipStatus = "expired"
	MembershipStatusCancelled MembershipStatus = "cancelled"
)

// Organization is a member institution's record. contact_person_id links the
// primary contact Profile; it is nullable because imported legacy rows predate
// the profiles table.
type Organization struct {
	ID              string           `json:"id"`
	Name            string           `json:"org_name"`
	Address         string           `json:"address"`
	City            string           `json:"city"`
	State           string           `json:"state"`
	Zip             string           `json:"zip"`
	Phone           string           `json:"phone"`
	Website         string           `json:"website"`
	InstitutionType string           `json:"institution_type"`
	StudentFTE      int32            `json:"student_fte"`
	AnnualFeeCents  int64            `json:"annual_fee_cents"`
	Status          MembershipStatus `json:"membership_status"`
	MemberSince     string           `json:"member_since"`
	RenewalDate     string           `json:"renewal_date"`

	// Software system choices
	ERPSystem string `json:"erp_system"`
	SISSystem string `json:"sis_system"`
	CRMSystem string `json:"crm_system"`
	LMSSystem string `json:"lms_system"`

	// Hardware flags
	OnPremServers bool `json:"on_prem_servers"`
	ManagedWifi   bool `json:"managed_wifi"`
	ClassroomAV   bool `json:"classroom_av"`

	ContactPersonID *string `json:"contact_person_id,omitempty"`
	CreatedOn       string  `json:"created_on"`
}
