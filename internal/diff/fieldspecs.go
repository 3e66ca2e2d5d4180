package diff

// Category names used to group change entries for admin review.
const (
	CategoryOrganization    = "Organization"
	CategoryContact         = "Primary Contact"
	CategorySoftwareSystems = "Software Systems"
	CategoryHardware        = "Hardware"
)

// OrganizationFields are the comparable organization-record fields. The keys
// match the column/JSON names in the store and must not be renamed.
var OrganizationFields = []FieldSpec{
	{Key: "org_name", Label: "Organization Name", Type: TypeText},
	{Key: "address", Label: "Address", Type: TypeText},
	{Key: "city", Label: "City", Type: TypeText},
	{Key: "state", Label: "State", Type: TypeText},
	{Key: "zip", Label: "ZIP Code", Type: TypeText},
	{Key: "phone", Label: "Phone", Type: TypePhone},
	{Key: "website", Label: "Website", Type: TypeText},
	{Key: "institution_type", Label: "Institution Type", Type: TypeBadge},
	{Key: "student_fte", Label: "Student FTE", Type: TypeText},
	{Key: "annual_fee", Label: "Annual Fee", Type: TypeCurrency},
	{Key: "membership_status", Label: "Membership Status", Type: TypeBadge},
}

var ContactFields = []FieldSpec{
	{Key: "first_name", Label: "First Name", Type: TypeText},
	{Key: "last_name", Label: "Last Name", Type: TypeText},
	{Key: "title", Label: "Title", Type: TypeText},
	{Key: "email", Label: "Email", Type: TypeEmail},
	{Key: "contact_phone", Label: "Contact Phone", Type: TypePhone},
}

var SoftwareSystemFields = []FieldSpec{
	{Key: "erp_system", Label: "ERP System", Type: TypeBadge},
	{Key: "sis_system", Label: "SIS System", Type: TypeBadge},
	{Key: "crm_system", Label: "CRM System", Type: TypeBadge},
	{Key: "lms_system", Label: "LMS System", Type: TypeBadge},
	{Key: "other_software", Label: "Other Software", Type: TypeArray},
}

var HardwareFields = []FieldSpec{
	{Key: "on_prem_servers", Label: "On-Premises Servers", Type: TypeBoolean},
	{Key: "managed_wifi", Label: "Managed WiFi", Type: TypeBoolean},
	{Key: "classroom_av", Label: "Classroom AV", Type: TypeBoolean},
}

// IsContactField reports whether a key belongs to the contact group, which
// is applied to the Profile record rather than the Organization on approval.
func IsContactField(key string) bool {
	for _, spec := range ContactFields {
		if spec.Key == key {
			return true
		}
	}
	return false
}
