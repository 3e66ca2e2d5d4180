package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"hess-portal-backend/internal/domain"
)

// mergeSubmission flattens a request's two field maps into one, with
// organization_data taking precedence over registration_data per key. Unset
// values (nil or blank) never override a set one, so a submission cannot
// accidentally null out fields it did not address.
func mergeSubmission(req *domain.RegistrationUpdateRequest) map[string]any {
	merged := make(map[string]any, len(req.RegistrationData)+len(req.OrganizationData))
	for k, v := range req.RegistrationData {
		if isSet(v) {
			merged[k] = v
		}
	}
	for k, v := range req.OrganizationData {
		if isSet(v) {
			merged[k] = v
		}
	}
	return merged
}

// organizationFieldMap renders the live Organization+Profile state using the
// same keys the submission maps use, so the two sides are diffable.
func organizationFieldMap(org *domain.Organization, profile *domain.Profile) map[string]any {
	m := map[string]any{
		"org_name":          org.Name,
		"address":           org.Address,
		"city":              org.City,
		"state":             org.State,
		"zip":               org.Zip,
		"phone":             org.Phone,
		"website":           org.Website,
		"institution_type":  org.InstitutionType,
		"student_fte":       org.StudentFTE,
		"annual_fee":        float64(org.AnnualFeeCents) / 100,
		"membership_status": string(org.Status),
		"member_since":      org.MemberSince,
		"renewal_date":      org.RenewalDate,
		"erp_system":        org.ERPSystem,
		"sis_system":        org.SISSystem,
		"crm_system":        org.CRMSystem,
		"lms_system":        org.LMSSystem,
		"on_prem_servers":   org.OnPremServers,
		"managed_wifi":      org.ManagedWifi,
		"classroom_av":      org.ClassroomAV,
	}
	if profile != nil {
		m["first_name"] = profile.FirstName
		m["last_name"] = profile.LastName
		m["title"] = profile.Title
		m["email"] = profile.Email
		m["contact_phone"] = profile.Phone
	}
	return m
}

// applyOrganizationFields copies set values from a submission map onto the
// Organization record. Keys absent from the map leave the field untouched.
func applyOrganizationFields(org *domain.Organization, data map[string]any) {
	setString(data, "org_name", &org.Name)
	setString(data, "address", &org.Address)
	setString(data, "city", &org.City)
	setString(data, "state", &org.State)
	setString(data, "zip", &org.Zip)
	setString(data, "phone", &org.Phone)
	setString(data, "website", &org.Website)
	setString(data, "institution_type", &org.InstitutionType)
	setString(data, "member_since", &org.MemberSince)
	setString(data, "renewal_date", &org.RenewalDate)
	setString(data, "erp_system", &org.ERPSystem)
	setString(data, "sis_system", &org.SISSystem)
	setString(data, "crm_system", &org.CRMSystem)
	setString(data, "lms_system", &org.LMSSystem)
	setBool(data, "on_prem_servers", &org.OnPremServers)
	setBool(data, "managed_wifi", &org.ManagedWifi)
	setBool(data, "classroom_av", &org.ClassroomAV)

	if v, ok := data["student_fte"]; ok && isSet(v) {
		if n, ok := toNumber(v); ok {
			org.StudentFTE = int32(n)
		}
	}
	if v, ok := data["annual_fee"]; ok && isSet(v) {
		if n, ok := toNumber(v); ok {
			org.AnnualFeeCents = int64(math.Round(n * 100))
		}
	}
	if v, ok := data["membership_status"]; ok && isSet(v) {
		switch domain.MembershipStatus(toString(v)) {
		case domain.MembershipStatusActive, domain.MembershipStatusPending,
			domain.MembershipStatusExpired, domain.MembershipStatusCancelled:
			org.Status = domain.MembershipStatus(toString(v))
		}
	}
}

// applyProfileFields copies set contact-shaped values onto the Profile record.
func applyProfileFields(profile *domain.Profile, data map[string]any) bool {
	touched := false
	for key, dest := range map[string]*string{
		"first_name":    &profile.FirstName,
		"last_name":     &profile.LastName,
		"title":         &profile.Title,
		"email":         &profile.Email,
		"contact_phone": &profile.Phone,
	} {
		if v, ok := data[key]; ok && isSet(v) {
			*dest = toString(v)
			touched = true
		}
	}
	return touched
}

func isSet(v any) bool {
	if v == nil {
		return false
	}
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return false
	}
	return true
}

func setString(data map[string]any, key string, dest *string) {
	if v, ok := data[key]; ok && isSet(v) {
		*dest = toString(v)
	}
}

func setBool(data map[string]any, key string, dest *bool) {
	v, ok := data[key]
	if !ok || !isSet(v) {
		return
	}
	switch b := v.(type) {
	case bool:
		*dest = b
	case string:
		if parsed, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(b))); err == nil {
			*dest = parsed
		}
	}
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	if f, ok := v.(float64); ok && f == math.Trunc(f) {
		return strconv.FormatInt(int64(f), 10)
	}
	return fmt.Sprint(v)
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
