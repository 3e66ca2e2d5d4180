package service

import (
	"fmt"
	"html"
	"strings"
)

// Email type identifiers, used as template keys and delivery-log labels.
const (
	EmailTypeRegistrationReceived  = "registration_received"
	EmailTypeUpdateApproved        = "update_approved"
	EmailTypeUpdateRejected        = "update_rejected"
	EmailTypeWelcome               = "welcome"
	EmailTypeMembershipPending     = "membership_pending"
	EmailTypeInvoiceNotice         = "invoice_notice"
	EmailTypePendingReviewReminder = "pending_review_reminder"
	EmailTypeTest                  = "test"
)

type emailTemplate struct {
	Subject string
	Text    string
	HTML    string
}

var emailTemplates = map[string]emailTemplate{
	EmailTypeRegistrationReceived: {
		Subject: "HESS Consortium: we received your submission",
		Text: "Hello,\n\nWe received your {{submission_type}} submission. A consortium administrator will review it shortly.\n\n" +
			"Best regards,\nThe HESS Consortium Team",
		HTML: "<p>Hello,</p><p>We received your <strong>{{submission_type}}</strong> submission. " +
			"A consortium administrator will review it shortly.</p><p>Best regards,<br>The HESS Consortium Team</p>",
	},
	EmailTypeUpdateApproved: {
		Subject: "HESS Consortium: your update has been approved",
		Text: "Hello,\n\nYour {{submission_type}} submission has been approved and your member record has been updated.\n\n" +
			"Notes from the reviewer: {{admin_notes}}\n\nBest regards,\nThe HESS Consortium Team",
		HTML: "<p>Hello,</p><p>Your <strong>{{submission_type}}</strong> submission has been approved " +
			"and your member record has been updated.</p><p>Notes from the reviewer: {{admin_notes}}</p>" +
			"<p>Best regards,<br>The HESS Consortium Team</p>",
	},
	EmailTypeUpdateRejected: {
		Subject: "HESS Consortium: your update was not approved",
		Text: "Hello,\n\nYour {{submission_type}} submission was not approved.\n\n" +
			"Notes from the reviewer: {{admin_notes}}\n\nPlease contact us if you have questions.\n\n" +
			"Best regards,\nThe HESS Consortium Team",
		HTML: "<p>Hello,</p><p>Your <strong>{{submission_type}}</strong> submission was not approved.</p>" +
			"<p>Notes from the reviewer: {{admin_notes}}</p><p>Please contact us if you have questions.</p>" +
			"<p>Best regards,<br>The HESS Consortium Team</p>",
	},
	EmailTypeWelcome: {
		Subject: "Welcome to the HESS Consortium",
		Text: "Hello {{first_name}},\n\nYour membership for {{org_name}} has been approved. " +
			"Set your portal password here: {{reset_link}}\n\nBest regards,\nThe HESS Consortium Team",
		HTML: "<p>Hello {{first_name}},</p><p>Your membership for <strong>{{org_name}}</strong> has been approved.</p>" +
			"<p><a href=\"{{reset_link}}\">Set your portal password</a></p><p>Best regards,<br>The HESS Consortium Team</p>",
	},
	EmailTypeMembershipPending: {
		Subject: "HESS Consortium: membership moved back to pending",
		Text: "Hello {{first_name}},\n\nThe membership for {{org_name}} has been moved back to the pending " +
			"registration queue. A consortium administrator will be in touch.\n\nBest regards,\nThe HESS Consortium Team",
		HTML: "<p>Hello {{first_name}},</p><p>The membership for <strong>{{org_name}}</strong> has been moved back " +
			"to the pending registration queue. A consortium administrator will be in touch.</p>" +
			"<p>Best regards,<br>The HESS Consortium Team</p>",
	},
	EmailTypeInvoiceNotice: {
		Subject: "HESS Consortium: invoice {{invoice_id}}",
		Text: "Hello,\n\nAn invoice for {{amount}} is due on {{due_date}}.\n\n" +
			"Best regards,\nThe HESS Consortium Team",
		HTML: "<p>Hello,</p><p>An invoice for <strong>{{amount}}</strong> is due on {{due_date}}.</p>" +
			"<p>Best regards,<br>The HESS Consortium Team</p>",
	},
	EmailTypePendingReviewReminder: {
		Subject: "HESS Consortium: items awaiting review",
		Text: "Hello,\n\nThere are {{update_requests}} update request(s) and {{pending_registrations}} pending " +
			"registration(s) awaiting review in the admin portal.\n\nThe HESS Consortium Portal",
		HTML: "<p>Hello,</p><p>There are <strong>{{update_requests}}</strong> update request(s) and " +
			"<strong>{{pending_registrations}}</strong> pending registration(s) awaiting review in the admin portal.</p>" +
			"<p>The HESS Consortium Portal</p>",
	},
	EmailTypeTest: {
		Subject: "HESS Consortium portal test email",
		Text:    "This is a test email from the HESS Consortium portal.\n\n{{message}}",
		HTML:    "<p>This is a test email from the HESS Consortium portal.</p><p>{{message}}</p>",
	},
}

// renderTemplate substitutes {{placeholder}} tokens. Values interpolated into
// the HTML body are escaped so submitted text cannot inject markup into the
// outgoing email. Unmatched placeholders render as empty strings.
func renderTemplate(emailType string, data map[string]string) (subject, text, htmlBody string, err error) {
	tmpl, ok := emailTemplates[emailType]
	if !ok {
		return "", "", "", fmt.Errorf("unknown email template %q", emailType)
	}

	subject = substitute(tmpl.Subject, data, false)
	text = substitute(tmpl.Text, data, false)
	htmlBody = substitute(tmpl.HTML, data, true)
	return subject, text, htmlBody, nil
}

func substitute(body string, data map[string]string, escape bool) string {
	out := body
	for key, value := range data {
		if escape {
			value = html.EscapeString(value)
		}
		out = strings.ReplaceAll(out, "{{"+key+"}}", value)
	}
	// Drop placeholders the caller did not supply.
	for {
		start := strings.Index(out, "{{")
		if start < 0 {
			break
		}
		end := strings.Index(out[start:], "}}")
		if end < 0 {
			break
		}
		out = out[:start] + out[start+end+2:]
	}
	return out
}
