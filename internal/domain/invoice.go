package domain

type InvoiceStatus string

const (
	InvoiceStatusOpen    InvoiceStatus = "open"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

type Invoice struct {
	ID             string        `json:"id"`
	OrganizationID string        `json:"organization_id"`
	AmountCents    int64         `json:"amount_cents"`
	Status         InvoiceStatus `json:"status"`
	DueDate        string        `json:"due_date"`
	CreatedOn      string        `json:"created_on"`
}
