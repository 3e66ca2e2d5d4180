package domain

import "time"

// EmailLog records every delivery attempt, successful or not.
type EmailLog struct {
	ID        string    `json:"id"`
	EmailType string    `json:"email_type"`
	Recipient string    `json:"recipient"`
	Subject   string    `json:"subject"`
	Success   bool      `json:"success"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"created_at"`
}
