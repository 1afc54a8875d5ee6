package clerk

import "encoding/json"

// Webhook payload shapes for the Clerk user lifecycle events we consume.

type WebhookEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type EmailVerification struct {
	Status string `json:"status"`
}

type EmailAddress struct {
	ID           string            `json:"id"`
	EmailAddress string            `json:"email_address"`
	Verification EmailVerification `json:"verification"`
}

type UserData struct {
	ID                    string         `json:"id"`
	Username              string         `json:"username"`
	FirstName             string         `json:"first_name"`
	LastName              string         `json:"last_name"`
	EmailAddresses        []EmailAddress `json:"email_addresses"`
	PrimaryEmailAddressID string         `json:"primary_email_address_id"`
}
