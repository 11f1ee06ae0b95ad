package clerk

type EmailAddress struct {
	ID           string `json:"id"`
	EmailAddress string `json:"email_address"`
}

// User is the subset of the provider's user object this service reads.
// Webhook payloads carry the same shape under "data".
type User struct {
	ID                    string                 `json:"id"`
	EmailAddresses        []EmailAddress         `json:"email_addresses"`
	PrimaryEmailAddressID string                 `json:"primary_email_address_id"`
	FirstName             *string                `json:"first_name"`
	LastName              *string                `json:"last_name"`
	PublicMetadata        map[string]interface{} `json:"public_metadata"`
}

// PrimaryEmail returns the primary address, falling back to the first one.
func (u *User) PrimaryEmail() string {
	for _, e := range u.EmailAddresses {
		if e.ID != "" && e.ID == u.PrimaryEmailAddressID {
			return e.EmailAddress
		}
	}
	if len(u.EmailAddresses) > 0 {
		return u.EmailAddresses[0].EmailAddress
	}
	return ""
}

type metadataRequest struct {
	PublicMetadata map[string]interface{} `json:"public_metadata"`
}

type ErrorResponse struct {
	Errors []struct {
		Message     string `json:"message"`
		LongMessage string `json:"long_message"`
		Code        string `json:"code"`
	} `json:"errors"`
}

func (e ErrorResponse) Message() string {
	if len(e.Errors) == 0 {
		return ""
	}
	if e.Errors[0].LongMessage != "" {
		return e.Errors[0].LongMessage
	}
	return e.Errors[0].Message
}
