package clerk

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/career-coach/internal/domain/user"
)

var requiredUserKeys = []string{"email_addresses", "first_name", "profile_image_url"}

type emailAddress struct {
	ID           string `json:"id"`
	EmailAddress string `json:"email_address"`
}

type apiError struct {
	Code        string `json:"code"`
	Message     string `json:"message"`
	LongMessage string `json:"long_message"`
}

type userPayload struct {
	ID              string         `json:"id"`
	EmailAddresses  []emailAddress `json:"email_addresses"`
	FirstName       *string        `json:"first_name"`
	LastName        *string        `json:"last_name"`
	ProfileImageURL *string        `json:"profile_image_url"`
	ImageURL        *string        `json:"image_url"`
	Errors          []apiError     `json:"errors"`
}

// decodeUser maps a Clerk user object. Error envelopes and bodies missing
// the identity keys are rejected even when the status was 2xx. Null values
// are allowed and left for placeholder defaults.
func decodeUser(body []byte) (user.ExternalIdentity, error) {
	var payload userPayload
	if err := sonic.Unmarshal(body, &payload); err != nil {
		return user.ExternalIdentity{}, fmt.Errorf("unmarshal user payload: %w", err)
	}
	if len(payload.Errors) > 0 {
		first := payload.Errors[0]
		return user.ExternalIdentity{}, fmt.Errorf("clerk returned error %s: %s", first.Code, first.Message)
	}
	for _, key := range requiredUserKeys {
		if !hasKey(body, key) {
			return user.ExternalIdentity{}, fmt.Errorf("user payload is missing %q", key)
		}
	}

	identity := user.ExternalIdentity{ExternalID: payload.ID}
	if len(payload.EmailAddresses) > 0 {
		identity.Email = strings.TrimSpace(payload.EmailAddresses[0].EmailAddress)
	}
	identity.Name = strings.TrimSpace(deref(payload.FirstName))
	identity.ImageURL = strings.TrimSpace(deref(payload.ProfileImageURL))
	if identity.ImageURL == "" {
		identity.ImageURL = strings.TrimSpace(deref(payload.ImageURL))
	}
	return identity, nil
}

func hasKey(body []byte, key string) bool {
	node, err := sonic.Get(body, key)
	return err == nil && node.Exists()
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
