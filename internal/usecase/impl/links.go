package impl

import (
	"net/url"
	"strings"

	"yearbook/internal/domain/entity"
)

// previewLink is the public address of a scope's flipbook.
func previewLink(baseURL string, scope entity.ScopeID) string {
	return strings.TrimSuffix(baseURL, "/") + "/yearbook/preview/" + url.PathEscape(scope.String())
}

// registrationLink is the page where invitees of the scope complete registration.
// The email is prefilled when given.
func registrationLink(baseURL string, scope entity.ScopeID, email string) string {
	query := url.Values{}
	query.Set("scope", scope.String())
	if email != "" {
		query.Set("email", email)
	}

	return strings.TrimSuffix(baseURL, "/") + "/register?" + query.Encode()
}
