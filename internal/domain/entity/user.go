package entity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// User is one invited person inside a scope's roster.
type User struct {
	ID             uuid.UUID  `json:"id"`              // Stable identifier assigned at invitation time.
	Scope          ScopeID    `json:"scope_id"`        // The roster this user belongs to.
	Email          string     `json:"email"`           // Lowercased login and lookup key, unique within the roster.
	Name           string     `json:"name"`            // Display name, populated at registration.
	Phone          string     `json:"phone"`           // Optional contact number.
	PhotoURL       string     `json:"photo_url"`       // Mirror of the page's profile photo.
	PasswordHash   string     `json:"-"`               // Set at registration when the local identity provider is used.
	Role           Role       `json:"role"`            // Always RoleStudent for invitations.
	Registered     bool       `json:"registered"`      // True once the invitee completed registration.
	PageSubmitted  bool       `json:"page_submitted"`  // True once the page was locked.
	DeadlineExempt bool       `json:"deadline_exempt"` // Granted by an admin unlock; lets the user edit past the deadline.
	Position       int        `json:"position"`        // Insertion order within the roster.
	InvitedAt      time.Time  `json:"invited_at"`
	RegisteredAt   *time.Time `json:"registered_at,omitempty"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewInvitedUser creates an unregistered roster entry for an invitation.
func NewInvitedUser(scope ScopeID, email string, now time.Time) *User {
	return &User{
		ID:        uuid.New(),
		Scope:     scope,
		Email:     NormalizeEmail(email),
		Role:      RoleStudent,
		InvitedAt: now,
		UpdatedAt: now,
	}
}

// SubmissionStatus evaluates the page lock state machine for this user.
func (u *User) SubmissionStatus(deadline *time.Time, now time.Time) SubmissionStatus {
	return EvaluateSubmission(SubmissionInput{
		PageSubmitted:  u.PageSubmitted,
		Deadline:       deadline,
		Now:            now,
		DeadlineExempt: u.DeadlineExempt,
	})
}

// Lock marks the page as submitted. The caller must check CanEdit first.
func (u *User) Lock(now time.Time) {
	u.PageSubmitted = true
	u.DeadlineExempt = false
	u.UpdatedAt = now
}

// Unlock reopens the page on behalf of an admin. The reopened page stays
// editable after the scope deadline until it is locked again.
func (u *User) Unlock(now time.Time) {
	u.PageSubmitted = false
	u.DeadlineExempt = true
	u.UpdatedAt = now
}

// NormalizeEmail trims and lowercases an email address for comparison and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsValidEmail reports whether the address is syntactically plausible.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// SplitEmailList splits free text on newlines, commas and semicolons,
// dropping blank entries.
func SplitEmailList(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '\n' || r == '\r' || r == ',' || r == ';'
	})

	emails := make([]string, 0, len(fields))
	for _, field := range fields {
		if trimmed := strings.TrimSpace(field); trimmed != "" {
			emails = append(emails, trimmed)
		}
	}

	return emails
}

// Principal is the authenticated caller as seen by the core: an email and a role.
type Principal struct {
	Subject string // Identity provider subject, informational only.
	Email   string
	Role    Role
}

// IsAdmin reports whether the principal carries the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// AdminAccount is a local administrator credential.
type AdminAccount struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
