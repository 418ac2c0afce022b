package vc

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidationResult collects the outcome of a structural validation.
// Validators report every problem they find rather than stopping at the
// first; warnings do not invalidate the result.
type ValidationResult struct {
	IsValid  bool
	Errors   []string
	Warnings []string
}

// NewValidationResult returns a passing result with no messages.
func NewValidationResult() *ValidationResult {
	return &ValidationResult{IsValid: true}
}

// AddError records an error and marks the result invalid.
func (r *ValidationResult) AddError(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.IsValid = false
}

// AddWarning records a warning without invalidating the result.
func (r *ValidationResult) AddWarning(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Merge folds another result into this one.
func (r *ValidationResult) Merge(other *ValidationResult) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	if !other.IsValid {
		r.IsValid = false
	}
}

var urlPattern = regexp.MustCompile(`^https?://[a-zA-Z0-9]([a-zA-Z0-9.-]*[a-zA-Z0-9])?(:\d{1,5})?(/\S*)?$`)

// ValidateURL checks URL shape, warning when the scheme is not https.
func ValidateURL(url string) *ValidationResult {
	result := NewValidationResult()
	if !urlPattern.MatchString(url) {
		result.AddError("invalid URL: %s", url)
		return result
	}
	if !strings.HasPrefix(url, "https://") {
		result.AddWarning("insecure URL (http): %s", url)
	}
	return result
}

// ValidateCredential checks the structural shape of a credential against
// the OpenBadge v3 requirements, collecting all errors.
func ValidateCredential(c Credential) *ValidationResult {
	result := NewValidationResult()

	contents, err := c.Contents()
	if err != nil {
		result.AddError("malformed credential: %v", err)
		return result
	}

	if contents.ID == "" {
		result.AddError("credential id is required")
	}
	if !containsType(contents.Types, TypeVerifiableCredential) {
		result.AddError("type must include %q", TypeVerifiableCredential)
	}
	if !containsType(contents.Types, TypeOpenBadgeCredential) {
		result.AddError("type must include %q", TypeOpenBadgeCredential)
	}
	if contents.Issuer.Kind() == 0 || contents.Issuer.ID() == "" {
		result.AddError("issuer is required")
	}
	if contents.IssuanceDate.IsZero() {
		result.AddError("issuanceDate is required")
	}
	if contents.Subject.ID == "" {
		result.AddError("credentialSubject.id is required")
	}
	if contents.Subject.Achievement.Kind() == 0 || contents.Subject.Achievement.ID() == "" {
		result.AddError("credentialSubject.achievement is required")
	}

	if context, ok := c["@context"]; ok {
		result.Merge(validateContext(context))
	} else {
		result.AddWarning("JSON-LD @context is missing")
	}

	return result
}

// ValidateProfile checks a typed issuer profile.
func ValidateProfile(p Profile) *ValidationResult {
	result := NewValidationResult()
	if p.ID == "" {
		result.AddError("profile id is required")
	} else {
		result.Merge(ValidateURL(p.ID))
	}
	if p.EntityType() != "Profile" {
		result.AddError("profile type must be %q, got %q", "Profile", p.EntityType())
	}
	if p.Name == "" {
		result.AddError("profile name is required")
	}
	if p.URL != "" {
		result.Merge(ValidateURL(p.URL))
	}
	if p.Email != "" && !strings.Contains(p.Email, "@") {
		result.AddError("invalid email: %s", p.Email)
	}
	return result
}

// ValidateAchievement checks a typed achievement.
func ValidateAchievement(a Achievement) *ValidationResult {
	result := NewValidationResult()
	if a.ID == "" {
		result.AddError("achievement id is required")
	} else {
		result.Merge(ValidateURL(a.ID))
	}
	if a.EntityType() != "Achievement" {
		result.AddError("achievement type must be %q, got %q", "Achievement", a.EntityType())
	}
	if a.Name == "" {
		result.AddError("achievement name is required")
	}
	if a.Issuer != nil {
		result.Merge(ValidateProfile(*a.Issuer))
	}
	return result
}

func validateContext(raw interface{}) *ValidationResult {
	result := NewValidationResult()
	switch context := raw.(type) {
	case []interface{}:
		found := false
		for _, entry := range context {
			if s, ok := entry.(string); ok && (s == ContextCredentials || s == ContextOpenBadges) {
				found = true
			}
		}
		if !found {
			result.AddWarning("@context should include %q and %q", ContextCredentials, ContextOpenBadges)
		}
	case string:
		if context != ContextOpenBadges {
			result.AddWarning("unexpected @context %q", context)
		}
	default:
		result.AddError("invalid @context format: %T", raw)
	}
	return result
}

func containsType(types []string, want string) bool {
	for _, t := range types {
		if t == want {
			return true
		}
	}
	return false
}
