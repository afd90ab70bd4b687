package validation

import "regexp"

// Validation rule patterns
var (
	// Name pattern: starts with a letter, at least 3 characters,
	// letters, apostrophes and hyphens only
	NamePattern = `^[A-Za-z][A-Za-z'\-]{2,}$`

	// Email validation pattern
	EmailPattern = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,4}$`

	// Candidate registration number pattern, e.g. CIT-123-456/2022
	RegNumberPattern = `^[A-Z]{3}-\d{3}-\d{3}/\d{4}$`

	// OTP code: exactly six digits
	OTPPattern = `^\d{6}$`
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Name      *regexp.Regexp
	Email     *regexp.Regexp
	RegNumber *regexp.Regexp
	OTP       *regexp.Regexp
}{
	Name:      regexp.MustCompile(NamePattern),
	Email:     regexp.MustCompile(EmailPattern),
	RegNumber: regexp.MustCompile(RegNumberPattern),
	OTP:       regexp.MustCompile(OTPPattern),
}

// IsValidName reports whether a first or last name is acceptable.
func IsValidName(name string) bool {
	return CompiledPatterns.Name.MatchString(name)
}

// IsValidEmail reports whether an email address is acceptable.
func IsValidEmail(email string) bool {
	return CompiledPatterns.Email.MatchString(email)
}

// IsValidRegNumber reports whether a candidate registration number is
// acceptable.
func IsValidRegNumber(regNumber string) bool {
	return CompiledPatterns.RegNumber.MatchString(regNumber)
}

// IsValidOTP reports whether a one-time code has the expected shape.
func IsValidOTP(code string) bool {
	return CompiledPatterns.OTP.MatchString(code)
}
