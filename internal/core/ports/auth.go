package ports

// Authenticator seals passwords for storage and checks supplied passwords
// against the sealed form.
type Authenticator interface {
	Seal(password string) (string, error)
	Verify(stored, supplied string) bool
}
