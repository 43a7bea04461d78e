package outbound

type PasswordService interface {
	HashPassword(password string) (string, error)
	ComparePassword(hashedPassword, password string) error
	// GeneratePassword returns a random temporary password for accounts
	// created by an admin; it is mailed, never stored in clear.
	GeneratePassword() (string, error)
}
