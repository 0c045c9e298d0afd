package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword returns a salted bcrypt digest of plain. Two calls on the same
// input produce different digests because the salt is random per call; both
// still verify with CheckPassword. An error here means bcrypt itself failed
// and is a fatal configuration problem, not a user mistake.
func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether plain matches the stored digest. The
// comparison is constant-time; a malformed digest is a mismatch, never an
// error or a panic.
func CheckPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
