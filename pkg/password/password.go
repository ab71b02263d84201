// Package password hashea y verifica contraseñas con bcrypt.
package password

import "golang.org/x/crypto/bcrypt"

// Hash devuelve el hash bcrypt de plain.
func Hash(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Matches informa si plain corresponde al hash.
func Matches(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
