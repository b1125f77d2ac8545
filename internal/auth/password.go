package auth

import "github.com/alexedwards/argon2id"

// HashPassword derives a salted argon2id hash with the library's
// default parameters. The returned string embeds the salt and params.
func HashPassword(password string) (string, error) {
	return argon2id.CreateHash(password, argon2id.DefaultParams)
}

// VerifyPassword reports whether password matches hash. The comparison
// is constant-time inside argon2id.
func VerifyPassword(password, hash string) (bool, error) {
	return argon2id.ComparePasswordAndHash(password, hash)
}
