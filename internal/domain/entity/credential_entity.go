package entity

import "time"

// CredentialEntry is a stored website credential owned by exactly one user.
// Password holds opaque ciphertext in the "<iv_hex>:<ciphertext_hex>" layout
// produced by the vault cipher; plaintext only ever exists transiently in a
// decrypt response.
type CredentialEntry struct {
	ID        string
	OwnerID   string
	Website   string
	Username  string
	Password  string // ciphertext
	Note      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
