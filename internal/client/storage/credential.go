package storage

import "context"

// CredentialStorage stores the bearer credential on the client.
// This is the lowest layer: it keeps the data as given and does not
// encrypt or decrypt anything itself.
type CredentialStorage interface {
	// SaveCredential stores the credential, replacing any previous one
	SaveCredential(ctx context.Context, cred *Credential) error

	// GetCredential returns ErrCredentialNotFound if nothing is stored
	GetCredential(ctx context.Context) (*Credential, error)

	// DeleteCredential removes the stored credential (logout)
	DeleteCredential(ctx context.Context) error
}

// Credential is the stored bearer token.
// Если Encrypted, Token содержит base64(nonce||ciphertext), а Salt соль Argon2id.
type Credential struct {
	Token     string `json:"token"`
	Salt      string `json:"salt,omitempty"`
	SavedAt   int64  `json:"saved_at"`
	Encrypted bool   `json:"encrypted"`
}
