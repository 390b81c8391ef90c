package gmail

import (
	"context"
	"fmt"
)

// CredentialVault resolves a stored credential reference to the refresh token
// it names. Accounts never carry tokens directly, only references.
type CredentialVault interface {
	RefreshToken(ctx context.Context, credentialRef string) (string, error)
}

// StaticVault is a CredentialVault backed by an in-memory reference map,
// loaded from configuration at startup.
type StaticVault map[string]string

// RefreshToken implements CredentialVault
func (v StaticVault) RefreshToken(_ context.Context, credentialRef string) (string, error) {
	token, ok := v[credentialRef]
	if !ok || token == "" {
		return "", fmt.Errorf("unknown credential reference %q", credentialRef)
	}
	return token, nil
}
