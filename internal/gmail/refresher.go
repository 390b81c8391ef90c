package gmail

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/ledgersift/mail-ingestor/internal/domain"
)

// OAuthRefresher exchanges stored refresh tokens for access credentials using
// a single OAuth2 client registration shared by all tenants.
type OAuthRefresher struct {
	conf *oauth2.Config
}

// NewOAuthRefresher creates a refresher for the given client registration
func NewOAuthRefresher(clientID, clientSecret string) *OAuthRefresher {
	return &OAuthRefresher{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     google.Endpoint,
		},
	}
}

// Refresh implements TokenRefresher
func (r *OAuthRefresher) Refresh(ctx context.Context, refreshToken string) (Credential, error) {
	src := r.conf.TokenSource(ctx, &oauth2.Token{
		RefreshToken: refreshToken,
		Expiry:       time.Now().Add(-time.Minute),
	})
	tok, err := src.Token()
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.ErrorCode == "invalid_grant" {
			return Credential{}, fmt.Errorf("%w: %s", domain.ErrCredentialRevoked, retrieveErr.ErrorCode)
		}
		return Credential{}, fmt.Errorf("refresh access token: %w", err)
	}
	return Credential{AccessToken: tok.AccessToken, Expiry: tok.Expiry}, nil
}
