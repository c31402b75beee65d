package auth

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	youtubeanalytics "google.golang.org/api/youtubeanalytics/v2"
)

// Scopes requested on every authorization. Read-only analytics access
// only; the monetary scope is needed for revenue metrics.
var Scopes = []string{
	youtubeanalytics.YtAnalyticsReadonlyScope,
	youtubeanalytics.YtAnalyticsMonetaryReadonlyScope,
}

// NeedsReauth reports whether the cached token must be replaced before the
// next query: no token cached, no known expiry, or the expiry has passed.
// now must be a full-precision wall-clock reading.
func NeedsReauth(tok *oauth2.Token, now time.Time) bool {
	if tok == nil {
		return true
	}
	if tok.Expiry.IsZero() {
		return true
	}
	return !tok.Expiry.After(now)
}

// KeyfileAuthorizer exchanges a Google service-account key file for an
// access token carrying the fixed analytics scopes.
type KeyfileAuthorizer struct{}

// Authorize reads the key file at keyfilePath and mints a fresh token.
// The caller owns the returned token; nothing is cached here.
func (KeyfileAuthorizer) Authorize(ctx context.Context, keyfilePath string) (*oauth2.Token, error) {
	data, err := os.ReadFile(keyfilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read OAuth2 key file %s: %w", keyfilePath, err)
	}

	creds, err := google.CredentialsFromJSON(ctx, data, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse OAuth2 key file %s: %w", keyfilePath, err)
	}

	tok, err := creds.TokenSource.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to obtain access token: %w", err)
	}

	log.Printf("Authorized (token expires: %v)", tok.Expiry)
	return tok, nil
}
