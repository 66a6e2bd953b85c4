package identity

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"courseapi/config"

	"github.com/go-resty/resty/v2"
)

// ErrUnauthorized is the only failure callers ever see. Whether the token was
// missing, rejected, expired, or the identity service was unreachable is
// logged but not exposed.
var ErrUnauthorized = errors.New("not authenticated")

// Identity is a verified user reference, resolved fresh on every request.
type Identity struct {
	UserID string
}

// Verifier exchanges a bearer token for a verified identity via the external
// identity service. It holds no per-user state and caches nothing.
type Verifier struct {
	http *resty.Client
}

func NewVerifier(cfg *config.Config) *Verifier {
	return &Verifier{
		http: resty.New().
			SetBaseURL(cfg.IdentityAPIURL).
			SetTimeout(10 * time.Second),
	}
}

// Verify resolves the token against the identity service's user endpoint.
func (v *Verifier) Verify(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}

	resp, err := v.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		Get("/user")
	if err != nil {
		log.Printf("[IDENTITY] verification request failed: %v", err)
		return nil, ErrUnauthorized
	}
	if resp.StatusCode() != 200 {
		return nil, ErrUnauthorized
	}

	var body struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil || body.ID == "" {
		log.Printf("[IDENTITY] invalid verification response: %v", err)
		return nil, ErrUnauthorized
	}

	return &Identity{UserID: body.ID}, nil
}
