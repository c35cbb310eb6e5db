// Package session keeps the per-browser CartState in Redis, keyed by a
// session-id cookie. The cart line mapping is additionally mirrored to the
// carts collection by the cart engine so the held-stock aggregation can see
// every session's cart.
package session

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"calyx/config"
	"calyx/models"
	"calyx/rdx"

	"github.com/google/uuid"
)

const cookieName = "calyx_session"

func key(sessionID string) string {
	return "session:" + sessionID
}

// ID returns the request's session id, minting a new one (and setting the
// cookie) when the request carries none.
func ID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int((time.Duration(config.Load().SessionTTLDays) * 24 * time.Hour).Seconds()),
	})
	return id
}

// Get loads the CartState for a session. A missing session yields a zero
// CartState with a nil cart map, which the engine treats as "no cart".
func Get(ctx context.Context, sessionID string) (models.CartState, error) {
	var state models.CartState
	raw, err := rdx.Get(ctx, key(sessionID))
	if err != nil || raw == "" {
		return state, err
	}
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return models.CartState{}, err
	}
	return state, nil
}

// Save persists the CartState blob with the configured TTL.
func Save(ctx context.Context, sessionID string, state models.CartState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	ttl := time.Duration(config.Load().SessionTTLDays) * 24 * time.Hour
	return rdx.Set(ctx, key(sessionID), string(raw), ttl)
}

// Delete removes the session blob entirely.
func Delete(ctx context.Context, sessionID string) error {
	return rdx.Del(ctx, key(sessionID))
}
