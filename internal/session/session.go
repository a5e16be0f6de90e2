package session

import (
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
)

// New creates a new session manager backed by the in-memory store.
// Session state lives server-side; the cookie carries only the opaque
// token. Sessions expire after 24 hours.
func New(isDev bool) *scs.SessionManager {
	sm := scs.New()

	sm.Store = memstore.New()

	sm.Lifetime = 24 * time.Hour
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev // Secure cookies in production only

	return sm
}
