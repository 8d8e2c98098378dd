package httpadapter

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kirillkom/textdesk/internal/infrastructure/session"
)

// sessionID returns the caller's session id, issuing a new cookie when the
// request carries none or a malformed one.
func (rt *Router) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(rt.cfg.SessionCookie); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}

	id := session.NewID()
	cookie := &http.Cookie{
		Name:     rt.cfg.SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   rt.cfg.SessionSecure,
		SameSite: http.SameSiteLaxMode,
	}
	if rt.cfg.SessionTTLMinutes > 0 {
		cookie.MaxAge = int((time.Duration(rt.cfg.SessionTTLMinutes) * time.Minute).Seconds())
	}
	http.SetCookie(w, cookie)
	return id
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
