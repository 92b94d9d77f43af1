package session

import "net/http"

const flashCookieName = "flash"

// Flash is a one-shot toast notification carried across the
// POST-redirect-GET cycle of form actions.
type Flash struct {
	Type    string `json:"type"` // "success" or "error"
	Message string `json:"message"`
}

// SetFlash stores a toast for the next page render.
func (st *Store) SetFlash(w http.ResponseWriter, f Flash) {
	encoded, err := st.codec.Encode(flashCookieName, f)
	if err != nil {
		return
	}
	c := st.cookie(flashCookieName, encoded, 0)
	c.MaxAge = 0 // session cookie, consumed on next render
	http.SetCookie(w, c)
}

// PopFlash returns the pending toast, if any, and clears it.
func (st *Store) PopFlash(w http.ResponseWriter, r *http.Request) *Flash {
	c, err := r.Cookie(flashCookieName)
	if err != nil {
		return nil
	}
	http.SetCookie(w, st.cookie(flashCookieName, "", -1))

	var f Flash
	if err := st.codec.Decode(flashCookieName, c.Value, &f); err != nil {
		return nil
	}
	return &f
}
