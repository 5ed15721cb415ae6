package dashboard

import (
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/leapstack-labs/hrdash/pkg/core"
)

const (
	sessionName = "hrdash"
	keyID       = "id"
	keyYear     = "year"
	keyStatus   = "status"
	keySource   = "source"
)

// visitor is the per-browser state carried in the cookie session.
type visitor struct {
	session   *sessions.Session
	ID        string
	Selection core.Selection
}

// loadVisitor reads the cookie session, minting an id on first visit. A
// cookie that fails to decode starts a fresh session.
func (h *Handlers) loadVisitor(r *http.Request) *visitor {
	sess, err := h.sessionStore.Get(r, sessionName)
	if err != nil {
		h.logger.Debug("discarding unreadable session", "error", err)
	}

	v := &visitor{session: sess}
	v.ID, _ = sess.Values[keyID].(string)
	if v.ID == "" {
		v.ID = uuid.NewString()
		sess.Values[keyID] = v.ID
	}

	v.Selection.YearOfHire, _ = sess.Values[keyYear].(string)
	v.Selection.EmploymentStatus, _ = sess.Values[keyStatus].(string)
	v.Selection.RecruitmentSource, _ = sess.Values[keySource].(string)
	v.Selection = v.Selection.Normalize()
	return v
}

// save writes the selection back to the cookie. It must run before any
// response bytes are written.
func (v *visitor) save(w http.ResponseWriter, r *http.Request) error {
	v.session.Values[keyYear] = v.Selection.YearOfHire
	v.session.Values[keyStatus] = v.Selection.EmploymentStatus
	v.session.Values[keySource] = v.Selection.RecruitmentSource
	return v.session.Save(r, w)
}

// withQuery overrides sel with any year, status or source query parameters.
func withQuery(sel core.Selection, q url.Values) core.Selection {
	if q.Has(keyYear) {
		sel.YearOfHire = q.Get(keyYear)
	}
	if q.Has(keyStatus) {
		sel.EmploymentStatus = q.Get(keyStatus)
	}
	if q.Has(keySource) {
		sel.RecruitmentSource = q.Get(keySource)
	}
	return sel.Normalize()
}

// selectionQuery encodes sel for chart URLs.
func selectionQuery(sel core.Selection) url.Values {
	sel = sel.Normalize()
	return url.Values{
		keyYear:   {sel.YearOfHire},
		keyStatus: {sel.EmploymentStatus},
		keySource: {sel.RecruitmentSource},
	}
}
