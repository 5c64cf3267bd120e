package sessions

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/securecookie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() *CookieSessionStore {
	return NewCookieSessionStore(
		securecookie.GenerateRandomKey(64),
		securecookie.GenerateRandomKey(32),
	)
}

func TestCookieSessionStoreRoundTrip(t *testing.T) {
	store := newTestStore()

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	require.NoError(t, store.SetUserID(recorder, req, "user-1"))

	cookies := recorder.Result().Cookies()
	require.NotEmpty(t, cookies)

	next := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	for _, cookie := range cookies {
		next.AddCookie(cookie)
	}
	assert.Equal(t, "user-1", store.GetUserID(next))
}

func TestCookieSessionStoreBadCookie(t *testing.T) {
	store := newTestStore()

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.AddCookie(&http.Cookie{Name: "storefront-session", Value: "not-a-session"})

	// An undecodable cookie reads as a guest.
	assert.Equal(t, "", store.GetUserID(req))

	// And writing still works: the fresh session replaces the bad cookie.
	recorder := httptest.NewRecorder()
	require.NoError(t, store.SetUserID(recorder, req, "user-2"))
	assert.NotEmpty(t, recorder.Result().Cookies())
}

func TestCookieSessionStoreClear(t *testing.T) {
	store := newTestStore()

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	require.NoError(t, store.SetUserID(recorder, req, "user-1"))

	next := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	for _, cookie := range recorder.Result().Cookies() {
		next.AddCookie(cookie)
	}

	clearRecorder := httptest.NewRecorder()
	require.NoError(t, store.ClearSession(clearRecorder, next))

	cookies := clearRecorder.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, -1, cookies[0].MaxAge)
}
