package v1

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmatchedRoute(t *testing.T) {
	router := newTestRouter(newFakeUserStore(), newFakeTaskStore(), newTestIssuer())

	w := doRequest(router, http.MethodGet, "/nope", nil, "")

	require.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]string
	decodeBody(t, w, &body)
	assert.Equal(t, "not found", body["error"])
}

// Full account lifecycle through the router: signup, login, read with
// the issued token, soft delete, and the 404 that follows.
func TestUserLifecycle(t *testing.T) {
	issuer := newTestIssuer()
	router := newTestRouter(newFakeUserStore(), newFakeTaskStore(), issuer)

	w := doRequest(router, http.MethodPost, "/users", map[string]string{
		"name":     "A",
		"email":    "a@x.com",
		"password": "p",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var created userResponse
	decodeBody(t, w, &created)
	require.NotEmpty(t, created.ID)

	w = doRequest(router, http.MethodPost, "/auth/login", map[string]string{
		"email":    "a@x.com",
		"password": "p",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var login loginResponse
	decodeBody(t, w, &login)
	require.NotEmpty(t, login.Token)

	w = doRequest(router, http.MethodGet, "/users/"+created.ID, nil, login.Token)
	require.Equal(t, http.StatusOK, w.Code)

	var fetched userResponse
	decodeBody(t, w, &fetched)
	assert.Equal(t, "a@x.com", fetched.Email)

	w = doRequest(router, http.MethodDelete, "/users/"+created.ID, nil, login.Token)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodGet, "/users/"+created.ID, nil, login.Token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStoreFailureIsGeneric500(t *testing.T) {
	users := newFakeUserStore()
	users.err = assert.AnError

	router := newTestRouter(users, newFakeTaskStore(), newTestIssuer())

	w := doRequest(router, http.MethodPost, "/users", map[string]string{
		"name":     "A",
		"email":    "a@x.com",
		"password": "p",
	}, "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
