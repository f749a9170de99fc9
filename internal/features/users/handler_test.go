package users

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newChangePasswordRouter(svc *Service, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("userId", userID) })
	r.PUT("/user", NewHandler(svc).ChangePassword)
	return r
}

func TestChangePasswordHandler_WrongCurrent(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)
	register(t, svc, "kangdroid@example.com", "testPassword!", "KangDroid")
	r := newChangePasswordRouter(svc, "kangdroid@example.com")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/user", strings.NewReader(
		`{"currentPassword":"wrong","newPassword":"newPassword!"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, 403, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "FORBIDDEN", body["code"])
}

func TestChangePasswordHandler_AccountGone(t *testing.T) {
	svc := newTestService(newMemStore())
	r := newChangePasswordRouter(svc, "removed@example.com")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/user", strings.NewReader(
		`{"currentPassword":"testPassword!","newPassword":"newPassword!"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	// a vanished account is not a credential problem: the caption must not
	// claim a password mismatch
	require.Equal(t, 404, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "NOT_FOUND", body["code"])
	require.NotContains(t, body["error"], "password does not match")
}
