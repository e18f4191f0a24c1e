package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"ubs-medicacoes/internal/platform/logger"
	"ubs-medicacoes/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type stubVerifier struct{}

func (stubVerifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	if token == "good" {
		return auth.Claims{UserID: "u-1", Role: auth.RoleAdmin}, nil
	}
	return auth.Claims{}, errors.New("bad token")
}

func echoClaims() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, ok := GetClaims(r.Context())
		if !ok {
			_, _ = w.Write([]byte("anon"))
			return
		}
		_, _ = w.Write([]byte(c.UserID + ":" + string(c.Role)))
	})
}

func serve(h http.Handler, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthContext_Verifier(t *testing.T) {
	h := AuthContext(stubVerifier{})(echoClaims())

	assert.Equal(t, "u-1:admin", serve(h, map[string]string{"Authorization": "Bearer good"}).Body.String())
	assert.Equal(t, "anon", serve(h, map[string]string{"Authorization": "Bearer bad"}).Body.String())
	assert.Equal(t, "anon", serve(h, map[string]string{"Authorization": "Basic good"}).Body.String())
	// headers de debug são ignorados fora do modo dev
	assert.Equal(t, "anon", serve(h, map[string]string{"X-Debug-User-ID": "x"}).Body.String())
}

func TestAuthContext_DevHeaders(t *testing.T) {
	h := AuthContext(nil)(echoClaims())

	assert.Equal(t, "x:admin", serve(h, map[string]string{"X-Debug-User-ID": "x", "X-Debug-Role": "admin"}).Body.String())
	assert.Equal(t, "x:responsavel", serve(h, map[string]string{"X-Debug-User-ID": "x"}).Body.String())
	assert.Equal(t, "anon", serve(h, nil).Body.String())
}

func TestRequireRole(t *testing.T) {
	h := AuthContext(nil)(RequireRole(auth.RoleAdmin)(echoClaims()))

	assert.Equal(t, http.StatusUnauthorized, serve(h, nil).Code)
	assert.Equal(t, http.StatusForbidden, serve(h, map[string]string{"X-Debug-User-ID": "x"}).Code)
	assert.Equal(t, http.StatusOK, serve(h, map[string]string{"X-Debug-User-ID": "x", "X-Debug-Role": "admin"}).Code)

	assert.Equal(t, http.StatusUnauthorized, serve(AuthContext(nil)(RequireAuth(echoClaims())), nil).Code)
}

type stubRoles map[string]auth.Role

func (s stubRoles) CurrentRole(_ context.Context, userID string) (auth.Role, bool, error) {
	if userID == "broken" {
		return "", false, errors.New("db down")
	}
	role, ok := s[userID]
	return role, ok, nil
}

func TestCurrentRole_OverridesTokenRole(t *testing.T) {
	roles := stubRoles{"demoted": auth.RoleResponsavel, "still-admin": auth.RoleAdmin}
	h := AuthContext(nil)(CurrentRole(roles)(RequireRole(auth.RoleAdmin)(echoClaims())))

	asAdmin := func(uid string) map[string]string {
		return map[string]string{"X-Debug-User-ID": uid, "X-Debug-Role": "admin"}
	}

	assert.Equal(t, http.StatusOK, serve(h, asAdmin("still-admin")).Code)
	assert.Equal(t, http.StatusForbidden, serve(h, asAdmin("demoted")).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(h, asAdmin("deleted")).Code)
	assert.Equal(t, http.StatusInternalServerError, serve(h, asAdmin("broken")).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(h, nil).Code)

	echo := AuthContext(nil)(CurrentRole(roles)(echoClaims()))
	assert.Equal(t, "demoted:responsavel", serve(echo, asAdmin("demoted")).Body.String())
	assert.Equal(t, "anon", serve(echo, asAdmin("deleted")).Body.String())
}

func TestRecover_LogsAndAnswers500(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := logger.FromZap(zap.New(core))

	h := Recover(log)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := serve(h, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

func TestRequestLog_WarnsOnClientErrors(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := logger.FromZap(zap.New(core))

	h := RequestLog(log)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	serve(h, nil)

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
		assert.EqualValues(t, http.StatusNotFound, entries[0].ContextMap()["status"])
	}
}
