package services

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Redes-Bien-Manejadas/shortwhats-app/config"

	"github.com/stretchr/testify/assert"
)

func newVerifier(secret, verifyURL, env string) *RecaptchaService {
	return NewRecaptchaService(&config.Config{
		RecaptchaSecretKey: secret,
		RecaptchaVerifyURL: verifyURL,
		AppEnv:             env,
	})
}

func siteverifyStub(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, r.ParseForm())
		assert.NotEmpty(t, r.PostFormValue("secret"))
		assert.NotEmpty(t, r.PostFormValue("response"))
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestVerifyValidToken(t *testing.T) {
	srv := siteverifyStub(t, `{"success":true,"score":0.9,"action":"contact_whatsapp"}`)
	rs := newVerifier("secret", srv.URL, "production")

	res := rs.Verify("token", RecaptchaActionContactWhatsApp)
	assert.True(t, res.Valid)
	assert.Equal(t, 0.9, res.Score)
	assert.Equal(t, "contact_whatsapp", res.Action)
}

func TestVerifyLowScore(t *testing.T) {
	srv := siteverifyStub(t, `{"success":true,"score":0.2,"action":"contact_whatsapp"}`)
	rs := newVerifier("secret", srv.URL, "production")

	res := rs.Verify("token", RecaptchaActionContactWhatsApp)
	assert.False(t, res.Valid)
	assert.Equal(t, 0.2, res.Score)
}

func TestVerifyActionMismatch(t *testing.T) {
	srv := siteverifyStub(t, `{"success":true,"score":0.9,"action":"homepage"}`)
	rs := newVerifier("secret", srv.URL, "production")

	res := rs.Verify("token", RecaptchaActionContactWhatsApp)
	assert.False(t, res.Valid)
	assert.Equal(t, "Action mismatch", res.Error)
}

func TestVerifyFailureResponse(t *testing.T) {
	srv := siteverifyStub(t, `{"success":false,"error-codes":["invalid-input-response"]}`)
	rs := newVerifier("secret", srv.URL, "production")

	res := rs.Verify("token", RecaptchaActionContactWhatsApp)
	assert.False(t, res.Valid)
	assert.Equal(t, float64(0), res.Score)
	assert.Contains(t, res.Error, "invalid-input-response")
}

func TestVerifyMalformedJSON(t *testing.T) {
	srv := siteverifyStub(t, `not json at all`)
	rs := newVerifier("secret", srv.URL, "production")

	res := rs.Verify("token", RecaptchaActionContactWhatsApp)
	assert.False(t, res.Valid)
	assert.Equal(t, float64(0), res.Score)
}

func TestVerifyNon200Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()
	rs := newVerifier("secret", srv.URL, "production")

	res := rs.Verify("token", RecaptchaActionContactWhatsApp)
	assert.False(t, res.Valid)
	assert.Equal(t, float64(0), res.Score)
}

func TestVerifyNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	rs := newVerifier("secret", srv.URL, "production")

	res := rs.Verify("token", RecaptchaActionContactWhatsApp)
	assert.False(t, res.Valid)
	assert.Equal(t, float64(0), res.Score)
}

func TestVerifyBypassWithoutSecret(t *testing.T) {
	rs := newVerifier("", "http://unused", "production")

	res := rs.Verify("", RecaptchaActionContactWhatsApp)
	assert.True(t, res.Valid)
	assert.Equal(t, 1.0, res.Score)
}

func TestVerifyDevBypassWithoutToken(t *testing.T) {
	rs := newVerifier("secret", "http://unused", "development")

	res := rs.Verify("", RecaptchaActionContactWhatsApp)
	assert.True(t, res.Valid)
	assert.Equal(t, 1.0, res.Score)
}

func TestVerifyProductionRequiresToken(t *testing.T) {
	rs := newVerifier("secret", "http://unused", "production")

	res := rs.Verify("", RecaptchaActionContactWhatsApp)
	assert.False(t, res.Valid)
	assert.Equal(t, float64(0), res.Score)
}

func TestVerifyDevBypassBrowserError(t *testing.T) {
	srv := siteverifyStub(t, `{"success":false,"error-codes":["browser-error"]}`)

	rs := newVerifier("secret", srv.URL, "development")
	res := rs.Verify("token", RecaptchaActionContactWhatsApp)
	assert.True(t, res.Valid)

	rs = newVerifier("secret", srv.URL, "production")
	res = rs.Verify("token", RecaptchaActionContactWhatsApp)
	assert.False(t, res.Valid)
}
