// Package integrationtest provides helpers used in end to end api tests.
package integrationtest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/go-petr/instapay/cmd/httpserver"
	"github.com/go-petr/instapay/internal/middleware"
	"github.com/go-petr/instapay/pkg/configpkg"
	"github.com/go-petr/instapay/pkg/randompkg"
	"github.com/go-petr/instapay/pkg/web"
)

// SetupServer returns a fresh in-memory server.
//
// The configuration is read from configs relative to the module root; the
// OTP store is always the in-memory one.
func SetupServer(t *testing.T) *httpserver.Server {
	t.Helper()

	config, err := configpkg.Load("../../configs")
	if err != nil {
		t.Fatalf(`configpkg.Load("../../configs") returned error: %v`, err)
	}

	config.OTPStore = "memory"
	config.Environement = "test"

	logger := middleware.GetLogger(config).Level(zerolog.Disabled)

	server, err := httpserver.New(logger, config)
	if err != nil {
		t.Fatalf(`httpserver.New(logger, config) returned error: %v`, err)
	}

	t.Cleanup(func() {
		if err := server.Close(); err != nil {
			t.Errorf("server.Close() returned error: %v", err)
		}
	})

	return server
}

// Do sends the request with an optional json body and bearer token and
// returns the recorded response.
func Do(t *testing.T, h http.Handler, method, url, accessToken string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer

	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("http.NewRequest(%v, %v) returned error: %v", method, url, err)
	}

	req.Header.Set("Content-Type", "application/json")

	if accessToken != "" {
		req.Header.Set(middleware.AuthHeaderKey, middleware.AuthTypeBearer+" "+accessToken)
	}

	recorder := httptest.NewRecorder()
	h.ServeHTTP(recorder, req)

	return recorder
}

// Decode decodes the recorded json response into v.
func Decode(t *testing.T, recorder *httptest.ResponseRecorder, v any) {
	t.Helper()

	if err := json.NewDecoder(recorder.Body).Decode(v); err != nil {
		t.Fatalf("decoding response %q: %v", recorder.Body.String(), err)
	}
}

// User is a user registered through the api.
type User struct {
	Username     string
	Password     string
	MobileNumber string
	AccountID    string
	AccessToken  string
	RefreshToken string
}

// RegisterUser registers a random user of the given kind and returns its credentials.
func RegisterUser(t *testing.T, h http.Handler, kind string) User {
	t.Helper()

	u := User{
		Username:     randompkg.Owner(),
		Password:     randompkg.String(10),
		MobileNumber: randompkg.MobileNumber(),
	}

	body := map[string]string{
		"username":          u.Username,
		"password":          u.Password,
		"mobile_number":     u.MobileNumber,
		"registration_type": kind,
	}

	switch kind {
	case "bank":
		body["bank_account"] = randompkg.Digits(16)
	default:
		body["wallet_provider"] = "vodafone"
	}

	recorder := Do(t, h, http.MethodPost, "/auth/register", "", body)
	if recorder.Code != http.StatusOK {
		t.Fatalf("register %v returned status %d: %s", u.Username, recorder.Code, recorder.Body.String())
	}

	var res struct {
		web.Response
		Data struct {
			User struct {
				ID string `json:"id"`
			} `json:"user"`
		} `json:"data"`
	}
	Decode(t, recorder, &res)

	u.AccountID = res.Data.User.ID
	u.AccessToken = res.AccessToken
	u.RefreshToken = res.RefreshToken

	return u
}
