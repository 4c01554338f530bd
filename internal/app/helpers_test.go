package app_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"freelink_backend/internal/app"
	"freelink_backend/internal/config"
	"freelink_backend/internal/payment"
	"freelink_backend/internal/storage"
	"freelink_backend/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const webhookSecret = "whsec_test"

type TestServer struct {
	Server   *httptest.Server
	DB       *gorm.DB
	Gateway  *payment.SandboxGateway
	Notifier *testutil.FakeNotifier
}

func SetupTestServer(t *testing.T) *TestServer {
	t.Helper()

	cfg := &config.Config{
		Server:  config.ServerConfig{Name: "freelink-test", Env: "test"},
		JWT:     config.JWTConfig{Secret: "test-secret", TTL: time.Hour},
		Auth:    config.AuthConfig{FrontendURL: "http://localhost:5173", ResetTokenTTL: time.Hour},
		Upload:  config.UploadConfig{MaxSize: 1 << 20, MaxImageDimension: 256, ImageQuality: 80},
		Payment: config.PaymentConfig{Gateway: "sandbox", WebhookSecret: webhookSecret, TokenPriceUSD: 1, USDToCOPRate: 4000, Currency: "COP", WelcomeTokens: 1},
		CORS:    config.CORSConfig{AllowedOrigins: []string{"*"}},
	}

	db := testutil.NewTestDB(t)
	files, err := storage.NewLocalStorage(storage.Config{Type: "local", BasePath: t.TempDir()})
	require.NoError(t, err)

	ts := &TestServer{
		DB:       db,
		Gateway:  payment.NewSandboxGateway(webhookSecret),
		Notifier: &testutil.FakeNotifier{},
	}
	router := app.SetupRouter(cfg, db, &app.Dependencies{
		Storage:  files,
		Notifier: ts.Notifier,
		Gateway:  ts.Gateway,
		Deduper:  payment.NoopDeduper{},
	})
	ts.Server = httptest.NewServer(router)
	t.Cleanup(ts.Server.Close)
	return ts
}

// SendRequest sends body as JSON and returns the response with its body read.
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	return ts.send(t, method, path, token, reader, nil)
}

func (ts *TestServer) send(t *testing.T, method, path, token string, body io.Reader, headers map[string]string) (*http.Response, string) {
	t.Helper()

	req, err := http.NewRequest(method, ts.Server.URL+path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := ts.Server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(raw)
}

// RegisterAndLogin creates an account through the API and returns its access token and user id.
func (ts *TestServer) RegisterAndLogin(t *testing.T, name, email, role string) (string, string) {
	t.Helper()

	resp, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": testutil.DefaultPassword,
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)

	resp, body = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": testutil.DefaultPassword,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, body)

	var login struct {
		AccessToken string `json:"access_token"`
		User        struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &login))
	require.NotEmpty(t, login.AccessToken)
	return login.AccessToken, login.User.ID
}

func decode(t *testing.T, body string, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(body), out), body)
}
