package app_test

import (
	"bytes"
	"fmt"
	"net/http"
	"testing"

	"freelink_backend/internal/payment"
	"freelink_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthAndCities(t *testing.T) {
	ts := SetupTestServer(t)

	resp, body := ts.SendRequest(t, http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "ok")

	resp, body = ts.SendRequest(t, http.MethodGet, "/api/v1/cities", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Medellín")
}

func TestAuth_RegisterValidation(t *testing.T) {
	ts := SetupTestServer(t)

	// 1. Arrange
	payload := map[string]string{"name": "A", "email": "not-an-email", "password": "123"}

	// 2. Act
	resp, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", payload)

	// 3. Assert
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, `"email"`)
	assert.Contains(t, body, `"password"`)
}

func TestAuth_DuplicateEmail(t *testing.T) {
	ts := SetupTestServer(t)
	ts.RegisterAndLogin(t, "Ana", "ana@example.com", "company")

	resp, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name": "Ana 2", "email": "ANA@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, body, `"error"`)
}

func TestRoleGuards(t *testing.T) {
	ts := SetupTestServer(t)
	freelancerToken, _ := ts.RegisterAndLogin(t, "Luis", "luis@example.com", "freelancer")

	resp, _ := ts.SendRequest(t, http.MethodGet, "/api/v1/payments/balance", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/payments/balance", freelancerToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/company/vacancies", freelancerToken, map[string]interface{}{
		"title": "Nope", "description": "Freelancers cannot publish", "requirements": "none",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// TestMarketplaceFlow walks a company and a freelancer from sign-up to a rating.
func TestMarketplaceFlow(t *testing.T) {
	ts := SetupTestServer(t)
	cityID := testutil.FirstCityID(t, ts.DB)

	companyToken, _ := ts.RegisterAndLogin(t, "Acme SAS", "jobs@acme.co", "company")
	freelancerToken, freelancerUserID := ts.RegisterAndLogin(t, "Luisa", "luisa@example.com", "freelancer")

	// Profiles
	resp, body := ts.SendRequest(t, http.MethodPost, "/api/v1/company/profile", companyToken, map[string]interface{}{
		"city_id": cityID, "tax_id": "900123456-7", "size": "small", "description": "Logistics startup",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)

	resp, body = ts.SendRequest(t, http.MethodPost, "/api/v1/company/profile", companyToken, map[string]interface{}{
		"city_id": cityID, "tax_id": "900123456-8", "size": "small",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode, body)

	resp, body = ts.SendRequest(t, http.MethodPost, "/api/v1/freelancer/profile", freelancerToken, map[string]interface{}{
		"city_id": cityID, "profession": "Go developer", "experience": "Six years of backend work",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)

	// The welcome token pays for the first vacancy
	resp, body = ts.SendRequest(t, http.MethodGet, "/api/v1/payments/balance", companyToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Contains(t, body, `"available":1`)

	vacancy := map[string]interface{}{
		"title":            "Backend engineer",
		"description":      "Design and build our tracking API",
		"requirements":     "Go, PostgreSQL",
		"salary":           3500000,
		"project_duration": "6 months",
	}
	resp, body = ts.SendRequest(t, http.MethodPost, "/api/v1/company/vacancies", companyToken, vacancy)
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	assert.Contains(t, body, `"remaining_tokens":0`)

	var created struct {
		Vacancy struct {
			ID string `json:"id"`
		} `json:"vacancy"`
	}
	decode(t, body, &created)
	vacancyID := created.Vacancy.ID

	// Out of tokens
	resp, body = ts.SendRequest(t, http.MethodPost, "/api/v1/company/vacancies", companyToken, vacancy)
	assert.Equal(t, http.StatusPaymentRequired, resp.StatusCode)
	assert.Contains(t, body, `"tokens_disponibles":0`)
	assert.Contains(t, body, `"available_tokens":0`)

	// Public listing
	resp, body = ts.SendRequest(t, http.MethodGet, "/api/v1/vacancies", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, vacancyID)

	// Apply once
	path := fmt.Sprintf("/api/v1/vacancies/%s/applications", vacancyID)
	resp, body = ts.SendRequest(t, http.MethodPost, path, freelancerToken, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)

	var application struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	decode(t, body, &application)
	assert.Equal(t, "pending", application.Status)

	resp, _ = ts.SendRequest(t, http.MethodPost, path, freelancerToken, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// The company decides
	statusPath := fmt.Sprintf("/api/v1/applications/%s/status", application.ID)
	resp, body = ts.SendRequest(t, http.MethodPut, statusPath, companyToken, map[string]string{"status": "pending"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)

	resp, body = ts.SendRequest(t, http.MethodPut, statusPath, companyToken, map[string]string{"status": "accepted"})
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Contains(t, body, `"status":"accepted"`)

	sent, ok := ts.Notifier.Last()
	require.True(t, ok)
	assert.Equal(t, "luisa@example.com", sent.To)
	assert.Equal(t, "accepted", sent.Status)

	resp, _ = ts.SendRequest(t, http.MethodPut, statusPath, companyToken, map[string]string{"status": "rejected"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// A decided application cannot be withdrawn
	resp, _ = ts.SendRequest(t, http.MethodDelete, "/api/v1/applications/"+application.ID, freelancerToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Rating
	resp, body = ts.SendRequest(t, http.MethodPost, "/api/v1/ratings", companyToken, map[string]interface{}{
		"application_id": application.ID, "score": 5, "comment": "Great work",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)

	resp, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/ratings", companyToken, map[string]interface{}{
		"application_id": application.ID, "score": 4,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, body = ts.SendRequest(t, http.MethodGet, "/api/v1/freelancers/"+freelancerUserID+"/ratings", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Contains(t, body, `"average":5`)
	assert.Contains(t, body, `"total":1`)
}

func TestTokenPurchaseViaWebhook(t *testing.T) {
	ts := SetupTestServer(t)
	cityID := testutil.FirstCityID(t, ts.DB)
	companyToken, _ := ts.RegisterAndLogin(t, "Acme SAS", "pay@acme.co", "company")

	resp, body := ts.SendRequest(t, http.MethodPost, "/api/v1/company/profile", companyToken, map[string]interface{}{
		"city_id": cityID, "tax_id": "900555000-1", "size": "medium",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)

	resp, body = ts.SendRequest(t, http.MethodPost, "/api/v1/payments/intents", companyToken, map[string]int{"tokens": 101})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)

	resp, body = ts.SendRequest(t, http.MethodPost, "/api/v1/payments/intents", companyToken, map[string]int{"tokens": 3})
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)

	var purchase struct {
		PaymentIntentID string `json:"payment_intent_id"`
		Amount          int64  `json:"amount"`
	}
	decode(t, body, &purchase)
	assert.Equal(t, int64(12000), purchase.Amount)

	intent, err := ts.Gateway.MarkSucceeded(purchase.PaymentIntentID)
	require.NoError(t, err)
	payload, signature, err := ts.Gateway.BuildEvent("evt_http_1", payment.EventIntentSucceeded, intent)
	require.NoError(t, err)

	deliver := func(sig string) {
		resp, body := ts.send(t, http.MethodPost, "/api/v1/payments/webhook", "", bytes.NewReader(payload), map[string]string{
			"Stripe-Signature": sig,
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, `"received":true`)
	}

	// A forged delivery is acknowledged and ignored
	deliver("t=1,v1=forged")
	resp, body = ts.SendRequest(t, http.MethodGet, "/api/v1/payments/balance", companyToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"available":1`)

	// Delivered twice, credited once
	deliver(signature)
	deliver(signature)
	resp, body = ts.SendRequest(t, http.MethodGet, "/api/v1/payments/balance", companyToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"available":4`)

	// Confirming afterwards does not credit again
	resp, body = ts.SendRequest(t, http.MethodPost, "/api/v1/payments/intents/"+purchase.PaymentIntentID+"/confirm", companyToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Contains(t, body, `"credited":false`)
	assert.Contains(t, body, `"available":4`)
}

func TestPasswordResetFlow(t *testing.T) {
	ts := SetupTestServer(t)
	ts.RegisterAndLogin(t, "Ana", "reset@example.com", "freelancer")

	resp, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/forgot-password", "", map[string]string{"email": "unknown@example.com"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	unknownBody := body

	resp, body = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/forgot-password", "", map[string]string{"email": "reset@example.com"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, unknownBody, body, "the answer must not reveal whether the email exists")

	sent, ok := ts.Notifier.Last()
	require.True(t, ok)
	require.Contains(t, sent.Link, "token=")
	token := sent.Link[len(sent.Link)-36:]

	resp, body = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/reset-password", "", map[string]string{"token": token, "new_password": "fresh-secret"})
	require.Equal(t, http.StatusOK, resp.StatusCode, body)

	resp, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/reset-password", "", map[string]string{"token": token, "new_password": "again-secret"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "reset@example.com", "password": "fresh-secret"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDeleteAccount(t *testing.T) {
	ts := SetupTestServer(t)
	token, _ := ts.RegisterAndLogin(t, "Gone", "gone@example.com", "freelancer")

	resp, body := ts.SendRequest(t, http.MethodDelete, "/api/v1/me", token, nil)
	require.Less(t, resp.StatusCode, 300, body)

	resp, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "gone@example.com", "password": testutil.DefaultPassword})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
