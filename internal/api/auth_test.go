package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	router, _ := SetupTestRouter(t)

	register := map[string]interface{}{
		"username":   "login.user",
		"email":      "login@example.com",
		"first_name": "Login",
		"last_name":  "User",
		"password":   "Qwerty123!",
	}
	w := PerformRequest(router, http.MethodPost, "/api/users", "", register)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	t.Run("valid credentials issue a token", func(t *testing.T) {
		payload := map[string]interface{}{
			"email":    "login@example.com",
			"password": "Qwerty123!",
		}
		w := PerformRequest(router, http.MethodPost, "/api/auth/token/login", "", payload)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var resp struct {
			AuthToken string `json:"auth_token"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.AuthToken)

		// The issued token must authenticate subsequent requests.
		w = PerformRequest(router, http.MethodGet, "/api/users/me", resp.AuthToken, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		payload := map[string]interface{}{
			"email":    "login@example.com",
			"password": "wrong-password",
		}
		w := PerformRequest(router, http.MethodPost, "/api/auth/token/login", "", payload)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "unable to log in")
	})

	t.Run("unknown email rejected", func(t *testing.T) {
		payload := map[string]interface{}{
			"email":    "nobody@example.com",
			"password": "Qwerty123!",
		}
		w := PerformRequest(router, http.MethodPost, "/api/auth/token/login", "", payload)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLogout(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, testDB)

	w := PerformRequest(router, http.MethodPost, "/api/auth/token/logout", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	t.Run("anonymous unauthorized", func(t *testing.T) {
		w := PerformRequest(router, http.MethodPost, "/api/auth/token/logout", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
