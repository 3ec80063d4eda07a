package feedback_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"feedback-service/common/logger"
	"feedback-service/internal/auth"
	"feedback-service/internal/feedback"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandler(t *testing.T) (*gin.Engine, *auth.TokenIssuer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.Discard()
	tokens := auth.NewTokenIssuer("test-secret-key-for-testing", time.Hour)
	handler := feedback.NewHandler(newTestService(newFakeRepo(), nil), log)

	router := gin.New()
	api := router.Group("/api", auth.RequireRole(tokens, auth.RoleStudent, log))
	handler.RegisterRoutes(api)
	return router, tokens
}

func submit(router http.Handler, payload interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/feedback", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func studentCookie(t *testing.T, tokens *auth.TokenIssuer, id int64) *http.Cookie {
	t.Helper()
	token, _, err := tokens.Issue(&auth.Identity{Role: auth.RoleStudent, ID: id, Email: "asha@x.com"})
	require.NoError(t, err)
	return &http.Cookie{Name: auth.CookieName(auth.RoleStudent), Value: token}
}

func TestHandler_SubmitFeedback(t *testing.T) {
	router, tokens := setupHandler(t)
	cookie := studentCookie(t, tokens, 1)

	t.Run("Anonymous", func(t *testing.T) {
		w := submit(router, map[string]interface{}{"course_id": 1, "rating": 4})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Created", func(t *testing.T) {
		w := submit(router, map[string]interface{}{"course_id": 1, "rating": 4, "comments": "Great"}, cookie)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp feedback.SubmitResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, int64(1), resp.FeedbackID)
	})

	t.Run("Duplicate", func(t *testing.T) {
		w := submit(router, map[string]interface{}{"course_id": 1, "rating": 2}, cookie)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "already submitted")
	})

	t.Run("StudentIDInBodyIgnored", func(t *testing.T) {
		w := submit(router, map[string]interface{}{"student_id": 99, "course_id": 2, "rating": 5}, cookie)
		assert.Equal(t, http.StatusCreated, w.Code)

		// Still student 1: a second post for course 2 is a duplicate.
		w = submit(router, map[string]interface{}{"course_id": 2, "rating": 5}, cookie)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("InvalidRating", func(t *testing.T) {
		w := submit(router, map[string]interface{}{"course_id": 3, "rating": 9}, cookie)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Rating must be")
	})

	t.Run("AdminTokenRejected", func(t *testing.T) {
		token, _, err := tokens.Issue(&auth.Identity{Role: auth.RoleAdmin, ID: 1, Username: "root"})
		require.NoError(t, err)
		w := submit(router, map[string]interface{}{"course_id": 3, "rating": 3},
			&http.Cookie{Name: auth.CookieName(auth.RoleStudent), Value: token})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
