package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"portfolia_backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessRequestHandler_RequestAccessResponse(t *testing.T) {
	router, db := setupTestServer(t)
	owner, _ := createServerUser(t, db, "Owner", models.UserRoleUser)
	_, requesterToken := createServerUser(t, db, "Requester", models.UserRoleUser)
	portfolio := createServerPortfolio(t, db, owner.ID, false)

	path := fmt.Sprintf("/api/v1/portfolios/%s/access-requests", portfolio.ID)
	w := sendRequest(t, router, http.MethodPost, path, requesterToken, gin.H{"message": "Хочу посмотреть"})

	require.Equal(t, http.StatusOK, w.Code, "Успешный запрос доступа отвечает 200: "+w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, "Access request sent successfully", body["message"])

	request, ok := body["request"].(map[string]interface{})
	require.True(t, ok, "В ответе лежит созданный запрос")
	assert.Equal(t, portfolio.ID, request["portfolio_id"])
	assert.Equal(t, string(models.AccessRequestPending), request["status"])

	// Повторная подача по той же паре отклоняется
	w = sendRequest(t, router, http.MethodPost, path, requesterToken, gin.H{"message": "еще раз"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	db.Model(&models.AccessRequest{}).Count(&count)
	assert.Equal(t, int64(1), count, "Дубликат не создает вторую строку")
}

func TestAccessRequestHandler_RequestAccessUnauthenticated(t *testing.T) {
	router, db := setupTestServer(t)
	owner, _ := createServerUser(t, db, "Owner", models.UserRoleUser)
	portfolio := createServerPortfolio(t, db, owner.ID, false)

	path := fmt.Sprintf("/api/v1/portfolios/%s/access-requests", portfolio.ID)
	w := sendRequest(t, router, http.MethodPost, path, "", gin.H{"message": "аноним"})

	require.Equal(t, http.StatusUnauthorized, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Authorization header missing or invalid", body["error"])

	var count int64
	db.Model(&models.AccessRequest{}).Count(&count)
	assert.Zero(t, count, "Без токена запрос не создается")
}

func TestAccessRequestHandler_RequestAccessMissingPortfolio(t *testing.T) {
	router, db := setupTestServer(t)
	_, token := createServerUser(t, db, "Requester", models.UserRoleUser)

	w := sendRequest(t, router, http.MethodPost,
		"/api/v1/portfolios/00000000-0000-0000-0000-000000000000/access-requests",
		token, gin.H{"message": "в пустоту"})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAccessRequestHandler_DecideLifecycle(t *testing.T) {
	router, db := setupTestServer(t)
	owner, ownerToken := createServerUser(t, db, "Owner", models.UserRoleUser)
	_, requesterToken := createServerUser(t, db, "Requester", models.UserRoleUser)
	portfolio := createServerPortfolio(t, db, owner.ID, false)

	createPath := fmt.Sprintf("/api/v1/portfolios/%s/access-requests", portfolio.ID)
	w := sendRequest(t, router, http.MethodPost, createPath, requesterToken, gin.H{"message": "hi"})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	request := body["request"].(map[string]interface{})
	requestID := request["id"].(string)

	decidePath := fmt.Sprintf("/api/v1/access-requests/%s/decide", requestID)
	w = sendRequest(t, router, http.MethodPut, decidePath, ownerToken, gin.H{"approve": true})
	require.Equal(t, http.StatusOK, w.Code, "Владелец решает запрос: "+w.Body.String())
	decided := decodeBody(t, w)
	assert.Equal(t, string(models.AccessRequestApproved), decided["status"])

	// Повторное решение по уже решенному запросу
	w = sendRequest(t, router, http.MethodPut, decidePath, ownerToken, gin.H{"approve": false})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Первое решение не перезаписано
	var stored models.AccessRequest
	require.NoError(t, db.First(&stored, "id = ?", requestID).Error)
	assert.Equal(t, models.AccessRequestApproved, stored.Status)
}

func TestAccessRequestHandler_DebugAnonymous(t *testing.T) {
	router, db := setupTestServer(t)
	owner, _ := createServerUser(t, db, "Owner", models.UserRoleUser)
	_, requesterToken := createServerUser(t, db, "Requester", models.UserRoleUser)
	portfolio := createServerPortfolio(t, db, owner.ID, false)

	createPath := fmt.Sprintf("/api/v1/portfolios/%s/access-requests", portfolio.ID)
	w := sendRequest(t, router, http.MethodPost, createPath, requesterToken, gin.H{"message": "hi"})
	require.Equal(t, http.StatusOK, w.Code)

	// Диагностика работает без токена
	debugPath := fmt.Sprintf("/api/v1/access-requests/debug/%s", portfolio.ID)
	w = sendRequest(t, router, http.MethodGet, debugPath, "", nil)
	require.Equal(t, http.StatusOK, w.Code, "Диагностика доступна анониму: "+w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, portfolio.ID, body["portfolio_id"])
	assert.Equal(t, true, body["portfolio_exists"])
	assert.Equal(t, float64(1), body["request_count"])
	assert.Equal(t, float64(1), body["pending_count"])

	// Несуществующее портфолио - не ошибка, а exists:false
	w = sendRequest(t, router, http.MethodGet,
		"/api/v1/access-requests/debug/00000000-0000-0000-0000-000000000000", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.Equal(t, false, body["portfolio_exists"])
	assert.Equal(t, float64(0), body["request_count"])
}
