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

func TestPortfolioHandler_CreateAndView(t *testing.T) {
	router, db := setupTestServer(t)
	_, token := createServerUser(t, db, "Owner", models.UserRoleUser)

	w := sendRequest(t, router, http.MethodPost, "/api/v1/portfolios", token, gin.H{
		"title":       "Мое портфолио",
		"description": "Работы за год",
	})
	require.Equal(t, http.StatusCreated, w.Code, "Создание портфолио отвечает 201: "+w.Body.String())

	created := decodeBody(t, w)
	assert.Equal(t, "Мое портфолио", created["title"])
	assert.Equal(t, false, created["is_public"], "Новое портфолио приватно")

	portfolioID := created["id"].(string)
	w = sendRequest(t, router, http.MethodGet, "/api/v1/portfolios/"+portfolioID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	viewed := decodeBody(t, w)
	assert.Equal(t, true, viewed["is_owner"])
}

func TestPortfolioHandler_CreateValidation(t *testing.T) {
	router, db := setupTestServer(t)
	_, token := createServerUser(t, db, "Owner", models.UserRoleUser)

	// title обязателен
	w := sendRequest(t, router, http.MethodPost, "/api/v1/portfolios", token, gin.H{"description": "без названия"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	db.Model(&models.Portfolio{}).Count(&count)
	assert.Zero(t, count)
}

func TestPortfolioHandler_PrivateViewDenied(t *testing.T) {
	router, db := setupTestServer(t)
	owner, _ := createServerUser(t, db, "Owner", models.UserRoleUser)
	_, strangerToken := createServerUser(t, db, "Stranger", models.UserRoleUser)
	portfolio := createServerPortfolio(t, db, owner.ID, false)

	path := "/api/v1/portfolios/" + portfolio.ID

	// Аноним не видит приватное портфолио
	w := sendRequest(t, router, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Авторизованный без одобренного доступа тоже
	w = sendRequest(t, router, http.MethodGet, path, strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPortfolioHandler_DeleteByAdmin(t *testing.T) {
	router, db := setupTestServer(t)
	owner, _ := createServerUser(t, db, "Owner", models.UserRoleUser)
	_, adminToken := createServerUser(t, db, "Admin", models.UserRoleAdmin)
	_, strangerToken := createServerUser(t, db, "Stranger", models.UserRoleUser)
	portfolio := createServerPortfolio(t, db, owner.ID, true)

	path := "/api/v1/portfolios/" + portfolio.ID

	// Посторонний пользователь удалить не может
	w := sendRequest(t, router, http.MethodDelete, path, strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Админ удаляет чужое портфолио
	w = sendRequest(t, router, http.MethodDelete, path, adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code, "Админ удаляет любое портфолио: "+w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, "Portfolio deleted successfully", body["message"])

	var count int64
	db.Model(&models.Portfolio{}).Where("id = ?", portfolio.ID).Count(&count)
	assert.Zero(t, count)
}

func TestPortfolioHandler_SectionItems(t *testing.T) {
	router, db := setupTestServer(t)
	owner, token := createServerUser(t, db, "Owner", models.UserRoleUser)
	portfolio := createServerPortfolio(t, db, owner.ID, true)

	projectsPath := fmt.Sprintf("/api/v1/portfolios/%s/projects", portfolio.ID)
	w := sendRequest(t, router, http.MethodPost, projectsPath, token, gin.H{
		"title":       "CLI утилита",
		"description": "Небольшой проект",
	})
	require.Equal(t, http.StatusCreated, w.Code, "Добавление проекта отвечает 201: "+w.Body.String())

	var project models.Project
	require.NoError(t, db.First(&project, "portfolio_id = ?", portfolio.ID).Error)
	assert.Equal(t, "CLI утилита", project.Title)

	itemPath := fmt.Sprintf("%s/%s", projectsPath, project.ID)
	w = sendRequest(t, router, http.MethodPut, itemPath, token, gin.H{"title": "CLI утилита v2"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Project updated", decodeBody(t, w)["message"])

	w = sendRequest(t, router, http.MethodDelete, itemPath, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Project deleted", decodeBody(t, w)["message"])

	var count int64
	db.Model(&models.Project{}).Where("portfolio_id = ?", portfolio.ID).Count(&count)
	assert.Zero(t, count)
}
