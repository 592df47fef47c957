package services

import (
	"sync"
	"testing"

	"portfolia_backend/internal/models"
	"portfolia_backend/internal/repositories"
	"portfolia_backend/internal/services/dto"
	"portfolia_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessRequestService_RequestAccess(t *testing.T) {
	db := setupTestDB(t)
	svc := newAccessRequestService(db)
	owner := createTestUser(t, db, "Owner")
	requester := createTestUser(t, db, "Requester")
	portfolio := createTestPortfolio(t, db, owner.ID, false)

	resp, err := svc.RequestAccess(requester.ID, portfolio.ID, &dto.CreateAccessRequestRequest{
		Message: "Хочу посмотреть ваши проекты",
	})
	require.NoError(t, err)
	assert.Equal(t, models.AccessRequestPending, resp.Status)
	assert.Equal(t, requester.ID, resp.RequesterID)

	// Владелец получает уведомление атомарно с запросом
	var notifications []models.Notification
	require.NoError(t, db.Where("user_id = ?", owner.ID).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, repositories.NotificationTypeAccessRequested, notifications[0].Type)
}

func TestAccessRequestService_DuplicateRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := newAccessRequestService(db)
	owner := createTestUser(t, db, "Owner")
	requester := createTestUser(t, db, "Requester")
	portfolio := createTestPortfolio(t, db, owner.ID, false)

	_, err := svc.RequestAccess(requester.ID, portfolio.ID, &dto.CreateAccessRequestRequest{})
	require.NoError(t, err)

	_, err = svc.RequestAccess(requester.ID, portfolio.ID, &dto.CreateAccessRequestRequest{})
	assert.True(t, apperrors.Is(err, apperrors.ErrAccessRequestExists), "Повторный запрос по той же паре отклоняется")

	// Дубликат не должен породить второе уведомление
	var count int64
	db.Model(&models.Notification{}).Where("user_id = ?", owner.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestAccessRequestService_MissingPortfolio(t *testing.T) {
	db := setupTestDB(t)
	svc := newAccessRequestService(db)
	requester := createTestUser(t, db, "Requester")

	_, err := svc.RequestAccess(requester.ID, "no-such-portfolio", &dto.CreateAccessRequestRequest{})
	assert.True(t, apperrors.Is(err, apperrors.ErrPortfolioNotFound))

	// Ни запроса, ни уведомления не появилось
	var count int64
	db.Model(&models.AccessRequest{}).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.Notification{}).Count(&count)
	assert.Zero(t, count)
}

func TestAccessRequestService_ConcurrentDuplicates(t *testing.T) {
	db := setupTestDB(t)
	svc := newAccessRequestService(db)
	owner := createTestUser(t, db, "Owner")
	requester := createTestUser(t, db, "Requester")
	portfolio := createTestPortfolio(t, db, owner.ID, false)

	const attempts = 8
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RequestAccess(requester.ID, portfolio.ID, &dto.CreateAccessRequestRequest{})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.True(t, apperrors.Is(err, apperrors.ErrAccessRequestExists), "Проигравшие получают ALREADY_EXISTS, а не случайную ошибку")
		}
	}
	assert.Equal(t, 1, succeeded, "Из гонки выживает ровно один запрос")

	var requests int64
	db.Model(&models.AccessRequest{}).Where("portfolio_id = ?", portfolio.ID).Count(&requests)
	assert.Equal(t, int64(1), requests)

	var notifications int64
	db.Model(&models.Notification{}).Where("user_id = ?", owner.ID).Count(&notifications)
	assert.Equal(t, int64(1), notifications, "Уведомление только от выжившей вставки")
}

func TestAccessRequestService_OwnPortfolioRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := newAccessRequestService(db)
	owner := createTestUser(t, db, "Owner")
	portfolio := createTestPortfolio(t, db, owner.ID, false)

	_, err := svc.RequestAccess(owner.ID, portfolio.ID, &dto.CreateAccessRequestRequest{})
	assert.True(t, apperrors.Is(err, apperrors.ErrOwnPortfolioRequest), "Запрос к собственному портфолио бессмыслен")
}

func TestAccessRequestService_DecideApprove(t *testing.T) {
	db := setupTestDB(t)
	svc := newAccessRequestService(db)
	owner := createTestUser(t, db, "Owner")
	requester := createTestUser(t, db, "Requester")
	portfolio := createTestPortfolio(t, db, owner.ID, false)

	created, err := svc.RequestAccess(requester.ID, portfolio.ID, &dto.CreateAccessRequestRequest{})
	require.NoError(t, err)

	decided, err := svc.Decide(owner.ID, created.ID, &dto.DecideAccessRequestRequest{
		Approve:   true,
		OwnerNote: "Добро пожаловать",
	})
	require.NoError(t, err)
	assert.Equal(t, models.AccessRequestApproved, decided.Status)
	assert.NotNil(t, decided.DecidedAt)
	assert.Equal(t, "Добро пожаловать", decided.OwnerResponseNote)

	// Автор запроса получает уведомление об одобрении
	var notifications []models.Notification
	require.NoError(t, db.Where("user_id = ?", requester.ID).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, repositories.NotificationTypeAccessApproved, notifications[0].Type)

	// После одобрения приватное портфолио открывается
	portfolioSvc := newPortfolioService(db)
	view, err := portfolioSvc.View(portfolio.ID, ViewerContext{UserID: requester.ID})
	require.NoError(t, err)
	assert.False(t, view.IsOwner)
}

func TestAccessRequestService_DecideReject(t *testing.T) {
	db := setupTestDB(t)
	svc := newAccessRequestService(db)
	owner := createTestUser(t, db, "Owner")
	requester := createTestUser(t, db, "Requester")
	portfolio := createTestPortfolio(t, db, owner.ID, false)

	created, err := svc.RequestAccess(requester.ID, portfolio.ID, &dto.CreateAccessRequestRequest{})
	require.NoError(t, err)

	decided, err := svc.Decide(owner.ID, created.ID, &dto.DecideAccessRequestRequest{Approve: false})
	require.NoError(t, err)
	assert.Equal(t, models.AccessRequestRejected, decided.Status)

	var notifications []models.Notification
	require.NoError(t, db.Where("user_id = ?", requester.ID).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, repositories.NotificationTypeAccessRejected, notifications[0].Type)

	// Отклоненный запрос не дает доступа
	portfolioSvc := newPortfolioService(db)
	_, err = portfolioSvc.View(portfolio.ID, ViewerContext{UserID: requester.ID})
	assert.True(t, apperrors.Is(err, apperrors.ErrPortfolioPrivate))
}

func TestAccessRequestService_DoubleDecideConflict(t *testing.T) {
	db := setupTestDB(t)
	svc := newAccessRequestService(db)
	owner := createTestUser(t, db, "Owner")
	requester := createTestUser(t, db, "Requester")
	portfolio := createTestPortfolio(t, db, owner.ID, false)

	created, err := svc.RequestAccess(requester.ID, portfolio.ID, &dto.CreateAccessRequestRequest{})
	require.NoError(t, err)

	_, err = svc.Decide(owner.ID, created.ID, &dto.DecideAccessRequestRequest{Approve: true})
	require.NoError(t, err)

	_, err = svc.Decide(owner.ID, created.ID, &dto.DecideAccessRequestRequest{Approve: false})
	assert.True(t, apperrors.Is(err, apperrors.ErrRequestAlreadyDecided), "Решение выносится ровно один раз")
}

func TestAccessRequestService_DecideRequiresOwner(t *testing.T) {
	db := setupTestDB(t)
	svc := newAccessRequestService(db)
	owner := createTestUser(t, db, "Owner")
	requester := createTestUser(t, db, "Requester")
	stranger := createTestUser(t, db, "Stranger")
	portfolio := createTestPortfolio(t, db, owner.ID, false)

	created, err := svc.RequestAccess(requester.ID, portfolio.ID, &dto.CreateAccessRequestRequest{})
	require.NoError(t, err)

	_, err = svc.Decide(stranger.ID, created.ID, &dto.DecideAccessRequestRequest{Approve: true})
	assert.True(t, apperrors.Is(err, apperrors.ErrNotPortfolioOwner))

	// Сам автор запроса тоже не может его одобрить
	_, err = svc.Decide(requester.ID, created.ID, &dto.DecideAccessRequestRequest{Approve: true})
	assert.True(t, apperrors.Is(err, apperrors.ErrNotPortfolioOwner))
}

func TestAccessRequestService_Lists(t *testing.T) {
	db := setupTestDB(t)
	svc := newAccessRequestService(db)
	owner := createTestUser(t, db, "Owner")
	first := createTestUser(t, db, "First")
	second := createTestUser(t, db, "Second")
	portfolio := createTestPortfolio(t, db, owner.ID, false)

	firstReq, err := svc.RequestAccess(first.ID, portfolio.ID, &dto.CreateAccessRequestRequest{})
	require.NoError(t, err)
	_, err = svc.RequestAccess(second.ID, portfolio.ID, &dto.CreateAccessRequestRequest{})
	require.NoError(t, err)

	incoming, err := svc.ListIncoming(owner.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 2, incoming.Total)

	_, err = svc.Decide(owner.ID, firstReq.ID, &dto.DecideAccessRequestRequest{Approve: true})
	require.NoError(t, err)

	pending, err := svc.ListIncoming(owner.ID, "pending")
	require.NoError(t, err)
	assert.Equal(t, 1, pending.Total, "Фильтр по статусу отсекает решенные")

	outgoing, err := svc.ListOutgoing(first.ID)
	require.NoError(t, err)
	require.Equal(t, 1, outgoing.Total)
	assert.Equal(t, models.AccessRequestApproved, outgoing.Requests[0].Status)

	// Чужак не видит ничью очередь
	empty, err := svc.ListIncoming(second.ID, "")
	require.NoError(t, err)
	assert.Zero(t, empty.Total)
}

func TestAccessRequestService_CancelRequest(t *testing.T) {
	db := setupTestDB(t)
	svc := newAccessRequestService(db)
	owner := createTestUser(t, db, "Owner")
	requester := createTestUser(t, db, "Requester")
	portfolio := createTestPortfolio(t, db, owner.ID, false)

	created, err := svc.RequestAccess(requester.ID, portfolio.ID, &dto.CreateAccessRequestRequest{})
	require.NoError(t, err)

	// Отменить может только автор
	err = svc.CancelRequest(owner.ID, created.ID)
	assert.Error(t, err)

	require.NoError(t, svc.CancelRequest(requester.ID, created.ID))

	// После отмены можно запросить заново
	_, err = svc.RequestAccess(requester.ID, portfolio.ID, &dto.CreateAccessRequestRequest{})
	assert.NoError(t, err)
}

func TestAccessRequestService_GetRequestVisibility(t *testing.T) {
	db := setupTestDB(t)
	svc := newAccessRequestService(db)
	owner := createTestUser(t, db, "Owner")
	requester := createTestUser(t, db, "Requester")
	stranger := createTestUser(t, db, "Stranger")
	portfolio := createTestPortfolio(t, db, owner.ID, false)

	created, err := svc.RequestAccess(requester.ID, portfolio.ID, &dto.CreateAccessRequestRequest{})
	require.NoError(t, err)

	_, err = svc.GetRequest(owner.ID, created.ID)
	assert.NoError(t, err, "Владелец портфолио видит запрос")

	_, err = svc.GetRequest(requester.ID, created.ID)
	assert.NoError(t, err, "Автор видит свой запрос")

	_, err = svc.GetRequest(stranger.ID, created.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrAccessRequestNotFound), "Для постороннего запрос неотличим от несуществующего")
}

func TestAccessRequestService_DebugPortfolio(t *testing.T) {
	db := setupTestDB(t)
	svc := newAccessRequestService(db)
	owner := createTestUser(t, db, "Owner")
	first := createTestUser(t, db, "First")
	second := createTestUser(t, db, "Second")
	portfolio := createTestPortfolio(t, db, owner.ID, false)

	missing, err := svc.DebugPortfolio("no-such-portfolio")
	require.NoError(t, err, "Несуществующее портфолио - не ошибка, а диагноз")
	assert.False(t, missing.PortfolioExists)
	assert.Zero(t, missing.RequestCount)

	created, err := svc.RequestAccess(first.ID, portfolio.ID, &dto.CreateAccessRequestRequest{})
	require.NoError(t, err)
	_, err = svc.RequestAccess(second.ID, portfolio.ID, &dto.CreateAccessRequestRequest{})
	require.NoError(t, err)
	_, err = svc.Decide(owner.ID, created.ID, &dto.DecideAccessRequestRequest{Approve: true})
	require.NoError(t, err)

	debug, err := svc.DebugPortfolio(portfolio.ID)
	require.NoError(t, err)
	assert.True(t, debug.PortfolioExists)
	assert.Equal(t, 2, debug.RequestCount)
	assert.Equal(t, 1, debug.PendingCount)
}
