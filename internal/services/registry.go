package services

import (
	"portfolia_backend/internal/email"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService          AuthService
	UserService          UserService
	PortfolioService     PortfolioService
	AccessRequestService AccessRequestService
	NotificationService  NotificationService
	StatsService         StatsService
	EmailService         email.Provider
}
