package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler          *AuthHandler
	UserHandler          *UserHandler
	PortfolioHandler     *PortfolioHandler
	AccessRequestHandler *AccessRequestHandler
	NotificationHandler  *NotificationHandler
	StatsHandler         *StatsHandler
	HealthHandler        *HealthHandler
}
