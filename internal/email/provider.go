package email

// Provider определяет интерфейс для отправки email.
// Все вызовы best-effort: сервисы логируют ошибку и продолжают работу,
// авторитетным сигналом остается in-app уведомление.
type Provider interface {
	// Send отправляет готовое email сообщение
	Send(email *Email) error

	// SendWelcome отправляет приветственное письмо после регистрации
	SendWelcome(to string, data WelcomeData) error

	// SendAccessRequested уведомляет владельца портфолио о новом запросе
	SendAccessRequested(to string, data AccessRequestedData) error

	// SendAccessDecided уведомляет автора запроса о решении владельца
	SendAccessDecided(to string, data AccessDecidedData) error

	// Validate проверяет конфигурацию провайдера
	Validate() error
}
