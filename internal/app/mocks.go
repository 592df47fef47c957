package app

import "portfolia_backend/internal/email"

// MockEmailProvider используется для тестов и локальной разработки.
type MockEmailProvider struct{}

func (m *MockEmailProvider) Send(msg *email.Email) error { return nil }

func (m *MockEmailProvider) SendWelcome(to string, data email.WelcomeData) error { return nil }

func (m *MockEmailProvider) SendAccessRequested(to string, data email.AccessRequestedData) error {
	return nil
}

func (m *MockEmailProvider) SendAccessDecided(to string, data email.AccessDecidedData) error {
	return nil
}

func (m *MockEmailProvider) Validate() error { return nil }
