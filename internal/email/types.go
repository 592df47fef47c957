package email

// Email представляет структуру email сообщения
type Email struct {
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// AccessRequestedData - данные письма владельцу о новом запросе доступа.
type AccessRequestedData struct {
	OwnerName      string
	RequesterName  string
	PortfolioTitle string
	Message        string
	ActionURL      string
}

// AccessDecidedData - данные письма автору запроса о решении владельца.
type AccessDecidedData struct {
	RequesterName  string
	PortfolioTitle string
	Approved       bool
	OwnerNote      string
	ActionURL      string
}

// WelcomeData - данные приветственного письма.
type WelcomeData struct {
	UserName  string
	ActionURL string
}
