package contextkeys

type ContextKey string

const (
	// DBContextKey — под этим ключом DBMiddleware кладет *gorm.DB
	// (пул или транзакцию) в контекст запроса.
	DBContextKey ContextKey = "db"
)
