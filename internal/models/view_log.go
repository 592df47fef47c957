package models

// PortfolioViewLog - append-only журнал просмотров портфолио.
// ViewerID пустой для анонимных просмотров; при удалении пользователя
// ссылка обнуляется, при удалении портфолио записи каскадно удаляются.
type PortfolioViewLog struct {
	BaseModel
	PortfolioID string  `gorm:"type:uuid;not null;index" json:"portfolio_id"`
	ViewerID    *string `gorm:"type:uuid" json:"viewer_id"`
	ViewerName  string  `gorm:"size:200" json:"viewer_name"`
	ViewerEmail string  `gorm:"size:200" json:"viewer_email"`
	IPAddress   string  `gorm:"size:64" json:"ip_address"`
	UserAgent   string  `gorm:"size:500" json:"user_agent"`

	// Relations
	Portfolio *Portfolio `gorm:"foreignKey:PortfolioID;constraint:OnDelete:CASCADE" json:"-"`
	Viewer    *User      `gorm:"foreignKey:ViewerID;constraint:OnDelete:SET NULL" json:"-"`
}
