package dbmodels

type Organization struct {
	BaseModel
	Name     string `gorm:"type:varchar(255)"`
	IsActive bool
}
