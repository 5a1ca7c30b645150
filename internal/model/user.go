package model

// User 用户表 — 对应 users
type User struct {
	ID           string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	Username     string `gorm:"type:varchar(100);not null;uniqueIndex"         json:"username"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	IsActive     bool   `gorm:"not null;default:true"                          json:"is_active"`
	IsSuperuser  bool   `gorm:"not null;default:false"                         json:"is_superuser"`
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }
