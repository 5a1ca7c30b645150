package model

// Company 公司表 — 对应 companies
type Company struct {
	ID          string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name        string `gorm:"type:varchar(255);not null;index"               json:"name"`
	Description string `gorm:"type:text"                                      json:"description,omitempty"`
	IsVisible   bool   `gorm:"not null;default:true"                          json:"is_visible"`
	OwnerID     string `gorm:"type:uuid;not null"                             json:"owner_id"`
	BaseModel

	// 关联
	Owner *User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

// TableName 指定表名
func (Company) TableName() string { return "companies" }

// CompanyMember 公司成员关系表 — 对应 company_members
// (user_id, company_id) 唯一
type CompanyMember struct {
	ID        string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"         json:"id"`
	UserID    string `gorm:"type:uuid;not null;uniqueIndex:uq_member_user_company"  json:"user_id"`
	CompanyID string `gorm:"type:uuid;not null;uniqueIndex:uq_member_user_company"  json:"company_id"`
	IsAdmin   bool   `gorm:"not null;default:false"                                 json:"is_admin"`
	BaseModel

	// 关联
	User    *User    `gorm:"foreignKey:UserID"    json:"user,omitempty"`
	Company *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}

// TableName 指定表名
func (CompanyMember) TableName() string { return "company_members" }
