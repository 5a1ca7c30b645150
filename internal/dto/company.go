package dto

// ── 公司模块 DTO ──

// CreateCompanyRequest 创建公司请求
type CreateCompanyRequest struct {
	Name        string `json:"name"        binding:"required,min=2,max=255"`
	Description string `json:"description" binding:"omitempty,max=2000"`
	IsVisible   *bool  `json:"is_visible"`
}

// AddMemberRequest 添加公司成员请求
type AddMemberRequest struct {
	UserID  string `json:"user_id"  binding:"required,uuid"`
	IsAdmin bool   `json:"is_admin"`
}

// CompanyResponse 公司信息响应
type CompanyResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsVisible   bool   `json:"is_visible"`
	OwnerID     string `json:"owner_id"`
	CreatedAt   string `json:"created_at"`
}

// MemberResponse 公司成员响应
type MemberResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
}
