package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jyjuk/backend-internship/internal/model"
)

// CompanyRepository 公司与成员关系数据访问接口
type CompanyRepository interface {
	Create(ctx context.Context, company *model.Company) error
	GetByID(ctx context.Context, id string) (*model.Company, error)
	AddMember(ctx context.Context, member *model.CompanyMember) error
	GetMember(ctx context.Context, companyID, userID string) (*model.CompanyMember, error)
	ListMembers(ctx context.Context, companyID string) ([]model.CompanyMember, error)
}

// companyRepo CompanyRepository 的 GORM 实现
type companyRepo struct {
	db *gorm.DB
}

// NewCompanyRepo 创建 CompanyRepository 实例
func NewCompanyRepo(db *gorm.DB) CompanyRepository {
	return &companyRepo{db: db}
}

func (r *companyRepo) Create(ctx context.Context, company *model.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *companyRepo) GetByID(ctx context.Context, id string) (*model.Company, error) {
	var company model.Company
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&company).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepo) AddMember(ctx context.Context, member *model.CompanyMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *companyRepo) GetMember(ctx context.Context, companyID, userID string) (*model.CompanyMember, error) {
	var member model.CompanyMember
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND user_id = ?", companyID, userID).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *companyRepo) ListMembers(ctx context.Context, companyID string) ([]model.CompanyMember, error) {
	var members []model.CompanyMember
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("company_id = ?", companyID).
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}
