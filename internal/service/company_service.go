package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jyjuk/backend-internship/internal/dto"
	"github.com/jyjuk/backend-internship/internal/model"
	"github.com/jyjuk/backend-internship/internal/repository"
)

// ── 公司模块业务错误 ──

var (
	ErrCompanyNotFound = errors.New("公司不存在")
	ErrNotCompanyAdmin = errors.New("仅公司所有者或管理员可执行此操作")
	ErrAlreadyMember   = errors.New("用户已是公司成员")
)

// CompanyService 公司业务接口
type CompanyService interface {
	Create(ctx context.Context, req *dto.CreateCompanyRequest, ownerID string) (*dto.CompanyResponse, error)
	GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error)
	// AddMember 仅所有者或管理员可添加成员
	AddMember(ctx context.Context, companyID string, req *dto.AddMemberRequest, callerID string) error
	ListMembers(ctx context.Context, companyID string) ([]dto.MemberResponse, error)
}

type companyService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCompanyService 创建 CompanyService 实例
func NewCompanyService(repo *repository.Repository, logger *zap.Logger) CompanyService {
	return &companyService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *companyService) Create(ctx context.Context, req *dto.CreateCompanyRequest, ownerID string) (*dto.CompanyResponse, error) {
	visible := true
	if req.IsVisible != nil {
		visible = *req.IsVisible
	}

	company := &model.Company{
		Name:        req.Name,
		Description: req.Description,
		IsVisible:   visible,
		OwnerID:     ownerID,
	}

	if err := s.repo.Company.Create(ctx, company); err != nil {
		s.logger.Error("创建公司失败", zap.Error(err))
		return nil, err
	}

	// 所有者自动成为管理员成员
	member := &model.CompanyMember{
		UserID:    ownerID,
		CompanyID: company.ID,
		IsAdmin:   true,
	}
	if err := s.repo.Company.AddMember(ctx, member); err != nil {
		s.logger.Error("添加所有者成员关系失败",
			zap.String("company_id", company.ID),
			zap.Error(err),
		)
		return nil, err
	}

	return toCompanyResponse(company), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *companyService) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := s.repo.Company.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		s.logger.Error("查询公司失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toCompanyResponse(company), nil
}

// ────────────────────── AddMember ──────────────────────

func (s *companyService) AddMember(ctx context.Context, companyID string, req *dto.AddMemberRequest, callerID string) error {
	company, err := s.repo.Company.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCompanyNotFound
		}
		s.logger.Error("查询公司失败", zap.String("id", companyID), zap.Error(err))
		return err
	}

	if err := s.requireAdmin(ctx, company, callerID); err != nil {
		return err
	}

	if _, err := s.repo.User.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", req.UserID), zap.Error(err))
		return err
	}

	if _, err := s.repo.Company.GetMember(ctx, companyID, req.UserID); err == nil {
		return ErrAlreadyMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询成员关系失败", zap.Error(err))
		return err
	}

	member := &model.CompanyMember{
		UserID:    req.UserID,
		CompanyID: companyID,
		IsAdmin:   req.IsAdmin,
	}
	if err := s.repo.Company.AddMember(ctx, member); err != nil {
		s.logger.Error("添加公司成员失败",
			zap.String("company_id", companyID),
			zap.String("user_id", req.UserID),
			zap.Error(err),
		)
		return err
	}

	return nil
}

// ────────────────────── ListMembers ──────────────────────

func (s *companyService) ListMembers(ctx context.Context, companyID string) ([]dto.MemberResponse, error) {
	if _, err := s.repo.Company.GetByID(ctx, companyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		s.logger.Error("查询公司失败", zap.String("id", companyID), zap.Error(err))
		return nil, err
	}

	members, err := s.repo.Company.ListMembers(ctx, companyID)
	if err != nil {
		s.logger.Error("查询公司成员失败", zap.String("company_id", companyID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.MemberResponse, 0, len(members))
	for i := range members {
		m := dto.MemberResponse{
			UserID:  members[i].UserID,
			IsAdmin: members[i].IsAdmin,
		}
		if members[i].User != nil {
			m.Username = members[i].User.Username
			m.Email = members[i].User.Email
		}
		result = append(result, m)
	}

	return result, nil
}

// ── 内部辅助方法 ──

func (s *companyService) requireAdmin(ctx context.Context, company *model.Company, callerID string) error {
	if company.OwnerID == callerID {
		return nil
	}

	member, err := s.repo.Company.GetMember(ctx, company.ID, callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotCompanyAdmin
		}
		return err
	}
	if !member.IsAdmin {
		return ErrNotCompanyAdmin
	}
	return nil
}

func toCompanyResponse(company *model.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		ID:          company.ID,
		Name:        company.Name,
		Description: company.Description,
		IsVisible:   company.IsVisible,
		OwnerID:     company.OwnerID,
		CreatedAt:   company.CreatedAt.Format(time.RFC3339),
	}
}
