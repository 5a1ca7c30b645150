package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jyjuk/backend-internship/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoAttempts   = errors.New("该公司暂无答题记录")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 将公司全部答题记录导出为 Excel (.xlsx)
//   - 仅公司所有者或管理员可导出
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportQuizResults 导出公司答题结果为 Excel
	ExportQuizResults(ctx context.Context, companyID, callerID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

func (s *exportService) ExportQuizResults(ctx context.Context, companyID, callerID string) (*bytes.Buffer, string, error) {
	// 1. 查询公司并校验权限
	company, err := s.repo.Company.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrCompanyNotFound
		}
		s.logger.Error("查询公司失败", zap.Error(err))
		return nil, "", err
	}

	if company.OwnerID != callerID {
		member, err := s.repo.Company.GetMember(ctx, companyID, callerID)
		if err != nil || !member.IsAdmin {
			return nil, "", ErrNotCompanyAdmin
		}
	}

	// 2. 查询答题记录
	attempts, err := s.repo.QuizAttempt.ListByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("查询答题记录失败", zap.Error(err))
		return nil, "", err
	}
	if len(attempts) == 0 {
		return nil, "", ErrExportNoAttempts
	}

	// 3. 生成工作簿
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	headers := []string{"记录ID", "用户ID", "测验ID", "得分", "题目数", "完成时间"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			s.logger.Error("写入表头失败", zap.Error(err))
			return nil, "", ErrExportGenerateFail
		}
	}

	for row := range attempts {
		a := &attempts[row]
		completed := ""
		if a.CompletedAt != nil {
			completed = a.CompletedAt.Format(time.RFC3339)
		}
		values := []interface{}{a.ID, a.UserID, a.QuizID, a.Score, a.TotalQuestions, completed}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				s.logger.Error("写入数据行失败", zap.Error(err))
				return nil, "", ErrExportGenerateFail
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		s.logger.Error("序列化 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("quiz_results_%s.xlsx", company.Name)
	return &buf, filename, nil
}
