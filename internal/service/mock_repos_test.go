package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/jyjuk/backend-internship/internal/model"
	"github.com/jyjuk/backend-internship/internal/repository"
)

// ── Mock Repositories ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", len(m.users)+1)
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ListActive(_ context.Context) ([]model.User, error) {
	var out []model.User
	for _, u := range m.users {
		if u.IsActive {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.ID] = user
	return nil
}

type mockCompanyRepo struct {
	companies map[string]*model.Company
	members   []model.CompanyMember

	listMembersErr error
}

func newMockCompanyRepo() *mockCompanyRepo {
	return &mockCompanyRepo{companies: make(map[string]*model.Company)}
}

func (m *mockCompanyRepo) Create(_ context.Context, company *model.Company) error {
	if company.ID == "" {
		company.ID = fmt.Sprintf("company-%d", len(m.companies)+1)
	}
	m.companies[company.ID] = company
	return nil
}

func (m *mockCompanyRepo) GetByID(_ context.Context, id string) (*model.Company, error) {
	if c, ok := m.companies[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCompanyRepo) AddMember(_ context.Context, member *model.CompanyMember) error {
	m.members = append(m.members, *member)
	return nil
}

func (m *mockCompanyRepo) GetMember(_ context.Context, companyID, userID string) (*model.CompanyMember, error) {
	for i := range m.members {
		if m.members[i].CompanyID == companyID && m.members[i].UserID == userID {
			return &m.members[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCompanyRepo) ListMembers(_ context.Context, companyID string) ([]model.CompanyMember, error) {
	if m.listMembersErr != nil {
		return nil, m.listMembersErr
	}
	var out []model.CompanyMember
	for i := range m.members {
		if m.members[i].CompanyID == companyID {
			out = append(out, m.members[i])
		}
	}
	return out, nil
}

type mockQuizRepo struct {
	quizzes map[string]*model.Quiz
}

func newMockQuizRepo() *mockQuizRepo {
	return &mockQuizRepo{quizzes: make(map[string]*model.Quiz)}
}

func (m *mockQuizRepo) Create(_ context.Context, quiz *model.Quiz) error {
	if quiz.ID == "" {
		quiz.ID = fmt.Sprintf("quiz-%d", len(m.quizzes)+1)
	}
	m.quizzes[quiz.ID] = quiz
	return nil
}

func (m *mockQuizRepo) GetByID(_ context.Context, id string) (*model.Quiz, error) {
	if q, ok := m.quizzes[id]; ok {
		return q, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockQuizRepo) ListByCompany(_ context.Context, companyID string) ([]model.Quiz, error) {
	var out []model.Quiz
	for _, q := range m.quizzes {
		if q.CompanyID == companyID {
			out = append(out, *q)
		}
	}
	return out, nil
}

type mockQuizAttemptRepo struct {
	attempts []model.QuizAttempt
}

func newMockQuizAttemptRepo() *mockQuizAttemptRepo {
	return &mockQuizAttemptRepo{}
}

func (m *mockQuizAttemptRepo) Create(_ context.Context, attempt *model.QuizAttempt) error {
	if attempt.ID == "" {
		attempt.ID = fmt.Sprintf("attempt-%d", len(m.attempts)+1)
	}
	m.attempts = append(m.attempts, *attempt)
	return nil
}

func (m *mockQuizAttemptRepo) LastCompletedAt(_ context.Context, userID, quizID string) (*time.Time, error) {
	var last *time.Time
	for i := range m.attempts {
		a := &m.attempts[i]
		if a.UserID != userID || a.QuizID != quizID || a.CompletedAt == nil {
			continue
		}
		if last == nil || a.CompletedAt.After(*last) {
			last = a.CompletedAt
		}
	}
	return last, nil
}

func (m *mockQuizAttemptRepo) ListByCompany(_ context.Context, companyID string) ([]model.QuizAttempt, error) {
	var out []model.QuizAttempt
	for i := range m.attempts {
		if m.attempts[i].CompanyID == companyID {
			out = append(out, m.attempts[i])
		}
	}
	return out, nil
}

type mockNotificationRepo struct {
	notifications map[string]*model.Notification
	nextID        int

	// createBulkErr 非空时 CreateBulk 整批失败
	createBulkErr error
	// failForUsers 命中其中用户的批次整体失败（模拟部分用户写入异常）
	failForUsers map[string]bool
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{
		notifications: make(map[string]*model.Notification),
		failForUsers:  make(map[string]bool),
	}
}

func (m *mockNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	m.nextID++
	n.ID = fmt.Sprintf("notif-%d", m.nextID)
	n.CreatedAt = time.Now().UTC()
	m.notifications[n.ID] = n
	return nil
}

func (m *mockNotificationRepo) CreateBulk(_ context.Context, notifications []model.Notification) ([]model.Notification, error) {
	if m.createBulkErr != nil {
		return nil, m.createBulkErr
	}
	for i := range notifications {
		if m.failForUsers[notifications[i].UserID] {
			return nil, errors.New("insert failed")
		}
	}
	created := make([]model.Notification, 0, len(notifications))
	for i := range notifications {
		n := notifications[i]
		m.nextID++
		n.ID = fmt.Sprintf("notif-%d", m.nextID)
		n.CreatedAt = time.Now().UTC()
		m.notifications[n.ID] = &n
		created = append(created, n)
	}
	return created, nil
}

func (m *mockNotificationRepo) GetByIDForUser(_ context.Context, id, userID string) (*model.Notification, error) {
	if n, ok := m.notifications[id]; ok && n.UserID == userID {
		return n, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNotificationRepo) ListByUser(_ context.Context, userID string, skip, limit int, unreadOnly bool) ([]model.Notification, error) {
	var out []model.Notification
	for _, n := range m.notifications {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		out = append(out, *n)
	}
	if skip >= len(out) {
		return nil, nil
	}
	out = out[skip:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockNotificationRepo) CountByUser(_ context.Context, userID string, unreadOnly bool) (int64, error) {
	var count int64
	for _, n := range m.notifications {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		count++
	}
	return count, nil
}

func (m *mockNotificationRepo) UnreadCount(_ context.Context, userID string) (int64, error) {
	var count int64
	for _, n := range m.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (m *mockNotificationRepo) Update(_ context.Context, n *model.Notification) error {
	if _, ok := m.notifications[n.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.notifications[n.ID] = n
	return nil
}

func (m *mockNotificationRepo) MarkAllRead(_ context.Context, userID string, readAt time.Time) (int64, error) {
	var updated int64
	for _, n := range m.notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			t := readAt
			n.ReadAt = &t
			updated++
		}
	}
	return updated, nil
}

type mockStalenessRepo struct {
	pending []repository.PendingQuiz
	err     error
}

func (m *mockStalenessRepo) PendingQuizzes(_ context.Context) ([]repository.PendingQuiz, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.pending, nil
}

// ── Fake Pusher ──

// fakePusher 记录推送调用，代替 ws.Hub
type fakePusher struct {
	pushed map[string][]interface{} // key: user_id
}

func newFakePusher() *fakePusher {
	return &fakePusher{pushed: make(map[string][]interface{})}
}

func (f *fakePusher) PushToUser(userID string, payload interface{}) {
	f.pushed[userID] = append(f.pushed[userID], payload)
}

func (f *fakePusher) PushToMany(userIDs []string, payload interface{}) {
	for _, id := range userIDs {
		f.PushToUser(id, payload)
	}
}

// newTestRepository 组装全部 mock 的 Repository 聚合
func newTestRepository() *repository.Repository {
	return &repository.Repository{
		User:         newMockUserRepo(),
		Company:      newMockCompanyRepo(),
		Quiz:         newMockQuizRepo(),
		QuizAttempt:  newMockQuizAttemptRepo(),
		Notification: newMockNotificationRepo(),
		Staleness:    &mockStalenessRepo{},
	}
}
