package personnel

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"kinderadmin/internal/shared/apperrors"
	"kinderadmin/internal/shared/middleware"
	"kinderadmin/internal/shared/utils/response"
	"kinderadmin/internal/users"
	"kinderadmin/pkg/cache"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var admin = &users.AuthUser{ID: 1, Username: "admin", Role: users.RoleAdmin}

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, p *Person) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockRepository) GetByID(ctx context.Context, kind Kind, id uint) (*Person, error) {
	args := m.Called(ctx, kind, id)
	p, _ := args.Get(0).(*Person)
	return p, args.Error(1)
}

func (m *mockRepository) List(ctx context.Context, kind Kind, query PersonListQuery) ([]Person, int64, error) {
	args := m.Called(ctx, kind, query)
	people, _ := args.Get(0).([]Person)
	return people, args.Get(1).(int64), args.Error(2)
}

func (m *mockRepository) Update(ctx context.Context, kind Kind, id uint, updates map[string]interface{}) error {
	return m.Called(ctx, kind, id, updates).Error(0)
}

func (m *mockRepository) Delete(ctx context.Context, kind Kind, id uint) (bool, error) {
	args := m.Called(ctx, kind, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository) CountByKind(ctx context.Context) (map[Kind]KindCount, error) {
	args := m.Called(ctx)
	counts, _ := args.Get(0).(map[Kind]KindCount)
	return counts, args.Error(1)
}

func (m *mockRepository) CountClasses(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepository) GroupBy(ctx context.Context, kind Kind, column string) ([]BucketCount, error) {
	args := m.Called(ctx, kind, column)
	rows, _ := args.Get(0).([]BucketCount)
	return rows, args.Error(1)
}

// countingCache behaves like a disabled cache but remembers invalidations
type countingCache struct {
	cache.Service
	patterns []string
}

func newCountingCache() *countingCache {
	return &countingCache{Service: cache.NewService(nil)}
}

func (c *countingCache) DeletePattern(_ context.Context, pattern string) (int64, error) {
	c.patterns = append(c.patterns, pattern)
	return 0, nil
}

func TestParseKind(t *testing.T) {
	for raw, want := range map[string]Kind{"students": KindStudent, "teacher": KindTeacher, " Parents ": KindParent} {
		kind, ok := ParseKind(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, want, kind)
	}
	_, ok := ParseKind("janitors")
	assert.False(t, ok)
}

func TestUnknownKindIsValidation(t *testing.T) {
	svc := NewService(new(mockRepository), nil)

	_, err := svc.List(context.Background(), "janitors", PersonListQuery{})
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))
	assert.Equal(t, "无效的人员类型: janitors", apperrors.MessageOf(err))

	_, err = svc.Get(context.Background(), "x", 1)
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))
}

func TestGetMissingPersonUsesKindLabel(t *testing.T) {
	repo := new(mockRepository)
	repo.On("GetByID", mock.Anything, KindStudent, uint(5)).Return(nil, gorm.ErrRecordNotFound)

	_, err := NewService(repo, nil).Get(context.Background(), "students", 5)

	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
	assert.Equal(t, "学生不存在", apperrors.MessageOf(err))
}

func TestGetOverview(t *testing.T) {
	repo := new(mockRepository)
	repo.On("CountByKind", mock.Anything).Return(map[Kind]KindCount{
		KindStudent: {Total: 120, Active: 118},
		KindTeacher: {Total: 12, Active: 12},
	}, nil)
	repo.On("CountClasses", mock.Anything).Return(int64(6), nil)

	overview, err := NewService(repo, nil).GetOverview(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(118), overview.Students.Active)
	assert.Equal(t, int64(0), overview.Parents.Total)
	assert.Equal(t, int64(6), overview.Classes)
}

func TestCreateInvalidatesCache(t *testing.T) {
	repo := new(mockRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *Person) bool {
		return p.Kind == KindTeacher && p.Status == StatusActive && p.Name == "李老师"
	})).Return(nil)
	c := newCountingCache()

	_, err := NewService(repo, c).Create(context.Background(), admin, "teachers", CreatePersonRequest{Name: " 李老师 "})

	require.NoError(t, err)
	assert.Equal(t, []string{"kinderadmin:personnel:*"}, c.patterns)
}

func TestUpdatePerson(t *testing.T) {
	repo := new(mockRepository)
	repo.On("GetByID", mock.Anything, KindParent, uint(2)).Return(&Person{ID: 2, Kind: KindParent, Phone: "139"}, nil)
	repo.On("Update", mock.Anything, KindParent, uint(2), map[string]interface{}{"phone": "138"}).Return(nil)

	phone := "138"
	_, err := NewService(repo, newCountingCache()).Update(context.Background(), admin, "parent", 2, UpdatePersonRequest{Phone: &phone})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestDeleteMissingPerson(t *testing.T) {
	repo := new(mockRepository)
	repo.On("Delete", mock.Anything, KindTeacher, uint(9)).Return(false, nil)

	err := NewService(repo, nil).Delete(context.Background(), admin, "teachers", 9)

	assert.Equal(t, "教师不存在", apperrors.MessageOf(err))
}

func TestDistributionDefaultsToStudents(t *testing.T) {
	repo := new(mockRepository)
	repo.On("GroupBy", mock.Anything, KindStudent, "class_name").Return([]BucketCount{{Label: "大一班", Count: 30}}, nil)
	repo.On("GroupBy", mock.Anything, KindStudent, "status").Return(nil, nil)

	dist, err := NewService(repo, nil).GetDistribution(context.Background(), "")

	require.NoError(t, err)
	assert.Equal(t, KindStudent, dist.Kind)
	assert.Len(t, dist.ByClass, 1)
	assert.NotNil(t, dist.ByStatus)
}

type nopLogger struct{}

func (nopLogger) LogError(context.Context, string, error) {}

func TestControllerRejectsUnknownKind(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := NewController(NewService(new(mockRepository), nil), response.NewResponder(nopLogger{}))
	r := gin.New()
	r.GET("/personnel/:kind", func(c *gin.Context) {
		middleware.SetCurrentUser(c, admin)
		c.Next()
	}, ctrl.List)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/personnel/robots", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_ERROR", body["error"])
}

func TestKindLabel(t *testing.T) {
	assert.Equal(t, "家长", KindParent.Label())
	assert.Equal(t, "人员", Kind("x").Label())
}
