package enrollment

import (
	"context"
	"errors"
	"testing"

	"kinderadmin/internal/shared/apperrors"
	"kinderadmin/internal/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var teacher = &users.AuthUser{ID: 7, Username: "wang", Role: users.RoleTeacher}

func TestCreateApplicationDefaults(t *testing.T) {
	repo := new(mockRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(app *Application) bool {
		return app.Status == StatusPending &&
			app.Gender == "male" &&
			app.ApplicationSource == "web" &&
			app.CreatedBy == 7 &&
			app.BirthDate != nil && app.BirthDate.Year() == 2021
	})).Return(nil)

	app, err := NewService(repo).CreateApplication(context.Background(), teacher, CreateApplicationRequest{
		StudentName:  " 小明 ",
		ContactPhone: "13800000000",
		BirthDate:    "2021-03-04",
	})

	require.NoError(t, err)
	assert.Equal(t, "小明", app.StudentName)
	repo.AssertExpectations(t)
}

func TestCreateApplicationRejectsBlankName(t *testing.T) {
	repo := new(mockRepository)

	_, err := NewService(repo).CreateApplication(context.Background(), teacher, CreateApplicationRequest{
		StudentName:  "   ",
		ContactPhone: "13800000000",
	})

	assert.True(t, apperrors.Is(err, apperrors.KindValidation))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetApplicationNotFound(t *testing.T) {
	repo := new(mockRepository)
	repo.On("GetByID", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)

	_, err := NewService(repo).GetApplication(context.Background(), 9)

	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
	assert.Equal(t, "报名申请不存在", apperrors.MessageOf(err))
}

func TestGetApplicationDatabaseErrorIsUnclassified(t *testing.T) {
	repo := new(mockRepository)
	repo.On("GetByID", mock.Anything, uint(9)).Return(nil, errors.New("connection reset"))

	_, err := NewService(repo).GetApplication(context.Background(), 9)

	require.Error(t, err)
	assert.Equal(t, apperrors.KindInternal, apperrors.KindOf(err))
}

func TestUpdateStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   Status
		existing error
		wantKind apperrors.Kind
		wantErr  bool
	}{
		{name: "approve", status: StatusApproved},
		{name: "unknown status", status: "archived", wantErr: true, wantKind: apperrors.KindValidation},
		{name: "missing application", status: StatusRejected, existing: gorm.ErrRecordNotFound, wantErr: true, wantKind: apperrors.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockRepository)
			if tt.existing != nil {
				repo.On("GetByID", mock.Anything, uint(3)).Return(nil, tt.existing)
			} else {
				repo.On("GetByID", mock.Anything, uint(3)).Return(&Application{ID: 3, Status: tt.status}, nil)
			}
			repo.On("Update", mock.Anything, uint(3), mock.MatchedBy(func(u map[string]interface{}) bool {
				return u["status"] == tt.status && u["reviewed_by"] == uint(7)
			})).Return(nil)

			app, err := NewService(repo).UpdateStatus(context.Background(), teacher, 3, UpdateStatusRequest{Status: tt.status})

			if tt.wantErr {
				assert.Equal(t, tt.wantKind, apperrors.KindOf(err))
				repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.status, app.Status)
		})
	}
}

func TestDeleteApplicationMissing(t *testing.T) {
	repo := new(mockRepository)
	repo.On("Delete", mock.Anything, uint(4)).Return(false, nil)

	err := NewService(repo).DeleteApplication(context.Background(), teacher, 4)

	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestListApplicationsValidatesStatusFilter(t *testing.T) {
	repo := new(mockRepository)

	_, err := NewService(repo).ListApplications(context.Background(), ApplicationListQuery{Status: "lost"})

	assert.True(t, apperrors.Is(err, apperrors.KindValidation))
}

func TestListApplicationsPaginates(t *testing.T) {
	repo := new(mockRepository)
	repo.On("List", mock.Anything, mock.MatchedBy(func(q ApplicationListQuery) bool {
		return q.Page == 1 && q.PageSize == 10
	})).Return([]Application{{ID: 1}}, int64(11), nil)

	page, err := NewService(repo).ListApplications(context.Background(), ApplicationListQuery{})

	require.NoError(t, err)
	assert.Equal(t, 2, page.Pagination.TotalPages)
}

func TestGetStats(t *testing.T) {
	repo := new(mockRepository)
	repo.On("CountByStatus", mock.Anything).Return(map[Status]int64{StatusPending: 2, StatusApproved: 3}, nil)
	repo.On("CountBySource", mock.Anything).Return(nil, nil)
	repo.On("CountByChannel", mock.Anything).Return(nil, nil)

	stats, err := NewService(repo).GetStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.Total)
	assert.NotNil(t, stats.BySource)
	assert.NotNil(t, stats.ByChannel)
}

func TestGetStatsByChannel(t *testing.T) {
	wechat := uint(3)
	repo := new(mockRepository)
	repo.On("CountByStatus", mock.Anything).Return(map[Status]int64{StatusPending: 4}, nil)
	repo.On("CountBySource", mock.Anything).Return([]SourceCount{{Source: "web", Count: 4}}, nil)
	repo.On("CountByChannel", mock.Anything).Return([]ChannelCount{
		{ChannelID: &wechat, ChannelName: "微信公众号", Count: 3},
		{ChannelID: nil, Count: 1},
	}, nil)

	stats, err := NewService(repo).GetStats(context.Background())

	require.NoError(t, err)
	require.Len(t, stats.ByChannel, 2)
	assert.Equal(t, "微信公众号", stats.ByChannel[0].ChannelName)
	assert.Equal(t, int64(3), stats.ByChannel[0].Count)
	assert.Nil(t, stats.ByChannel[1].ChannelID)
}

func TestGetStatsChannelFailure(t *testing.T) {
	repo := new(mockRepository)
	repo.On("CountByStatus", mock.Anything).Return(map[Status]int64{}, nil)
	repo.On("CountBySource", mock.Anything).Return(nil, nil)
	repo.On("CountByChannel", mock.Anything).Return(nil, errors.New("relation does not exist"))

	_, err := NewService(repo).GetStats(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "by channel")
}
