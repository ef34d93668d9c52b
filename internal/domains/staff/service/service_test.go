package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"hotel/config"
	"hotel/infras/otel/mocks"
	staffMocks "hotel/internal/domains/staff/mocks"
	"hotel/internal/domains/staff/model"
	"hotel/internal/domains/staff/model/dto"
	"hotel/internal/domains/staff/service"
	"hotel/shared/cache"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/password"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newStaffService(t *testing.T) (*staffMocks.MockStaff, service.Staff) {
	ctrl := gomock.NewController(t)

	repo := staffMocks.NewMockStaff(ctrl)
	redis := cacheMocks.NewMockRedisCache(ctrl)

	redis.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).AnyTimes()
	redis.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redis.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redis.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return repo, service.New(repo, cfg, redis, mocks.NewOtel())
}

func adminCtx() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
}

func TestStaffService_Create(t *testing.T) {
	t.Run("hashes the password and defaults the role", func(t *testing.T) {
		repo, svc := newStaffService(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, staff model.Staff) error {
			assert.Equal(t, constant.RoleReceptionist, staff.Role)
			assert.True(t, staff.Active)
			assert.NotEqual(t, "password123", staff.Password)
			assert.NoError(t, password.Verify("password123", staff.Password))
			assert.Equal(t, "admin-1", staff.CreatedBy)

			return nil
		})

		err := svc.Create(adminCtx(), dto.CreateStaffRequest{Email: "desk@hotel.test", Password: "password123", FullName: "Front Desk"})
		assert.NoError(t, err)
	})

	t.Run("email taken", func(t *testing.T) {
		repo, svc := newStaffService(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		err := svc.Create(adminCtx(), dto.CreateStaffRequest{Email: "desk@hotel.test", Password: "password123", FullName: "Front Desk"})
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("store failure", func(t *testing.T) {
		repo, svc := newStaffService(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("db down"))

		err := svc.Create(adminCtx(), dto.CreateStaffRequest{Email: "desk@hotel.test", Password: "password123", FullName: "Front Desk"})
		assert.Error(t, err)
	})
}

func TestStaffService_Get(t *testing.T) {
	repo, svc := newStaffService(t)

	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Staff{ID: "s1", Email: "desk@hotel.test", Role: constant.RoleAdmin}, nil)

	res, err := svc.Get(context.Background(), "s1")
	assert.NoError(t, err)
	assert.Equal(t, constant.RoleAdmin, res.Role)

	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Staff{}, nil)

	_, err = svc.Get(context.Background(), "missing")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestStaffService_GetAll(t *testing.T) {
	repo, svc := newStaffService(t)

	params := gDto.QueryParams{Page: 1, Limit: 1}

	repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
	repo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).Return([]model.Staff{{ID: "s1"}}, nil)

	res, err := svc.GetAll(context.Background(), params, gDto.FilterGroup{})
	assert.NoError(t, err)
	assert.Equal(t, 2, res.TotalPage)
	assert.Len(t, res.Staff, 1)
}

func TestStaffService_Update(t *testing.T) {
	inactive := false

	tests := []struct {
		name      string
		id        string
		req       dto.UpdateStaffRequest
		setupMock func(repo *staffMocks.MockStaff)
		wantCode  int
	}{
		{
			name: "change role",
			id:   "s1",
			req:  dto.UpdateStaffRequest{Role: constant.RoleAdmin},
			setupMock: func(repo *staffMocks.MockStaff) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, constant.RoleAdmin, fields[model.FieldRole])

						return nil
					})
			},
		},
		{
			name:      "empty request",
			id:        "s1",
			setupMock: func(repo *staffMocks.MockStaff) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "cannot deactivate yourself",
			id:        "admin-1",
			req:       dto.UpdateStaffRequest{Active: &inactive},
			setupMock: func(repo *staffMocks.MockStaff) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "not found",
			id:   "s1",
			req:  dto.UpdateStaffRequest{Phone: "0800"},
			setupMock: func(repo *staffMocks.MockStaff) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, svc := newStaffService(t)
			tt.setupMock(repo)

			err := svc.Update(adminCtx(), tt.req, tt.id)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestStaffService_Delete(t *testing.T) {
	repo, svc := newStaffService(t)

	repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, false, fields[model.FieldActive])

			return nil
		})

	assert.NoError(t, svc.Delete(adminCtx(), "s1"))
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(svc.Delete(adminCtx(), "admin-1")))
}
