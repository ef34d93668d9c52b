package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"hotel/config"
	"hotel/infras/jwt"
	jwtMocks "hotel/infras/jwt/mocks"
	"hotel/infras/otel/mocks"
	"hotel/internal/domains/auth/model/dto"
	"hotel/internal/domains/auth/service"
	staffMocks "hotel/internal/domains/staff/mocks"
	staffModel "hotel/internal/domains/staff/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func validStaff(t *testing.T) staffModel.Staff {
	hash, err := password.Hash("password")
	require.NoError(t, err)

	return staffModel.Staff{
		ID:       "staff-id-123",
		Email:    "desk@hotel.test",
		Password: hash,
		FullName: "Front Desk",
		Role:     constant.RoleReceptionist,
		Active:   true,
	}
}

func TestAuthService_Login(t *testing.T) {
	staff := validStaff(t)

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func(repo *staffMocks.MockStaff, jwtService *jwtMocks.MockJWT)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "successful login",
			req:  dto.LoginRequest{Email: staff.Email, Password: "password"},
			setupMock: func(repo *staffMocks.MockStaff, jwtService *jwtMocks.MockJWT) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(staff, nil)
				jwtService.EXPECT().
					GenerateTokenPair(staff.ID, staff.Email, staff.Role).
					Return(&jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"}, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Contains(t, fields, staffModel.FieldLastLogin)

						return nil
					})
			},
		},
		{
			name: "last login write failure does not block login",
			req:  dto.LoginRequest{Email: staff.Email, Password: "password"},
			setupMock: func(repo *staffMocks.MockStaff, jwtService *jwtMocks.MockJWT) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(staff, nil)
				jwtService.EXPECT().GenerateTokenPair(staff.ID, staff.Email, staff.Role).Return(&jwt.TokenPair{}, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
		},
		{
			name: "unknown email",
			req:  dto.LoginRequest{Email: "nobody@hotel.test", Password: "password"},
			setupMock: func(repo *staffMocks.MockStaff, _ *jwtMocks.MockJWT) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(staffModel.Staff{}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Email: staff.Email, Password: "wrongpassword"},
			setupMock: func(repo *staffMocks.MockStaff, _ *jwtMocks.MockJWT) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(staff, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "deactivated account",
			req:  dto.LoginRequest{Email: staff.Email, Password: "password"},
			setupMock: func(repo *staffMocks.MockStaff, _ *jwtMocks.MockJWT) {
				inactive := staff
				inactive.Active = false

				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactive, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "store failure",
			req:  dto.LoginRequest{Email: staff.Email, Password: "password"},
			setupMock: func(repo *staffMocks.MockStaff, _ *jwtMocks.MockJWT) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(staffModel.Staff{}, errors.New("db down"))
			},
			wantErr: true,
		},
		{
			name: "token generation error",
			req:  dto.LoginRequest{Email: staff.Email, Password: "password"},
			setupMock: func(repo *staffMocks.MockStaff, jwtService *jwtMocks.MockJWT) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(staff, nil)
				jwtService.EXPECT().GenerateTokenPair(staff.ID, staff.Email, staff.Role).Return(nil, errors.New("signing failed"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := staffMocks.NewMockStaff(ctrl)
			jwtService := jwtMocks.NewMockJWT(ctrl)
			tt.setupMock(repo, jwtService)

			svc := service.New(repo, &config.Config{}, mocks.NewOtel(), jwtService)

			res, err := svc.Login(context.Background(), tt.req)

			switch {
			case tt.wantCode != 0:
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			case tt.wantErr:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
				assert.Equal(t, staff.Role, res.Role)
			}
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)

	jwtService := jwtMocks.NewMockJWT(ctrl)
	svc := service.New(staffMocks.NewMockStaff(ctrl), &config.Config{}, mocks.NewOtel(), jwtService)

	jwtService.EXPECT().RefreshTokens("good").Return(&jwt.TokenPair{AccessToken: "a", RefreshToken: "r"}, nil)
	jwtService.EXPECT().RefreshTokens("bad").Return(nil, jwt.ErrInvalidToken)

	res, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "good"})
	assert.NoError(t, err)
	assert.Equal(t, "a", res.AccessToken)

	_, err = svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "bad"})
	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
}

func TestAuthService_ChangePassword(t *testing.T) {
	staff := validStaff(t)
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, staff.ID)

	t.Run("updates the hash", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := staffMocks.NewMockStaff(ctrl)
		svc := service.New(repo, &config.Config{}, mocks.NewOtel(), jwtMocks.NewMockJWT(ctrl))

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(staff, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				hash, ok := fields[staffModel.FieldPassword].(string)
				assert.True(t, ok)
				assert.NoError(t, password.Verify("new-password", hash))

				return nil
			})

		err := svc.ChangePassword(ctx, dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "new-password"})
		assert.NoError(t, err)
	})

	t.Run("wrong current password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := staffMocks.NewMockStaff(ctrl)
		svc := service.New(repo, &config.Config{}, mocks.NewOtel(), jwtMocks.NewMockJWT(ctrl))

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(staff, nil)

		err := svc.ChangePassword(ctx, dto.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "new-password"})
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("missing identity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := service.New(staffMocks.NewMockStaff(ctrl), &config.Config{}, mocks.NewOtel(), jwtMocks.NewMockJWT(ctrl))

		err := svc.ChangePassword(context.Background(), dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "new-password"})
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("unknown staff", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := staffMocks.NewMockStaff(ctrl)
		svc := service.New(repo, &config.Config{}, mocks.NewOtel(), jwtMocks.NewMockJWT(ctrl))

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(staffModel.Staff{}, nil)

		err := svc.ChangePassword(ctx, dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "new-password"})
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
