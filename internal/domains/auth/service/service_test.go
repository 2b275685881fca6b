package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"tick/config"
	"tick/infras/otel/mocks"
	"tick/internal/domains/auth/model/dto"
	"tick/internal/domains/auth/service"
	userMocks "tick/internal/domains/user/mocks"
	userModel "tick/internal/domains/user/model"
	"tick/shared/failure"
	"tick/shared/password"
)

func TestAuthService_SignUp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, &config.Config{}, mockOtel)

	tests := []struct {
		name      string
		req       dto.SignUpRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful signup",
			req:  dto.SignUpRequest{Username: "alice", Password: "pw1"},
			setupMock: func() {
				mockRepo.EXPECT().
					ExistByUsername(gomock.Any(), "alice").
					Return(false, nil)
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, user userModel.User) (int64, error) {
						assert.Equal(t, "alice", user.Username)
						assert.NotEqual(t, "pw1", user.PasswordHash, "expected the password to be hashed before storage")
						assert.True(t, password.Verify(user.PasswordHash, "pw1"))
						return 1, nil
					})
			},
			wantErr: false,
		},
		{
			name: "username already taken",
			req:  dto.SignUpRequest{Username: "alice", Password: "pw2"},
			setupMock: func() {
				// No Insert expectation: a taken username must write nothing.
				mockRepo.EXPECT().
					ExistByUsername(gomock.Any(), "alice").
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "racing signup hits the unique constraint",
			req:  dto.SignUpRequest{Username: "alice", Password: "pw1"},
			setupMock: func() {
				mockRepo.EXPECT().
					ExistByUsername(gomock.Any(), "alice").
					Return(false, nil)
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(int64(0), failure.Conflict("username already exists"))
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "repository error",
			req:  dto.SignUpRequest{Username: "alice", Password: "pw1"},
			setupMock: func() {
				mockRepo.EXPECT().
					ExistByUsername(gomock.Any(), "alice").
					Return(false, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			user, err := svc.SignUp(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.True(t, failure.IsCode(err, tt.wantCode), "expected code %d, got %v", tt.wantCode, err)
				}
				assert.Zero(t, user.ID)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, int64(1), user.ID)
				assert.Equal(t, "alice", user.Username)
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, &config.Config{}, mockOtel)

	hash, err := password.Hash("pw1")
	assert.NoError(t, err)

	alice := userModel.User{ID: 1, Username: "alice", PasswordHash: hash}

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful login",
			req:  dto.LoginRequest{Username: "alice", Password: "pw1"},
			setupMock: func() {
				mockRepo.EXPECT().
					GetByUsername(gomock.Any(), "alice").
					Return(alice, nil)
			},
			wantErr: false,
		},
		{
			name: "unknown username",
			req:  dto.LoginRequest{Username: "ghost", Password: "pw1"},
			setupMock: func() {
				mockRepo.EXPECT().
					GetByUsername(gomock.Any(), "ghost").
					Return(userModel.User{}, nil)
			},
			wantErr: true,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Username: "alice", Password: "pw2"},
			setupMock: func() {
				mockRepo.EXPECT().
					GetByUsername(gomock.Any(), "alice").
					Return(alice, nil)
			},
			wantErr: true,
		},
		{
			name: "repository error",
			req:  dto.LoginRequest{Username: "alice", Password: "pw1"},
			setupMock: func() {
				mockRepo.EXPECT().
					GetByUsername(gomock.Any(), "alice").
					Return(userModel.User{}, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			user, err := svc.Login(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Zero(t, user.ID)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, int64(1), user.ID)
			}
		})
	}
}

// Credential failures must be indistinguishable so a caller cannot probe
// which usernames exist.
func TestAuthService_Login_UniformRejection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	svc := service.New(mockRepo, &config.Config{}, mocks.NewOtel())

	hash, err := password.Hash("pw1")
	assert.NoError(t, err)

	mockRepo.EXPECT().
		GetByUsername(gomock.Any(), "ghost").
		Return(userModel.User{}, nil)
	_, unknownErr := svc.Login(context.Background(), dto.LoginRequest{Username: "ghost", Password: "pw1"})

	mockRepo.EXPECT().
		GetByUsername(gomock.Any(), "alice").
		Return(userModel.User{ID: 1, Username: "alice", PasswordHash: hash}, nil)
	_, wrongPwErr := svc.Login(context.Background(), dto.LoginRequest{Username: "alice", Password: "pw2"})

	assert.True(t, failure.IsCode(unknownErr, http.StatusUnauthorized))
	assert.True(t, failure.IsCode(wrongPwErr, http.StatusUnauthorized))
	assert.Equal(t, unknownErr.Error(), wrongPwErr.Error())
}
