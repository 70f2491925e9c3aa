package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"hadithapi/internal/domain"
	"hadithapi/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Mock User Repository implementing the interface
type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, id int64, fields map[string]any) (*domain.User, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// Mock JWT service
type mockJWTService struct {
	mock.Mock
}

func (m *mockJWTService) GenerateToken(userID int64, role string) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}

func (m *mockJWTService) TTL() time.Duration {
	return 30 * time.Minute
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestService_Signup_Success(t *testing.T) {
	userRepo := new(mockUserRepo)
	jwtSvc := new(mockJWTService)

	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "test@example.com" && u.IsActive && !u.IsVerified && u.Role == domain.RoleUser
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.User).ID = 10
	}).Return(nil)
	jwtSvc.On("GenerateToken", int64(10), "user").Return("fake-jwt-token", nil)

	service := NewService(userRepo, jwtSvc, bcrypt.MinCost)
	name := "  Test User "

	res, err := service.Signup(context.Background(), SignupRequest{
		Email:    " Test@Example.com",
		Password: "securepass123",
		FullName: &name,
	})

	require.NoError(t, err)
	assert.Equal(t, "fake-jwt-token", res.Token)
	assert.Empty(t, res.User.PasswordHash)
	require.NotNil(t, res.User.FullName)
	assert.Equal(t, "Test User", *res.User.FullName)

	userRepo.AssertExpectations(t)
	jwtSvc.AssertExpectations(t)
}

func TestService_Signup_DuplicateEmail(t *testing.T) {
	userRepo := new(mockUserRepo)
	jwtSvc := new(mockJWTService)

	userRepo.On("Create", mock.Anything, mock.Anything).
		Return(fmt.Errorf("user test@example.com: %w", repository.ErrDuplicate))

	service := NewService(userRepo, jwtSvc, bcrypt.MinCost)
	_, err := service.Signup(context.Background(), SignupRequest{Email: "test@example.com", Password: "securepass123"})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	jwtSvc.AssertNotCalled(t, "GenerateToken", mock.Anything, mock.Anything)
}

func TestService_Login(t *testing.T) {
	active := &domain.User{ID: 1, Email: "a@example.com", PasswordHash: hashed(t, "rightpass1"), IsActive: true, Role: domain.RoleUser}
	inactive := &domain.User{ID: 2, Email: "b@example.com", PasswordHash: hashed(t, "rightpass1"), IsActive: false, Role: domain.RoleUser}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"ok", "a@example.com", "rightpass1", nil},
		{"wrong password", "a@example.com", "wrongpass1", ErrInvalidCredentials},
		{"unknown email", "nobody@example.com", "rightpass1", ErrInvalidCredentials},
		{"inactive", "b@example.com", "rightpass1", ErrInactiveUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(mockUserRepo)
			jwtSvc := new(mockJWTService)
			userRepo.On("GetByEmail", mock.Anything, "a@example.com").Return(active, nil).Maybe()
			userRepo.On("GetByEmail", mock.Anything, "b@example.com").Return(inactive, nil).Maybe()
			userRepo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound).Maybe()
			jwtSvc.On("GenerateToken", int64(1), "user").Return("tok", nil).Maybe()

			service := NewService(userRepo, jwtSvc, bcrypt.MinCost)
			res, err := service.Login(context.Background(), LoginRequest{Email: tt.email, Password: tt.password})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, res)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "tok", res.Token)
		})
	}
}

func TestService_UpdateProfile(t *testing.T) {
	userRepo := new(mockUserRepo)
	service := NewService(userRepo, new(mockJWTService), bcrypt.MinCost)

	_, err := service.UpdateProfile(context.Background(), 1, UpdateProfileRequest{})
	assert.ErrorIs(t, err, ErrNothingToUpdate)

	name := "New Name"
	password := "newpassword1"
	userRepo.On("UpdateProfile", mock.Anything, int64(1), mock.MatchedBy(func(f map[string]any) bool {
		hash, ok := f["password_hash"].(string)
		if !ok || bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
			return false
		}
		fn, ok := f["full_name"].(*string)
		return ok && *fn == name
	})).Return(&domain.User{ID: 1, FullName: &name}, nil)

	u, err := service.UpdateProfile(context.Background(), 1, UpdateProfileRequest{FullName: &name, Password: &password})
	require.NoError(t, err)
	assert.Equal(t, name, *u.FullName)
	userRepo.AssertExpectations(t)
}

func TestService_Refresh_InactiveUser(t *testing.T) {
	userRepo := new(mockUserRepo)
	userRepo.On("GetByID", mock.Anything, int64(5)).Return(&domain.User{ID: 5, IsActive: false}, nil)
	userRepo.On("GetByID", mock.Anything, int64(6)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(userRepo, new(mockJWTService), bcrypt.MinCost)

	_, err := service.Refresh(context.Background(), 5)
	assert.ErrorIs(t, err, ErrInactiveUser)

	_, err = service.Refresh(context.Background(), 6)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
