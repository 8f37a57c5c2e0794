package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"jeffika-cabs-backend/internal/domain"
	"jeffika-cabs-backend/internal/security"
	"jeffika-cabs-backend/internal/service"
)

func newAuthFixture() (*MockUserRepo, service.AuthService) {
	userRepo := new(MockUserRepo)
	tokens := security.NewTokenManager("test-secret", 60, 10080)
	return userRepo, service.NewAuthService(userRepo, tokens)
}

func TestAuthService_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		userRepo, svc := newAuthFixture()

		userRepo.On("GetByEmail", ctx, "amina@example.com").Return(nil, domain.ErrUserNotFound)
		userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = 7
		}).Return(nil)

		user, access, refresh, err := svc.Signup(ctx, "Amina", "Amina@Example.com ", "0712345678", "s3cretpass")
		assert.NoError(t, err)
		assert.Equal(t, "amina@example.com", user.Email)
		assert.Equal(t, domain.UserRoleCustomer, user.Role)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		// hash must verify against the original password
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cretpass")))
	})

	t.Run("Email Taken", func(t *testing.T) {
		userRepo, svc := newAuthFixture()
		userRepo.On("GetByEmail", ctx, "amina@example.com").Return(&domain.User{ID: 7}, nil)

		_, _, _, err := svc.Signup(ctx, "Amina", "amina@example.com", "", "s3cretpass")
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Short Password", func(t *testing.T) {
		_, svc := newAuthFixture()
		_, _, _, err := svc.Signup(ctx, "Amina", "amina@example.com", "", "short")
		assert.Error(t, err)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("s3cretpass"), bcrypt.DefaultCost)
	user := &domain.User{ID: 7, Email: "amina@example.com", PasswordHash: string(hash), Role: domain.UserRoleCustomer}

	t.Run("Success", func(t *testing.T) {
		userRepo, svc := newAuthFixture()
		userRepo.On("GetByEmail", ctx, "amina@example.com").Return(user, nil)

		access, refresh, err := svc.Login(ctx, "amina@example.com", "s3cretpass")
		assert.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		userRepo, svc := newAuthFixture()
		userRepo.On("GetByEmail", ctx, "amina@example.com").Return(user, nil)

		_, _, err := svc.Login(ctx, "amina@example.com", "wrongpass")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("Unknown Email", func(t *testing.T) {
		userRepo, svc := newAuthFixture()
		userRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, domain.ErrUserNotFound)

		_, _, err := svc.Login(ctx, "ghost@example.com", "s3cretpass")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()
	tokens := security.NewTokenManager("test-secret", 60, 10080)

	t.Run("Success", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := service.NewAuthService(userRepo, tokens)

		refresh, err := tokens.GenerateRefreshToken(7, "amina@example.com")
		assert.NoError(t, err)
		userRepo.On("GetByID", ctx, int32(7)).Return(&domain.User{ID: 7, Email: "amina@example.com", Role: domain.UserRoleCustomer}, nil)

		access, newRefresh, err := svc.Refresh(ctx, refresh)
		assert.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, newRefresh)
	})

	t.Run("Access Token Rejected", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := service.NewAuthService(userRepo, tokens)

		access, err := tokens.GenerateAccessToken(7, "amina@example.com", "CUSTOMER")
		assert.NoError(t, err)

		_, _, err = svc.Refresh(ctx, access)
		assert.ErrorIs(t, err, security.ErrWrongTokenType)
	})
}
