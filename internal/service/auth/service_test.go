package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"bugtrail/internal/config"
	"bugtrail/internal/domain"
	"bugtrail/internal/mocks"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test-secret",
		JWTAccessExpiry: 15 * time.Minute,
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	assert.NoError(t, err)

	user := &domain.User{
		ID:           uuid.New(),
		Username:     "dana",
		PasswordHash: string(hash),
		DisplayName:  "Dana",
		Role:         "member",
	}

	t.Run("valid credentials yield a verifiable token", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		userRepo.On("GetByUsername", ctx, "dana").Return(user, nil).Once()
		svc := NewService(userRepo, testConfig())

		gotUser, token, err := svc.Login(ctx, domain.LoginInput{Username: "dana", Password: "s3cret"})

		assert.NoError(t, err)
		assert.Equal(t, user.ID, gotUser.ID)
		assert.NotEmpty(t, token.AccessToken)

		claims, err := svc.ValidateAccessToken(token.AccessToken)
		assert.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, "dana", claims.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		userRepo.On("GetByUsername", ctx, "dana").Return(user, nil).Once()
		svc := NewService(userRepo, testConfig())

		_, _, err := svc.Login(ctx, domain.LoginInput{Username: "dana", Password: "nope"})

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		userRepo.On("GetByUsername", ctx, "ghost").Return(nil, nil).Once()
		svc := NewService(userRepo, testConfig())

		_, _, err := svc.Login(ctx, domain.LoginInput{Username: "ghost", Password: "s3cret"})

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestValidateAccessToken_Garbage(t *testing.T) {
	svc := NewService(new(mocks.UserRepository), testConfig())

	_, err := svc.ValidateAccessToken("not-a-token")

	assert.ErrorIs(t, err, ErrInvalidToken)
}
