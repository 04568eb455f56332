package service

import (
	"context"
	"testing"
	"time"

	"riskwatch/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	svc := NewAuthService(store.Users, "test-secret", time.Hour)

	user, err := svc.CreateAccount(ctx, model.RegisterRequest{Email: "c@school.edu", Password: "password1", Name: "Casey", Role: model.RoleCounselor})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "password1", user.PasswordHash)

	_, err = svc.Register(ctx, model.RegisterRequest{Email: "c@school.edu", Password: "password2"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	resp, err := svc.Login(ctx, "c@school.edu", "password1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.User.ID)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, model.RoleCounselor, claims.Role)

	_, err = svc.Login(ctx, "c@school.edu", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody@school.edu", "password1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthRegisterValidation(t *testing.T) {
	svc := NewAuthService(openStore(t).Users, "s", time.Hour)

	tests := []struct {
		name string
		req  model.RegisterRequest
	}{
		{"bad email", model.RegisterRequest{Email: "nope", Password: "password1"}},
		{"short password", model.RegisterRequest{Email: "a@b.c", Password: "short"}},
		{"unknown role", model.RegisterRequest{Email: "a@b.c", Password: "password1", Role: "janitor"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateAccount(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestRegisterForcesStudentRole(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(openStore(t).Users, "s", time.Hour)

	for _, role := range []model.Role{model.RoleAdmin, model.RoleCounselor, "janitor", ""} {
		email := "user-" + string(role) + "@school.edu"
		user, err := svc.Register(ctx, model.RegisterRequest{Email: email, Password: "password1", Role: role})
		require.NoError(t, err)
		assert.Equal(t, model.RoleStudent, user.Role)

		resp, err := svc.Login(ctx, email, "password1")
		require.NoError(t, err)
		claims, err := svc.ValidateToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, model.RoleStudent, claims.Role)
	}
}

func TestValidateTokenRejects(t *testing.T) {
	store := openStore(t)
	svc := NewAuthService(store.Users, "secret-a", time.Hour)
	other := NewAuthService(store.Users, "secret-b", time.Hour)
	expired := NewAuthService(store.Users, "secret-a", time.Hour)

	token, err := other.IssueToken(&model.User{ID: "u1", Role: model.RoleAdmin})
	require.NoError(t, err)
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired.tokenTTL = -time.Minute
	token, err = expired.IssueToken(&model.User{ID: "u1", Role: model.RoleAdmin})
	require.NoError(t, err)
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
