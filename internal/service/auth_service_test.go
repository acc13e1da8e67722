package service

import (
	"context"
	"testing"

	"github.com/imarb51/Vetro-Quiz/internal/apperror"
	"github.com/imarb51/Vetro-Quiz/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	svc      AuthService
	userRepo *memUserRepo
	google   *fakeGoogleVerifier
}

func newAuthFixture() *authFixture {
	cfg := testConfig()
	userRepo := newMemUserRepo()
	tokens := NewTokenService(cfg, newMemTokenRepo())
	google := &fakeGoogleVerifier{}
	return &authFixture{
		svc:      NewAuthService(cfg, userRepo, tokens, google),
		userRepo: userRepo,
		google:   google,
	}
}

func registerReq(email string) dto.RegisterRequest {
	return dto.RegisterRequest{Email: email, Name: "Alice", Password: "secret123"}
}

func TestRegister_IssuesTokensForNewUser(t *testing.T) {
	fx := newAuthFixture()

	resp, err := fx.svc.Register(registerReq("Alice@Example.com"))
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.True(t, resp.User.IsActive)
	assert.False(t, resp.User.IsAdmin)

	stored, err := fx.userRepo.FindActiveByEmail("alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored.HashedPassword)
	assert.NotEqual(t, "secret123", *stored.HashedPassword)
}

func TestRegister_DuplicateEmailIsCaseInsensitive(t *testing.T) {
	fx := newAuthFixture()

	_, err := fx.svc.Register(registerReq("alice@example.com"))
	require.NoError(t, err)

	_, err = fx.svc.Register(registerReq("ALICE@EXAMPLE.COM"))
	assert.ErrorIs(t, err, apperror.ErrDuplicateEmail)
}

func TestRegister_RejectsShortPassword(t *testing.T) {
	fx := newAuthFixture()

	req := registerReq("alice@example.com")
	req.Password = "abc"
	_, err := fx.svc.Register(req)

	var verr *apperror.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestLogin_Succeeds(t *testing.T) {
	fx := newAuthFixture()
	_, err := fx.svc.Register(registerReq("alice@example.com"))
	require.NoError(t, err)

	resp, err := fx.svc.Login(dto.LoginRequest{Email: "ALICE@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", resp.User.Email)
}

func TestLogin_SameErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	fx := newAuthFixture()
	_, err := fx.svc.Register(registerReq("alice@example.com"))
	require.NoError(t, err)

	_, errUnknown := fx.svc.Login(dto.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	_, errWrong := fx.svc.Login(dto.LoginRequest{Email: "alice@example.com", Password: "wrong-pass"})

	assert.ErrorIs(t, errUnknown, apperror.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrong, apperror.ErrInvalidCredentials)
}

func TestLogin_RejectsPasswordlessGoogleAccount(t *testing.T) {
	fx := newAuthFixture()
	fx.google.claims = &GoogleClaims{Subject: "goog-1", Email: "alice@example.com", Name: "Alice"}
	_, err := fx.svc.LoginWithGoogle(context.Background(), "assertion")
	require.NoError(t, err)

	_, err = fx.svc.Login(dto.LoginRequest{Email: "alice@example.com", Password: "anything"})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
}

func TestLoginWithGoogle_ProvisionsNewUser(t *testing.T) {
	fx := newAuthFixture()
	fx.google.claims = &GoogleClaims{Subject: "goog-1", Email: "New@Example.com", Name: "New User"}

	resp, err := fx.svc.LoginWithGoogle(context.Background(), "assertion")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", resp.User.Email)
	assert.Equal(t, "New User", resp.User.Name)

	stored, err := fx.userRepo.FindActiveByGoogleID("goog-1")
	require.NoError(t, err)
	assert.Nil(t, stored.HashedPassword)
	assert.True(t, stored.IsActive)
}

func TestLoginWithGoogle_LinksExistingAccountByEmail(t *testing.T) {
	fx := newAuthFixture()
	reg, err := fx.svc.Register(registerReq("alice@example.com"))
	require.NoError(t, err)

	fx.google.claims = &GoogleClaims{Subject: "goog-1", Email: "alice@example.com", Name: "Alice"}
	resp, err := fx.svc.LoginWithGoogle(context.Background(), "assertion")
	require.NoError(t, err)

	assert.Equal(t, reg.User.ID, resp.User.ID)

	linked, err := fx.userRepo.FindActiveByGoogleID("goog-1")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, linked.ID)
	assert.NotNil(t, linked.HashedPassword)
}

func TestLoginWithGoogle_ReusesLinkedAccountBySubject(t *testing.T) {
	fx := newAuthFixture()
	fx.google.claims = &GoogleClaims{Subject: "goog-1", Email: "alice@example.com", Name: "Alice"}

	first, err := fx.svc.LoginWithGoogle(context.Background(), "assertion")
	require.NoError(t, err)
	second, err := fx.svc.LoginWithGoogle(context.Background(), "assertion")
	require.NoError(t, err)

	assert.Equal(t, first.User.ID, second.User.ID)

	count, err := fx.userRepo.CountActive()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestLoginWithGoogle_PropagatesInvalidAssertion(t *testing.T) {
	fx := newAuthFixture()

	_, err := fx.svc.LoginWithGoogle(context.Background(), "bad-assertion")
	assert.ErrorIs(t, err, apperror.ErrInvalidAssertion)
}

func TestRefresh_RotatesToken(t *testing.T) {
	fx := newAuthFixture()
	reg, err := fx.svc.Register(registerReq("alice@example.com"))
	require.NoError(t, err)

	rotated, err := fx.svc.Refresh(reg.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, reg.RefreshToken, rotated.RefreshToken)

	// The consumed token must not be replayable.
	_, err = fx.svc.Refresh(reg.RefreshToken)
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)

	// The replacement still works.
	_, err = fx.svc.Refresh(rotated.RefreshToken)
	assert.NoError(t, err)
}

func TestRefresh_RejectsDeactivatedUser(t *testing.T) {
	fx := newAuthFixture()
	reg, err := fx.svc.Register(registerReq("alice@example.com"))
	require.NoError(t, err)

	user, err := fx.userRepo.FindByID(reg.User.ID)
	require.NoError(t, err)
	user.IsActive = false
	require.NoError(t, fx.userRepo.Update(user))

	_, err = fx.svc.Refresh(reg.RefreshToken)
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)
}

func TestLogout_RevokesAndStaysIdempotent(t *testing.T) {
	fx := newAuthFixture()
	reg, err := fx.svc.Register(registerReq("alice@example.com"))
	require.NoError(t, err)

	require.NoError(t, fx.svc.Logout(reg.RefreshToken))
	_, err = fx.svc.Refresh(reg.RefreshToken)
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)

	assert.NoError(t, fx.svc.Logout(reg.RefreshToken))
	assert.NoError(t, fx.svc.Logout(""))
}

func TestUpdateProfile(t *testing.T) {
	fx := newAuthFixture()
	reg, err := fx.svc.Register(registerReq("alice@example.com"))
	require.NoError(t, err)

	name := "Alice B"
	phone := "555-0100"
	resp, err := fx.svc.UpdateProfile(reg.User.ID, dto.ProfileUpdateRequest{Name: &name, Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "Alice B", resp.Name)
	require.NotNil(t, resp.Phone)
	assert.Equal(t, "555-0100", *resp.Phone)

	_, err = fx.svc.UpdateProfile(reg.User.ID, dto.ProfileUpdateRequest{})
	var verr *apperror.ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = fx.svc.UpdateProfile("missing-id", dto.ProfileUpdateRequest{Name: &name})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
