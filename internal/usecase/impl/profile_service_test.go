package impl

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"parcel/internal/domain/entity"
	domainerrors "parcel/internal/domain/errors"
	"parcel/internal/domain/repository"
	"parcel/internal/domain/service"
	"parcel/internal/mocks"
	"parcel/internal/usecase"
)

type profileServiceMocks struct {
	users    *mocks.UserRepository
	verifier *mocks.AuthVerifier
	tokens   *mocks.TokenService
	hasher   *mocks.PasswordHasher
	images   *mocks.ImageStore
}

func newProfileService(t *testing.T, maxInlineBytes int) (usecase.ProfileUsecase, *profileServiceMocks) {
	t.Helper()

	m := &profileServiceMocks{
		users:    new(mocks.UserRepository),
		verifier: new(mocks.AuthVerifier),
		tokens:   new(mocks.TokenService),
		hasher:   new(mocks.PasswordHasher),
		images:   new(mocks.ImageStore),
	}

	svc := NewProfileService(m.users, m.verifier, m.tokens, m.hasher, m.images, maxInlineBytes, discardLogger())

	return svc, m
}

func photoURI(size int) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte(strings.Repeat("x", size)))
}

func TestLoginWithIDToken_CreatesProfile(t *testing.T) {
	svc, m := newProfileService(t, 1024)

	m.verifier.On("VerifyIDToken", mock.Anything, "id-token").Return(&service.Identity{
		UID:   "uid-1",
		Email: "amal@example.com",
		Name:  "Amal",
	}, nil)
	m.users.On("FindProfileByID", mock.Anything, "uid-1").Return(nil, repository.ErrProfileNotFound)
	m.users.On("UpsertProfile", mock.Anything, mock.MatchedBy(func(p *entity.UserProfile) bool {
		return p.ID == "uid-1" && p.Role == entity.RoleCustomer && p.Email == "amal@example.com"
	})).Return(nil)

	profile, err := svc.LoginWithIDToken(context.Background(), "id-token", entity.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, "Amal", profile.Name)
}

func TestLoginWithIDToken_KeepsEditedFields(t *testing.T) {
	svc, m := newProfileService(t, 1024)

	m.verifier.On("VerifyIDToken", mock.Anything, "id-token").Return(&service.Identity{
		UID:   "uid-1",
		Email: "amal@example.com",
		Name:  "Provider Name",
	}, nil)
	m.users.On("FindProfileByID", mock.Anything, "uid-1").Return(&entity.UserProfile{
		ID:       "uid-1",
		Name:     "Edited Name",
		Phone:    "+9477111111",
		FCMToken: "device-token",
	}, nil)
	m.users.On("UpsertProfile", mock.Anything, mock.MatchedBy(func(p *entity.UserProfile) bool {
		return p.Name == "Edited Name" && p.Phone == "+9477111111" && p.FCMToken == "device-token"
	})).Return(nil)

	_, err := svc.LoginWithIDToken(context.Background(), "id-token", entity.RoleCustomer)
	assert.NoError(t, err)
}

func TestLoginWithIDToken_BadToken(t *testing.T) {
	svc, m := newProfileService(t, 1024)

	m.verifier.On("VerifyIDToken", mock.Anything, "bad").Return(nil, domainerrors.ErrIDTokenInvalid)

	_, err := svc.LoginWithIDToken(context.Background(), "bad", entity.RoleDriver)
	assert.ErrorIs(t, err, domainerrors.ErrIDTokenInvalid)
}

func TestUpdateProfile_SmallPhotoStaysInline(t *testing.T) {
	svc, m := newProfileService(t, 1024)

	uri := photoURI(100)
	m.users.On("FindProfileByID", mock.Anything, "uid-1").
		Return(&entity.UserProfile{ID: "uid-1", PhotoURL: "https://cdn/old.png"}, nil)
	m.users.On("UpsertProfile", mock.Anything, mock.MatchedBy(func(p *entity.UserProfile) bool {
		return p.PhotoData == uri && p.PhotoURL == ""
	})).Return(nil)

	_, err := svc.UpdateProfile(context.Background(), &usecase.UpdateProfileInput{
		UserID:       "uid-1",
		PhotoDataURI: &uri,
	})
	assert.NoError(t, err)
	m.images.AssertNotCalled(t, "SaveProfileImage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateProfile_LargePhotoGoesToBlobStore(t *testing.T) {
	svc, m := newProfileService(t, 64)

	uri := photoURI(500)
	m.users.On("FindProfileByID", mock.Anything, "uid-1").
		Return(&entity.UserProfile{ID: "uid-1", PhotoData: "data:image/png;base64,old"}, nil)
	m.images.On("SaveProfileImage", mock.Anything, "uid-1", "image/png", mock.Anything).
		Return("https://cdn/profiles/uid-1.png", nil)
	m.users.On("UpsertProfile", mock.Anything, mock.MatchedBy(func(p *entity.UserProfile) bool {
		return p.PhotoData == "" && p.PhotoURL == "https://cdn/profiles/uid-1.png"
	})).Return(nil)

	_, err := svc.UpdateProfile(context.Background(), &usecase.UpdateProfileInput{
		UserID:       "uid-1",
		PhotoDataURI: &uri,
	})
	assert.NoError(t, err)
	m.images.AssertExpectations(t)
}

func TestUpdateProfile_MalformedDataURI(t *testing.T) {
	svc, m := newProfileService(t, 1024)

	bad := "not-a-data-uri"
	m.users.On("FindProfileByID", mock.Anything, "uid-1").
		Return(&entity.UserProfile{ID: "uid-1"}, nil)

	_, err := svc.UpdateProfile(context.Background(), &usecase.UpdateProfileInput{
		UserID:       "uid-1",
		PhotoDataURI: &bad,
	})
	assert.Error(t, err)
	m.users.AssertNotCalled(t, "UpsertProfile", mock.Anything, mock.Anything)
}

func TestAdminLogin_IssuesTokenPair(t *testing.T) {
	svc, m := newProfileService(t, 1024)

	m.users.On("FindAdminByEmail", mock.Anything, "admin@example.com").Return(&entity.AdminAccount{
		ID:           "admin-1",
		Email:        "admin@example.com",
		PasswordHash: "hashed",
	}, nil)
	m.hasher.On("Check", "secret", "hashed").Return(true)
	m.tokens.On("GenerateTokens", "admin-1", []string{"admin"}).Return("access", "refresh", nil)

	tokens, err := svc.AdminLogin(context.Background(), "admin@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "access", tokens.AccessToken)
	assert.Equal(t, "refresh", tokens.RefreshToken)
}

func TestAdminLogin_WrongPassword(t *testing.T) {
	svc, m := newProfileService(t, 1024)

	m.users.On("FindAdminByEmail", mock.Anything, "admin@example.com").Return(&entity.AdminAccount{
		ID:           "admin-1",
		PasswordHash: "hashed",
	}, nil)
	m.hasher.On("Check", "wrong", "hashed").Return(false)

	_, err := svc.AdminLogin(context.Background(), "admin@example.com", "wrong")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAdminLogin_UnknownEmailMapsToInvalidCredentials(t *testing.T) {
	svc, m := newProfileService(t, 1024)

	m.users.On("FindAdminByEmail", mock.Anything, "nobody@example.com").
		Return(nil, repository.ErrAdminNotFound)

	_, err := svc.AdminLogin(context.Background(), "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAdminRefresh_BadToken(t *testing.T) {
	svc, m := newProfileService(t, 1024)

	m.tokens.On("ValidateRefreshToken", "expired").Return(nil, assert.AnError)

	_, err := svc.AdminRefresh(context.Background(), "expired")
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestAdminRegister_HashesPassword(t *testing.T) {
	svc, m := newProfileService(t, 1024)

	m.users.On("FindAdminByEmail", mock.Anything, "new@example.com").
		Return(nil, repository.ErrAdminNotFound)
	m.hasher.On("Hash", "password123").Return("hashed", nil)
	m.users.On("CreateAdmin", mock.Anything, mock.MatchedBy(func(a *entity.AdminAccount) bool {
		return a.Email == "new@example.com" && a.PasswordHash == "hashed"
	})).Return(nil)

	admin, err := svc.AdminRegister(context.Background(), &usecase.AdminRegisterInput{
		Email:    "New@Example.com",
		Password: "password123",
		Name:     "New Admin",
	})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", admin.Email)
}

func TestAdminRegister_DuplicateEmail(t *testing.T) {
	svc, m := newProfileService(t, 1024)

	m.users.On("FindAdminByEmail", mock.Anything, "dup@example.com").
		Return(&entity.AdminAccount{ID: "admin-1"}, nil)

	_, err := svc.AdminRegister(context.Background(), &usecase.AdminRegisterInput{
		Email:    "dup@example.com",
		Password: "password123",
		Name:     "Dup",
	})
	assert.Error(t, err)
	m.users.AssertNotCalled(t, "CreateAdmin", mock.Anything, mock.Anything)
}
