package impl

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"parcel/internal/domain/entity"
	domainerrors "parcel/internal/domain/errors"
	"parcel/internal/domain/repository"
	"parcel/internal/domain/service"
	"parcel/internal/usecase"
)

type profileService struct {
	users          repository.UserRepository
	verifier       service.AuthVerifier
	tokens         service.TokenService
	hasher         service.PasswordHasher
	images         service.ImageStore
	maxInlineBytes int
	logger         *slog.Logger
	now            func() time.Time
}

// NewProfileService creates a new profile service instance
func NewProfileService(
	users repository.UserRepository,
	verifier service.AuthVerifier,
	tokens service.TokenService,
	hasher service.PasswordHasher,
	images service.ImageStore,
	maxInlineBytes int,
	logger *slog.Logger,
) usecase.ProfileUsecase {
	return &profileService{
		users:          users,
		verifier:       verifier,
		tokens:         tokens,
		hasher:         hasher,
		images:         images,
		maxInlineBytes: maxInlineBytes,
		logger:         logger,
		now:            time.Now,
	}
}

// LoginWithIDToken verifies a provider ID token and upserts the
// caller's profile in the given role.
func (s *profileService) LoginWithIDToken(ctx context.Context, idToken string, role entity.Role) (*entity.UserProfile, error) {
	identity, err := s.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}

	profile := &entity.UserProfile{
		ID:        identity.UID,
		Role:      role,
		Name:      identity.Name,
		Email:     identity.Email,
		UpdatedAt: s.now().UTC(),
	}

	if existing, err := s.users.FindProfileByID(ctx, identity.UID); err == nil {
		// Keep user-edited fields; the ID token only refreshes identity.
		if existing.Name != "" {
			profile.Name = existing.Name
		}
		profile.Phone = existing.Phone
		profile.PhotoData = existing.PhotoData
		profile.PhotoURL = existing.PhotoURL
		profile.FCMToken = existing.FCMToken
	} else if !errors.Is(err, repository.ErrProfileNotFound) {
		return nil, err
	}

	if err := s.users.UpsertProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in",
		slog.String("user_id", profile.ID),
		slog.String("role", string(role)))

	return profile, nil
}

// GetProfile returns a user's profile.
func (s *profileService) GetProfile(ctx context.Context, userID string) (*entity.UserProfile, error) {
	profile, err := s.users.FindProfileByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, domainerrors.ErrProfileNotFound
		}

		return nil, err
	}

	return profile, nil
}

// UpdateProfile applies partial edits, routing oversized photos to the
// blob store.
func (s *profileService) UpdateProfile(ctx context.Context, input *usecase.UpdateProfileInput) (*entity.UserProfile, error) {
	profile, err := s.GetProfile(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		profile.Name = *input.Name
	}
	if input.Phone != nil {
		profile.Phone = *input.Phone
	}
	if input.FCMToken != nil {
		profile.FCMToken = *input.FCMToken
	}
	if input.PhotoDataURI != nil {
		if err := s.applyPhoto(ctx, profile, *input.PhotoDataURI); err != nil {
			return nil, err
		}
	}
	profile.UpdatedAt = s.now().UTC()

	if err := s.users.UpsertProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return profile, nil
}

// applyPhoto keeps small images inline on the document and pushes
// larger ones to the blob store. Exactly one of PhotoData/PhotoURL is
// set afterwards.
func (s *profileService) applyPhoto(ctx context.Context, profile *entity.UserProfile, dataURI string) error {
	contentType, data, err := decodeDataURI(dataURI)
	if err != nil {
		return err
	}

	if len(data) <= s.maxInlineBytes {
		profile.PhotoData = dataURI
		profile.PhotoURL = ""

		return nil
	}

	if s.images == nil {
		return domainerrors.ErrImageTooLarge
	}

	url, err := s.images.SaveProfileImage(ctx, profile.ID, contentType, data)
	if err != nil {
		return fmt.Errorf("failed to store profile image: %w", err)
	}
	profile.PhotoData = ""
	profile.PhotoURL = url

	return nil
}

// AdminLogin checks dashboard credentials and issues session tokens.
func (s *profileService) AdminLogin(ctx context.Context, email, password string) (*usecase.AdminTokens, error) {
	admin, err := s.users.FindAdminByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, err
	}

	if !s.hasher.Check(password, admin.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, admin.ID)
}

// AdminRefresh rotates the session pair from a refresh token.
func (s *profileService) AdminRefresh(ctx context.Context, refreshToken string) (*usecase.AdminTokens, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, domainerrors.ErrRefreshTokenInvalid
	}

	return s.issueTokens(ctx, claims.AccountID)
}

// AdminRegister creates a new dashboard account.
func (s *profileService) AdminRegister(ctx context.Context, input *usecase.AdminRegisterInput) (*entity.AdminAccount, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := s.users.FindAdminByEmail(ctx, email); err == nil {
		return nil, errors.New("email already registered")
	} else if !errors.Is(err, repository.ErrAdminNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &entity.AdminAccount{
		Email:        email,
		PasswordHash: hash,
		Name:         input.Name,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.users.CreateAdmin(ctx, admin); err != nil {
		return nil, fmt.Errorf("failed to create admin account: %w", err)
	}

	s.logger.InfoContext(ctx, "admin account created",
		slog.String("admin_id", admin.ID),
		slog.String("email", admin.Email))

	return admin, nil
}

func (s *profileService) issueTokens(ctx context.Context, accountID string) (*usecase.AdminTokens, error) {
	access, refresh, err := s.tokens.GenerateTokens(accountID, []string{string(entity.RoleAdmin)})
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	s.logger.InfoContext(ctx, "admin session issued", slog.String("admin_id", accountID))

	return &usecase.AdminTokens{AccessToken: access, RefreshToken: refresh}, nil
}

// decodeDataURI splits a "data:<mime>;base64,<payload>" URI into the
// content type and decoded bytes.
func decodeDataURI(uri string) (string, []byte, error) {
	const prefix = "data:"
	if !strings.HasPrefix(uri, prefix) {
		return "", nil, errors.New("photo must be a base64 data URI")
	}

	meta, payload, ok := strings.Cut(uri[len(prefix):], ",")
	if !ok {
		return "", nil, errors.New("malformed data URI")
	}

	contentType, encoding, _ := strings.Cut(meta, ";")
	if encoding != "base64" {
		return "", nil, errors.New("data URI must be base64 encoded")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("invalid base64 payload: %w", err)
	}

	return contentType, data, nil
}
