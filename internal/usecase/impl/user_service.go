// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "taskdeck/internal/delivery/context"
	"taskdeck/internal/domain/entity"
	domainerrors "taskdeck/internal/domain/errors"
	"taskdeck/internal/domain/repository"
	"taskdeck/internal/domain/service"
	"taskdeck/internal/usecase"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// normalizeEmail produces the canonical form stored and compared everywhere.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register orchestrates the complete account registration process. The
// existence check and the insert run inside one transaction; the unique index
// on the email column remains the authoritative guard should a concurrent
// registration slip between them.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.UserOutput, error) {
	email := normalizeEmail(input.Email)
	srv.log(ctx).Info("Starting registration", slog.String("email", email))

	var registered *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		exists, err := userRepo.EmailExists(ctx, email)
		if err != nil {
			return errors.Wrap(err, "failed to check email existence")
		}
		if exists {
			return domainerrors.ErrEmailAlreadyRegistered.WrapMessage("registration rejected")
		}

		digest, salt, err := srv.hasher.Hash(input.Password)
		if err != nil {
			return errors.Wrap(err, "failed to hash password during registration")
		}

		newUser := &entity.User{
			DisplayName:  input.DisplayName,
			Email:        email,
			PasswordHash: digest,
			PasswordSalt: salt,
		}

		if err := userRepo.Create(ctx, newUser); err != nil {
			return errors.Wrap(err, "failed to create user during registration")
		}

		registered = newUser

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", email), slog.Any("error", err))

		return nil, err
	}

	token, err := srv.tokenService.CreateToken(registered)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token after registration", slog.Int64("userID", registered.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue token")
	}

	srv.log(ctx).Debug("Registration completed", slog.Int64("userID", registered.ID))

	return toUserOutput(registered, token), nil
}

// Login orchestrates the user login process. An unknown email and a wrong
// password both end in ErrInvalidCredentials; a throwaway digest check keeps
// the unknown-email path from returning measurably faster.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.UserOutput, error) {
	email := normalizeEmail(input.Email)
	srv.log(ctx).Debug("Starting login", slog.String("email", email))

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.verifyDecoy(input.Password)
			srv.log(ctx).Warn("Login failed", slog.String("email", email))

			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
		}

		return nil, errors.Wrap(err, "failed to load user for login")
	}

	if !srv.hasher.Verify(input.Password, user.PasswordSalt, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", email))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	token, err := srv.tokenService.CreateToken(user)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token during login", slog.Int64("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue token")
	}

	srv.log(ctx).Debug("Login succeeded", slog.Int64("userID", user.ID))

	return toUserOutput(user, token), nil
}

// verifyDecoy burns a digest computation so the unknown-email and
// wrong-password branches cost the same.
func (srv *userService) verifyDecoy(password string) {
	decoySalt := make([]byte, 64)
	decoyDigest := make([]byte, 64)
	srv.hasher.Verify(password, decoySalt, decoyDigest)
}

// UpdateDisplayName changes a user's display name.
func (srv *userService) UpdateDisplayName(ctx context.Context, input *usecase.UpdateDisplayNameInput) error {
	if err := srv.userRepo.UpdateDisplayName(ctx, input.ID, input.DisplayName); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound.WrapMessage("display name update rejected")
		}

		return errors.Wrap(err, "failed to update display name")
	}

	srv.log(ctx).Debug("Display name updated", slog.Int64("userID", input.ID))

	return nil
}

// DeleteAccount removes the account and all tasks it owns. The repository
// performs both deletes as one transactional unit, so a partial cascade is
// reported as failure rather than success.
func (srv *userService) DeleteAccount(ctx context.Context, id int64) error {
	if err := srv.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound.WrapMessage("account deletion rejected")
		}

		srv.log(ctx).Error("Account deletion failed", slog.Int64("userID", id), slog.Any("error", err))

		return errors.Wrap(err, "failed to delete account")
	}

	srv.log(ctx).Info("Account deleted", slog.Int64("userID", id))

	return nil
}

func toUserOutput(user *entity.User, token string) *usecase.UserOutput {
	return &usecase.UserOutput{
		ID:          user.ID,
		DisplayName: user.DisplayName,
		Email:       user.Email,
		Token:       token,
	}
}
