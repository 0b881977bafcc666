// Package auth orchestrates registration, login, session resumption and the
// two password update flows by composing the credential hasher, the user
// record store and the session store.
//
// All failures are typed sentinels from internal/common, matched with
// errors.Is. Unknown-email and wrong-password login failures are deliberately
// indistinguishable. Plaintext passwords never reach storage or the log.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/melodica-app/melodica/internal/common"
	"github.com/melodica-app/melodica/internal/cryptox"
	"github.com/melodica-app/melodica/internal/logging"
	"github.com/melodica-app/melodica/internal/models"
	"github.com/melodica-app/melodica/internal/repositories/users"
	"github.com/melodica-app/melodica/internal/session"
	"github.com/melodica-app/melodica/internal/validation"
)

// RegisterInput carries the sign-up form fields.
type RegisterInput struct {
	Username        string `validate:"required,username_chars"`
	Email           string `validate:"required,email_shape"`
	Password        string `validate:"required"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

// ResetPasswordInput carries the forgot-password form fields.
type ResetPasswordInput struct {
	Email                string `validate:"required"`
	VerificationUsername string `validate:"required"`
	NewPassword          string `validate:"required,min=6"`
	ConfirmNewPassword   string `validate:"required,eqfield=NewPassword"`
}

// Service defines the account operations consumed by the UI surfaces.
//
// Contract:
//   - Register: create an account; clears any session, does not log in.
//   - Login: verify credentials and start a session.
//   - ResumeSession: report the authenticated record, or nil when anonymous.
//     A session pointing at a vanished record is cleared (self-healing).
//   - ChangePassword: rotate the password of the authenticated user.
//   - ResetPassword: out-of-band recovery verified by username only.
//   - UpdateEmail / UpdateUsername: profile edits that keep the session in
//     step with the record.
//   - SetProfileImage / ProfileImage: locally cached image reference.
//   - Logout: end the session.
type Service interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	ResumeSession(ctx context.Context) (*models.User, error)
	ChangePassword(ctx context.Context, email, oldPassword, newPassword string) error
	ResetPassword(ctx context.Context, in ResetPasswordInput) error
	UpdateEmail(ctx context.Context, id int64, newEmail string) (*models.User, error)
	UpdateUsername(ctx context.Context, id int64, newUsername string) (*models.User, error)
	SetProfileImage(ctx context.Context, ref string) error
	ProfileImage(ctx context.Context) (string, error)
	Logout(ctx context.Context) error
}

type service struct {
	users   users.Repository
	session *session.Store
	valid   *validation.Validator
	log     logging.Logger
	locks   *recordLocks
}

// NewService constructs a Service over the given stores. Everything is
// injected explicitly; the service holds no global state.
func NewService(repo users.Repository, sess *session.Store, log logging.Logger) Service {
	return &service{
		users:   repo,
		session: sess,
		valid:   validation.New(),
		log:     log,
		locks:   newRecordLocks(),
	}
}

// mapStoreErr passes the typed sentinels through unchanged and wraps
// anything else as a storage failure.
func mapStoreErr(err error) error {
	switch {
	case errors.Is(err, common.ErrDuplicateEmail),
		errors.Is(err, common.ErrValidation),
		errors.Is(err, common.ErrNotFound),
		errors.Is(err, common.ErrInvalidCredentials):
		return err
	default:
		return fmt.Errorf("%w: %v", common.ErrStorage, err)
	}
}

// verify recomputes the salted digest and compares it to the stored hash.
func verify(user *models.User, password string) bool {
	candidate := cryptox.HashPassword(user.Salt, password)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(user.PasswordHash)) == 1
}

func (s *service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := s.valid.Struct(in); err != nil {
		return nil, err
	}

	salt, err := cryptox.GenerateSalt()
	if err != nil {
		return nil, err
	}

	created, err := s.users.Create(ctx, &models.User{
		Username:     in.Username,
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: cryptox.HashPassword(salt, in.Password),
		Salt:         salt,
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}

	// a freshly registered account must never inherit a previous session,
	// even though this flow starts none itself
	if err := s.session.EndSession(ctx); err != nil {
		return nil, mapStoreErr(err)
	}

	s.log.Info(ctx, "user registered", "email", created.Email)
	return created, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, mapStoreErr(err)
	}

	if !verify(user, password) {
		return nil, common.ErrInvalidCredentials
	}

	if err := s.session.StartSession(ctx, user.Email, user.Username); err != nil {
		return nil, mapStoreErr(err)
	}

	s.log.Info(ctx, "user logged in", "email", user.Email)
	return user, nil
}

func (s *service) ResumeSession(ctx context.Context) (*models.User, error) {
	email, err := s.session.CurrentEmail(ctx)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if email == "" {
		return nil, nil
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// the record vanished out from under the session; heal it
			s.log.Warn(ctx, "clearing stale session", "email", email)
			if err := s.session.EndSession(ctx); err != nil {
				return nil, mapStoreErr(err)
			}
			return nil, nil
		}
		return nil, mapStoreErr(err)
	}
	return user, nil
}

func (s *service) ChangePassword(ctx context.Context, email, oldPassword, newPassword string) error {
	user, err := s.ResumeSession(ctx)
	if err != nil {
		return err
	}
	if user == nil {
		return common.ErrInvalidCredentials
	}
	// the one place email comparison is case-insensitive, matching the
	// change-password confirmation step of the mobile client
	if !strings.EqualFold(strings.TrimSpace(email), user.Email) {
		return common.ErrInvalidCredentials
	}
	if len(newPassword) < 6 {
		return fmt.Errorf("%w: new password must be at least 6 characters", common.ErrValidation)
	}

	unlock := s.locks.lock(user.ID)
	defer unlock()

	// re-read under the lock so verification always runs against the
	// current hash/salt pair; the record may have vanished since the resume
	user, err = s.users.GetByID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrInvalidCredentials
		}
		return mapStoreErr(err)
	}
	if !verify(user, oldPassword) {
		return common.ErrInvalidCredentials
	}

	return s.setPassword(ctx, user, newPassword)
}

func (s *service) ResetPassword(ctx context.Context, in ResetPasswordInput) error {
	if err := s.valid.Struct(in); err != nil {
		return err
	}

	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrInvalidCredentials
		}
		return mapStoreErr(err)
	}

	// single weak verification factor, exact match; a known gap carried
	// over from the original flow (no reset token, no rate limiting)
	if in.VerificationUsername != user.Username {
		return common.ErrInvalidCredentials
	}

	unlock := s.locks.lock(user.ID)
	defer unlock()

	return s.setPassword(ctx, user, in.NewPassword)
}

// setPassword rotates salt and hash together. The old salt is never reused.
func (s *service) setPassword(ctx context.Context, user *models.User, newPassword string) error {
	salt, err := cryptox.GenerateSalt()
	if err != nil {
		return err
	}
	hash := cryptox.HashPassword(salt, newPassword)

	if err := s.users.UpdatePassword(ctx, user.ID, hash, salt); err != nil {
		return mapStoreErr(err)
	}

	s.log.Info(ctx, "password updated", "email", user.Email)
	return nil
}

func (s *service) UpdateEmail(ctx context.Context, id int64, newEmail string) (*models.User, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	current, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	if err := s.users.UpdateEmail(ctx, id, newEmail); err != nil {
		return nil, mapStoreErr(err)
	}

	updated, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	if err := s.refreshSessionFor(ctx, current.Email, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) UpdateUsername(ctx context.Context, id int64, newUsername string) (*models.User, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	current, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	if err := s.users.UpdateUsername(ctx, id, newUsername); err != nil {
		return nil, mapStoreErr(err)
	}

	updated, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	if err := s.refreshSessionFor(ctx, current.Email, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// refreshSessionFor updates the cached session identity when the edited
// record is the one the session references. Without this a changed email
// would orphan the session and force a logout on the next resume.
func (s *service) refreshSessionFor(ctx context.Context, previousEmail string, updated *models.User) error {
	sessEmail, err := s.session.CurrentEmail(ctx)
	if err != nil {
		return mapStoreErr(err)
	}
	if sessEmail != previousEmail {
		return nil
	}
	if err := s.session.RefreshProfile(ctx, updated.Email, updated.Username); err != nil {
		return mapStoreErr(err)
	}
	return nil
}

func (s *service) SetProfileImage(ctx context.Context, ref string) error {
	if err := s.session.SetProfileImage(ctx, ref); err != nil {
		return mapStoreErr(err)
	}
	return nil
}

func (s *service) ProfileImage(ctx context.Context) (string, error) {
	ref, err := s.session.ProfileImage(ctx)
	if err != nil {
		return "", mapStoreErr(err)
	}
	return ref, nil
}

func (s *service) Logout(ctx context.Context) error {
	if err := s.session.EndSession(ctx); err != nil {
		return mapStoreErr(err)
	}
	s.log.Info(ctx, "user logged out")
	return nil
}
