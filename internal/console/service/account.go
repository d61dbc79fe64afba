package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/opsdeck/console/internal/console/domain"
	"github.com/opsdeck/console/internal/console/store"
	"github.com/opsdeck/console/pkg/cryptox"
	"github.com/opsdeck/console/pkg/tokenx"
)

var (
	// ErrInvalidCredentials is returned on sign-in with a wrong email or
	// password. Deliberately one error for both cases.
	ErrInvalidCredentials = errors.New("service: invalid credentials")

	// ErrTokenInvalid covers expired, used, mistyped and forged e-mail
	// action tokens. The HTTP layer maps it to 404.
	ErrTokenInvalid = errors.New("service: token invalid or expired")
)

const (
	// DefaultVerifyTTL bounds how long a verification link stays redeemable.
	DefaultVerifyTTL = 72 * time.Hour
	// DefaultResetTTL bounds a password reset link.
	DefaultResetTTL = time.Hour
)

// AccountService implements the self-service account flows: registration,
// e-mail verification, password reset and sign-in.
type AccountService struct {
	Store      store.Store
	Sessions   *SessionService
	Signer     *tokenx.Signer
	Mailer     Mailer
	ConsoleURL string // base URL links in mail point at

	VerifyTTL time.Duration
	ResetTTL  time.Duration
}

func (s *AccountService) verifyTTL() time.Duration {
	if s.VerifyTTL > 0 {
		return s.VerifyTTL
	}
	return DefaultVerifyTTL
}

func (s *AccountService) resetTTL() time.Duration {
	if s.ResetTTL > 0 {
		return s.ResetTTL
	}
	return DefaultResetTTL
}

// EnsureAdmin seeds the first administrator when the users table is empty.
// The account starts out verified; there is nobody to mail yet. No-op once
// any user exists.
func (s *AccountService) EnsureAdmin(ctx context.Context, email, password string) error {
	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return err
	}
	if !empty {
		return nil
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	_, err = s.Store.Users().CreateUser(ctx, domain.User{
		Email:        email,
		Username:     email,
		Role:         domain.RoleAdmin,
		PasswordHash: hash,
		Verified:     true,
	})
	return err
}

// Register creates an unverified account and mails a verification link.
// The username starts out equal to the e-mail address; the user can change
// it from the account screen later.
func (s *AccountService) Register(ctx context.Context, email, password string) error {
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	var userID int64
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		userID, err = tx.Users().CreateUser(ctx, domain.User{
			Email:        email,
			Username:     email,
			Role:         domain.RoleUser,
			PasswordHash: hash,
			Verified:     false,
		})
		return err
	})
	if err != nil {
		return err
	}

	return s.sendVerification(ctx, userID, email)
}

// Verify redeems a verification token and marks the account verified.
// The token is single-use: its jti is burned inside the same transaction.
func (s *AccountService) Verify(ctx context.Context, userID int64, token string) (domain.User, error) {
	jti, err := s.redeemToken(ctx, userID, token, tokenx.PurposeVerify)
	if err != nil {
		return domain.User{}, err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.ActionTokens().MarkActionTokenUsed(ctx, jti); err != nil {
			return err
		}
		return tx.Users().MarkVerified(ctx, userID)
	})
	if err != nil {
		return domain.User{}, err
	}

	return s.Store.Users().GetUserByID(ctx, userID)
}

// Resend mails a fresh verification link. Unknown addresses and already
// verified accounts return nil so the endpoint can't be used to probe for
// accounts.
func (s *AccountService) Resend(ctx context.Context, email string) error {
	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if user.Verified {
		return nil
	}
	return s.sendVerification(ctx, user.ID, user.Email)
}

// Reset mails a password reset link. Unknown addresses return nil, same
// anti-enumeration stance as Resend.
func (s *AccountService) Reset(ctx context.Context, email string) error {
	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.SendReset(ctx, user)
}

// SendReset mails a reset link to a known user. Also used by the admin
// "reset password" row action and after admin account creation.
func (s *AccountService) SendReset(ctx context.Context, user domain.User) error {
	token, jti, err := s.Signer.Mint(user.ID, tokenx.PurposeReset, s.resetTTL())
	if err != nil {
		return err
	}
	if err := s.recordToken(ctx, jti, user.ID, tokenx.PurposeReset, s.resetTTL()); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/change?userId=%d&token=%s", s.ConsoleURL, user.ID, token)
	return s.Mailer.Send(ctx, user.Email,
		"Reset your password",
		"A password reset was requested for your account.\n\n"+
			"Follow this link to choose a new password:\n"+link+"\n\n"+
			"If you did not request this, you can ignore this mail.")
}

// ChangePassword redeems a reset token and sets a new password. Every
// session the user holds is revoked; they must sign in again.
func (s *AccountService) ChangePassword(ctx context.Context, userID int64, token, newPassword string) error {
	jti, err := s.redeemToken(ctx, userID, token, tokenx.PurposeReset)
	if err != nil {
		return err
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.ActionTokens().MarkActionTokenUsed(ctx, jti); err != nil {
			return err
		}
		if err := tx.Users().UpdatePasswordHash(ctx, userID, hash); err != nil {
			return err
		}
		return tx.Sessions().DeleteUserSessions(ctx, userID)
	})
}

// SignIn checks credentials and mints a session. The login field is the
// e-mail address; username is accepted as a fallback.
func (s *AccountService) SignIn(ctx context.Context, login, password string) (domain.User, domain.Session, error) {
	user, err := s.Store.Users().GetUserByEmail(ctx, login)
	if errors.Is(err, store.ErrNotFound) {
		user, err = s.Store.Users().GetUserByUsername(ctx, login)
	}
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, domain.Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return domain.User{}, domain.Session{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		return domain.User{}, domain.Session{}, ErrInvalidCredentials
	}

	session, err := s.Sessions.Mint(ctx, user.ID)
	if err != nil {
		return domain.User{}, domain.Session{}, err
	}
	return user, session, nil
}

// sendVerification mints a verification token, records its jti and mails
// the link.
func (s *AccountService) sendVerification(ctx context.Context, userID int64, email string) error {
	token, jti, err := s.Signer.Mint(userID, tokenx.PurposeVerify, s.verifyTTL())
	if err != nil {
		return err
	}
	if err := s.recordToken(ctx, jti, userID, tokenx.PurposeVerify, s.verifyTTL()); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/verify?userId=%d&token=%s", s.ConsoleURL, userID, token)
	return s.Mailer.Send(ctx, email,
		"Verify your e-mail address",
		"Welcome! Please confirm this e-mail address by following the link:\n"+link)
}

func (s *AccountService) recordToken(ctx context.Context, jti string, userID int64, purpose string, ttl time.Duration) error {
	now := time.Now().UTC()
	return s.Store.ActionTokens().CreateActionToken(ctx, domain.ActionToken{
		JTI:       jti,
		UserID:    userID,
		Purpose:   purpose,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	})
}

// redeemToken verifies the signature and checks the jti is known, unused,
// unexpired, matches the purpose and belongs to the user in the URL.
func (s *AccountService) redeemToken(ctx context.Context, userID int64, token, purpose string) (string, error) {
	tokenUserID, jti, err := s.Signer.Verify(token, purpose)
	if err != nil || tokenUserID != userID {
		return "", ErrTokenInvalid
	}

	record, err := s.Store.ActionTokens().GetActionToken(ctx, jti)
	if err != nil {
		return "", ErrTokenInvalid
	}
	if record.Used || record.UserID != userID || record.Purpose != purpose {
		return "", ErrTokenInvalid
	}
	if time.Now().UTC().After(record.ExpiresAt) {
		return "", ErrTokenInvalid
	}
	return jti, nil
}
