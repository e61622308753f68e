package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"adminpanel/api/internal/config"
	"adminpanel/api/internal/models"
	"adminpanel/api/internal/repository"
)

var (
	ErrEmailNotAllowed = errors.New("email not authorized for admin access")
	ErrOTPExpired      = errors.New("otp expired or invalid")
	ErrOTPMismatch     = errors.New("invalid otp")
	ErrSessionExpired  = errors.New("session expired")
	ErrDeliveryFailed  = errors.New("failed to send otp email")
)

// UserStore persists the per-email login record. A missing record is
// reported as repository.ErrUserNotFound.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
	Save(ctx context.Context, user models.User) (models.User, error)
}

type Mailer interface {
	SendOTP(ctx context.Context, to, code string) error
}

// AuthService drives the OTP login state machine. All state lives in the
// user record; every transition reads the record, mutates it and writes it
// back, because the request/verify steps arrive on independent requests.
type AuthService struct {
	users      UserStore
	mailer     Mailer
	allowed    map[string]struct{}
	otpTTL     time.Duration
	sessionTTL time.Duration
	log        zerolog.Logger
	now        func() time.Time
}

func NewAuthService(users UserStore, mailer Mailer, cfg config.AuthConfig, log zerolog.Logger) *AuthService {
	allowed := make(map[string]struct{}, len(cfg.AllowedEmails))
	for _, email := range cfg.AllowedEmails {
		allowed[email] = struct{}{}
	}

	return &AuthService{
		users:      users,
		mailer:     mailer,
		allowed:    allowed,
		otpTTL:     cfg.OTPTTL,
		sessionTTL: cfg.SessionTTL,
		log:        log,
		now:        time.Now,
	}
}

// RequestOTP arms a fresh code for an allow-listed email, overwriting any
// outstanding one. The code is persisted before delivery and intentionally
// stays stored when delivery fails; a retried request re-arms it anyway.
func (s *AuthService) RequestOTP(ctx context.Context, email string) error {
	if _, ok := s.allowed[email]; !ok {
		return ErrEmailNotAllowed
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			return err
		}
		user = models.User{Email: email}
	}

	code, err := generateOTP()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}

	user.OTP = &models.OTP{
		Code:      code,
		ExpiresAt: s.now().Add(s.otpTTL),
	}
	if _, err := s.users.Save(ctx, user); err != nil {
		return fmt.Errorf("save login record: %w", err)
	}

	if err := s.mailer.SendOTP(ctx, email, code); err != nil {
		s.log.Error().Err(err).Str("email", email).Msg("otp delivery failed")
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}
	return nil
}

// VerifyOTP consumes the outstanding code and opens a session.
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) (models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return models.User{}, err
	}

	now := s.now()
	if user.OTP == nil || user.OTP.Code == "" || !user.OTP.ExpiresAt.After(now) {
		return models.User{}, ErrOTPExpired
	}

	if subtle.ConstantTimeCompare([]byte(user.OTP.Code), []byte(code)) != 1 {
		return models.User{}, ErrOTPMismatch
	}

	user.OTP = nil
	user.IsVerified = true
	user.LastLogin = now
	return s.users.Save(ctx, user)
}

// CheckSession validates the session clock. Expiry is lazy: the first check
// past the timeout flips the record to unverified and reports the session
// expired.
func (s *AuthService) CheckSession(ctx context.Context, email string) (models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return models.User{}, err
	}

	if !user.IsVerified {
		return models.User{}, ErrSessionExpired
	}

	if !user.LastLogin.IsZero() && s.now().Sub(user.LastLogin) > s.sessionTTL {
		user.IsVerified = false
		if _, err := s.users.Save(ctx, user); err != nil {
			return models.User{}, err
		}
		return models.User{}, ErrSessionExpired
	}

	return user, nil
}

// ExtendSession refreshes the activity clock of a verified session.
func (s *AuthService) ExtendSession(ctx context.Context, email string) (models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return models.User{}, err
	}

	if !user.IsVerified {
		return models.User{}, ErrSessionExpired
	}

	user.LastLogin = s.now()
	return s.users.Save(ctx, user)
}

// Logout is idempotent: an unknown email succeeds without touching anything.
func (s *AuthService) Logout(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil
		}
		return err
	}

	user.IsVerified = false
	_, err = s.users.Save(ctx, user)
	return err
}

// generateOTP draws a 4-digit decimal code uniformly from [1000, 9999].
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+1000, 10), nil
}
