package usecase

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/clubhub/clubhub/application/audit"
	"github.com/clubhub/clubhub/application/port/inbound"
	"github.com/clubhub/clubhub/application/port/outbound"
	"github.com/clubhub/clubhub/domain/apperror"
	"github.com/clubhub/clubhub/domain/entity"
	"github.com/clubhub/clubhub/infrastructure/service/logger"
)

const resetTokenTTL = time.Hour

type PasswordResetUseCase struct {
	admins          outbound.AdminRepository
	users           outbound.UserRepository
	clubs           outbound.ClubRepository
	passwordService outbound.PasswordService
	mailer          outbound.Mailer
	recorder        *audit.Recorder
	log             logger.Logger
	frontendURL     string
}

func NewPasswordResetUseCase(
	admins outbound.AdminRepository,
	users outbound.UserRepository,
	clubs outbound.ClubRepository,
	passwordService outbound.PasswordService,
	mailer outbound.Mailer,
	recorder *audit.Recorder,
	log logger.Logger,
	frontendURL string,
) inbound.PasswordResetUseCase {
	return &PasswordResetUseCase{
		admins:          admins,
		users:           users,
		clubs:           clubs,
		passwordService: passwordService,
		mailer:          mailer,
		recorder:        recorder,
		log:             log,
		frontendURL:     frontendURL,
	}
}

// resetAccount abstracts over the three principal collections for the token
// round trip.
type resetAccount struct {
	id       string
	email    string
	userType entity.UserType

	setToken func(hash string, expires time.Time)
	setHash  func(passwordHash string)
	save     func(ctx context.Context) error
}

func (uc *PasswordResetUseCase) Request(ctx context.Context, req inbound.PasswordResetRequest) error {
	if req.Email == "" {
		return apperror.Validation("L'email est requis")
	}

	account, err := uc.findByEmail(ctx, req.Email, req.UserType)
	if err != nil {
		if errors.Is(err, outbound.ErrNotFound) {
			// Same answer as for a known address; the caller learns nothing.
			return nil
		}
		return apperror.Internal("account lookup failed", err)
	}

	token, tokenHash, err := newResetToken()
	if err != nil {
		return apperror.Internal("token generation failed", err)
	}

	account.setToken(tokenHash, time.Now().Add(resetTokenTTL))
	if err := account.save(ctx); err != nil {
		return apperror.Internal("account update failed", err)
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s&type=%s", uc.frontendURL, token, account.userType)
	uc.sendResetMail(ctx, account.email, resetURL)

	uc.recorder.RecordAction(ctx, account.id, account.userType, entity.ActionPasswordResetRequested,
		"Demande de réinitialisation du mot de passe", entity.RefKindForUserType(account.userType), account.id, nil)
	return nil
}

func (uc *PasswordResetUseCase) Reset(ctx context.Context, req inbound.PasswordResetConfirm) error {
	if req.NewPassword != req.ConfirmPassword {
		return apperror.Validation("Les mots de passe ne correspondent pas")
	}
	if len(req.NewPassword) < 6 {
		return apperror.Validation("Le mot de passe doit contenir au moins 6 caractères")
	}

	account, err := uc.findByToken(ctx, req.Token, req.UserType)
	if err != nil {
		return err
	}

	hash, err := uc.passwordService.HashPassword(req.NewPassword)
	if err != nil {
		return apperror.Internal("password hashing failed", err)
	}

	account.setHash(hash)
	account.setToken("", time.Time{})
	if err := account.save(ctx); err != nil {
		return apperror.Internal("account update failed", err)
	}

	uc.recorder.RecordAction(ctx, account.id, account.userType, entity.ActionPasswordChange,
		"Mot de passe réinitialisé via le lien envoyé par email", entity.RefKindForUserType(account.userType), account.id, nil)
	return nil
}

func (uc *PasswordResetUseCase) VerifyToken(ctx context.Context, token, userType string) error {
	_, err := uc.findByToken(ctx, token, userType)
	return err
}

// findByToken resolves the stored hash of a raw token and enforces expiry.
func (uc *PasswordResetUseCase) findByToken(ctx context.Context, token, userType string) (*resetAccount, error) {
	if token == "" {
		return nil, apperror.Validation("Le token est requis")
	}
	tokenHash := hashResetToken(token)

	var (
		account *resetAccount
		expires time.Time
	)
	switch entity.UserType(userType) {
	case entity.UserTypeAdmin:
		admin, err := uc.admins.FindByResetToken(ctx, tokenHash)
		if err != nil {
			return nil, wrapResetLookup(err)
		}
		expires = admin.ResetPasswordExpires
		account = uc.adminAccount(admin)
	case entity.UserTypeClub:
		club, err := uc.clubs.FindByResetToken(ctx, tokenHash)
		if err != nil {
			return nil, wrapResetLookup(err)
		}
		expires = club.ResetPasswordExpires
		account = uc.clubAccount(club)
	default:
		user, err := uc.users.FindByResetToken(ctx, tokenHash)
		if err != nil {
			return nil, wrapResetLookup(err)
		}
		expires = user.ResetPasswordExpires
		account = uc.userAccount(user)
	}

	if time.Now().After(expires) {
		return nil, apperror.Validation("Le lien de réinitialisation a expiré")
	}
	return account, nil
}

func (uc *PasswordResetUseCase) findByEmail(ctx context.Context, email, userType string) (*resetAccount, error) {
	switch entity.UserType(userType) {
	case entity.UserTypeAdmin:
		admin, err := uc.admins.FindByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		return uc.adminAccount(admin), nil
	case entity.UserTypeClub:
		club, err := uc.clubs.FindByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		return uc.clubAccount(club), nil
	case entity.UserTypeUser:
		user, err := uc.users.FindByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		return uc.userAccount(user), nil
	default:
		// No explicit variant: probe in resolution order.
		if admin, err := uc.admins.FindByEmail(ctx, email); err == nil {
			return uc.adminAccount(admin), nil
		} else if !errors.Is(err, outbound.ErrNotFound) {
			return nil, err
		}
		if user, err := uc.users.FindByEmail(ctx, email); err == nil {
			return uc.userAccount(user), nil
		} else if !errors.Is(err, outbound.ErrNotFound) {
			return nil, err
		}
		club, err := uc.clubs.FindByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		return uc.clubAccount(club), nil
	}
}

func (uc *PasswordResetUseCase) adminAccount(admin *entity.Admin) *resetAccount {
	return &resetAccount{
		id:       admin.ID,
		email:    admin.Email,
		userType: entity.UserTypeAdmin,
		setToken: func(hash string, expires time.Time) {
			admin.ResetPasswordToken = hash
			admin.ResetPasswordExpires = expires
		},
		setHash: func(h string) { admin.Password = h },
		save: func(ctx context.Context) error {
			admin.UpdatedAt = time.Now()
			return uc.admins.Update(ctx, admin)
		},
	}
}

func (uc *PasswordResetUseCase) userAccount(user *entity.User) *resetAccount {
	return &resetAccount{
		id:       user.ID,
		email:    user.Email,
		userType: entity.UserTypeUser,
		setToken: func(hash string, expires time.Time) {
			user.ResetPasswordToken = hash
			user.ResetPasswordExpires = expires
		},
		setHash: func(h string) { user.Password = h },
		save: func(ctx context.Context) error {
			user.UpdatedAt = time.Now()
			return uc.users.Update(ctx, user)
		},
	}
}

func (uc *PasswordResetUseCase) clubAccount(club *entity.Club) *resetAccount {
	return &resetAccount{
		id:       club.ID,
		email:    club.Email,
		userType: entity.UserTypeClub,
		setToken: func(hash string, expires time.Time) {
			club.ResetPasswordToken = hash
			club.ResetPasswordExpires = expires
		},
		setHash: func(h string) { club.Password = h },
		save: func(ctx context.Context) error {
			club.UpdatedAt = time.Now()
			return uc.clubs.Update(ctx, club)
		},
	}
}

func (uc *PasswordResetUseCase) sendResetMail(ctx context.Context, to, resetURL string) {
	if uc.mailer == nil {
		return
	}
	body := fmt.Sprintf(`<p>Bonjour,</p>
<p>Vous avez demandé la réinitialisation de votre mot de passe.</p>
<p><a href="%s">Cliquez ici pour choisir un nouveau mot de passe</a></p>
<p>Ce lien expire dans une heure. Si vous n'êtes pas à l'origine de cette demande, ignorez cet email.</p>`, resetURL)
	if err := uc.mailer.SendHTML(ctx, to, "Réinitialisation de votre mot de passe - Esprit Student", body); err != nil {
		uc.log.Error(ctx, "mail send failed", err, map[string]interface{}{"to": to})
	}
}

// newResetToken returns the raw token sent to the account holder and the
// SHA-256 hex digest persisted in its place.
func newResetToken() (token, tokenHash string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	token = hex.EncodeToString(buf)
	return token, hashResetToken(token), nil
}

func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func wrapResetLookup(err error) error {
	if errors.Is(err, outbound.ErrNotFound) {
		return apperror.Validation("Le lien de réinitialisation est invalide ou a expiré")
	}
	return apperror.Internal("account lookup failed", err)
}
