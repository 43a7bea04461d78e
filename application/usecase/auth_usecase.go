package usecase

import (
	"context"
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

const minPasswordLength = 6

type AuthUseCase struct {
	admins          outbound.AdminRepository
	users           outbound.UserRepository
	clubs           outbound.ClubRepository
	tokenService    outbound.TokenService
	passwordService outbound.PasswordService
	rateLimit       inbound.RateLimitService
	recorder        *audit.Recorder
	log             logger.Logger
}

func NewAuthUseCase(
	admins outbound.AdminRepository,
	users outbound.UserRepository,
	clubs outbound.ClubRepository,
	tokenService outbound.TokenService,
	passwordService outbound.PasswordService,
	rateLimit inbound.RateLimitService,
	recorder *audit.Recorder,
	log logger.Logger,
) inbound.AuthUseCase {
	return &AuthUseCase{
		admins:          admins,
		users:           users,
		clubs:           clubs,
		tokenService:    tokenService,
		passwordService: passwordService,
		rateLimit:       rateLimit,
		recorder:        recorder,
		log:             log,
	}
}

// Login probes the three principal collections in the fixed Admin → User →
// Club order; the first email match wins and duplicate emails in later
// collections are never consulted.
func (uc *AuthUseCase) Login(ctx context.Context, req inbound.LoginRequest) (*inbound.LoginResult, error) {
	if req.Email == "" || req.Password == "" {
		return nil, apperror.Validation("Email et mot de passe requis")
	}

	if err := uc.checkRateLimit(ctx, req.Email); err != nil {
		return nil, err
	}

	principal, err := uc.resolve(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	// Non-admin variants are gated on account status before the password is
	// even checked.
	if principal.UserType != entity.UserTypeAdmin && principal.Statut() != entity.StatusActif {
		return nil, apperror.Forbidden("Compte désactivé ou suspendu")
	}

	if err := uc.passwordService.ComparePassword(uc.passwordHash(principal), req.Password); err != nil {
		return nil, apperror.Unauthorized("Mot de passe incorrect")
	}

	uc.touchLastLogin(ctx, principal)

	token, err := uc.tokenService.Issue(outbound.TokenClaims{
		ID:       principal.ID,
		Role:     principal.Role,
		UserType: principal.UserType,
		Email:    principal.Email,
	})
	if err != nil {
		return nil, apperror.Internal("token issuance failed", err)
	}

	uc.recorder.RecordAuth(ctx, principal.ID, principal.UserType, entity.ActionLogin, "Connexion réussie", map[string]interface{}{
		"email":     principal.Email,
		"timestamp": time.Now(),
	})

	return &inbound.LoginResult{Token: token, User: authUser(principal)}, nil
}

// resolve is the identity resolver: Admin first, then User, then Club. An
// admin-role account in the users collection still resolves with userType
// admin so it passes the admin gates downstream.
func (uc *AuthUseCase) resolve(ctx context.Context, email string) (*entity.Principal, error) {
	admin, err := uc.admins.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, outbound.ErrNotFound) {
		return nil, apperror.Internal("admin lookup failed", err)
	}
	if admin != nil {
		return &entity.Principal{
			ID: admin.ID, Email: admin.Email,
			Role: entity.RoleAdmin, UserType: entity.UserTypeAdmin,
			Admin: admin,
		}, nil
	}

	user, err := uc.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, outbound.ErrNotFound) {
		return nil, apperror.Internal("user lookup failed", err)
	}
	if user != nil {
		userType := entity.UserTypeUser
		if user.Role == entity.RoleAdmin {
			userType = entity.UserTypeAdmin
		}
		return &entity.Principal{
			ID: user.ID, Email: user.Email,
			Role: user.Role, UserType: userType,
			User: user,
		}, nil
	}

	club, err := uc.clubs.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, outbound.ErrNotFound) {
		return nil, apperror.Internal("club lookup failed", err)
	}
	if club != nil {
		return &entity.Principal{
			ID: club.ID, Email: club.Email,
			Role: entity.RoleClub, UserType: entity.UserTypeClub,
			Club: club,
		}, nil
	}

	return nil, apperror.NotFound("Utilisateur non trouvé")
}

// ResolveByID re-resolves a token's identity. Admin tokens probe the admins
// collection first and fall back to admin-role accounts in the users
// collection; tokens minted for either source stay valid.
func (uc *AuthUseCase) ResolveByID(ctx context.Context, id string, userType entity.UserType) (*entity.Principal, error) {
	switch userType {
	case entity.UserTypeAdmin:
		admin, err := uc.admins.FindByID(ctx, id)
		if err != nil && !errors.Is(err, outbound.ErrNotFound) {
			return nil, apperror.Internal("admin lookup failed", err)
		}
		if admin != nil {
			return &entity.Principal{
				ID: admin.ID, Email: admin.Email,
				Role: entity.RoleAdmin, UserType: entity.UserTypeAdmin,
				Admin: admin,
			}, nil
		}
		user, err := uc.users.FindByID(ctx, id)
		if err != nil && !errors.Is(err, outbound.ErrNotFound) {
			return nil, apperror.Internal("user lookup failed", err)
		}
		if user != nil && user.Role == entity.RoleAdmin {
			return &entity.Principal{
				ID: user.ID, Email: user.Email,
				Role: user.Role, UserType: entity.UserTypeAdmin,
				User: user,
			}, nil
		}
		return nil, apperror.NotFound("Utilisateur non trouvé")

	case entity.UserTypeUser:
		user, err := uc.users.FindByID(ctx, id)
		if err != nil && !errors.Is(err, outbound.ErrNotFound) {
			return nil, apperror.Internal("user lookup failed", err)
		}
		if user == nil {
			return nil, apperror.NotFound("Utilisateur non trouvé")
		}
		return &entity.Principal{
			ID: user.ID, Email: user.Email,
			Role: user.Role, UserType: entity.UserTypeUser,
			User: user,
		}, nil

	case entity.UserTypeClub:
		club, err := uc.clubs.FindByID(ctx, id)
		if err != nil && !errors.Is(err, outbound.ErrNotFound) {
			return nil, apperror.Internal("club lookup failed", err)
		}
		if club == nil {
			return nil, apperror.NotFound("Utilisateur non trouvé")
		}
		return &entity.Principal{
			ID: club.ID, Email: club.Email,
			Role: entity.RoleClub, UserType: entity.UserTypeClub,
			Club: club,
		}, nil
	}
	return nil, apperror.Unauthorized("Type d'utilisateur invalide")
}

// Logout does not invalidate anything server-side: the token stays valid
// until its natural expiry. Only the intent is recorded.
func (uc *AuthUseCase) Logout(ctx context.Context, principal *entity.Principal) error {
	if principal != nil {
		uc.recorder.RecordAuth(ctx, principal.ID, principal.UserType, entity.ActionLogout, "Déconnexion", nil)
	}
	return nil
}

func (uc *AuthUseCase) ChangePassword(ctx context.Context, principal *entity.Principal, req inbound.ChangePasswordRequest) error {
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return apperror.Validation("Mot de passe actuel et nouveau mot de passe requis")
	}
	if len(req.NewPassword) < minPasswordLength {
		return apperror.Validation(fmt.Sprintf("Le nouveau mot de passe doit contenir au moins %d caractères", minPasswordLength))
	}

	if err := uc.passwordService.ComparePassword(uc.passwordHash(principal), req.CurrentPassword); err != nil {
		return apperror.Validation("Mot de passe actuel incorrect")
	}

	hash, err := uc.passwordService.HashPassword(req.NewPassword)
	if err != nil {
		return apperror.Internal("password hashing failed", err)
	}

	if err := uc.storePasswordHash(ctx, principal, hash); err != nil {
		return apperror.Internal("password update failed", err)
	}

	uc.recorder.RecordAuth(ctx, principal.ID, principal.UserType, entity.ActionPasswordChange, "Changement de mot de passe", nil)
	return nil
}

func (uc *AuthUseCase) checkRateLimit(ctx context.Context, email string) error {
	if uc.rateLimit == nil {
		return nil
	}
	key := fmt.Sprintf("login:%s", email)
	blocked, err := uc.rateLimit.IsBlocked(ctx, key)
	if err != nil {
		uc.log.Error(ctx, "rate limit check failed", err, map[string]interface{}{"key": key})
		return nil
	}
	if blocked {
		return apperror.Forbidden("Trop de tentatives de connexion, réessayez plus tard")
	}
	allowed, err := uc.rateLimit.CheckLimit(ctx, key, 5, 15*time.Minute)
	if err != nil {
		uc.log.Error(ctx, "rate limit check failed", err, map[string]interface{}{"key": key})
		return nil
	}
	if !allowed {
		if err := uc.rateLimit.Block(ctx, key, 30*time.Minute, "login rate limit exceeded"); err != nil {
			uc.log.Error(ctx, "rate limit block failed", err, map[string]interface{}{"key": key})
		}
		return apperror.Forbidden("Trop de tentatives de connexion, réessayez plus tard")
	}
	return nil
}

func (uc *AuthUseCase) passwordHash(p *entity.Principal) string {
	switch {
	case p.Admin != nil:
		return p.Admin.Password
	case p.User != nil:
		return p.User.Password
	case p.Club != nil:
		return p.Club.Password
	}
	return ""
}

func (uc *AuthUseCase) storePasswordHash(ctx context.Context, p *entity.Principal, hash string) error {
	switch {
	case p.Admin != nil:
		p.Admin.Password = hash
		p.Admin.UpdatedAt = time.Now()
		return uc.admins.Update(ctx, p.Admin)
	case p.User != nil:
		p.User.Password = hash
		p.User.UpdatedAt = time.Now()
		return uc.users.Update(ctx, p.User)
	case p.Club != nil:
		p.Club.Password = hash
		p.Club.UpdatedAt = time.Now()
		return uc.clubs.Update(ctx, p.Club)
	}
	return apperror.NotFound("Utilisateur non trouvé")
}

// touchLastLogin updates derniereConnexion for the non-admin variants. A
// failed write only logs; the login itself proceeds.
func (uc *AuthUseCase) touchLastLogin(ctx context.Context, p *entity.Principal) {
	now := time.Now()
	var err error
	switch {
	case p.User != nil:
		p.User.DerniereConnexion = now
		err = uc.users.Update(ctx, p.User)
	case p.Club != nil:
		p.Club.Stats.DerniereActivite = now
		err = uc.clubs.Update(ctx, p.Club)
	default:
		return
	}
	if err != nil {
		uc.log.Warn(ctx, "last-login update failed", map[string]interface{}{
			"id":    p.ID,
			"error": err.Error(),
		})
	}
}

func authUser(p *entity.Principal) inbound.AuthUser {
	u := inbound.AuthUser{
		ID:       p.ID,
		Email:    p.Email,
		Role:     p.Role,
		UserType: p.UserType,
	}
	switch {
	case p.Admin != nil:
		u.Nom, u.Prenom = p.Admin.Nom, p.Admin.Prenom
	case p.User != nil:
		u.Nom, u.Prenom = p.User.Nom, p.User.Prenom
	case p.Club != nil:
		u.Nom = p.Club.Nom
		premiere, profil, statut := p.Club.PremiereConnexion, p.Club.ProfileComplet, p.Club.Statut
		u.PremiereConnexion = &premiere
		u.ProfileComplet = &profil
		u.Statut = &statut
	}
	return u
}
