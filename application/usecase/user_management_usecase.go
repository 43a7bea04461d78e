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

type UserManagementUseCase struct {
	users           outbound.UserRepository
	admins          outbound.AdminRepository
	clubs           outbound.ClubRepository
	passwordService outbound.PasswordService
	mailer          outbound.Mailer
	recorder        *audit.Recorder
	log             logger.Logger
}

func NewUserManagementUseCase(
	users outbound.UserRepository,
	admins outbound.AdminRepository,
	clubs outbound.ClubRepository,
	passwordService outbound.PasswordService,
	mailer outbound.Mailer,
	recorder *audit.Recorder,
	log logger.Logger,
) inbound.UserManagementUseCase {
	return &UserManagementUseCase{
		users:           users,
		admins:          admins,
		clubs:           clubs,
		passwordService: passwordService,
		mailer:          mailer,
		recorder:        recorder,
		log:             log,
	}
}

func (uc *UserManagementUseCase) List(ctx context.Context, query inbound.UserQuery) (*inbound.UserPage, error) {
	page, limit := query.Normalize(10, 100)
	users, total, err := uc.users.FindAll(ctx, query.Filters, inbound.Offset(page, limit), limit)
	if err != nil {
		return nil, apperror.Internal("user query failed", err)
	}
	return &inbound.UserPage{
		Users:      users,
		Pagination: inbound.NewPageMeta(page, limit, len(users), total),
	}, nil
}

func (uc *UserManagementUseCase) Get(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, outbound.ErrNotFound) {
			return nil, apperror.NotFound("Utilisateur non trouvé")
		}
		return nil, apperror.Internal("user lookup failed", err)
	}
	return user, nil
}

func (uc *UserManagementUseCase) Create(ctx context.Context, actor *entity.Principal, req inbound.CreateUserRequest) (*entity.User, error) {
	if req.Email == "" || req.Nom == "" || req.Prenom == "" {
		return nil, apperror.Validation("Email, nom et prénom sont requis")
	}
	if req.Role != "" && !entity.IsValidUserRole(req.Role) {
		return nil, apperror.Validation("Rôle invalide")
	}

	if err := uc.ensureEmailFree(ctx, req.Email); err != nil {
		return nil, err
	}

	if req.ClubAssigne != "" {
		if _, err := uc.clubs.FindByID(ctx, req.ClubAssigne); err != nil {
			if errors.Is(err, outbound.ErrNotFound) {
				return nil, apperror.Validation("Club assigné introuvable")
			}
			return nil, apperror.Internal("club lookup failed", err)
		}
	}

	password, err := uc.passwordService.GeneratePassword()
	if err != nil {
		return nil, apperror.Internal("password generation failed", err)
	}
	hash, err := uc.passwordService.HashPassword(password)
	if err != nil {
		return nil, apperror.Internal("password hashing failed", err)
	}

	user := entity.NewUser(req.Email, hash, req.Nom, req.Prenom, req.Role)
	user.Telephone = req.Telephone
	user.ClubAssigne = req.ClubAssigne
	if req.Permissions != nil {
		user.Permissions = req.Permissions
	}

	if err := uc.users.Create(ctx, user); err != nil {
		if errors.Is(err, outbound.ErrDuplicate) {
			return nil, apperror.Conflict("Un utilisateur avec cet email existe déjà")
		}
		return nil, apperror.Internal("user creation failed", err)
	}

	uc.sendMail(ctx, user.Email, "Création de votre compte - Esprit Student",
		fmt.Sprintf("Bonjour %s,\n\nVotre compte a été créé.\n\nVos identifiants :\nEmail: %s\nMot de passe: %s\n\nVeuillez changer votre mot de passe après votre première connexion.", user.NomComplet(), user.Email, password))

	uc.recorder.RecordAction(ctx, actor.ID, actor.UserType, entity.ActionCreateUser,
		fmt.Sprintf("Création de l'utilisateur: %s", user.NomComplet()), entity.RefUser, user.ID,
		map[string]interface{}{"userEmail": user.Email, "role": user.Role})

	return user, nil
}

func (uc *UserManagementUseCase) Update(ctx context.Context, actor *entity.Principal, id string, req inbound.UpdateUserRequest) (*entity.User, error) {
	user, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Nom != nil {
		user.Nom = *req.Nom
	}
	if req.Prenom != nil {
		user.Prenom = *req.Prenom
	}
	if req.Telephone != nil {
		user.Telephone = *req.Telephone
	}
	if req.Role != nil {
		if !entity.IsValidUserRole(*req.Role) {
			return nil, apperror.Validation("Rôle invalide")
		}
		user.Role = *req.Role
	}
	if req.Statut != nil {
		if !entity.IsValidStatus(*req.Statut) {
			return nil, apperror.Validation("Statut invalide")
		}
		user.Statut = *req.Statut
	}
	if req.Permissions != nil {
		user.Permissions = req.Permissions
	}
	if req.ClubAssigne != nil {
		if *req.ClubAssigne != "" {
			if _, err := uc.clubs.FindByID(ctx, *req.ClubAssigne); err != nil {
				if errors.Is(err, outbound.ErrNotFound) {
					return nil, apperror.Validation("Club assigné introuvable")
				}
				return nil, apperror.Internal("club lookup failed", err)
			}
		}
		user.ClubAssigne = *req.ClubAssigne
	}
	user.UpdatedAt = time.Now()

	if err := uc.users.Update(ctx, user); err != nil {
		return nil, apperror.Internal("user update failed", err)
	}

	uc.recorder.RecordAction(ctx, actor.ID, actor.UserType, entity.ActionUpdateUser,
		fmt.Sprintf("Mise à jour de l'utilisateur: %s", user.NomComplet()), entity.RefUser, user.ID, nil)

	return user, nil
}

func (uc *UserManagementUseCase) Delete(ctx context.Context, actor *entity.Principal, id string) error {
	if actor.ID == id {
		return apperror.Validation("Vous ne pouvez pas supprimer votre propre compte")
	}

	user, err := uc.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.users.Delete(ctx, id); err != nil && !errors.Is(err, outbound.ErrNotFound) {
		return apperror.Internal("user deletion failed", err)
	}

	uc.recorder.RecordAction(ctx, actor.ID, actor.UserType, entity.ActionDeleteUser,
		fmt.Sprintf("Suppression de l'utilisateur: %s", user.NomComplet()), entity.RefUser, user.ID,
		map[string]interface{}{"userEmail": user.Email})
	return nil
}

func (uc *UserManagementUseCase) ResetPassword(ctx context.Context, actor *entity.Principal, id string) error {
	user, err := uc.Get(ctx, id)
	if err != nil {
		return err
	}

	password, err := uc.passwordService.GeneratePassword()
	if err != nil {
		return apperror.Internal("password generation failed", err)
	}
	hash, err := uc.passwordService.HashPassword(password)
	if err != nil {
		return apperror.Internal("password hashing failed", err)
	}

	user.Password = hash
	user.UpdatedAt = time.Now()
	if err := uc.users.Update(ctx, user); err != nil {
		return apperror.Internal("user update failed", err)
	}

	uc.sendMail(ctx, user.Email, "Réinitialisation de votre mot de passe",
		fmt.Sprintf("Bonjour %s,\n\nVotre mot de passe a été réinitialisé par un administrateur.\n\nNouveau mot de passe: %s\n\nVeuillez le changer après votre prochaine connexion.", user.NomComplet(), password))

	uc.recorder.RecordAction(ctx, actor.ID, actor.UserType, entity.ActionPasswordChange,
		fmt.Sprintf("Réinitialisation du mot de passe de: %s", user.NomComplet()), entity.RefUser, user.ID, nil)
	return nil
}

func (uc *UserManagementUseCase) Stats(ctx context.Context) (*inbound.UserStatsReport, error) {
	total, err := uc.users.Count(ctx, outbound.UserFilters{})
	if err != nil {
		return nil, apperror.Internal("user stats failed", err)
	}
	active, err := uc.users.Count(ctx, outbound.UserFilters{Statut: entity.StatusActif})
	if err != nil {
		return nil, apperror.Internal("user stats failed", err)
	}
	inactive, err := uc.users.Count(ctx, outbound.UserFilters{Statut: entity.StatusInactif})
	if err != nil {
		return nil, apperror.Internal("user stats failed", err)
	}

	byRole := make(map[string]int)
	for _, role := range entity.UserRoles {
		n, err := uc.users.Count(ctx, outbound.UserFilters{Role: role})
		if err != nil {
			return nil, apperror.Internal("user stats failed", err)
		}
		byRole[role] = n
	}

	return &inbound.UserStatsReport{
		Total:    total,
		Active:   active,
		Inactive: inactive,
		ByRole:   byRole,
	}, nil
}

func (uc *UserManagementUseCase) ensureEmailFree(ctx context.Context, email string) error {
	exists, err := uc.users.ExistsByEmail(ctx, email)
	if err != nil {
		return apperror.Internal("user lookup failed", err)
	}
	if !exists {
		exists, err = uc.clubs.ExistsByEmail(ctx, email)
		if err != nil {
			return apperror.Internal("club lookup failed", err)
		}
	}
	if !exists {
		if _, err := uc.admins.FindByEmail(ctx, email); err == nil {
			exists = true
		} else if !errors.Is(err, outbound.ErrNotFound) {
			return apperror.Internal("admin lookup failed", err)
		}
	}
	if exists {
		return apperror.Conflict("Un utilisateur avec cet email existe déjà")
	}
	return nil
}

func (uc *UserManagementUseCase) sendMail(ctx context.Context, to, subject, text string) {
	if uc.mailer == nil {
		return
	}
	if err := uc.mailer.Send(ctx, to, subject, text); err != nil {
		uc.log.Error(ctx, "mail send failed", err, map[string]interface{}{
			"to":      to,
			"subject": subject,
		})
	}
}
