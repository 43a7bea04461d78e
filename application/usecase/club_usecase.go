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

type ClubUseCase struct {
	clubs           outbound.ClubRepository
	users           outbound.UserRepository
	admins          outbound.AdminRepository
	events          outbound.EventRepository
	passwordService outbound.PasswordService
	mailer          outbound.Mailer
	recorder        *audit.Recorder
	log             logger.Logger
}

func NewClubUseCase(
	clubs outbound.ClubRepository,
	users outbound.UserRepository,
	admins outbound.AdminRepository,
	events outbound.EventRepository,
	passwordService outbound.PasswordService,
	mailer outbound.Mailer,
	recorder *audit.Recorder,
	log logger.Logger,
) inbound.ClubUseCase {
	return &ClubUseCase{
		clubs:           clubs,
		users:           users,
		admins:          admins,
		events:          events,
		passwordService: passwordService,
		mailer:          mailer,
		recorder:        recorder,
		log:             log,
	}
}

func (uc *ClubUseCase) List(ctx context.Context, query inbound.ClubQuery) (*inbound.ClubPage, error) {
	page, limit := query.Normalize(10, 100)
	clubs, total, err := uc.clubs.FindAll(ctx, query.Filters, inbound.Offset(page, limit), limit)
	if err != nil {
		return nil, apperror.Internal("club query failed", err)
	}
	return &inbound.ClubPage{
		Clubs:      clubs,
		Pagination: inbound.NewPageMeta(page, limit, len(clubs), total),
	}, nil
}

func (uc *ClubUseCase) Get(ctx context.Context, id string) (*entity.Club, error) {
	club, err := uc.clubs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, outbound.ErrNotFound) {
			return nil, apperror.NotFound("Club non trouvé")
		}
		return nil, apperror.Internal("club lookup failed", err)
	}
	return club, nil
}

// PublicList only exposes validated active clubs, projected to display-safe
// fields.
func (uc *ClubUseCase) PublicList(ctx context.Context, query inbound.ClubQuery) (*inbound.PublicClubPage, error) {
	page, limit := query.Normalize(12, 100)
	filters := query.Filters
	filters.Statut = entity.StatusActif
	filters.OnlyValidated = true

	clubs, total, err := uc.clubs.FindAll(ctx, filters, inbound.Offset(page, limit), limit)
	if err != nil {
		return nil, apperror.Internal("club query failed", err)
	}

	public := make([]inbound.PublicClub, 0, len(clubs))
	for _, c := range clubs {
		public = append(public, publicClub(c))
	}
	return &inbound.PublicClubPage{
		Clubs:      public,
		Pagination: inbound.NewPageMeta(page, limit, len(public), total),
	}, nil
}

func (uc *ClubUseCase) PublicGet(ctx context.Context, id string) (*inbound.PublicClub, error) {
	club, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if club.Statut != entity.StatusActif || !club.Valide {
		return nil, apperror.NotFound("Club non trouvé")
	}
	p := publicClub(club)
	return &p, nil
}

func (uc *ClubUseCase) Create(ctx context.Context, actor *entity.Principal, req inbound.CreateClubRequest) (*inbound.CreatedClub, error) {
	if req.Nom == "" || req.Email == "" || req.Categorie == "" {
		return nil, apperror.Validation("Nom, email et catégorie sont requis")
	}
	if !entity.IsValidClubCategory(req.Categorie) {
		return nil, apperror.Validation("Catégorie invalide")
	}

	// The duplicate check happens before anything is generated or sent: a
	// conflicting email must leave no document and trigger no mail.
	exists, err := uc.clubs.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperror.Internal("club lookup failed", err)
	}
	if exists {
		return nil, apperror.Conflict("Un club avec cet email existe déjà")
	}
	// The email must also be free across the other principal collections:
	// login resolution is keyed by email and probes them in a fixed order.
	taken, err := uc.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperror.Internal("user lookup failed", err)
	}
	if !taken {
		if _, err := uc.admins.FindByEmail(ctx, req.Email); err == nil {
			taken = true
		} else if !errors.Is(err, outbound.ErrNotFound) {
			return nil, apperror.Internal("admin lookup failed", err)
		}
	}
	if taken {
		return nil, apperror.Conflict("Cet email est déjà utilisé par un autre compte")
	}

	password, err := uc.passwordService.GeneratePassword()
	if err != nil {
		return nil, apperror.Internal("password generation failed", err)
	}
	hash, err := uc.passwordService.HashPassword(password)
	if err != nil {
		return nil, apperror.Internal("password hashing failed", err)
	}

	club := entity.NewClub(req.Email, hash, req.Nom, req.Categorie)
	club.Description = req.Description

	if err := uc.clubs.Create(ctx, club); err != nil {
		if errors.Is(err, outbound.ErrDuplicate) {
			return nil, apperror.Conflict("Un club avec cet email existe déjà")
		}
		return nil, apperror.Internal("club creation failed", err)
	}

	uc.sendMail(ctx, club.Email, "Création de votre compte club - Esprit Student",
		fmt.Sprintf("Bonjour,\n\nVotre compte club \"%s\" a été créé.\n\nVos identifiants :\nEmail: %s\nMot de passe: %s\n\nVeuillez vous connecter et compléter votre profil.", club.Nom, club.Email, password))

	if actor != nil {
		uc.recorder.RecordAction(ctx, actor.ID, actor.UserType, entity.ActionCreateClub,
			fmt.Sprintf("Création du club: %s", club.Nom), entity.RefClub, club.ID,
			map[string]interface{}{"clubName": club.Nom})
	}

	return &inbound.CreatedClub{Club: club, TemporaryPassword: password}, nil
}

func (uc *ClubUseCase) UpdateStatus(ctx context.Context, actor *entity.Principal, id, statut, raisonRejet string) (*entity.Club, error) {
	switch statut {
	case entity.StatusActif, entity.StatusInactif, entity.StatusSuspendu, "rejete":
	default:
		return nil, apperror.Validation("Statut invalide")
	}

	club, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	club.Statut = statut
	if statut == "rejete" && raisonRejet != "" {
		club.RaisonRejet = raisonRejet
	}
	if statut == entity.StatusActif && actor != nil {
		club.ValidateByAdmin(actor.ID)
	}
	club.UpdatedAt = time.Now()

	if err := uc.clubs.Update(ctx, club); err != nil {
		return nil, apperror.Internal("club update failed", err)
	}

	uc.notifyStatusChange(ctx, club, statut, raisonRejet)

	if actor != nil {
		action := entity.ActionRejectClub
		description := fmt.Sprintf("Rejet du club: %s", club.Nom)
		if statut == entity.StatusActif {
			action = entity.ActionApproveClub
			description = fmt.Sprintf("Approbation du club: %s", club.Nom)
		}
		uc.recorder.RecordAction(ctx, actor.ID, actor.UserType, action, description,
			entity.RefClub, club.ID,
			map[string]interface{}{"clubName": club.Nom, "newStatus": statut, "reason": raisonRejet})
	}

	return club, nil
}

// Delete cascades over three collections as sequential idempotent writes:
// events first, then user assignments, then the club document. A crash in the
// middle is recovered by retrying the whole operation.
func (uc *ClubUseCase) Delete(ctx context.Context, actor *entity.Principal, id string) error {
	club, err := uc.Get(ctx, id)
	if err != nil {
		return err
	}

	if _, err := uc.events.DeleteByClub(ctx, id); err != nil {
		return apperror.Internal("event cascade failed", err)
	}
	if _, err := uc.users.UnassignClub(ctx, id); err != nil {
		return apperror.Internal("user unassignment failed", err)
	}
	if err := uc.clubs.Delete(ctx, id); err != nil && !errors.Is(err, outbound.ErrNotFound) {
		return apperror.Internal("club deletion failed", err)
	}

	if actor != nil {
		uc.recorder.RecordAction(ctx, actor.ID, actor.UserType, entity.ActionDeleteClub,
			fmt.Sprintf("Suppression du club: %s", club.Nom), entity.RefClub, club.ID,
			map[string]interface{}{"clubName": club.Nom})
	}
	return nil
}

func (uc *ClubUseCase) MyProfile(ctx context.Context, actor *entity.Principal) (*entity.Club, error) {
	clubID := actor.AssignedClubID()
	if clubID == "" {
		return nil, apperror.Forbidden("Aucun club associé à ce compte")
	}
	return uc.Get(ctx, clubID)
}

func (uc *ClubUseCase) UpdateProfile(ctx context.Context, actor *entity.Principal, id string, req inbound.UpdateClubProfileRequest) (*entity.Club, error) {
	// Ownership: clubs edit themselves, users their assigned club, admins
	// anything. The middleware enforces the same rule; the check here keeps
	// the invariant when the use case is driven from elsewhere.
	if !actor.IsAdmin() && actor.AssignedClubID() != id {
		return nil, apperror.Forbidden("Vous ne pouvez modifier que votre propre club")
	}

	club, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	applyProfileUpdate(club, req)
	club.RefreshProfileComplet()
	club.Stats.DerniereActivite = time.Now()
	club.UpdatedAt = time.Now()

	if err := uc.clubs.Update(ctx, club); err != nil {
		return nil, apperror.Internal("club update failed", err)
	}

	uc.recorder.RecordAction(ctx, actor.ID, actor.UserType, entity.ActionUpdateProfile,
		"Mise à jour du profil", entity.RefClub, club.ID, nil)

	return club, nil
}

func (uc *ClubUseCase) Stats(ctx context.Context) (*inbound.ClubStatsReport, error) {
	total, err := uc.clubs.Count(ctx, outbound.ClubFilters{})
	if err != nil {
		return nil, apperror.Internal("club stats failed", err)
	}
	active, err := uc.clubs.Count(ctx, outbound.ClubFilters{Statut: entity.StatusActif})
	if err != nil {
		return nil, apperror.Internal("club stats failed", err)
	}
	pending, err := uc.clubs.Count(ctx, outbound.ClubFilters{Statut: entity.StatusEnAttente})
	if err != nil {
		return nil, apperror.Internal("club stats failed", err)
	}
	inactive, err := uc.clubs.Count(ctx, outbound.ClubFilters{Statut: entity.StatusInactif})
	if err != nil {
		return nil, apperror.Internal("club stats failed", err)
	}
	complete := true
	completed, err := uc.clubs.Count(ctx, outbound.ClubFilters{ProfileComplet: &complete})
	if err != nil {
		return nil, apperror.Internal("club stats failed", err)
	}
	byCategory, err := uc.clubs.CountByCategorie(ctx)
	if err != nil {
		return nil, apperror.Internal("club stats failed", err)
	}

	return &inbound.ClubStatsReport{
		Total:             total,
		Active:            active,
		Pending:           pending,
		Inactive:          inactive,
		CompletedProfiles: completed,
		ByCategory:        byCategory,
	}, nil
}

func (uc *ClubUseCase) CheckFirstLogin(ctx context.Context, actor *entity.Principal) (bool, error) {
	if actor.UserType != entity.UserTypeClub {
		return false, nil
	}
	club, err := uc.Get(ctx, actor.ID)
	if err != nil {
		return false, err
	}
	return club.PremiereConnexion, nil
}

func (uc *ClubUseCase) CompleteFirstLogin(ctx context.Context, actor *entity.Principal, req inbound.UpdateClubProfileRequest) (*entity.Club, error) {
	if actor.UserType != entity.UserTypeClub {
		return nil, apperror.Forbidden("Réservé aux comptes club")
	}

	club, err := uc.Get(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	applyProfileUpdate(club, req)
	club.RefreshProfileComplet()
	if !club.ProfileComplet {
		return nil, apperror.Validation("Profil incomplet: président, téléphone, présentation et au moins un objectif sont requis")
	}
	club.PremiereConnexion = false
	club.Stats.DerniereActivite = time.Now()
	club.UpdatedAt = time.Now()

	if err := uc.clubs.Update(ctx, club); err != nil {
		return nil, apperror.Internal("club update failed", err)
	}

	uc.recorder.RecordAction(ctx, actor.ID, actor.UserType, entity.ActionCompleteFirstLogin,
		"Profil complété à la première connexion", entity.RefClub, club.ID, nil)

	return club, nil
}

func (uc *ClubUseCase) notifyStatusChange(ctx context.Context, club *entity.Club, statut, raison string) {
	var subject, message string
	switch statut {
	case entity.StatusActif:
		subject = "Votre club a été activé"
		message = fmt.Sprintf("Félicitations ! Votre club \"%s\" a été activé. Vous pouvez maintenant créer des événements.", club.Nom)
	case "rejete":
		if raison == "" {
			raison = "Non spécifiée"
		}
		subject = "Votre demande de club a été rejetée"
		message = fmt.Sprintf("Votre demande de club \"%s\" a été rejetée. Raison: %s", club.Nom, raison)
	case entity.StatusSuspendu:
		subject = "Votre club a été suspendu"
		message = fmt.Sprintf("Votre club \"%s\" a été temporairement suspendu.", club.Nom)
	default:
		return
	}
	uc.sendMail(ctx, club.Email, subject, message)
}

// sendMail is best-effort: the state change is already committed when a
// notification goes out.
func (uc *ClubUseCase) sendMail(ctx context.Context, to, subject, text string) {
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

func applyProfileUpdate(club *entity.Club, req inbound.UpdateClubProfileRequest) {
	if req.Description != nil {
		club.Description = *req.Description
	}
	if req.Membres != nil && *req.Membres >= 0 {
		club.Membres = *req.Membres
	}
	if req.President != nil {
		club.President = *req.President
	}
	if req.Contact != nil {
		club.Contact = *req.Contact
	}
	if req.DetailsComplets != nil {
		club.DetailsComplets = *req.DetailsComplets
	}
	if req.ReseauxSociaux != nil {
		club.ReseauxSociaux = *req.ReseauxSociaux
	}
	if req.SiteWeb != nil {
		club.SiteWeb = *req.SiteWeb
	}
}

func publicClub(c *entity.Club) inbound.PublicClub {
	return inbound.PublicClub{
		ID:              c.ID,
		Nom:             c.Nom,
		Categorie:       c.Categorie,
		Description:     c.Description,
		Membres:         c.Membres,
		DetailsComplets: c.DetailsComplets,
		ReseauxSociaux:  c.ReseauxSociaux,
		SiteWeb:         c.SiteWeb,
	}
}
