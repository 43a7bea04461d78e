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

type EventUseCase struct {
	events   outbound.EventRepository
	clubs    outbound.ClubRepository
	mailer   outbound.Mailer
	recorder *audit.Recorder
	log      logger.Logger
}

func NewEventUseCase(
	events outbound.EventRepository,
	clubs outbound.ClubRepository,
	mailer outbound.Mailer,
	recorder *audit.Recorder,
	log logger.Logger,
) inbound.EventUseCase {
	return &EventUseCase{
		events:   events,
		clubs:    clubs,
		mailer:   mailer,
		recorder: recorder,
		log:      log,
	}
}

func (uc *EventUseCase) List(ctx context.Context, query inbound.EventQuery) (*inbound.EventPage, error) {
	return uc.page(ctx, query.Filters, query.PageQuery)
}

// PublicList only returns validated visible events.
func (uc *EventUseCase) PublicList(ctx context.Context, query inbound.EventQuery) (*inbound.EventPage, error) {
	filters := query.Filters
	filters.Statut = entity.EventValide
	filters.OnlyVisible = true
	return uc.page(ctx, filters, query.PageQuery)
}

func (uc *EventUseCase) Get(ctx context.Context, id string) (*entity.Event, error) {
	event, err := uc.events.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, outbound.ErrNotFound) {
			return nil, apperror.NotFound("Événement non trouvé")
		}
		return nil, apperror.Internal("event lookup failed", err)
	}
	return event, nil
}

func (uc *EventUseCase) Create(ctx context.Context, actor *entity.Principal, req inbound.CreateEventRequest) (*entity.Event, error) {
	if req.Titre == "" || req.Description == "" || req.Lieu == "" {
		return nil, apperror.Validation("Titre, description et lieu sont requis")
	}
	if req.DateDebut.IsZero() || req.DateFin.IsZero() {
		return nil, apperror.Validation("Les dates de début et de fin sont requises")
	}
	if req.DateFin.Before(req.DateDebut) {
		return nil, apperror.Validation("La date de fin doit être postérieure à la date de début")
	}
	if !entity.IsValidEventType(req.TypeEvent) {
		return nil, apperror.Validation("Type d'événement invalide")
	}

	clubID := actor.AssignedClubID()
	if actor.IsAdmin() && req.ClubID != "" {
		clubID = req.ClubID
	}
	if clubID == "" {
		return nil, apperror.Forbidden("Aucun club associé à ce compte")
	}

	club, err := uc.clubs.FindByID(ctx, clubID)
	if err != nil {
		if errors.Is(err, outbound.ErrNotFound) {
			return nil, apperror.NotFound("Club non trouvé")
		}
		return nil, apperror.Internal("club lookup failed", err)
	}
	if club.Statut != entity.StatusActif {
		return nil, apperror.Forbidden("Seuls les clubs actifs peuvent créer des événements")
	}

	event := entity.NewEvent(clubID, req.Titre, req.Description, req.DateDebut, req.DateFin, req.Lieu, req.TypeEvent)
	event.HeureDebut = req.HeureDebut
	event.HeureFin = req.HeureFin
	event.Adresse = req.Adresse
	event.CapaciteMax = req.CapaciteMax
	event.Contact = req.Contact
	event.Tags = req.Tags
	if req.Public != "" {
		event.Public = req.Public
	}
	if req.Gratuit != nil {
		event.Gratuit = *req.Gratuit
	}
	if !event.Gratuit {
		event.Prix = req.Prix
	}

	if err := uc.events.Create(ctx, event); err != nil {
		return nil, apperror.Internal("event creation failed", err)
	}

	// Total event counter moves at creation; the validated one only moves on
	// approval.
	if err := uc.clubs.IncrementEventCounters(ctx, clubID, 1, 0); err != nil {
		uc.log.Error(ctx, "club event counter update failed", err, map[string]interface{}{
			"clubId":  clubID,
			"eventId": event.ID,
		})
	}

	uc.recorder.RecordAction(ctx, actor.ID, actor.UserType, entity.ActionCreateEvent,
		fmt.Sprintf("Création de l'événement: %s", event.Titre), entity.RefEvent, event.ID,
		map[string]interface{}{"eventTitle": event.Titre, "clubId": clubID})

	return event, nil
}

func (uc *EventUseCase) Update(ctx context.Context, actor *entity.Principal, id string, req inbound.UpdateEventRequest) (*entity.Event, error) {
	event, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() {
		if actor.AssignedClubID() != event.ClubID {
			return nil, apperror.Forbidden("Vous ne pouvez modifier que les événements de votre club")
		}
		if !event.CanBeModified() {
			return nil, apperror.Validation("Seuls les événements en attente ou rejetés peuvent être modifiés")
		}
	}

	applyEventUpdate(event, req)
	// A rejected event goes back in the validation queue once edited.
	if event.Statut == entity.EventRejete && !actor.IsAdmin() {
		event.Statut = entity.EventEnAttente
		event.RaisonRejet = ""
	}
	event.UpdatedAt = time.Now()

	if err := uc.events.Update(ctx, event); err != nil {
		return nil, apperror.Internal("event update failed", err)
	}

	uc.recorder.RecordAction(ctx, actor.ID, actor.UserType, entity.ActionUpdateEvent,
		fmt.Sprintf("Mise à jour de l'événement: %s", event.Titre), entity.RefEvent, event.ID, nil)

	return event, nil
}

func (uc *EventUseCase) Delete(ctx context.Context, actor *entity.Principal, id string) error {
	event, err := uc.Get(ctx, id)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() && actor.AssignedClubID() != event.ClubID {
		return apperror.Forbidden("Vous ne pouvez supprimer que les événements de votre club")
	}

	if err := uc.events.Delete(ctx, id); err != nil && !errors.Is(err, outbound.ErrNotFound) {
		return apperror.Internal("event deletion failed", err)
	}

	if err := uc.clubs.IncrementEventCounters(ctx, event.ClubID, -1, 0); err != nil {
		uc.log.Error(ctx, "club event counter update failed", err, map[string]interface{}{
			"clubId":  event.ClubID,
			"eventId": event.ID,
		})
	}

	uc.recorder.RecordAction(ctx, actor.ID, actor.UserType, entity.ActionDeleteEvent,
		fmt.Sprintf("Suppression de l'événement: %s", event.Titre), entity.RefEvent, event.ID,
		map[string]interface{}{"eventTitle": event.Titre})
	return nil
}

func (uc *EventUseCase) Validate(ctx context.Context, actor *entity.Principal, id, statut, raisonRejet string) (*entity.Event, error) {
	switch statut {
	case entity.EventValide, entity.EventRejete, entity.EventAnnule:
	default:
		return nil, apperror.Validation("Statut invalide")
	}

	event, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// The counter moves exactly once per approval: re-validating an already
	// valide event must not bump it again.
	wasValidated := event.Statut == entity.EventValide

	event.Statut = statut
	switch statut {
	case entity.EventValide:
		event.ValideBy = actor.ID
		event.DateValidation = time.Now()
		event.RaisonRejet = ""
	case entity.EventRejete:
		event.RaisonRejet = raisonRejet
	}
	event.UpdatedAt = time.Now()

	if err := uc.events.Update(ctx, event); err != nil {
		return nil, apperror.Internal("event update failed", err)
	}

	if statut == entity.EventValide && !wasValidated {
		if err := uc.clubs.IncrementEventCounters(ctx, event.ClubID, 0, 1); err != nil {
			uc.log.Error(ctx, "club validated counter update failed", err, map[string]interface{}{
				"clubId":  event.ClubID,
				"eventId": event.ID,
			})
		}
	}

	uc.notifyValidation(ctx, event, statut, raisonRejet)

	action := entity.ActionRejectEvent
	description := fmt.Sprintf("Rejet de l'événement: %s", event.Titre)
	if statut == entity.EventValide {
		action = entity.ActionApproveEvent
		description = fmt.Sprintf("Validation de l'événement: %s", event.Titre)
	}
	uc.recorder.RecordAction(ctx, actor.ID, actor.UserType, action, description,
		entity.RefEvent, event.ID,
		map[string]interface{}{"eventTitle": event.Titre, "newStatus": statut, "reason": raisonRejet})

	return event, nil
}

func (uc *EventUseCase) MyEvents(ctx context.Context, actor *entity.Principal, query inbound.EventQuery) (*inbound.EventPage, error) {
	clubID := actor.AssignedClubID()
	if clubID == "" {
		return nil, apperror.Forbidden("Aucun club associé à ce compte")
	}
	return uc.ByClub(ctx, clubID, query)
}

func (uc *EventUseCase) ByClub(ctx context.Context, clubID string, query inbound.EventQuery) (*inbound.EventPage, error) {
	filters := query.Filters
	filters.ClubID = clubID
	return uc.page(ctx, filters, query.PageQuery)
}

func (uc *EventUseCase) Stats(ctx context.Context) (*inbound.EventStatsReport, error) {
	total, err := uc.events.Count(ctx, outbound.EventFilters{})
	if err != nil {
		return nil, apperror.Internal("event stats failed", err)
	}
	pending, err := uc.events.Count(ctx, outbound.EventFilters{Statut: entity.EventEnAttente})
	if err != nil {
		return nil, apperror.Internal("event stats failed", err)
	}
	validated, err := uc.events.Count(ctx, outbound.EventFilters{Statut: entity.EventValide})
	if err != nil {
		return nil, apperror.Internal("event stats failed", err)
	}
	rejected, err := uc.events.Count(ctx, outbound.EventFilters{Statut: entity.EventRejete})
	if err != nil {
		return nil, apperror.Internal("event stats failed", err)
	}
	byType, err := uc.events.CountByType(ctx, "")
	if err != nil {
		return nil, apperror.Internal("event stats failed", err)
	}
	return &inbound.EventStatsReport{
		Total:     total,
		Pending:   pending,
		Validated: validated,
		Rejected:  rejected,
		ByType:    byType,
	}, nil
}

func (uc *EventUseCase) page(ctx context.Context, filters outbound.EventFilters, pq inbound.PageQuery) (*inbound.EventPage, error) {
	page, limit := pq.Normalize(10, 100)
	events, total, err := uc.events.FindAll(ctx, filters, inbound.Offset(page, limit), limit)
	if err != nil {
		return nil, apperror.Internal("event query failed", err)
	}
	return &inbound.EventPage{
		Events:     events,
		Pagination: inbound.NewPageMeta(page, limit, len(events), total),
	}, nil
}

func (uc *EventUseCase) notifyValidation(ctx context.Context, event *entity.Event, statut, raison string) {
	if uc.mailer == nil {
		return
	}
	club, err := uc.clubs.FindByID(ctx, event.ClubID)
	if err != nil {
		uc.log.Warn(ctx, "club lookup for event notification failed", map[string]interface{}{
			"clubId": event.ClubID,
			"error":  err.Error(),
		})
		return
	}

	var subject, message string
	switch statut {
	case entity.EventValide:
		subject = "Votre événement a été validé"
		message = fmt.Sprintf("Bonne nouvelle ! Votre événement \"%s\" a été validé et est maintenant visible.", event.Titre)
	case entity.EventRejete:
		if raison == "" {
			raison = "Non spécifiée"
		}
		subject = "Votre événement a été rejeté"
		message = fmt.Sprintf("Votre événement \"%s\" a été rejeté. Raison: %s", event.Titre, raison)
	default:
		return
	}

	if err := uc.mailer.Send(ctx, club.Email, subject, message); err != nil {
		uc.log.Error(ctx, "mail send failed", err, map[string]interface{}{
			"to":      club.Email,
			"subject": subject,
		})
	}
}

func applyEventUpdate(event *entity.Event, req inbound.UpdateEventRequest) {
	if req.Titre != nil {
		event.Titre = *req.Titre
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.DateDebut != nil {
		event.DateDebut = *req.DateDebut
	}
	if req.DateFin != nil {
		event.DateFin = *req.DateFin
	}
	if req.Lieu != nil {
		event.Lieu = *req.Lieu
	}
	if req.Adresse != nil {
		event.Adresse = *req.Adresse
	}
	if req.CapaciteMax != nil {
		event.CapaciteMax = *req.CapaciteMax
	}
	if req.TypeEvent != nil && entity.IsValidEventType(*req.TypeEvent) {
		event.TypeEvent = *req.TypeEvent
	}
	if req.Public != nil {
		event.Public = *req.Public
	}
	if req.Gratuit != nil {
		event.Gratuit = *req.Gratuit
	}
	if req.Prix != nil {
		event.Prix = *req.Prix
	}
	if req.Tags != nil {
		event.Tags = req.Tags
	}
	if req.Visible != nil {
		event.Visible = *req.Visible
	}
}
