package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/clubhub/clubhub/application/audit"
	"github.com/clubhub/clubhub/application/port/inbound"
	"github.com/clubhub/clubhub/domain/apperror"
	"github.com/clubhub/clubhub/domain/entity"
	"github.com/clubhub/clubhub/infrastructure/service/logger"
)

type clubFixture struct {
	clubs  *fakeClubRepository
	users  *fakeUserRepository
	admins *fakeAdminRepository
	events *fakeEventRepository
	logs   *fakeLogRepository
	mailer *fakeMailer
	uc     inbound.ClubUseCase
}

func newClubFixture() *clubFixture {
	f := &clubFixture{
		clubs:  newFakeClubRepository(),
		users:  newFakeUserRepository(),
		admins: newFakeAdminRepository(),
		events: newFakeEventRepository(),
		logs:   &fakeLogRepository{},
		mailer: &fakeMailer{},
	}
	log := logger.Noop{}
	f.uc = NewClubUseCase(
		f.clubs, f.users, f.admins, f.events,
		fakePasswordService{}, f.mailer,
		audit.NewRecorder(f.logs, log), log,
	)
	return f
}

func adminPrincipal() *entity.Principal {
	return &entity.Principal{
		ID: "admin-1", Email: "admin@esprit.tn",
		Role: entity.RoleAdmin, UserType: entity.UserTypeAdmin,
		Admin: &entity.Admin{ID: "admin-1", Email: "admin@esprit.tn", Role: entity.RoleAdmin},
	}
}

func TestClubCreate(t *testing.T) {
	ctx := context.Background()
	f := newClubFixture()

	created, err := f.uc.Create(ctx, adminPrincipal(), inbound.CreateClubRequest{
		Nom: "Club Robotique", Email: "robotique@esprit.tn", Categorie: "technologique",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Club.Statut != entity.StatusEnAttente {
		t.Errorf("new club should start en_attente, got %s", created.Club.Statut)
	}
	if !created.Club.PremiereConnexion {
		t.Error("new club should be flagged premiereConnexion")
	}
	if created.TemporaryPassword == "" {
		t.Error("expected a temporary password")
	}
	if len(f.mailer.sent) != 1 || f.mailer.sent[0].To != "robotique@esprit.tn" {
		t.Errorf("expected one credentials mail to the club, got %+v", f.mailer.sent)
	}
	if len(f.logs.byAction(entity.ActionCreateClub)) != 1 {
		t.Error("creation should be recorded")
	}
}

func TestClubCreateDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	f := newClubFixture()

	existing := entity.NewClub("taken@esprit.tn", "hashed:pw", "Club Photo", "culturel")
	f.clubs.clubs[existing.ID] = existing

	_, err := f.uc.Create(ctx, adminPrincipal(), inbound.CreateClubRequest{
		Nom: "Club Photo Bis", Email: "taken@esprit.tn", Categorie: "culturel",
	})
	if !apperror.IsKind(err, apperror.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	// The conflict must leave no trace: no new document, no mail, no audit
	// entry.
	if len(f.clubs.clubs) != 1 {
		t.Errorf("expected 1 club, got %d", len(f.clubs.clubs))
	}
	if len(f.mailer.sent) != 0 {
		t.Errorf("no mail should be sent on conflict, got %d", len(f.mailer.sent))
	}
	if len(f.logs.entries) != 0 {
		t.Errorf("no audit entry should be written on conflict, got %d", len(f.logs.entries))
	}
}

func TestClubCreateEmailTakenByOtherCollection(t *testing.T) {
	ctx := context.Background()
	f := newClubFixture()

	user := entity.NewUser("sana@esprit.tn", "hashed:pw", "Trabelsi", "Sana", entity.RoleModerateur)
	f.users.users[user.ID] = user

	_, err := f.uc.Create(ctx, adminPrincipal(), inbound.CreateClubRequest{
		Nom: "Club X", Email: "sana@esprit.tn", Categorie: "social",
	})
	if !apperror.IsKind(err, apperror.KindConflict) {
		t.Errorf("user-held email should conflict, got %v", err)
	}

	admin := entity.NewAdmin("boss@esprit.tn", "hashed:pw", "", "")
	f.admins.admins[admin.ID] = admin
	_, err = f.uc.Create(ctx, adminPrincipal(), inbound.CreateClubRequest{
		Nom: "Club Y", Email: "boss@esprit.tn", Categorie: "social",
	})
	if !apperror.IsKind(err, apperror.KindConflict) {
		t.Errorf("admin-held email should conflict, got %v", err)
	}
}

func TestClubCreateInvalidCategory(t *testing.T) {
	f := newClubFixture()
	_, err := f.uc.Create(context.Background(), adminPrincipal(), inbound.CreateClubRequest{
		Nom: "Club Z", Email: "z@esprit.tn", Categorie: "astronomie",
	})
	if !apperror.IsKind(err, apperror.KindValidation) {
		t.Errorf("expected validation error for unknown category, got %v", err)
	}
}

func TestClubApproval(t *testing.T) {
	ctx := context.Background()
	f := newClubFixture()
	club := entity.NewClub("club@esprit.tn", "hashed:pw", "Club Jeux", "social")
	f.clubs.clubs[club.ID] = club

	updated, err := f.uc.UpdateStatus(ctx, adminPrincipal(), club.ID, entity.StatusActif, "")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if updated.Statut != entity.StatusActif || !updated.Valide || updated.ValideePar != "admin-1" {
		t.Errorf("approval should activate and stamp the validator: %+v", updated)
	}
	if len(f.mailer.sent) != 1 {
		t.Errorf("expected an activation mail, got %d", len(f.mailer.sent))
	}
	if len(f.logs.byAction(entity.ActionApproveClub)) != 1 {
		t.Error("approval should be recorded")
	}
}

func TestClubRejectionKeepsReason(t *testing.T) {
	ctx := context.Background()
	f := newClubFixture()
	club := entity.NewClub("club@esprit.tn", "hashed:pw", "Club Jeux", "social")
	f.clubs.clubs[club.ID] = club

	updated, err := f.uc.UpdateStatus(ctx, adminPrincipal(), club.ID, "rejete", "Dossier incomplet")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if updated.RaisonRejet != "Dossier incomplet" {
		t.Errorf("rejection reason not stored: %q", updated.RaisonRejet)
	}
	if len(f.logs.byAction(entity.ActionRejectClub)) != 1 {
		t.Error("rejection should be recorded")
	}
}

func TestClubDeleteCascade(t *testing.T) {
	ctx := context.Background()
	f := newClubFixture()

	club := entity.NewClub("club@esprit.tn", "hashed:pw", "Club Jeux", "social")
	f.clubs.clubs[club.ID] = club

	manager := entity.NewUser("mgr@esprit.tn", "hashed:pw", "M", "G", entity.RoleClubManager)
	manager.ClubAssigne = club.ID
	f.users.users[manager.ID] = manager

	other := entity.NewUser("other@esprit.tn", "hashed:pw", "O", "T", entity.RoleClubManager)
	other.ClubAssigne = "some-other-club"
	f.users.users[other.ID] = other

	ev1 := entity.NewEvent(club.ID, "Tournoi", "desc", time.Now(), time.Now(), "Campus", "competition")
	ev2 := entity.NewEvent(club.ID, "Atelier", "desc", time.Now(), time.Now(), "Campus", "atelier")
	evOther := entity.NewEvent("some-other-club", "Conf", "desc", time.Now(), time.Now(), "Campus", "conference")
	f.events.events[ev1.ID] = ev1
	f.events.events[ev2.ID] = ev2
	f.events.events[evOther.ID] = evOther

	if err := f.uc.Delete(ctx, adminPrincipal(), club.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, ok := f.clubs.clubs[club.ID]; ok {
		t.Error("club document should be gone")
	}
	if len(f.events.events) != 1 {
		t.Errorf("only the other club's event should survive, got %d", len(f.events.events))
	}
	if f.users.users[manager.ID].ClubAssigne != "" {
		t.Error("manager assignment should be cleared")
	}
	if f.users.users[other.ID].ClubAssigne != "some-other-club" {
		t.Error("unrelated assignment must not be touched")
	}

	// Deleting again reports not-found; the cascade steps stay idempotent.
	err := f.uc.Delete(ctx, adminPrincipal(), club.ID)
	if !apperror.IsKind(err, apperror.KindNotFound) {
		t.Errorf("second delete should be not-found, got %v", err)
	}
}

func TestClubUpdateProfileOwnership(t *testing.T) {
	ctx := context.Background()
	f := newClubFixture()
	club := entity.NewClub("club@esprit.tn", "hashed:pw", "Club Jeux", "social")
	f.clubs.clubs[club.ID] = club

	outsider := &entity.Principal{
		ID: "u-1", Role: entity.RoleClubManager, UserType: entity.UserTypeUser,
		User: &entity.User{ID: "u-1", Role: entity.RoleClubManager, ClubAssigne: "another-club"},
	}
	desc := "nouvelle description"
	_, err := f.uc.UpdateProfile(ctx, outsider, club.ID, inbound.UpdateClubProfileRequest{Description: &desc})
	if !apperror.IsKind(err, apperror.KindForbidden) {
		t.Fatalf("non-assigned user must be rejected, got %v", err)
	}

	assigned := &entity.Principal{
		ID: "u-2", Role: entity.RoleClubManager, UserType: entity.UserTypeUser,
		User: &entity.User{ID: "u-2", Role: entity.RoleClubManager, ClubAssigne: club.ID},
	}
	updated, err := f.uc.UpdateProfile(ctx, assigned, club.ID, inbound.UpdateClubProfileRequest{Description: &desc})
	if err != nil {
		t.Fatalf("assigned user update: %v", err)
	}
	if updated.Description != desc {
		t.Errorf("description not applied: %q", updated.Description)
	}
}

func TestClubProfileCompletenessDerivation(t *testing.T) {
	ctx := context.Background()
	f := newClubFixture()
	club := entity.NewClub("club@esprit.tn", "hashed:pw", "Club Jeux", "social")
	f.clubs.clubs[club.ID] = club
	self := &entity.Principal{ID: club.ID, Role: entity.RoleClub, UserType: entity.UserTypeClub, Club: club}

	partial := inbound.UpdateClubProfileRequest{
		President: &entity.ClubPresident{Nom: "Ben Ali", Email: "pres@esprit.tn"},
	}
	updated, err := f.uc.UpdateProfile(ctx, self, club.ID, partial)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ProfileComplet {
		t.Error("profile missing contact and presentation must not be complete")
	}

	full := inbound.UpdateClubProfileRequest{
		Contact: &entity.ClubContact{Telephone: "+216 20 000 000"},
		DetailsComplets: &entity.ClubDetails{
			Presentation: "Un club de jeux de société.",
			Objectifs:    []string{"Organiser des soirées jeux"},
		},
	}
	updated, err = f.uc.UpdateProfile(ctx, self, club.ID, full)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.ProfileComplet {
		t.Error("all required fields set, profile should be complete")
	}
}

func TestClubFirstLoginFlow(t *testing.T) {
	ctx := context.Background()
	f := newClubFixture()
	club := entity.NewClub("club@esprit.tn", "hashed:pw", "Club Jeux", "social")
	f.clubs.clubs[club.ID] = club
	self := &entity.Principal{ID: club.ID, Role: entity.RoleClub, UserType: entity.UserTypeClub, Club: club}

	first, err := f.uc.CheckFirstLogin(ctx, self)
	if err != nil || !first {
		t.Fatalf("fresh club should report first login, got %v %v", first, err)
	}

	// Completion with an incomplete profile is refused.
	_, err = f.uc.CompleteFirstLogin(ctx, self, inbound.UpdateClubProfileRequest{})
	if !apperror.IsKind(err, apperror.KindValidation) {
		t.Fatalf("incomplete profile should be refused, got %v", err)
	}

	updated, err := f.uc.CompleteFirstLogin(ctx, self, inbound.UpdateClubProfileRequest{
		President: &entity.ClubPresident{Nom: "Ben Ali", Email: "pres@esprit.tn"},
		Contact:   &entity.ClubContact{Telephone: "+216 20 000 000"},
		DetailsComplets: &entity.ClubDetails{
			Presentation: "Présentation du club.",
			Objectifs:    []string{"Objectif 1"},
		},
	})
	if err != nil {
		t.Fatalf("complete first login: %v", err)
	}
	if updated.PremiereConnexion {
		t.Error("premiereConnexion should be cleared")
	}
	if !updated.ProfileComplet {
		t.Error("profile should be complete after the flow")
	}

	first, err = f.uc.CheckFirstLogin(ctx, self)
	if err != nil || first {
		t.Errorf("first login should now be done, got %v %v", first, err)
	}
}

func TestClubStatusMailFailureDoesNotRevert(t *testing.T) {
	ctx := context.Background()
	f := newClubFixture()
	f.mailer.failWith = errors.New("smtp down")

	club := entity.NewClub("club@esprit.tn", "hashed:pw", "Club Jeux", "social")
	f.clubs.clubs[club.ID] = club

	updated, err := f.uc.UpdateStatus(ctx, adminPrincipal(), club.ID, entity.StatusActif, "")
	if err != nil {
		t.Fatalf("status change must survive a mail failure: %v", err)
	}
	if updated.Statut != entity.StatusActif {
		t.Errorf("status should stay actif, got %s", updated.Statut)
	}
}

func TestClubStats(t *testing.T) {
	ctx := context.Background()
	f := newClubFixture()

	active := entity.NewClub("a@esprit.tn", "hashed:pw", "A", "sportif")
	active.Statut = entity.StatusActif
	active.ProfileComplet = true
	pending := entity.NewClub("b@esprit.tn", "hashed:pw", "B", "sportif")
	inactive := entity.NewClub("c@esprit.tn", "hashed:pw", "C", "culturel")
	inactive.Statut = entity.StatusInactif
	for _, c := range []*entity.Club{active, pending, inactive} {
		f.clubs.clubs[c.ID] = c
	}

	stats, err := f.uc.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 3 || stats.Active != 1 || stats.Pending != 1 || stats.Inactive != 1 {
		t.Errorf("unexpected counts: %+v", stats)
	}
	if stats.CompletedProfiles != 1 {
		t.Errorf("expected 1 completed profile, got %d", stats.CompletedProfiles)
	}
	if stats.ByCategory["sportif"] != 2 || stats.ByCategory["culturel"] != 1 {
		t.Errorf("unexpected category counts: %+v", stats.ByCategory)
	}
}
