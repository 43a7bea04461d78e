package usecase

import (
	"context"
	"testing"

	"github.com/clubhub/clubhub/application/audit"
	"github.com/clubhub/clubhub/application/port/inbound"
	"github.com/clubhub/clubhub/domain/apperror"
	"github.com/clubhub/clubhub/domain/entity"
	"github.com/clubhub/clubhub/infrastructure/service/logger"
)

type userFixture struct {
	users  *fakeUserRepository
	admins *fakeAdminRepository
	clubs  *fakeClubRepository
	logs   *fakeLogRepository
	mailer *fakeMailer
	uc     inbound.UserManagementUseCase
}

func newUserFixture() *userFixture {
	f := &userFixture{
		users:  newFakeUserRepository(),
		admins: newFakeAdminRepository(),
		clubs:  newFakeClubRepository(),
		logs:   &fakeLogRepository{},
		mailer: &fakeMailer{},
	}
	log := logger.Noop{}
	f.uc = NewUserManagementUseCase(
		f.users, f.admins, f.clubs,
		fakePasswordService{}, f.mailer,
		audit.NewRecorder(f.logs, log), log,
	)
	return f
}

func TestUserCreate(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()

	user, err := f.uc.Create(ctx, adminPrincipal(), inbound.CreateUserRequest{
		Email: "sana@esprit.tn", Nom: "Trabelsi", Prenom: "Sana",
		Role:        entity.RoleModerateur,
		Permissions: []string{entity.PermValidateEvent},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.Statut != entity.StatusActif {
		t.Errorf("new user should be actif, got %s", user.Statut)
	}
	if user.Password == "" || user.Password == "Temp1234Pass" {
		t.Error("stored password must be the hash, not the clear text")
	}
	if len(f.mailer.sent) != 1 || f.mailer.sent[0].To != "sana@esprit.tn" {
		t.Errorf("credentials mail expected, got %+v", f.mailer.sent)
	}
	if len(f.logs.byAction(entity.ActionCreateUser)) != 1 {
		t.Error("creation should be recorded")
	}
}

func TestUserCreateDuplicateAcrossCollections(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()

	club := entity.NewClub("shared@esprit.tn", "hashed:pw", "Club Photo", "culturel")
	f.clubs.clubs[club.ID] = club

	_, err := f.uc.Create(ctx, adminPrincipal(), inbound.CreateUserRequest{
		Email: "shared@esprit.tn", Nom: "X", Prenom: "Y", Role: entity.RoleModerateur,
	})
	if !apperror.IsKind(err, apperror.KindConflict) {
		t.Fatalf("club-held email should conflict, got %v", err)
	}
	if len(f.users.users) != 0 {
		t.Error("conflict must not store a user")
	}
	if len(f.mailer.sent) != 0 {
		t.Error("conflict must not send mail")
	}
}

func TestUserCreateInvalidRole(t *testing.T) {
	f := newUserFixture()
	_, err := f.uc.Create(context.Background(), adminPrincipal(), inbound.CreateUserRequest{
		Email: "x@esprit.tn", Nom: "X", Prenom: "Y", Role: "superviseur",
	})
	if !apperror.IsKind(err, apperror.KindValidation) {
		t.Errorf("unknown role should be refused, got %v", err)
	}
}

func TestUserCreateUnknownClubAssignment(t *testing.T) {
	f := newUserFixture()
	_, err := f.uc.Create(context.Background(), adminPrincipal(), inbound.CreateUserRequest{
		Email: "x@esprit.tn", Nom: "X", Prenom: "Y",
		Role: entity.RoleClubManager, ClubAssigne: "no-such-club",
	})
	if !apperror.IsKind(err, apperror.KindValidation) {
		t.Errorf("unknown club assignment should be refused, got %v", err)
	}
}

func TestUserUpdate(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()

	user := entity.NewUser("sana@esprit.tn", "hashed:pw", "Trabelsi", "Sana", entity.RoleModerateur)
	f.users.users[user.ID] = user

	statut := entity.StatusSuspendu
	updated, err := f.uc.Update(ctx, adminPrincipal(), user.ID, inbound.UpdateUserRequest{Statut: &statut})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Statut != entity.StatusSuspendu {
		t.Errorf("status not applied: %s", updated.Statut)
	}

	bad := "fantome"
	if _, err := f.uc.Update(ctx, adminPrincipal(), user.ID, inbound.UpdateUserRequest{Statut: &bad}); !apperror.IsKind(err, apperror.KindValidation) {
		t.Errorf("unknown status should be refused, got %v", err)
	}
}

func TestUserDeleteSelfGuard(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()

	actor := adminPrincipal()
	self := entity.NewUser("admin@esprit.tn", "hashed:pw", "A", "B", entity.RoleAdmin)
	self.ID = actor.ID
	f.users.users[self.ID] = self

	err := f.uc.Delete(ctx, actor, actor.ID)
	if !apperror.IsKind(err, apperror.KindValidation) {
		t.Errorf("self-deletion should be refused, got %v", err)
	}
	if _, ok := f.users.users[self.ID]; !ok {
		t.Error("account must still exist")
	}
}

func TestUserResetPasswordMailsNewOne(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()

	user := entity.NewUser("sana@esprit.tn", "hashed:old", "Trabelsi", "Sana", entity.RoleModerateur)
	f.users.users[user.ID] = user

	if err := f.uc.ResetPassword(ctx, adminPrincipal(), user.ID); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if user.Password == "hashed:old" {
		t.Error("password hash should change")
	}
	if len(f.mailer.sent) != 1 {
		t.Errorf("new password should be mailed, got %d mails", len(f.mailer.sent))
	}
	if len(f.logs.byAction(entity.ActionPasswordChange)) != 1 {
		t.Error("reset should be recorded")
	}
}

func TestUserStats(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()

	a := entity.NewUser("a@esprit.tn", "hashed:pw", "A", "A", entity.RoleModerateur)
	b := entity.NewUser("b@esprit.tn", "hashed:pw", "B", "B", entity.RoleClubManager)
	b.Statut = entity.StatusInactif
	f.users.users[a.ID] = a
	f.users.users[b.ID] = b

	stats, err := f.uc.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 2 || stats.Active != 1 || stats.Inactive != 1 {
		t.Errorf("unexpected counts: %+v", stats)
	}
	if stats.ByRole[entity.RoleModerateur] != 1 || stats.ByRole[entity.RoleClubManager] != 1 {
		t.Errorf("unexpected role counts: %+v", stats.ByRole)
	}
}
