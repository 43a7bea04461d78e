package audit

import (
	"context"
	"testing"
	"time"

	"github.com/clubhub/clubhub/application/port/outbound"
	"github.com/clubhub/clubhub/domain/entity"
	"github.com/clubhub/clubhub/infrastructure/service/logger"
)

// Counting fakes: the resolver only ever calls FindByID, and the tests assert
// how often. Everything else satisfies the repository interfaces.

type countingAdmins struct {
	admins map[string]*entity.Admin
	finds  int
}

func (c *countingAdmins) FindByID(ctx context.Context, id string) (*entity.Admin, error) {
	c.finds++
	if a, ok := c.admins[id]; ok {
		return a, nil
	}
	return nil, outbound.ErrNotFound
}
func (c *countingAdmins) FindByEmail(context.Context, string) (*entity.Admin, error) {
	return nil, outbound.ErrNotFound
}
func (c *countingAdmins) FindByResetToken(context.Context, string) (*entity.Admin, error) {
	return nil, outbound.ErrNotFound
}
func (c *countingAdmins) Create(context.Context, *entity.Admin) error { return nil }
func (c *countingAdmins) Update(context.Context, *entity.Admin) error { return nil }
func (c *countingAdmins) Exists(ctx context.Context, id string) (bool, error) {
	_, ok := c.admins[id]
	return ok, nil
}

type countingUsers struct {
	users map[string]*entity.User
	finds int
}

func (c *countingUsers) FindByID(ctx context.Context, id string) (*entity.User, error) {
	c.finds++
	if u, ok := c.users[id]; ok {
		return u, nil
	}
	return nil, outbound.ErrNotFound
}
func (c *countingUsers) FindByEmail(context.Context, string) (*entity.User, error) {
	return nil, outbound.ErrNotFound
}
func (c *countingUsers) FindByResetToken(context.Context, string) (*entity.User, error) {
	return nil, outbound.ErrNotFound
}
func (c *countingUsers) FindAll(context.Context, outbound.UserFilters, int, int) ([]*entity.User, int, error) {
	return nil, 0, nil
}
func (c *countingUsers) Create(context.Context, *entity.User) error { return nil }
func (c *countingUsers) Update(context.Context, *entity.User) error { return nil }
func (c *countingUsers) Delete(context.Context, string) error       { return nil }
func (c *countingUsers) Exists(ctx context.Context, id string) (bool, error) {
	_, ok := c.users[id]
	return ok, nil
}
func (c *countingUsers) ExistsByEmail(context.Context, string) (bool, error) { return false, nil }
func (c *countingUsers) Count(context.Context, outbound.UserFilters) (int, error) {
	return len(c.users), nil
}
func (c *countingUsers) UnassignClub(context.Context, string) (int64, error) { return 0, nil }

type countingClubs struct {
	clubs map[string]*entity.Club
	finds int
}

func (c *countingClubs) FindByID(ctx context.Context, id string) (*entity.Club, error) {
	c.finds++
	if cl, ok := c.clubs[id]; ok {
		return cl, nil
	}
	return nil, outbound.ErrNotFound
}
func (c *countingClubs) FindByEmail(context.Context, string) (*entity.Club, error) {
	return nil, outbound.ErrNotFound
}
func (c *countingClubs) FindByResetToken(context.Context, string) (*entity.Club, error) {
	return nil, outbound.ErrNotFound
}
func (c *countingClubs) FindAll(context.Context, outbound.ClubFilters, int, int) ([]*entity.Club, int, error) {
	return nil, 0, nil
}
func (c *countingClubs) FindRecent(context.Context, int) ([]*entity.Club, error) { return nil, nil }
func (c *countingClubs) Create(context.Context, *entity.Club) error              { return nil }
func (c *countingClubs) Update(context.Context, *entity.Club) error              { return nil }
func (c *countingClubs) Delete(context.Context, string) error                    { return nil }
func (c *countingClubs) Exists(ctx context.Context, id string) (bool, error) {
	_, ok := c.clubs[id]
	return ok, nil
}
func (c *countingClubs) ExistsByEmail(context.Context, string) (bool, error) { return false, nil }
func (c *countingClubs) Count(context.Context, outbound.ClubFilters) (int, error) {
	return len(c.clubs), nil
}
func (c *countingClubs) CountByCategorie(context.Context) (map[string]int, error) { return nil, nil }
func (c *countingClubs) IncrementEventCounters(context.Context, string, int, int) error {
	return nil
}

type countingEvents struct {
	events map[string]*entity.Event
	finds  int
}

func (c *countingEvents) FindByID(ctx context.Context, id string) (*entity.Event, error) {
	c.finds++
	if e, ok := c.events[id]; ok {
		return e, nil
	}
	return nil, outbound.ErrNotFound
}
func (c *countingEvents) FindAll(context.Context, outbound.EventFilters, int, int) ([]*entity.Event, int, error) {
	return nil, 0, nil
}
func (c *countingEvents) FindRecent(context.Context, string, int) ([]*entity.Event, error) {
	return nil, nil
}
func (c *countingEvents) Create(context.Context, *entity.Event) error { return nil }
func (c *countingEvents) Update(context.Context, *entity.Event) error { return nil }
func (c *countingEvents) Delete(context.Context, string) error        { return nil }
func (c *countingEvents) DeleteByClub(context.Context, string) (int64, error) {
	return 0, nil
}
func (c *countingEvents) Count(context.Context, outbound.EventFilters) (int, error) {
	return len(c.events), nil
}
func (c *countingEvents) CountByType(context.Context, string) (map[string]int, error) {
	return nil, nil
}
func (c *countingEvents) CreatedPerDay(context.Context, time.Time) (map[string]int, error) {
	return nil, nil
}

func newTestResolver() (*Resolver, *countingAdmins, *countingUsers, *countingClubs, *countingEvents) {
	admins := &countingAdmins{admins: map[string]*entity.Admin{}}
	users := &countingUsers{users: map[string]*entity.User{}}
	clubs := &countingClubs{clubs: map[string]*entity.Club{}}
	events := &countingEvents{events: map[string]*entity.Event{}}
	return NewResolver(admins, users, clubs, events, logger.Noop{}), admins, users, clubs, events
}

func TestResolutionCachesHits(t *testing.T) {
	ctx := context.Background()
	resolver, _, users, _, _ := newTestResolver()

	u := entity.NewUser("sana@esprit.tn", "pw", "Trabelsi", "Sana", entity.RoleModerateur)
	users.users[u.ID] = u

	res := resolver.NewResolution()
	for i := 0; i < 5; i++ {
		d := res.ResolveActor(ctx, entity.RefUser, u.ID)
		if d.Nom != "Trabelsi" {
			t.Fatalf("unexpected display: %+v", d)
		}
	}
	if users.finds != 1 {
		t.Errorf("5 resolutions of the same reference should cost 1 lookup, got %d", users.finds)
	}
}

func TestResolutionCachesMisses(t *testing.T) {
	ctx := context.Background()
	resolver, _, _, clubs, _ := newTestResolver()

	res := resolver.NewResolution()
	for i := 0; i < 5; i++ {
		d := res.ResolveActor(ctx, entity.RefClub, "deleted-club")
		if d.Nom != "Club" || d.Prenom != "Supprimé" {
			t.Fatalf("expected the club tombstone, got %+v", d)
		}
	}
	if clubs.finds != 1 {
		t.Errorf("repeated misses should cost 1 lookup, got %d", clubs.finds)
	}
}

func TestResolutionNotSharedAcrossSessions(t *testing.T) {
	ctx := context.Background()
	resolver, _, users, _, _ := newTestResolver()

	u := entity.NewUser("sana@esprit.tn", "pw", "Trabelsi", "Sana", entity.RoleModerateur)
	users.users[u.ID] = u

	resolver.NewResolution().ResolveActor(ctx, entity.RefUser, u.ID)
	resolver.NewResolution().ResolveActor(ctx, entity.RefUser, u.ID)
	if users.finds != 2 {
		t.Errorf("a fresh resolution must re-read, got %d lookups", users.finds)
	}
}

func TestResolveTarget(t *testing.T) {
	ctx := context.Background()
	resolver, _, _, _, events := newTestResolver()

	ev := entity.NewEvent("club-1", "Tournoi", "d", time.Now(), time.Now(), "Campus", "competition")
	events.events[ev.ID] = ev

	res := resolver.NewResolution()

	if d := res.ResolveTarget(ctx, entity.RefEvent, ev.ID); d == nil || d.Titre != "Tournoi" {
		t.Errorf("event target should resolve its title, got %+v", d)
	}
	if d := res.ResolveTarget(ctx, entity.RefEvent, "gone-event"); d == nil || d.Titre != "Événement supprimé" {
		t.Errorf("vanished event should tombstone, got %+v", d)
	}
	if d := res.ResolveTarget(ctx, entity.RefSystem, "whatever"); d != nil {
		t.Errorf("system targets resolve to nil, got %+v", d)
	}
	if d := res.ResolveTarget(ctx, entity.RefClub, ""); d != nil {
		t.Errorf("empty references resolve to nil, got %+v", d)
	}
}

func TestTombstonesAreDeterministic(t *testing.T) {
	ctx := context.Background()
	resolver, _, _, _, _ := newTestResolver()

	a := resolver.NewResolution().ResolveActor(ctx, entity.RefAdmin, "gone")
	b := resolver.NewResolution().ResolveActor(ctx, entity.RefAdmin, "gone")
	if a != b {
		t.Errorf("tombstones must be deterministic: %+v vs %+v", a, b)
	}
	if a.Email != "admin-supprime@esprit.tn" {
		t.Errorf("unexpected admin tombstone: %+v", a)
	}
}
