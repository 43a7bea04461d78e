package audit

import (
	"context"
	"errors"

	"github.com/clubhub/clubhub/application/port/outbound"
	"github.com/clubhub/clubhub/domain/entity"
	"github.com/clubhub/clubhub/infrastructure/service/logger"
)

// Display is the display-safe projection of a resolved reference. Only the
// fields relevant to the reference kind are set.
type Display struct {
	Nom    string `json:"nom,omitempty"`
	Prenom string `json:"prenom,omitempty"`
	Email  string `json:"email,omitempty"`
	Titre  string `json:"titre,omitempty"`
}

// Deterministic tombstones substituted when a reference no longer resolves.
func tombstoneFor(kind entity.RefKind) Display {
	switch kind {
	case entity.RefAdmin:
		return Display{Nom: "Admin", Prenom: "Supprimé", Email: "admin-supprime@esprit.tn"}
	case entity.RefClub:
		return Display{Nom: "Club", Prenom: "Supprimé", Email: "club-supprime@esprit.tn"}
	case entity.RefEvent:
		return Display{Titre: "Événement supprimé"}
	default:
		return Display{Nom: "Utilisateur", Prenom: "Supprimé", Email: "user-supprime@esprit.tn"}
	}
}

// Resolver re-binds log references against the live collections.
type Resolver struct {
	admins outbound.AdminRepository
	users  outbound.UserRepository
	clubs  outbound.ClubRepository
	events outbound.EventRepository
	log    logger.Logger
}

func NewResolver(admins outbound.AdminRepository, users outbound.UserRepository, clubs outbound.ClubRepository, events outbound.EventRepository, log logger.Logger) *Resolver {
	return &Resolver{admins: admins, users: users, clubs: clubs, events: events, log: log}
}

type cacheKey struct {
	kind entity.RefKind
	id   string
}

// Resolution is the request-scoped enrichment session. It caches both hits
// and misses so a page full of entries referencing the same (possibly
// deleted) principal costs one lookup. Never share a Resolution across
// requests: principal data can change between them.
type Resolution struct {
	r      *Resolver
	hits   map[cacheKey]Display
	misses map[cacheKey]struct{}
}

func (r *Resolver) NewResolution() *Resolution {
	return &Resolution{
		r:      r,
		hits:   map[cacheKey]Display{},
		misses: map[cacheKey]struct{}{},
	}
}

// ResolveActor resolves an entry's actor reference, falling back to the
// kind's tombstone on any failure. Legacy lower-cased tags resolve through
// the same branch as their canonical spelling.
func (res *Resolution) ResolveActor(ctx context.Context, kind entity.RefKind, id string) Display {
	kind = entity.NormalizeRefKind(string(kind))
	if id == "" {
		return tombstoneFor(kind)
	}
	key := cacheKey{kind: kind, id: id}
	if d, ok := res.hits[key]; ok {
		return d
	}
	if _, ok := res.misses[key]; ok {
		return tombstoneFor(kind)
	}

	d, found := res.lookupActor(ctx, kind, id)
	if !found {
		res.misses[key] = struct{}{}
		return tombstoneFor(kind)
	}
	res.hits[key] = d
	return d
}

func (res *Resolution) lookupActor(ctx context.Context, kind entity.RefKind, id string) (Display, bool) {
	switch kind {
	case entity.RefAdmin:
		admin, err := res.r.admins.FindByID(ctx, id)
		if err != nil || admin == nil {
			res.warnLookup(ctx, kind, id, err)
			return Display{}, false
		}
		d := Display{Nom: admin.Nom, Prenom: admin.Prenom, Email: admin.Email}
		if d.Nom == "" {
			d.Nom = "Admin"
		}
		if d.Prenom == "" {
			d.Prenom = "Système"
		}
		return d, true
	case entity.RefClub:
		club, err := res.r.clubs.FindByID(ctx, id)
		if err != nil || club == nil {
			res.warnLookup(ctx, kind, id, err)
			return Display{}, false
		}
		return Display{Nom: club.Nom, Prenom: "Club", Email: club.Email}, true
	case entity.RefUser:
		user, err := res.r.users.FindByID(ctx, id)
		if err != nil || user == nil {
			res.warnLookup(ctx, kind, id, err)
			return Display{}, false
		}
		return Display{Nom: user.Nom, Prenom: user.Prenom, Email: user.Email}, true
	}
	return Display{}, false
}

// ResolveTarget resolves an entry's subject reference. System targets and
// empty references resolve to nil; a vanished target yields its tombstone.
func (res *Resolution) ResolveTarget(ctx context.Context, kind entity.RefKind, id string) *Display {
	kind = entity.NormalizeRefKind(string(kind))
	if id == "" || kind == "" || kind == entity.RefSystem {
		return nil
	}
	key := cacheKey{kind: kind, id: id}
	if d, ok := res.hits[key]; ok {
		return &d
	}
	if _, ok := res.misses[key]; ok {
		d := tombstoneFor(kind)
		return &d
	}

	d, found := res.lookupTarget(ctx, kind, id)
	if !found {
		res.misses[key] = struct{}{}
		t := tombstoneFor(kind)
		return &t
	}
	res.hits[key] = d
	return &d
}

func (res *Resolution) lookupTarget(ctx context.Context, kind entity.RefKind, id string) (Display, bool) {
	if kind == entity.RefEvent {
		event, err := res.r.events.FindByID(ctx, id)
		if err != nil || event == nil {
			res.warnLookup(ctx, kind, id, err)
			return Display{}, false
		}
		return Display{Titre: event.Titre}, true
	}
	return res.lookupActor(ctx, kind, id)
}

func (res *Resolution) warnLookup(ctx context.Context, kind entity.RefKind, id string, err error) {
	if err == nil || errors.Is(err, outbound.ErrNotFound) {
		return
	}
	res.r.log.Warn(ctx, "audit: reference lookup failed", map[string]interface{}{
		"kind":  string(kind),
		"id":    id,
		"error": err.Error(),
	})
}
