package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/clubhub/clubhub/application/port/outbound"
	"github.com/clubhub/clubhub/domain/entity"
)

// Map-backed fakes shared by the use case tests. They honor the repository
// contracts: missing documents return outbound.ErrNotFound, duplicate unique
// emails return outbound.ErrDuplicate.

type fakeAdminRepository struct {
	admins map[string]*entity.Admin
	failWith error
}

func newFakeAdminRepository() *fakeAdminRepository {
	return &fakeAdminRepository{admins: map[string]*entity.Admin{}}
}

func (f *fakeAdminRepository) FindByID(ctx context.Context, id string) (*entity.Admin, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	if a, ok := f.admins[id]; ok {
		return a, nil
	}
	return nil, outbound.ErrNotFound
}

func (f *fakeAdminRepository) FindByEmail(ctx context.Context, email string) (*entity.Admin, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, a := range f.admins {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, outbound.ErrNotFound
}

func (f *fakeAdminRepository) FindByResetToken(ctx context.Context, tokenHash string) (*entity.Admin, error) {
	for _, a := range f.admins {
		if a.ResetPasswordToken == tokenHash && a.ResetPasswordExpires.After(time.Now()) {
			return a, nil
		}
	}
	return nil, outbound.ErrNotFound
}

func (f *fakeAdminRepository) Create(ctx context.Context, admin *entity.Admin) error {
	for _, a := range f.admins {
		if a.Email == admin.Email {
			return outbound.ErrDuplicate
		}
	}
	f.admins[admin.ID] = admin
	return nil
}

func (f *fakeAdminRepository) Update(ctx context.Context, admin *entity.Admin) error {
	if _, ok := f.admins[admin.ID]; !ok {
		return outbound.ErrNotFound
	}
	f.admins[admin.ID] = admin
	return nil
}

func (f *fakeAdminRepository) Exists(ctx context.Context, id string) (bool, error) {
	_, ok := f.admins[id]
	return ok, nil
}

type fakeUserRepository struct {
	users map[string]*entity.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: map[string]*entity.User{}}
}

func (f *fakeUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, outbound.ErrNotFound
}

func (f *fakeUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, outbound.ErrNotFound
}

func (f *fakeUserRepository) FindByResetToken(ctx context.Context, tokenHash string) (*entity.User, error) {
	for _, u := range f.users {
		if u.ResetPasswordToken == tokenHash && u.ResetPasswordExpires.After(time.Now()) {
			return u, nil
		}
	}
	return nil, outbound.ErrNotFound
}

func (f *fakeUserRepository) FindAll(ctx context.Context, filters outbound.UserFilters, offset, limit int) ([]*entity.User, int, error) {
	var out []*entity.User
	for _, u := range f.users {
		if filters.Role != "" && u.Role != filters.Role {
			continue
		}
		if filters.Statut != "" && u.Statut != filters.Statut {
			continue
		}
		out = append(out, u)
	}
	return out, len(out), nil
}

func (f *fakeUserRepository) Create(ctx context.Context, user *entity.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return outbound.ErrDuplicate
		}
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepository) Update(ctx context.Context, user *entity.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return outbound.ErrNotFound
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepository) Delete(ctx context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return outbound.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepository) Exists(ctx context.Context, id string) (bool, error) {
	_, ok := f.users[id]
	return ok, nil
}

func (f *fakeUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepository) Count(ctx context.Context, filters outbound.UserFilters) (int, error) {
	_, n, err := f.FindAll(ctx, filters, 0, 0)
	return n, err
}

func (f *fakeUserRepository) UnassignClub(ctx context.Context, clubID string) (int64, error) {
	var n int64
	for _, u := range f.users {
		if u.ClubAssigne == clubID {
			u.ClubAssigne = ""
			n++
		}
	}
	return n, nil
}

type fakeClubRepository struct {
	clubs map[string]*entity.Club
	// incrementCalls records every IncrementEventCounters invocation as
	// "id:events:validated" so tests can assert counter movement.
	incrementCalls []string
}

func newFakeClubRepository() *fakeClubRepository {
	return &fakeClubRepository{clubs: map[string]*entity.Club{}}
}

func (f *fakeClubRepository) FindByID(ctx context.Context, id string) (*entity.Club, error) {
	if c, ok := f.clubs[id]; ok {
		return c, nil
	}
	return nil, outbound.ErrNotFound
}

func (f *fakeClubRepository) FindByEmail(ctx context.Context, email string) (*entity.Club, error) {
	for _, c := range f.clubs {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, outbound.ErrNotFound
}

func (f *fakeClubRepository) FindByResetToken(ctx context.Context, tokenHash string) (*entity.Club, error) {
	for _, c := range f.clubs {
		if c.ResetPasswordToken == tokenHash && c.ResetPasswordExpires.After(time.Now()) {
			return c, nil
		}
	}
	return nil, outbound.ErrNotFound
}

func (f *fakeClubRepository) matches(c *entity.Club, filters outbound.ClubFilters) bool {
	if filters.Statut != "" && c.Statut != filters.Statut {
		return false
	}
	if filters.Categorie != "" && c.Categorie != filters.Categorie {
		return false
	}
	if filters.OnlyValidated && !c.Valide {
		return false
	}
	if filters.ProfileComplet != nil && c.ProfileComplet != *filters.ProfileComplet {
		return false
	}
	if filters.Search != "" && !strings.Contains(strings.ToLower(c.Nom), strings.ToLower(filters.Search)) {
		return false
	}
	return true
}

func (f *fakeClubRepository) FindAll(ctx context.Context, filters outbound.ClubFilters, offset, limit int) ([]*entity.Club, int, error) {
	var out []*entity.Club
	for _, c := range f.clubs {
		if f.matches(c, filters) {
			out = append(out, c)
		}
	}
	return out, len(out), nil
}

func (f *fakeClubRepository) FindRecent(ctx context.Context, limit int) ([]*entity.Club, error) {
	out, _, _ := f.FindAll(ctx, outbound.ClubFilters{}, 0, limit)
	return out, nil
}

func (f *fakeClubRepository) Create(ctx context.Context, club *entity.Club) error {
	for _, c := range f.clubs {
		if c.Email == club.Email {
			return outbound.ErrDuplicate
		}
	}
	f.clubs[club.ID] = club
	return nil
}

func (f *fakeClubRepository) Update(ctx context.Context, club *entity.Club) error {
	if _, ok := f.clubs[club.ID]; !ok {
		return outbound.ErrNotFound
	}
	f.clubs[club.ID] = club
	return nil
}

func (f *fakeClubRepository) Delete(ctx context.Context, id string) error {
	if _, ok := f.clubs[id]; !ok {
		return outbound.ErrNotFound
	}
	delete(f.clubs, id)
	return nil
}

func (f *fakeClubRepository) Exists(ctx context.Context, id string) (bool, error) {
	_, ok := f.clubs[id]
	return ok, nil
}

func (f *fakeClubRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, c := range f.clubs {
		if c.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeClubRepository) Count(ctx context.Context, filters outbound.ClubFilters) (int, error) {
	_, n, err := f.FindAll(ctx, filters, 0, 0)
	return n, err
}

func (f *fakeClubRepository) CountByCategorie(ctx context.Context) (map[string]int, error) {
	out := map[string]int{}
	for _, c := range f.clubs {
		out[c.Categorie]++
	}
	return out, nil
}

func (f *fakeClubRepository) IncrementEventCounters(ctx context.Context, id string, events, validated int) error {
	c, ok := f.clubs[id]
	if !ok {
		return outbound.ErrNotFound
	}
	c.Stats.NombreEvents += events
	c.Stats.NombreEventsValides += validated
	f.incrementCalls = append(f.incrementCalls, fmt.Sprintf("%s:%d:%d", id, events, validated))
	return nil
}

type fakeEventRepository struct {
	events map[string]*entity.Event
}

func newFakeEventRepository() *fakeEventRepository {
	return &fakeEventRepository{events: map[string]*entity.Event{}}
}

func (f *fakeEventRepository) FindByID(ctx context.Context, id string) (*entity.Event, error) {
	if e, ok := f.events[id]; ok {
		return e, nil
	}
	return nil, outbound.ErrNotFound
}

func (f *fakeEventRepository) matches(e *entity.Event, filters outbound.EventFilters) bool {
	if filters.ClubID != "" && e.ClubID != filters.ClubID {
		return false
	}
	if filters.Statut != "" && e.Statut != filters.Statut {
		return false
	}
	if filters.TypeEvent != "" && e.TypeEvent != filters.TypeEvent {
		return false
	}
	if filters.OnlyVisible && !e.Visible {
		return false
	}
	if !filters.From.IsZero() && e.CreatedAt.Before(filters.From) {
		return false
	}
	return true
}

func (f *fakeEventRepository) FindAll(ctx context.Context, filters outbound.EventFilters, offset, limit int) ([]*entity.Event, int, error) {
	var out []*entity.Event
	for _, e := range f.events {
		if f.matches(e, filters) {
			out = append(out, e)
		}
	}
	return out, len(out), nil
}

func (f *fakeEventRepository) FindRecent(ctx context.Context, statut string, limit int) ([]*entity.Event, error) {
	out, _, _ := f.FindAll(ctx, outbound.EventFilters{Statut: statut}, 0, limit)
	return out, nil
}

func (f *fakeEventRepository) Create(ctx context.Context, event *entity.Event) error {
	f.events[event.ID] = event
	return nil
}

func (f *fakeEventRepository) Update(ctx context.Context, event *entity.Event) error {
	if _, ok := f.events[event.ID]; !ok {
		return outbound.ErrNotFound
	}
	f.events[event.ID] = event
	return nil
}

func (f *fakeEventRepository) Delete(ctx context.Context, id string) error {
	if _, ok := f.events[id]; !ok {
		return outbound.ErrNotFound
	}
	delete(f.events, id)
	return nil
}

func (f *fakeEventRepository) DeleteByClub(ctx context.Context, clubID string) (int64, error) {
	var n int64
	for id, e := range f.events {
		if e.ClubID == clubID {
			delete(f.events, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeEventRepository) Count(ctx context.Context, filters outbound.EventFilters) (int, error) {
	_, n, err := f.FindAll(ctx, filters, 0, 0)
	return n, err
}

func (f *fakeEventRepository) CountByType(ctx context.Context, statut string) (map[string]int, error) {
	out := map[string]int{}
	for _, e := range f.events {
		if statut != "" && e.Statut != statut {
			continue
		}
		out[e.TypeEvent]++
	}
	return out, nil
}

func (f *fakeEventRepository) CreatedPerDay(ctx context.Context, since time.Time) (map[string]int, error) {
	out := map[string]int{}
	for _, e := range f.events {
		if e.CreatedAt.Before(since) {
			continue
		}
		out[e.CreatedAt.Format("2006-01-02")]++
	}
	return out, nil
}

type fakeLogRepository struct {
	entries []*entity.LogEntry
}

func (f *fakeLogRepository) Insert(ctx context.Context, entry *entity.LogEntry) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeLogRepository) FindAll(ctx context.Context, filters outbound.LogFilters, offset, limit int) ([]*entity.LogEntry, int, error) {
	var out []*entity.LogEntry
	for _, e := range f.entries {
		if filters.Action != "" && e.Action != filters.Action {
			continue
		}
		if filters.UserID != "" && e.UserID != filters.UserID {
			continue
		}
		out = append(out, e)
	}
	return out, len(out), nil
}

func (f *fakeLogRepository) FindRecent(ctx context.Context, limit int) ([]*entity.LogEntry, error) {
	if limit > len(f.entries) {
		limit = len(f.entries)
	}
	return f.entries[len(f.entries)-limit:], nil
}

func (f *fakeLogRepository) Stats(ctx context.Context) (*outbound.LogStats, error) {
	stats := &outbound.LogStats{
		Total:      len(f.entries),
		ByAction:   map[string]int{},
		ByUserType: map[string]int{},
	}
	for _, e := range f.entries {
		stats.ByAction[e.Action]++
		stats.ByUserType[string(e.UserType)]++
	}
	return stats, nil
}

func (f *fakeLogRepository) ListActorRefs(ctx context.Context) ([]outbound.LogActorRef, error) {
	var refs []outbound.LogActorRef
	for _, e := range f.entries {
		if e.UserID == "" {
			continue
		}
		refs = append(refs, outbound.LogActorRef{LogID: e.ID, UserID: e.UserID, UserType: e.UserType})
	}
	return refs, nil
}

func (f *fakeLogRepository) DeleteByDetailsNote(ctx context.Context, note string) (int64, error) {
	var kept []*entity.LogEntry
	var n int64
	for _, e := range f.entries {
		if v, ok := e.Details["note"]; ok && v == note {
			n++
			continue
		}
		kept = append(kept, e)
	}
	f.entries = kept
	return n, nil
}

func (f *fakeLogRepository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	drop := map[string]struct{}{}
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	var kept []*entity.LogEntry
	var n int64
	for _, e := range f.entries {
		if _, ok := drop[e.ID]; ok {
			n++
			continue
		}
		kept = append(kept, e)
	}
	f.entries = kept
	return n, nil
}

func (f *fakeLogRepository) byAction(action string) []*entity.LogEntry {
	var out []*entity.LogEntry
	for _, e := range f.entries {
		if e.Action == action {
			out = append(out, e)
		}
	}
	return out
}

type fakeTokenService struct {
	issued int
}

func (f *fakeTokenService) Issue(claims outbound.TokenClaims) (string, error) {
	f.issued++
	return fmt.Sprintf("token-%s-%d", claims.ID, f.issued), nil
}

func (f *fakeTokenService) Verify(token string) (*outbound.TokenClaims, error) {
	return nil, outbound.ErrTokenInvalid
}

// fakePasswordService hashes with a reversible prefix so tests can seed
// accounts without bcrypt.
type fakePasswordService struct{}

func (fakePasswordService) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakePasswordService) ComparePassword(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return fmt.Errorf("password mismatch")
	}
	return nil
}

func (fakePasswordService) GeneratePassword() (string, error) {
	return "Temp1234Pass", nil
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type fakeMailer struct {
	sent []sentMail
	// failWith makes every send fail; used to prove mail failures never
	// roll back committed state.
	failWith error
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, text string) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Body: text})
	return nil
}

func (f *fakeMailer) SendHTML(ctx context.Context, to, subject, html string) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Body: html})
	return nil
}

type fakeRateLimitService struct {
	blocked bool
	allowed bool
}

func newFakeRateLimitService() *fakeRateLimitService {
	return &fakeRateLimitService{allowed: true}
}

func (f *fakeRateLimitService) CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	return f.allowed, nil
}

func (f *fakeRateLimitService) Block(ctx context.Context, key string, duration time.Duration, reason string) error {
	f.blocked = true
	return nil
}

func (f *fakeRateLimitService) IsBlocked(ctx context.Context, key string) (bool, error) {
	return f.blocked, nil
}
