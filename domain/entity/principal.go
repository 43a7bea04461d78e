package entity

// UserType is the variant tag of a principal. It tells which collection the
// principal lives in and is distinct from Role, which is the finer-grained
// permission tier carried by User accounts.
type UserType string

const (
	UserTypeAdmin UserType = "admin"
	UserTypeUser  UserType = "user"
	UserTypeClub  UserType = "club"
)

// Roles carried by accounts in the users collection. Admin accounts in the
// admins collection always resolve to RoleAdmin; club accounts to RoleClub.
const (
	RoleAdmin       = "admin"
	RoleModerateur  = "moderateur"
	RoleClubManager = "club_manager"
	RoleClub        = "club"
)

// UserRoles lists the roles assignable to accounts in the users collection.
var UserRoles = []string{RoleAdmin, RoleModerateur, RoleClubManager}

// Account statuses. Admins are exempt from status gating.
const (
	StatusActif     = "actif"
	StatusInactif   = "inactif"
	StatusSuspendu  = "suspendu"
	StatusEnAttente = "en_attente"
)

func IsValidUserRole(role string) bool {
	for _, r := range UserRoles {
		if r == role {
			return true
		}
	}
	return false
}

func IsValidStatus(statut string) bool {
	switch statut {
	case StatusActif, StatusInactif, StatusSuspendu, StatusEnAttente:
		return true
	}
	return false
}

// Permissions assignable to User accounts.
const (
	PermCreateClub    = "create_club"
	PermEditClub      = "edit_club"
	PermDeleteClub    = "delete_club"
	PermCreateEvent   = "create_event"
	PermEditEvent     = "edit_event"
	PermDeleteEvent   = "delete_event"
	PermValidateEvent = "validate_event"
	PermManageUsers   = "manage_users"
)

// Principal is the resolved identity attached to a request after
// authentication. Exactly one of Admin, User, Club is non-nil; the three
// collections share no base type, so the variant is carried explicitly.
type Principal struct {
	ID       string
	Email    string
	Role     string
	UserType UserType

	Admin *Admin
	User  *User
	Club  *Club
}

// AssignedClubID returns the club a principal acts for: its own id for club
// accounts, the assigned club for user accounts, empty otherwise.
func (p *Principal) AssignedClubID() string {
	switch p.UserType {
	case UserTypeClub:
		return p.ID
	case UserTypeUser:
		if p.User != nil {
			return p.User.ClubAssigne
		}
	}
	return ""
}

// Statut returns the account status of the underlying record. Admins have no
// status gating and always report actif.
func (p *Principal) Statut() string {
	switch {
	case p.User != nil:
		return p.User.Statut
	case p.Club != nil:
		return p.Club.Statut
	default:
		return StatusActif
	}
}

// IsAdmin reports whether the principal holds the admin role, regardless of
// which collection it was resolved from.
func (p *Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// HasPermission mirrors the permission model: admins pass unconditionally,
// user accounts need the permission in their set, clubs have none.
func (p *Principal) HasPermission(permission string) bool {
	if p.IsAdmin() {
		return true
	}
	if p.UserType == UserTypeUser && p.User != nil {
		return p.User.HasPermission(permission)
	}
	return false
}
