package entity

import (
	"time"

	"github.com/google/uuid"
)

// RefKind tags the collection an actor or target reference points into.
// Entries written before the type-tag normalization carry lower-cased tags;
// NormalizeRefKind maps both spellings to the same branch.
type RefKind string

const (
	RefAdmin  RefKind = "Admin"
	RefClub   RefKind = "Club"
	RefUser   RefKind = "User"
	RefEvent  RefKind = "Event"
	RefSystem RefKind = "system"
)

// NormalizeRefKind folds legacy lower-cased variant tags onto the canonical
// collection tags. Unknown tags are returned unchanged so the caller decides.
func NormalizeRefKind(kind string) RefKind {
	switch kind {
	case "Admin", "admin":
		return RefAdmin
	case "Club", "club":
		return RefClub
	case "User", "user":
		return RefUser
	case "Event", "event":
		return RefEvent
	case "system", "System":
		return RefSystem
	}
	return RefKind(kind)
}

// RefKindForUserType maps a principal variant tag to its log reference tag.
func RefKindForUserType(userType UserType) RefKind {
	switch userType {
	case UserTypeAdmin:
		return RefAdmin
	case UserTypeClub:
		return RefClub
	default:
		return RefUser
	}
}

// Actions recognized by the audit log. The set is closed: Record rejects
// anything else.
const (
	ActionLogin                  = "login"
	ActionLogout                 = "logout"
	ActionPasswordChange         = "password_change"
	ActionPasswordResetRequested = "password_reset_requested"
	ActionCreateClub             = "create_club"
	ActionUpdateClub             = "update_club"
	ActionDeleteClub             = "delete_club"
	ActionApproveClub            = "approve_club"
	ActionRejectClub             = "reject_club"
	ActionCreateUser             = "create_user"
	ActionUpdateUser             = "update_user"
	ActionDeleteUser             = "delete_user"
	ActionApproveEvent           = "approve_event"
	ActionRejectEvent            = "reject_event"
	ActionCreateEvent            = "create_event"
	ActionUpdateEvent            = "update_event"
	ActionDeleteEvent            = "delete_event"
	ActionUpdateProfile          = "update_profile"
	ActionCompleteFirstLogin     = "complete_first_login"
	ActionSystemBackup           = "system_backup"
	ActionSystemMaintenance      = "system_maintenance"
)

var knownActions = map[string]struct{}{
	ActionLogin: {}, ActionLogout: {}, ActionPasswordChange: {},
	ActionPasswordResetRequested: {},
	ActionCreateClub:             {}, ActionUpdateClub: {}, ActionDeleteClub: {},
	ActionApproveClub:            {}, ActionRejectClub: {},
	ActionCreateUser:             {}, ActionUpdateUser: {}, ActionDeleteUser: {},
	ActionApproveEvent:           {}, ActionRejectEvent: {},
	ActionCreateEvent:            {}, ActionUpdateEvent: {}, ActionDeleteEvent: {},
	ActionUpdateProfile:          {}, ActionCompleteFirstLogin: {},
	ActionSystemBackup:           {}, ActionSystemMaintenance: {},
}

func IsKnownAction(action string) bool {
	_, ok := knownActions[action]
	return ok
}

// LogEntry is an append-only audit record. It stores only ids and type tags;
// display names are resolved against the live collections at read time.
type LogEntry struct {
	ID          string                 `bson:"_id" json:"id"`
	UserID      string                 `bson:"userId" json:"userId"`
	UserType    RefKind                `bson:"userType" json:"userType"`
	Action      string                 `bson:"action" json:"action"`
	Description string                 `bson:"description" json:"description"`
	TargetType  RefKind                `bson:"targetType,omitempty" json:"targetType,omitempty"`
	TargetID    string                 `bson:"targetId,omitempty" json:"targetId,omitempty"`
	Details     map[string]interface{} `bson:"details" json:"details"`
	CreatedAt   time.Time              `bson:"createdAt" json:"createdAt"`
}

func NewLogEntry(userID string, userType RefKind, action, description string) *LogEntry {
	return &LogEntry{
		ID:          uuid.NewString(),
		UserID:      userID,
		UserType:    userType,
		Action:      action,
		Description: description,
		Details:     map[string]interface{}{},
		CreatedAt:   time.Now(),
	}
}
