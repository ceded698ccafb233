package models

import "strconv"

type RoleID uint64

// ParseRoleID parses a role snowflake. Empty input means "no role".
func ParseRoleID(raw string) (RoleID, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return RoleID(v), nil
}

// Viewer is whoever pressed a control or invoked a command.
type Viewer struct {
	UserID      string
	DisplayName string
	// Member is true only for guild members; bare users carry no roles.
	Member  bool
	RoleIDs []RoleID
}

func (v Viewer) HasRole(id RoleID) bool {
	for _, r := range v.RoleIDs {
		if r == id {
			return true
		}
	}
	return false
}

// UnlockConfig is set once at startup and read-only afterwards.
// A zero AllowedRoleID means unrestricted.
type UnlockConfig struct {
	AllowedRoleID RoleID
}

func (c UnlockConfig) Restricted() bool { return c.AllowedRoleID != 0 }
