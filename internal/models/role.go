package models

import "strings"

// Role is the resolved privilege level of a user. Privilege checks consume
// this enum instead of comparing group-name strings at every call site.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleAnalyst    Role = "analyst"
	RoleAccountant Role = "accountant"
	RoleUnknown    Role = "unknown"
)

// ResolveRole maps a user to its role: superusers are admins, otherwise the
// first group membership decides, normalized to lowercase singular form.
func ResolveRole(u *User) Role {
	if u == nil {
		return RoleUnknown
	}
	if u.IsSuperuser {
		return RoleAdmin
	}
	for _, g := range u.Groups {
		if r := roleFromGroupName(g.Name); r != RoleUnknown {
			return r
		}
	}
	return RoleUnknown
}

func roleFromGroupName(name string) Role {
	switch strings.ToLower(strings.TrimSuffix(name, "s")) {
	case "admin":
		return RoleAdmin
	case "manager":
		return RoleManager
	case "analyst":
		return RoleAnalyst
	case "accountant":
		return RoleAccountant
	}
	return RoleUnknown
}

// GroupNameForRole is the inverse mapping used by registration, where the
// caller names a role and membership is stored as a group row.
func GroupNameForRole(role string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(strings.TrimSuffix(role, "s"))) {
	case "admin":
		return GroupAdmins, true
	case "manager":
		return GroupManagers, true
	case "analyst":
		return GroupAnalysts, true
	case "accountant":
		return GroupAccountants, true
	}
	return "", false
}

// IsPrivileged reports whether the role may mutate entity resources
func (r Role) IsPrivileged() bool {
	return r == RoleAdmin || r == RoleManager
}
