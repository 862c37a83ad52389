package models

import "testing"

func TestResolveRole(t *testing.T) {
	tests := []struct {
		name string
		user User
		want Role
	}{
		{"superuser wins", User{IsSuperuser: true, Groups: []Group{{Name: GroupAnalysts}}}, RoleAdmin},
		{"admins group", User{Groups: []Group{{Name: GroupAdmins}}}, RoleAdmin},
		{"managers group", User{Groups: []Group{{Name: GroupManagers}}}, RoleManager},
		{"analysts group", User{Groups: []Group{{Name: GroupAnalysts}}}, RoleAnalyst},
		{"accountants group", User{Groups: []Group{{Name: GroupAccountants}}}, RoleAccountant},
		{"no groups", User{}, RoleUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveRole(&tt.user); got != tt.want {
				t.Errorf("ResolveRole = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGroupNameForRole(t *testing.T) {
	if name, ok := GroupNameForRole("manager"); !ok || name != GroupManagers {
		t.Errorf("manager should map to %s, got %s %v", GroupManagers, name, ok)
	}
	if _, ok := GroupNameForRole("janitor"); ok {
		t.Error("unknown role should not resolve to a group")
	}
}

func TestIsPrivileged(t *testing.T) {
	if !RoleAdmin.IsPrivileged() || !RoleManager.IsPrivileged() {
		t.Error("admins and managers are privileged")
	}
	if RoleAnalyst.IsPrivileged() || RoleAccountant.IsPrivileged() {
		t.Error("analysts and accountants are not privileged")
	}
}
