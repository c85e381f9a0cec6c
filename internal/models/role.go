package models

// Role is a profile's permission level. It is always passed explicitly to
// operations that need it.
type Role string

const (
	RoleAdmin          Role = "Admin"
	RoleProjectManager Role = "Project Manager"
	RoleSiteSupervisor Role = "Site Supervisor"
	RoleSiteEngineer   Role = "Site Engineer"
	RoleSubcontractor  Role = "Subcontractor / Trade"
)

var Roles = []Role{RoleAdmin, RoleProjectManager, RoleSiteSupervisor, RoleSiteEngineer, RoleSubcontractor}

func ParseRole(raw string) (Role, bool) { return parseEnum(Roles, raw) }

// CoerceRole maps unknown input to Site Supervisor, the invite default.
func CoerceRole(raw string) Role { return coerceEnum(Roles, raw, RoleSiteSupervisor) }

// CanEditTasks covers task status, task notes and site photos.
func (r Role) CanEditTasks() bool {
	switch r {
	case RoleAdmin, RoleProjectManager, RoleSiteSupervisor, RoleSiteEngineer:
		return true
	}
	return false
}

// CanManage covers project setup: tasks, resources, risks, imports, members.
func (r Role) CanManage() bool {
	return r == RoleAdmin || r == RoleProjectManager
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
