package domain

// Role is the fixed operator role catalog. Visibility scope and
// transition permissions are keyed by role name, never by row id.
type Role string

const (
	RoleSuperAdmin   Role = "SuperAdmin"
	RoleManager      Role = "Manager"
	RoleAgent        Role = "Agent"
	RoleLicenseAgent Role = "LicenseAgent"
	RoleQAReviewer   Role = "QAReviewer"
	RoleQAManager    Role = "QAManager"
)

// RequiresAssignedIP reports whether the role may only log in from its
// pre-assigned IP address. Agents and QA reviewers work from fixed
// stations; for every other role the restriction is opt-in.
func (r Role) RequiresAssignedIP() bool {
	return r == RoleAgent || r == RoleQAReviewer
}

// Unrestricted reports whether the role sees every lead.
func (r Role) Unrestricted() bool {
	return r == RoleSuperAdmin || r == RoleManager
}

// RoleRecord is a row of the roles table.
type RoleRecord struct {
	ID          int64
	Role        Role
	Description string
	Status      string
}
