package models

// Role is the closed set of identity roles carried in tokens and records.
type Role string

const (
	RoleUser     Role = "user"
	RoleChampion Role = "champion"
	RoleSaathi   Role = "saathi"
	RoleTrainer  Role = "trainer"
	RoleMentor   Role = "mentor"
	RoleAdmin    Role = "admin"
)

// LearnerRoles are the roles stored in the users table.
func LearnerRoles() []Role {
	return []Role{RoleUser, RoleChampion, RoleSaathi}
}

// TeacherRoles are the roles stored in the teachers table.
func TeacherRoles() []Role {
	return []Role{RoleTrainer, RoleMentor}
}

// IsLearnerRole reports whether r belongs to the learner family.
func IsLearnerRole(r Role) bool {
	for _, role := range LearnerRoles() {
		if r == role {
			return true
		}
	}
	return false
}

// IsTeacherRole reports whether r belongs to the teaching staff family.
func IsTeacherRole(r Role) bool {
	return r == RoleTrainer || r == RoleMentor
}

// IsValidRole reports whether r is one of the known roles.
func IsValidRole(r Role) bool {
	return IsLearnerRole(r) || IsTeacherRole(r) || r == RoleAdmin
}
