package constants

import "fmt"

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
	RoleOwner   = "owner"
)

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess = "❌ Hanya admin yang boleh mengakses fitur %s."
	ErrOnlyStaffCanAccess  = "❌ Hanya teacher, admin, atau owner yang boleh mengakses fitur %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}

var (
	AllRoles = []string{RoleStudent, RoleTeacher, RoleAdmin, RoleOwner}

	StaffRoles = []string{RoleTeacher, RoleAdmin, RoleOwner}

	AdminAndAbove = []string{RoleAdmin, RoleOwner}
)

// rolePriority: role tertinggi dipakai sebagai role utama jika token membawa beberapa role.
var rolePriority = []string{RoleOwner, RoleAdmin, RoleTeacher, RoleStudent}

func PrimaryRole(roles []string) string {
	for _, want := range rolePriority {
		for _, r := range roles {
			if r == want {
				return want
			}
		}
	}
	return ""
}
