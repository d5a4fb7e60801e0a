package constants

const (
	RoleStudent = "student"
	RoleReader  = "reader"
	RoleAdmin   = "admin"
)

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleStudent,
		RoleReader,
		RoleAdmin,
	}

	ReaderAndAdmin = []string{
		RoleReader,
		RoleAdmin,
	}

	StudentOnly = []string{RoleStudent}
	ReaderOnly  = []string{RoleReader}
	AdminOnly   = []string{RoleAdmin}
)

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

const (
	GenderMale   = "male"
	GenderFemale = "female"
)

func IsValidGender(g string) bool {
	return g == GenderMale || g == GenderFemale
}

// Status persetujuan akun reader
const (
	ApprovalPending      = "pending_approval"
	ApprovalApproved     = "approved"
	ApprovalAutoApproved = "auto_approved"
	ApprovalRejected     = "rejected"
)

var ApprovedStatuses = []string{ApprovalApproved, ApprovalAutoApproved}
