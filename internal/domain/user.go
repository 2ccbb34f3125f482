package domain

// Role values carried in JWT claims and user rows
const (
	RoleJobseeker = "jobseeker" // Can apply to jobs and trainings
	RoleEmployer  = "employer"  // Can post jobs and trainings
)

// User Model (relational mirror of the identity store)
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`           // Primary key, always the identity store's id
	Name         string `gorm:"size:200" json:"name"`           // Display name
	Email        string `gorm:"size:200;unique" json:"email"`   // Unique email, natural key for mirroring
	Role         string `gorm:"size:50" json:"role"`            // Role: jobseeker or employer
	AppliedCount int    `gorm:"default:0" json:"applied_count"` // Number of applications submitted
}
