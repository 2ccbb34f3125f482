package domain

// Posting type values
const (
	TypeJob      = "job"      // Regular job posting
	TypeTraining = "training" // Training program posting
)

// Job Model (job or training posting)
type Job struct {
	ID          uint   `gorm:"primaryKey" json:"id"`            // Primary key, shared with the in-memory catalog id
	Title       string `gorm:"size:300" json:"title"`           // Posting title
	Company     string `gorm:"size:200" json:"company"`         // Posting company, may be empty
	Description string `gorm:"type:text" json:"description"`    // Posting description
	Type        string `gorm:"size:50;default:job" json:"type"` // Posting type: job or training
	ApplyCount  int    `gorm:"default:0" json:"apply_count"`    // Number of applications received
}
