package domain

// Application Model (append-only ledger of submissions).
// UserID and JobID are plain columns without DB-level foreign keys so a
// submission can still be recorded when the referenced job row could not be
// resolved (a ghost application).
type Application struct {
	ID        uint  `gorm:"primaryKey" json:"id"`                   // Primary key
	UserID    uint  `json:"user_id"`                                // Applicant's identity id
	JobID     uint  `json:"job_id"`                                 // Applied job id
	CreatedAt int64 `gorm:"autoCreateTime:milli" json:"created_at"` // Timestamp of creation in milliseconds
}
