package domain

// CoachingProgram is a static read-only listing, never persisted
type CoachingProgram struct {
	ID       uint   `json:"id"`       // Program id
	Title    string `json:"title"`    // Program title
	Provider string `json:"provider"` // Program provider
}
