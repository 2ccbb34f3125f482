package api

import (
	"net/http" // HTTP status codes

	"udyog_saarthi/internal/domain" // Coaching program model

	"github.com/gin-gonic/gin" // Gin web framework
)

// Static coaching program listing, no persistence behind it
var coachingPrograms = []domain.CoachingProgram{
	{ID: 1, Title: "Soft Skills Training", Provider: "SkillUp Center"},
	{ID: 2, Title: "Technical Bootcamp", Provider: "Tech4All"},
}

// ListCoachingHandler returns the coaching program catalog
func ListCoachingHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Coaching programs fetched", "data": coachingPrograms})
	}
}
