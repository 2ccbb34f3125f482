package api

import (
	"context"  // Context for Redis operations
	"errors"   // Sentinel error matching
	"fmt"      // Response message formatting
	"net/http" // HTTP status codes
	"strconv"  // Path parameter parsing
	"time"     // Cache TTL

	"udyog_saarthi/internal/domain" // Posting model
	"udyog_saarthi/internal/ledger" // Application service
	"udyog_saarthi/internal/utils"  // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// Request struct for posting a job or training
type AddJobRequest struct {
	Title       string `json:"title" binding:"required"` // Posting title must be provided
	Company     string `json:"company"`                  // Posting company
	Description string `json:"description"`              // Posting description
	Type        string `json:"type"`                     // job (default) or training
}

// ListJobsHandler returns the catalog snapshot, cached in Redis
func ListJobsHandler(svc *ledger.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Context for Redis operations
		var jobs []domain.Job
		// Try the cache first; any Redis error counts as a miss
		found, err := utils.GetCache(ctx, rdb, utils.JobsCacheKey, &jobs)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Jobs fetched", "data": jobs, "cached": true})
			return
		}
		jobs = svc.ListJobs() // Relational rows, or the seed catalog
		// Cache the snapshot for 60 seconds
		_ = utils.SetCache(ctx, rdb, utils.JobsCacheKey, jobs, 60*time.Second)
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Jobs fetched", "data": jobs, "cached": false})
	}
}

// AddJobHandler creates a posting (employer only, gated by middleware)
func AddJobHandler(svc *ledger.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddJobRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request"})
			return
		}
		job := svc.AddJob(req.Title, req.Company, req.Description, req.Type)
		// The listing changed, drop the cached snapshot
		_ = utils.DeleteCache(context.Background(), rdb, utils.JobsCacheKey)
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Job added", "data": job})
	}
}

// ApplyJobHandler submits an application for the authenticated jobseeker.
// The response is uniform success whether or not the ledger recorded the
// submission; only the message text and the logs differ.
func ApplyJobHandler(svc *ledger.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("userID").(uint) // Set by the JWT middleware
		role := c.GetString("role")          // Role claim from the token
		jobID, err := strconv.ParseUint(c.Param("jobID"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid job id"})
			return
		}
		receipt, err := svc.SubmitApplication(userID, role, uint(jobID))
		if err != nil {
			// Role mismatch is the only error the service surfaces
			if errors.Is(err, ledger.ErrForbidden) {
				c.JSON(http.StatusForbidden, gin.H{"status": "error", "message": "Only jobseekers can apply"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to apply"})
			return
		}
		message := fmt.Sprintf("User %d applied for job %d", userID, jobID)
		if receipt.Applied {
			message = fmt.Sprintf("Application recorded for user %d on job %d", userID, jobID)
			// apply_count changed, drop the cached listing
			_ = utils.DeleteCache(context.Background(), rdb, utils.JobsCacheKey)
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": message})
	}
}
