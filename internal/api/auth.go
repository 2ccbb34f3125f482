package api

import (
	"errors"   // Sentinel error matching
	"fmt"      // Email body formatting
	"net/http" // HTTP status codes

	"udyog_saarthi/internal/domain"   // Role constants
	"udyog_saarthi/internal/identity" // Identity store
	"udyog_saarthi/internal/notify"   // Outbound email
	"udyog_saarthi/internal/utils"    // JWT utility functions

	"github.com/gin-gonic/gin" // Gin web framework
)

// Request struct for registration
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`     // Display name must be provided
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
	Role     string `json:"role" binding:"required"`     // Role must be provided
}

// Request struct for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Request struct for profile updates; pointers distinguish absent fields
type UpdateProfileRequest struct {
	Name           *string   `json:"name"`           // New display name
	Email          *string   `json:"email"`          // New email, checked for duplicates
	DisabilityType *string   `json:"disabilityType"` // Profile field
	Skills         *[]string `json:"skills"`         // Profile field
	Experience     *string   `json:"experience"`     // Profile field
	Location       *string   `json:"location"`       // Profile field
	Phone          *string   `json:"phone"`          // Profile field
	Bio            *string   `json:"bio"`            // Profile field
}

// accountData returns the public view of an account, never the hash
func accountData(a *identity.Account) gin.H {
	return gin.H{
		"id":             a.ID,             // Account id
		"name":           a.Name,           // Display name
		"email":          a.Email,          // Email
		"role":           a.Role,           // Role
		"disabilityType": a.DisabilityType, // Profile field
		"skills":         a.Skills,         // Profile field
		"experience":     a.Experience,     // Profile field
		"location":       a.Location,       // Profile field
		"phone":          a.Phone,          // Profile field
		"bio":            a.Bio,            // Profile field
	}
}

// RegisterHandler creates an account in the identity store
func RegisterHandler(store *identity.Store, notifier notify.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request"})
			return
		}
		// Only the two marketplace roles are accepted
		if req.Role != domain.RoleJobseeker && req.Role != domain.RoleEmployer {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Role must be jobseeker or employer"})
			return
		}
		acc, err := store.Register(req.Name, req.Email, req.Password, req.Role)
		if err != nil {
			// Duplicate email is the only client error here
			if errors.Is(err, identity.ErrDuplicateEmail) {
				c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "User already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to register user"})
			return
		}
		// Welcome email, best-effort
		notify.Dispatch(notifier, acc.Email,
			"Welcome to Udyog Saarthi!",
			fmt.Sprintf("Hello %s,\n\nYour account has been created successfully.\n\nThank you for registering!", acc.Name))
		// Return success response
		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "User registered",
			"data":    gin.H{"id": acc.ID, "email": acc.Email, "role": acc.Role},
		})
	}
}

// LoginHandler authenticates against the identity store and returns a JWT
// carrying the account id and role
func LoginHandler(store *identity.Store, notifier notify.Notifier, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request"})
			return
		}
		acc, err := store.Authenticate(req.Email, req.Password)
		if err != nil {
			// Unknown email and wrong password are indistinguishable
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid credentials"})
			return
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(acc.ID, acc.Role, jwtSecret)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to generate token"})
			return
		}
		// Login alert email, best-effort
		notify.Dispatch(notifier, acc.Email,
			"Login Alert - Udyog Saarthi",
			fmt.Sprintf("Hello %s,\n\nYou have successfully logged in to your account.\n\nIf this wasn't you, please reset your password.", acc.Name))
		// Return the token in the response
		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "Login successful",
			"data":    gin.H{"token": token, "role": acc.Role},
		})
	}
}

// ProfileHandler returns the authenticated account
func ProfileHandler(store *identity.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("userID").(uint) // Set by the JWT middleware
		acc, err := store.Lookup(userID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "User not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "data": accountData(acc)})
	}
}

// UpdateProfileHandler updates profile fields on the authenticated account
func UpdateProfileHandler(store *identity.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("userID").(uint) // Set by the JWT middleware
		var req UpdateProfileRequest         // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request"})
			return
		}
		acc, err := store.Update(userID, func(a *identity.Account, all []identity.Account) error {
			// A changed email must stay unique across accounts
			if req.Email != nil {
				for _, other := range all {
					if other.Email == *req.Email && other.ID != a.ID {
						return identity.ErrDuplicateEmail
					}
				}
				a.Email = *req.Email
			}
			if req.Name != nil {
				a.Name = *req.Name
			}
			if req.DisabilityType != nil {
				a.DisabilityType = *req.DisabilityType
			}
			if req.Skills != nil {
				a.Skills = *req.Skills
			}
			if req.Experience != nil {
				a.Experience = *req.Experience
			}
			if req.Location != nil {
				a.Location = *req.Location
			}
			if req.Phone != nil {
				a.Phone = *req.Phone
			}
			if req.Bio != nil {
				a.Bio = *req.Bio
			}
			return nil
		})
		if err != nil {
			if errors.Is(err, identity.ErrDuplicateEmail) {
				c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Email already in use"})
				return
			}
			if errors.Is(err, identity.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "User not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to update profile"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Profile updated", "data": accountData(acc)})
	}
}
