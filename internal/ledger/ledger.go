// Package ledger implements the application-submission workflow: it
// reconciles the in-memory catalog with the relational jobs table, mirrors
// identity accounts into the users table, appends Application rows and keeps
// the apply counters consistent with them.
package ledger

import (
	"errors" // Sentinel errors
	"fmt"    // Notification body formatting

	"udyog_saarthi/internal/catalog"  // In-memory posting catalog
	"udyog_saarthi/internal/domain"   // Relational models
	"udyog_saarthi/internal/identity" // Identity provider account type
	"udyog_saarthi/internal/notify"   // Outbound email

	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// Errors surfaced to the transport layer
var (
	ErrForbidden   = errors.New("role not allowed")
	ErrJobNotFound = errors.New("job not found in any store")
)

// Directory is the identity lookup the ledger consumes. It is read-only:
// the ledger never writes back to the identity store.
type Directory interface {
	Lookup(id uint) (*identity.Account, error)
}

// Receipt reports what a submission actually persisted. The HTTP response
// is uniform success either way; Applied only distinguishes the outcomes
// internally.
type Receipt struct {
	Applied       bool // True when the ledger transaction committed
	ApplicationID uint // Ledger row id, zero when not recorded
	UserID        uint // Submitting account id
	JobID         uint // Job id the ledger row references
}

// Service orchestrates submissions and catalog access
type Service struct {
	db       *gorm.DB
	catalog  *catalog.Catalog
	dir      Directory
	notifier notify.Notifier
}

// NewService wires the ledger against its stores
func NewService(db *gorm.DB, cat *catalog.Catalog, dir Directory, notifier notify.Notifier) *Service {
	return &Service{db: db, catalog: cat, dir: dir, notifier: notifier}
}

// SubmitApplication records one application for the given subject.
//
// Only a role mismatch is an error. Every storage failure past that point
// is absorbed: the transaction rolls back, the receipt reports
// Applied=false and the caller still sees success. This availability-first
// behavior is inherited and deliberate; the logs are the only place a lost
// submission shows up.
func (s *Service) SubmitApplication(subjectID uint, role string, jobID uint) (*Receipt, error) {
	if role != domain.RoleJobseeker {
		return nil, ErrForbidden
	}

	// Resolve name and email from the identity store, never from the
	// relational mirror. A failed lookup skips mirroring and notification
	// but not the ledger write.
	var name, email string
	if acc, err := s.dir.Lookup(subjectID); err == nil {
		name, email = acc.Name, acc.Email
	} else {
		logrus.WithFields(logrus.Fields{
			"user_id": subjectID,
			"error":   err.Error(),
		}).Warn("Identity lookup failed, proceeding without email")
	}

	receipt := &Receipt{UserID: subjectID, JobID: jobID}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Resolve the job row; an unresolvable id degrades to a ghost
		// application that keeps the raw job id.
		job, jerr := s.resolveJob(tx, jobID)
		if jerr != nil {
			logrus.WithFields(logrus.Fields{
				"job_id": jobID,
				"error":  jerr.Error(),
			}).Warn("Job not resolved, recording ghost application")
		} else {
			receipt.JobID = job.ID
		}

		// Mirror the identity into the users table, best-effort
		var user *domain.User
		if email != "" {
			user = s.resolveUserMirror(tx, subjectID, name, email, role)
		}

		app := domain.Application{UserID: subjectID, JobID: receipt.JobID}
		if err := tx.Create(&app).Error; err != nil {
			return err // Rollback
		}
		if job != nil {
			if err := tx.Model(job).Update("apply_count", gorm.Expr("apply_count + ?", 1)).Error; err != nil {
				return err // Rollback
			}
		}
		if user != nil {
			if err := tx.Model(user).Update("applied_count", gorm.Expr("applied_count + ?", 1)).Error; err != nil {
				return err // Rollback
			}
		}
		receipt.ApplicationID = app.ID
		return nil // Commit
	})
	if err != nil {
		// Absorbed: the caller still gets a success response
		receipt.ApplicationID = 0
		logrus.WithFields(logrus.Fields{
			"user_id": subjectID,
			"job_id":  jobID,
			"error":   err.Error(),
		}).Error("Application not recorded in ledger")
	} else {
		receipt.Applied = true
		logrus.WithFields(logrus.Fields{
			"user_id":        subjectID,
			"job_id":         receipt.JobID,
			"application_id": receipt.ApplicationID,
		}).Info("Application recorded")
	}

	// Exactly one dispatch per submission with a resolved email, outside
	// the transaction. Failures are logged inside the notifier.
	if email != "" {
		if name == "" {
			name = "Applicant"
		}
		notify.Dispatch(s.notifier, email,
			"Application Received - Udyog Saarthi",
			fmt.Sprintf("Hello %s,\n\nWe have received your application for job/training id %d. Our team will review and contact you if you are shortlisted.\n\nThank you for using Udyog Saarthi.", name, jobID))
	}
	return receipt, nil
}

// resolveJob returns the relational row for jobID, materializing it from
// the in-memory catalog on first reference. The catalog id doubles as the
// primary key, so a concurrent first reference loses the insert race on the
// PK constraint and resolves by re-reading instead of duplicating the row.
func (s *Service) resolveJob(tx *gorm.DB, jobID uint) (*domain.Job, error) {
	var job domain.Job
	if err := tx.First(&job, jobID).Error; err == nil {
		return &job, nil
	}
	seed, ok := s.catalog.Get(jobID)
	if !ok {
		return nil, ErrJobNotFound
	}
	job = domain.Job{ID: jobID, Title: seed.Title, Company: seed.Company, Description: seed.Description, Type: seed.Type}
	// Savepoint keeps a lost insert race from poisoning the outer transaction
	if err := tx.Transaction(func(tx2 *gorm.DB) error {
		return tx2.Create(&job).Error
	}); err != nil {
		if err2 := tx.First(&job, jobID).Error; err2 != nil {
			return nil, ErrJobNotFound
		}
	}
	return &job, nil
}

// resolveUserMirror returns the users row for the account, inserting it with
// the identity store's id as primary key on first reference. Mirroring is
// best-effort: an insert failure (id already taken, lost race) rolls back
// only its savepoint and the submission continues without a user row.
func (s *Service) resolveUserMirror(tx *gorm.DB, subjectID uint, name, email, role string) *domain.User {
	var user domain.User
	if err := tx.Where("email = ?", email).First(&user).Error; err == nil {
		return &user
	}
	user = domain.User{ID: subjectID, Name: name, Email: email, Role: role}
	if err := tx.Transaction(func(tx2 *gorm.DB) error {
		return tx2.Create(&user).Error
	}); err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": subjectID,
			"email":   email,
			"error":   err.Error(),
		}).Warn("User mirror skipped")
		return nil
	}
	return &user
}

// ListJobs returns the relational snapshot when the table is reachable and
// non-empty, otherwise the in-memory catalog.
func (s *Service) ListJobs() []domain.Job {
	var jobs []domain.Job
	if err := s.db.Find(&jobs).Error; err == nil && len(jobs) > 0 {
		return jobs
	}
	return s.catalog.List()
}

// AddJob appends a posting to the catalog and mirrors it into the jobs
// table best-effort, reusing the catalog id as primary key.
func (s *Service) AddJob(title, company, description, jobType string) domain.Job {
	job := s.catalog.Add(domain.Job{Title: title, Company: company, Description: description, Type: jobType})
	row := job
	if err := s.db.Create(&row).Error; err != nil {
		logrus.WithFields(logrus.Fields{
			"job_id": job.ID,
			"title":  job.Title,
			"error":  err.Error(),
		}).Warn("Job row not persisted")
	}
	return job
}
