// Package catalog holds the in-memory job/training catalog. The catalog is
// an explicit injected instance shared by the handlers and the ledger; the
// relational jobs table mirrors it lazily (see internal/ledger).
package catalog

import (
	"sync" // Guards the shared posting list

	"udyog_saarthi/internal/domain" // Posting model
)

// Catalog is a mutex-guarded list of postings with ids assigned from 1
type Catalog struct {
	mu   sync.RWMutex
	jobs []domain.Job
}

// DefaultSeed returns the postings loaded into a fresh catalog and used to
// seed an empty jobs table at startup.
func DefaultSeed() []domain.Job {
	return []domain.Job{
		{ID: 1, Title: "Data Entry Operator", Company: "ABC Pvt Ltd", Description: "Accurate data entry and record keeping. Suitable for entry-level candidates.", Type: domain.TypeJob},
		{ID: 2, Title: "Software Intern", Company: "XYZ Tech", Description: "Internship for software development and testing.", Type: domain.TypeJob},
		{ID: 3, Title: "Senior Accessibility Developer", Company: "Tech Solutions Inc.", Description: "Lead development of accessible web applications following WCAG 2.1 AA standards.", Type: domain.TypeJob},
		{ID: 4, Title: "Web Accessibility Training Program", Company: "National Skill Development Corporation", Description: "Comprehensive 3-month certification program covering web accessibility standards and assistive technologies.", Type: domain.TypeTraining},
		{ID: 5, Title: "Inclusive UX Designer", Company: "Innovate Digital Labs", Description: "Design inclusive user experiences for mobile and web applications with focus on accessibility and usability.", Type: domain.TypeJob},
		{ID: 6, Title: "Assistive Technology Specialist", Company: "EnableTech", Description: "Support users with assistive technologies and ensure product compatibility.", Type: domain.TypeJob},
		{ID: 7, Title: "Vocational Training - Carpentry", Company: "SkillBuild Trust", Description: "Hands-on carpentry training tailored for persons with disabilities.", Type: domain.TypeTraining},
		{ID: 8, Title: "Digital Marketing for Accessibility", Company: "MarketInclusiv", Description: "Training program on inclusive digital marketing practices.", Type: domain.TypeTraining},
		{ID: 9, Title: "Customer Support Executive (Accessible Services)", Company: "CareCo", Description: "Provide empathetic customer support via phone and chat with accessibility accommodations.", Type: domain.TypeJob},
		{ID: 10, Title: "Mobile App Accessibility Bootcamp", Company: "AppWorks Academy", Description: "Short bootcamp covering mobile accessibility testing and remediation.", Type: domain.TypeTraining},
	}
}

// New builds a catalog from the given seed postings
func New(seed []domain.Job) *Catalog {
	c := &Catalog{}
	c.jobs = append(c.jobs, seed...)
	return c
}

// Get returns the posting with the given id
func (c *Catalog) Get(id uint) (domain.Job, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, j := range c.jobs {
		if j.ID == id {
			return j, true
		}
	}
	return domain.Job{}, false
}

// Add appends a posting, assigns the next id and returns the stored copy
func (c *Catalog) Add(job domain.Job) domain.Job {
	c.mu.Lock()
	defer c.mu.Unlock()
	var max uint
	for _, j := range c.jobs {
		if j.ID > max {
			max = j.ID
		}
	}
	job.ID = max + 1
	if job.Type == "" {
		job.Type = domain.TypeJob
	}
	c.jobs = append(c.jobs, job)
	return job
}

// List returns a snapshot of all postings
func (c *Catalog) List() []domain.Job {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Job, len(c.jobs))
	copy(out, c.jobs)
	return out
}
