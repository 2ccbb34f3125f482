package ledger

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"udyog_saarthi/internal/catalog"
	"udyog_saarthi/internal/db"
	"udyog_saarthi/internal/domain"
	"udyog_saarthi/internal/identity"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeDirectory serves identity lookups from a map
type fakeDirectory struct {
	accounts map[uint]identity.Account
}

func (d *fakeDirectory) Lookup(id uint) (*identity.Account, error) {
	if acc, ok := d.accounts[id]; ok {
		return &acc, nil
	}
	return nil, identity.ErrNotFound
}

// fakeNotifier records sends and can be told to fail
type fakeNotifier struct {
	mu    sync.Mutex
	sends []string // recipient addresses in order
	err   error
	ch    chan string
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{ch: make(chan string, 8)}
}

func (n *fakeNotifier) Send(to, subject, body string) error {
	n.mu.Lock()
	n.sends = append(n.sends, to)
	n.mu.Unlock()
	n.ch <- to
	return n.err
}

// waitSend blocks until one dispatch lands or the test times out
func (n *fakeNotifier) waitSend(t *testing.T) string {
	t.Helper()
	select {
	case to := <-n.ch:
		return to
	case <-time.After(2 * time.Second):
		t.Fatal("expected a notification dispatch")
		return ""
	}
}

// assertNoSend gives pending goroutines a moment, then checks nothing landed
func (n *fakeNotifier) assertNoSend(t *testing.T) {
	t.Helper()
	time.Sleep(50 * time.Millisecond)
	n.mu.Lock()
	defer n.mu.Unlock()
	assert.Empty(t, n.sends)
}

func newTestService(t *testing.T) (*Service, *gorm.DB, *fakeNotifier) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	dir := &fakeDirectory{accounts: map[uint]identity.Account{
		7: {ID: 7, Name: "Asha", Email: "a@x.com", Role: domain.RoleJobseeker},
	}}
	notifier := newFakeNotifier()
	svc := NewService(gdb, catalog.New(catalog.DefaultSeed()), dir, notifier)
	return svc, gdb, notifier
}

func TestSubmitRecordsApplicationAndCounters(t *testing.T) {
	svc, gdb, notifier := newTestService(t)
	db.SeedJobs(gdb, catalog.DefaultSeed())

	receipt, err := svc.SubmitApplication(7, domain.RoleJobseeker, 1)
	require.NoError(t, err)
	require.True(t, receipt.Applied)

	var apps []domain.Application
	require.NoError(t, gdb.Find(&apps).Error)
	require.Len(t, apps, 1)
	assert.Equal(t, uint(7), apps[0].UserID)
	assert.Equal(t, uint(1), apps[0].JobID)

	var job domain.Job
	require.NoError(t, gdb.First(&job, 1).Error)
	assert.Equal(t, "Data Entry Operator", job.Title)
	assert.Equal(t, 1, job.ApplyCount)

	var user domain.User
	require.NoError(t, gdb.First(&user, 7).Error)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, 1, user.AppliedCount)

	assert.Equal(t, "a@x.com", notifier.waitSend(t))
}

func TestSubmitMaterializesJobOnce(t *testing.T) {
	svc, gdb, _ := newTestService(t)
	// Jobs table intentionally left empty; id 1 exists only in the catalog

	receipt, err := svc.SubmitApplication(7, domain.RoleJobseeker, 1)
	require.NoError(t, err)
	require.True(t, receipt.Applied)

	var count int64
	require.NoError(t, gdb.Model(&domain.Job{}).Where("id = ?", 1).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// Second submission must reuse the row, not create another
	_, err = svc.SubmitApplication(7, domain.RoleJobseeker, 1)
	require.NoError(t, err)
	require.NoError(t, gdb.Model(&domain.Job{}).Where("id = ?", 1).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var job domain.Job
	require.NoError(t, gdb.First(&job, 1).Error)
	assert.Equal(t, 2, job.ApplyCount)
}

func TestSubmitForbiddenForEmployers(t *testing.T) {
	svc, gdb, notifier := newTestService(t)
	db.SeedJobs(gdb, catalog.DefaultSeed())

	_, err := svc.SubmitApplication(2, domain.RoleEmployer, 1)
	require.ErrorIs(t, err, ErrForbidden)

	var apps int64
	require.NoError(t, gdb.Model(&domain.Application{}).Count(&apps).Error)
	assert.Zero(t, apps)
	var job domain.Job
	require.NoError(t, gdb.First(&job, 1).Error)
	assert.Zero(t, job.ApplyCount)
	notifier.assertNoSend(t)
}

func TestSubmitUnknownJobRecordsGhost(t *testing.T) {
	svc, gdb, notifier := newTestService(t)

	receipt, err := svc.SubmitApplication(7, domain.RoleJobseeker, 99)
	require.NoError(t, err)
	assert.True(t, receipt.Applied)

	var app domain.Application
	require.NoError(t, gdb.First(&app).Error)
	assert.Equal(t, uint(99), app.JobID)

	// No job row materialized for the unknown id
	var count int64
	require.NoError(t, gdb.Model(&domain.Job{}).Count(&count).Error)
	assert.Zero(t, count)

	// The submission is still acknowledged to the applicant
	assert.Equal(t, "a@x.com", notifier.waitSend(t))
}

func TestSubmitWithoutIdentityStillRecords(t *testing.T) {
	svc, gdb, notifier := newTestService(t)
	db.SeedJobs(gdb, catalog.DefaultSeed())

	// Subject 42 is unknown to the identity store
	receipt, err := svc.SubmitApplication(42, domain.RoleJobseeker, 1)
	require.NoError(t, err)
	assert.True(t, receipt.Applied)

	var apps int64
	require.NoError(t, gdb.Model(&domain.Application{}).Count(&apps).Error)
	assert.Equal(t, int64(1), apps)

	// No mirror row and no email without a resolved identity
	var users int64
	require.NoError(t, gdb.Model(&domain.User{}).Count(&users).Error)
	assert.Zero(t, users)
	notifier.assertNoSend(t)
}

func TestSubmitMirrorsUserOnce(t *testing.T) {
	svc, gdb, _ := newTestService(t)
	db.SeedJobs(gdb, catalog.DefaultSeed())

	_, err := svc.SubmitApplication(7, domain.RoleJobseeker, 1)
	require.NoError(t, err)
	_, err = svc.SubmitApplication(7, domain.RoleJobseeker, 2)
	require.NoError(t, err)

	var users []domain.User
	require.NoError(t, gdb.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, uint(7), users[0].ID)
	assert.Equal(t, 2, users[0].AppliedCount)
}

func TestSubmitAbsorbsStorageFailure(t *testing.T) {
	svc, gdb, notifier := newTestService(t)
	db.SeedJobs(gdb, catalog.DefaultSeed())
	// Break the ledger write so the transaction must roll back
	require.NoError(t, gdb.Migrator().DropTable(&domain.Application{}))

	receipt, err := svc.SubmitApplication(7, domain.RoleJobseeker, 1)
	require.NoError(t, err) // The caller still sees success
	assert.False(t, receipt.Applied)
	assert.Zero(t, receipt.ApplicationID)

	// The rollback covers the counter and the user mirror too
	var job domain.Job
	require.NoError(t, gdb.First(&job, 1).Error)
	assert.Zero(t, job.ApplyCount)
	var users int64
	require.NoError(t, gdb.Model(&domain.User{}).Count(&users).Error)
	assert.Zero(t, users)

	// Notification is independent of the ledger outcome
	assert.Equal(t, "a@x.com", notifier.waitSend(t))
}

func TestSubmitSurvivesNotifierFailure(t *testing.T) {
	svc, gdb, notifier := newTestService(t)
	db.SeedJobs(gdb, catalog.DefaultSeed())
	notifier.err = errors.New("smtp down")

	receipt, err := svc.SubmitApplication(7, domain.RoleJobseeker, 1)
	require.NoError(t, err)
	assert.True(t, receipt.Applied)
	notifier.waitSend(t)

	var job domain.Job
	require.NoError(t, gdb.First(&job, 1).Error)
	assert.Equal(t, 1, job.ApplyCount)
}

func TestListJobsPrefersRelationalRows(t *testing.T) {
	svc, gdb, _ := newTestService(t)

	// Empty table falls back to the seed catalog verbatim
	jobs := svc.ListJobs()
	require.Len(t, jobs, len(catalog.DefaultSeed()))
	assert.Equal(t, "Data Entry Operator", jobs[0].Title)

	// Once rows exist, only they are returned
	require.NoError(t, gdb.Create(&domain.Job{ID: 1, Title: "Data Entry Operator", Type: domain.TypeJob}).Error)
	jobs = svc.ListJobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, uint(1), jobs[0].ID)
}

func TestAddJobSharesIDAcrossStores(t *testing.T) {
	svc, gdb, _ := newTestService(t)

	job := svc.AddJob("Braille Instructor", "Vision Trust", "Teach braille literacy.", domain.TypeTraining)
	assert.Equal(t, uint(11), job.ID) // Seed catalog ends at 10

	var row domain.Job
	require.NoError(t, gdb.First(&row, job.ID).Error)
	assert.Equal(t, "Braille Instructor", row.Title)

	// The new posting resolves from either store
	receipt, err := svc.SubmitApplication(7, domain.RoleJobseeker, job.ID)
	require.NoError(t, err)
	assert.True(t, receipt.Applied)
	assert.Equal(t, job.ID, receipt.JobID)
}
