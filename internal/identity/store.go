// Package identity is the durable identity provider: a JSON file of
// accounts with bcrypt password hashes. The relational users table is only
// a lazily-written mirror of this store and is never authoritative.
package identity

import (
	"encoding/json" // Account file format
	"errors"        // Sentinel errors
	"os"            // File access
	"sync"          // Guards the account file

	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
)

// Sentinel errors returned by the store
var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrNotFound           = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Account is one identity record as stored in the users file
type Account struct {
	ID             uint     `json:"id"`                       // Unique account id
	Name           string   `json:"name"`                     // Display name
	Email          string   `json:"email"`                    // Unique email
	Password       string   `json:"password"`                 // Bcrypt hash
	Role           string   `json:"role"`                     // jobseeker or employer
	DisabilityType string   `json:"disabilityType,omitempty"` // Optional profile field
	Skills         []string `json:"skills,omitempty"`         // Optional profile field
	Experience     string   `json:"experience,omitempty"`     // Optional profile field
	Location       string   `json:"location,omitempty"`       // Optional profile field
	Phone          string   `json:"phone,omitempty"`          // Optional profile field
	Bio            string   `json:"bio,omitempty"`            // Optional profile field
}

// Store is a file-backed account store
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore opens the account file at path, creating it with default
// accounts when it does not exist yet.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		defaults := []Account{
			{ID: 1, Name: "Preetha", Email: "preetha@example.com", Password: mustHash("123456"), Role: "jobseeker"},
			{ID: 2, Name: "Employer Ltd", Email: "employer@example.com", Password: mustHash("employer123"), Role: "employer"},
		}
		if err := s.save(defaults); err != nil {
			return nil, err
		}
		logrus.WithField("path", path).Info("Created identity store with default accounts")
	}
	return s, nil
}

// Register creates a new account with a hashed password.
// Fails with ErrDuplicateEmail when the email is taken.
func (s *Store) Register(name, email, password, role string) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	accounts, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, a := range accounts {
		if a.Email == email {
			return nil, ErrDuplicateEmail
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	acc := Account{ID: nextID(accounts), Name: name, Email: email, Password: string(hash), Role: role}
	accounts = append(accounts, acc)
	if err := s.save(accounts); err != nil {
		return nil, err
	}
	return &acc, nil
}

// Authenticate checks credentials and returns the matching account.
// Fails with ErrInvalidCredentials on an unknown email or a wrong password.
func (s *Store) Authenticate(email, password string) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	accounts, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if accounts[i].Email == email {
			if bcrypt.CompareHashAndPassword([]byte(accounts[i].Password), []byte(password)) != nil {
				return nil, ErrInvalidCredentials
			}
			return &accounts[i], nil
		}
	}
	return nil, ErrInvalidCredentials
}

// Lookup returns the account with the given id
func (s *Store) Lookup(id uint) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	accounts, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if accounts[i].ID == id {
			return &accounts[i], nil
		}
	}
	return nil, ErrNotFound
}

// Update applies fn to the account with the given id and persists the
// result. fn may reject the change by returning an error.
func (s *Store) Update(id uint, fn func(*Account, []Account) error) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	accounts, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if accounts[i].ID == id {
			if err := fn(&accounts[i], accounts); err != nil {
				return nil, err
			}
			if err := s.save(accounts); err != nil {
				return nil, err
			}
			return &accounts[i], nil
		}
	}
	return nil, ErrNotFound
}

// load reads all accounts from the file. Caller holds the lock.
func (s *Store) load() ([]Account, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	var accounts []Account
	if err := json.Unmarshal(data, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// save writes all accounts back to the file. Caller holds the lock.
// The write goes to a temp file first so a crash mid-write cannot leave a
// truncated store behind.
func (s *Store) save(accounts []Account) error {
	data, err := json.Marshal(accounts)
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// nextID returns one past the highest assigned id
func nextID(accounts []Account) uint {
	var max uint
	for _, a := range accounts {
		if a.ID > max {
			max = a.ID
		}
	}
	return max + 1
}

// mustHash is only used for the default seed accounts
func mustHash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return string(hash)
}
