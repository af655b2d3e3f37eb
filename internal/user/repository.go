package user

import (
	"errors"
	"sync"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already registered")
	ErrWeakPassword       = errors.New("weak password")
	ErrInvalidCode        = errors.New("invalid verification code")
)

type Repository interface {
	GetByID(id int) (User, error)
	GetByEmail(email string) (User, error)
	Create(u User) (User, error)
	// Update replaces the profile fields (name, phone, address, opt-ins).
	Update(id int, u User) (User, error)
	UpdatePassword(id int, passwordHash string) error
	// Verify marks the account verified and clears the pending code when the
	// code matches.
	Verify(email, code string) error
	SetSmsAlertOptIn(id int, optIn bool) error
}

type InMemoryRepository struct {
	mu     sync.RWMutex
	users  []User
	nextID int
}

func NewInMemoryRepository(seed []User) *InMemoryRepository {
	repo := &InMemoryRepository{
		users:  make([]User, 0, len(seed)),
		nextID: 1,
	}

	maxID := 0
	for _, u := range seed {
		repo.users = append(repo.users, u)
		if u.ID > maxID {
			maxID = u.ID
		}
	}

	repo.nextID = maxID + 1
	return repo
}

func (r *InMemoryRepository) GetByID(id int) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *InMemoryRepository) GetByEmail(email string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *InMemoryRepository) Create(u User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == 0 {
		u.ID = r.nextID
		r.nextID++
	}
	r.users = append(r.users, u)
	return u, nil
}

func (r *InMemoryRepository) Update(id int, update User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, u := range r.users {
		if u.ID == id {
			u.Name = update.Name
			u.Phone = update.Phone
			u.Street = update.Street
			u.City = update.City
			u.State = update.State
			u.Zip = update.Zip
			u.MarketingOptIn = update.MarketingOptIn
			r.users[i] = u
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *InMemoryRepository) UpdatePassword(id int, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID == id {
			r.users[i].PasswordHash = passwordHash
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) Verify(email, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].Email == email {
			if code == "" || r.users[i].VerificationCode != code {
				return ErrInvalidCode
			}
			r.users[i].IsVerified = true
			r.users[i].VerificationCode = ""
			return nil
		}
	}
	return ErrInvalidCode
}

func (r *InMemoryRepository) SetSmsAlertOptIn(id int, optIn bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID == id {
			r.users[i].SmsAlertOptIn = optIn
			return nil
		}
	}
	return ErrNotFound
}
