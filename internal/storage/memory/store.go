// Package memory keeps records in process. It backs handler tests and STORE_DRIVER=memory.
package memory

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hongminglow/drug-catalog-be/internal/models"
	"github.com/hongminglow/drug-catalog-be/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store enforces the same unique keys as the database stores.
type Store struct {
	mu     sync.RWMutex
	nextID int64
	users  map[string]*models.User // by username
	admins map[string]*models.Admin // by email
	drugs  map[string]*models.Drug  // by lower-cased name
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		users:  make(map[string]*models.User),
		admins: make(map[string]*models.Admin),
		drugs:  make(map[string]*models.Drug),
	}
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() {}

func (s *Store) newID() string {
	s.nextID++
	return strconv.FormatInt(s.nextID, 10)
}

func (s *Store) CreateUser(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.users[user.Username]; taken || s.emailTaken(user.Email) {
		return models.User{}, storage.ErrAlreadyExists
	}
	user.ID = s.newID()
	user.Bookmarks = []string{}
	user.CreatedAt = time.Now().UTC()
	s.users[user.Username] = &user
	return cloneUser(user), nil
}

func (s *Store) emailTaken(email string) bool {
	for _, u := range s.users {
		if u.Email == email {
			return true
		}
	}
	return false
}

func (s *Store) FindByUsername(_ context.Context, username string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[username]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return cloneUser(*u), nil
}

func (s *Store) FindByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return cloneUser(*u), nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

func (s *Store) AddBookmark(_ context.Context, username, drugName string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if u.HasBookmark(drugName) {
		return nil, storage.ErrAlreadyExists
	}
	u.Bookmarks = append(u.Bookmarks, drugName)
	return slices.Clone(u.Bookmarks), nil
}

func (s *Store) RemoveBookmark(_ context.Context, username, drugName string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok || !u.HasBookmark(drugName) {
		return nil, storage.ErrNotFound
	}
	u.Bookmarks = slices.DeleteFunc(u.Bookmarks, func(b string) bool { return b == drugName })
	return slices.Clone(u.Bookmarks), nil
}

func (s *Store) RenameUser(_ context.Context, currentUsername, newUsername string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[currentUsername]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	if currentUsername == newUsername {
		return cloneUser(*u), nil
	}
	if _, taken := s.users[newUsername]; taken {
		return models.User{}, storage.ErrAlreadyExists
	}
	delete(s.users, currentUsername)
	u.Username = newUsername
	s.users[newUsername] = u
	return cloneUser(*u), nil
}

func (s *Store) UpdatePassword(_ context.Context, username, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		return storage.ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (s *Store) CreateDrug(_ context.Context, drug models.Drug) (models.Drug, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(drug.DrugName)
	if _, taken := s.drugs[key]; taken {
		return models.Drug{}, storage.ErrAlreadyExists
	}
	drug.Normalize()
	drug.ID = s.newID()
	drug.CreatedAt = time.Now().UTC()
	s.drugs[key] = &drug
	return drug, nil
}

func (s *Store) FindDrugByName(_ context.Context, drugName string) (models.Drug, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.drugs[strings.ToLower(drugName)]
	if !ok {
		return models.Drug{}, storage.ErrNotFound
	}
	return *d, nil
}

func (s *Store) CreateAdmin(_ context.Context, admin models.Admin) (models.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.admins[admin.Email]; taken {
		return models.Admin{}, storage.ErrAlreadyExists
	}
	admin.ID = s.newID()
	admin.Bookmarks = []string{}
	admin.CreatedAt = time.Now().UTC()
	s.admins[admin.Email] = &admin
	return admin, nil
}

func (s *Store) FindAdminByEmail(_ context.Context, email string) (models.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.admins[email]
	if !ok {
		return models.Admin{}, storage.ErrNotFound
	}
	return *a, nil
}

func cloneUser(u models.User) models.User {
	u.Bookmarks = slices.Clone(u.Bookmarks)
	if u.Bookmarks == nil {
		u.Bookmarks = []string{}
	}
	return u
}
