package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Ines207/ARI/internal/entity"
	"github.com/Ines207/ARI/internal/repository/contract"
)

// UserStore persists every user record in a single JSON document. Each
// mutation reads the whole file, changes one entry and rewrites the file via
// temp-file rename. A process-local mutex serializes writers; concurrent
// writers from other processes can still lose updates (last writer wins),
// which is an accepted limitation at this scale.
type UserStore struct {
	path string
	mu   sync.Mutex
}

var _ contract.UserStore = &UserStore{}

func NewUserStore(path string) *UserStore {
	return &UserStore{path: path}
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return nil, err
	}

	user, ok := users[username]
	if !ok {
		return nil, contract.ErrNotFound
	}
	return user, nil
}

func (s *UserStore) Insert(ctx context.Context, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return err
	}

	if _, ok := users[user.Username]; ok {
		return contract.ErrDuplicate
	}

	users[user.Username] = user
	return s.save(users)
}

func (s *UserStore) Update(ctx context.Context, username string, mutate func(*entity.User) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return err
	}

	user, ok := users[username]
	if !ok {
		return contract.ErrNotFound
	}

	if err := mutate(user); err != nil {
		return err
	}

	users[username] = user
	return s.save(users)
}

func (s *UserStore) load() (map[string]*entity.User, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]*entity.User), nil
		}
		return nil, fmt.Errorf("read user store: %w", err)
	}
	if len(data) == 0 {
		return make(map[string]*entity.User), nil
	}

	var users map[string]*entity.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("parse user store: %w", err)
	}
	if users == nil {
		users = make(map[string]*entity.User)
	}
	return users, nil
}

// save rewrites the whole document. The rename keeps the store valid
// structured data even if the process dies mid-write.
func (s *UserStore) save(users map[string]*entity.User) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create store dir: %w", err)
		}
	}

	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal user store: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write user store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace user store: %w", err)
	}
	return nil
}
