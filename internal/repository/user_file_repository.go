package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gramhealth-go/internal/model"
	"gramhealth-go/pkg/log"
)

// fileUserRepository keeps credentials in a flat JSON object of username -> digest.
// A missing or unreadable file is an empty store. Writes go through a temp file
// and rename, and are serialized by mu; the duplicate check is repeated against
// the file contents at write time.
type fileUserRepository struct {
	path string
	mu   sync.Mutex
}

// NewFileUserRepository creates a UserRepository backed by the JSON file at path.
func NewFileUserRepository(path string) UserRepository {
	return &fileUserRepository{path: path}
}

func (r *fileUserRepository) load() map[string]string {
	users := map[string]string{}
	data, err := os.ReadFile(r.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warnf("[UserStore] cannot read %s, treating as empty: %v", r.path, err)
		}
		return users
	}
	if err := json.Unmarshal(data, &users); err != nil {
		log.Warnf("[UserStore] %s is corrupt, treating as empty: %v", r.path, err)
		return map[string]string{}
	}
	return users
}

func (r *fileUserRepository) save(users map[string]string) error {
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}
	if dir := filepath.Dir(r.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create users dir: %w", err)
		}
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write users: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("replace users file: %w", err)
	}
	return nil
}

// Create adds user unless the username is already present.
func (r *fileUserRepository) Create(user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := r.load()
	if _, exists := users[user.Username]; exists {
		return ErrDuplicateUsername
	}
	users[user.Username] = user.Password
	return r.save(users)
}

// FindByUsername returns the stored digest for username.
func (r *fileUserRepository) FindByUsername(username string) (*model.User, error) {
	r.mu.Lock()
	users := r.load()
	r.mu.Unlock()

	digest, ok := users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &model.User{Username: username, Password: digest}, nil
}
