package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
)

var (
	ErrUserExists     = errors.New("user already exists")
	ErrBadCredentials = errors.New("unknown user or wrong password")
)

// User keeps one account's credentials and lifetime results.
type User struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	Wins     int    `json:"wins"`
	Games    int    `json:"games"`
}

// WinRate returns wins over games played, zero before the first game.
func (u User) WinRate() float64 {
	if u.Games == 0 {
		return 0
	}
	return float64(u.Wins) / float64(u.Games)
}

// Users is a file-backed account registry, the local win ledger. Every
// mutation persists immediately. Safe for concurrent use.
type Users struct {
	mu    sync.Mutex
	path  string
	users map[string]*User
}

// OpenUsers loads the registry at path, starting empty when the file does
// not exist yet.
func OpenUsers(path string) (*Users, error) {
	u := &Users{path: path, users: make(map[string]*User)}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return u, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read users file: %w", err)
	}
	var list []*User
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to decode users file: %w", err)
	}
	for _, usr := range list {
		u.users[usr.Name] = usr
	}
	return u, nil
}

// Register creates a new account.
func (u *Users) Register(name, password string) error {
	if name == "" {
		return errors.New("empty user name")
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, ok := u.users[name]; ok {
		return ErrUserExists
	}
	u.users[name] = &User{Name: name, Password: password}
	return u.save()
}

// Login checks the account credentials.
func (u *Users) Login(name, password string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	usr, ok := u.users[name]
	if !ok || usr.Password != password {
		return ErrBadCredentials
	}
	return nil
}

// RecordResult adds one finished game to the account's tally.
func (u *Users) RecordResult(name string, won bool) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	usr, ok := u.users[name]
	if !ok {
		return ErrBadCredentials
	}
	usr.Games++
	if won {
		usr.Wins++
	}
	return u.save()
}

// Stats returns a copy of the account's record.
func (u *Users) Stats(name string) (User, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	usr, ok := u.users[name]
	if !ok {
		return User{}, false
	}
	return *usr, true
}

// save writes the registry sorted by name; callers hold the lock.
func (u *Users) save() error {
	list := make([]*User, 0, len(u.users))
	for _, usr := range u.users {
		list = append(list, usr)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode users: %w", err)
	}
	if err := os.WriteFile(u.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write users file: %w", err)
	}
	return nil
}
