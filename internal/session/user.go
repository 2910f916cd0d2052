package session

import (
	"encoding/json"
	"fmt"
)

// userKey holds the profile of the account that last logged in.
const userKey = "user"

// CachedUser is what `auth status` can show without a network round trip.
type CachedUser struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// SaveUser records the logged-in account.
func (s *Store) SaveUser(user CachedUser) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshalling cached user: %w", err)
	}
	return s.Set(userKey, string(data))
}

// LoadUser returns the cached account, or nil when nobody is logged in.
func (s *Store) LoadUser() (*CachedUser, error) {
	raw, ok, err := s.Get(userKey)
	if err != nil || !ok {
		return nil, err
	}
	var user CachedUser
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("unmarshalling cached user: %w", err)
	}
	return &user, nil
}

// DeleteUser forgets the cached account.
func (s *Store) DeleteUser() error {
	return s.Delete(userKey)
}
