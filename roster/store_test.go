package roster

import (
	"context"
	"fmt"
)

// memstore is an in-memory user collection keyed by email.
type memstore struct {
	users  map[string]*NewUser
	order  []string
	ops    []string
	failOn map[string]error
}

func newMemstore(users ...NewUser) *memstore {
	s := memstore{
		users:  map[string]*NewUser{},
		failOn: map[string]error{},
	}

	for _, u := range users {
		s.users[u.Email] = &u
		s.order = append(s.order, u.Email)
	}

	return &s
}

func (s *memstore) Exists(ctx context.Context, email string) (bool, error) {
	_, ok := s.users[email]
	return ok, nil
}

func (s *memstore) Insert(ctx context.Context, user NewUser) error {
	s.ops = append(s.ops, "insert "+user.Email)
	if err := s.failOn[user.Email]; err != nil {
		return err
	}

	if _, ok := s.users[user.Email]; ok {
		return fmt.Errorf("duplicate key %v", user.Email)
	}

	s.users[user.Email] = &user
	s.order = append(s.order, user.Email)

	return nil
}

func (s *memstore) Update(ctx context.Context, email string, profile Profile) error {
	s.ops = append(s.ops, "update "+email)
	if err := s.failOn[email]; err != nil {
		return err
	}

	if u, ok := s.users[email]; ok {
		u.Profile = profile
	}

	return nil
}

func (s *memstore) Purge(ctx context.Context, year int) (int64, error) {
	s.ops = append(s.ops, fmt.Sprintf("purge %d", year))

	deleted := int64(0)
	order := []string{}
	for _, email := range s.order {
		if u := s.users[email]; u.Year == year && u.Type == TypeStudent {
			delete(s.users, email)
			deleted++
		} else {
			order = append(order, email)
		}
	}

	s.order = order

	return deleted, nil
}
