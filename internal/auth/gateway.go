// Package auth is the boundary to the identity provider. Sign-in itself is
// delegated; this package only records who is signed in locally.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Juicern/remagik/internal/domain"
)

var ErrInvalidIdentity = errors.New("invalid_identity")

type Gateway interface {
	SignIn(ctx context.Context, email string) (domain.UserID, error)
	CurrentUser() (domain.UserID, bool)
	SignOut() error
}

// ProfileGateway stores the signed-in identity in profile.json under the
// client's profile directory.
type ProfileGateway struct {
	mu   sync.Mutex
	path string
	user domain.UserID
}

type profile struct {
	Email string `json:"email"`
}

func NewProfileGateway(dir string) (*ProfileGateway, error) {
	g := &ProfileGateway{path: filepath.Join(dir, "profile.json")}

	data, err := os.ReadFile(g.path)
	if errors.Is(err, os.ErrNotExist) {
		return g, nil
	}
	if err != nil {
		return nil, err
	}
	var p profile
	if err := json.Unmarshal(data, &p); err == nil {
		g.user = domain.UserID(p.Email)
	}
	return g, nil
}

func (g *ProfileGateway) SignIn(ctx context.Context, email string) (domain.UserID, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil {
		return "", ErrInvalidIdentity
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(g.path), 0o700); err != nil {
		return "", err
	}
	data, err := json.Marshal(profile{Email: addr.Address})
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(g.path, data, 0o600); err != nil {
		return "", err
	}
	g.user = domain.UserID(addr.Address)
	return g.user, nil
}

func (g *ProfileGateway) CurrentUser() (domain.UserID, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.user, !g.user.Empty()
}

func (g *ProfileGateway) SignOut() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.user = ""
	if err := os.Remove(g.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Static is a fixed identity, used for tests and for non-interactive hosts.
type Static struct {
	User domain.UserID
}

func (s *Static) SignIn(_ context.Context, email string) (domain.UserID, error) {
	if strings.TrimSpace(email) == "" {
		return "", ErrInvalidIdentity
	}
	s.User = domain.UserID(email)
	return s.User, nil
}

func (s *Static) CurrentUser() (domain.UserID, bool) {
	return s.User, !s.User.Empty()
}

func (s *Static) SignOut() error {
	s.User = ""
	return nil
}
