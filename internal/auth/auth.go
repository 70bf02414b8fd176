// Package auth holds the session credential and the login and logout calls.
package auth

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"rentalmanager/internal/client"
	"rentalmanager/internal/models"
	"rentalmanager/internal/schema"
	"rentalmanager/internal/transform"
)

const (
	LoginPath  = client.APIPrefix + "/auth/login"
	LogoutPath = client.APIPrefix + "/auth/logout"
)

var ErrNoToken = errors.New("login response carries no access token")

type Service struct {
	client  *client.Client
	session *Session
	logger  *logrus.Logger
}

func NewService(c *client.Client, session *Session, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	return &Service{client: c, session: session, logger: logger}
}

// Login exchanges credentials for an access token and stores it in the
// session.
func (s *Service) Login(ctx context.Context, creds models.Credentials) error {
	if err := schema.ValidateInput("credentials", creds); err != nil {
		return err
	}

	resp, err := s.client.Post(ctx, LoginPath, creds)
	if err != nil {
		s.logger.WithError(err).Error("Login failed")
		return fmt.Errorf("failed to log in: %w", err)
	}

	body := gjson.ParseBytes(resp.Data)
	token := body.Get("tokens.access.token").String()
	if token == "" {
		return ErrNoToken
	}

	expires, ok := schema.CoerceTime(body.Get("tokens.access.expires"))
	if !ok {
		s.logger.Warn("Ignoring unreadable token expiry")
	}
	s.session.Set(token, expires)

	if raw := body.Get("user"); raw.IsObject() {
		user, err := transform.Users.DecodeResult(raw)
		if err != nil {
			s.logger.WithError(err).Warn("Ignoring malformed user in login response")
		} else {
			s.session.SetUser(&user)
		}
	}

	s.logger.WithField("expires", expires).Info("Logged in")
	return nil
}

// Logout notifies the server and clears the session. The session is
// cleared even when the request fails.
func (s *Service) Logout(ctx context.Context) error {
	defer s.session.Clear()

	if _, err := s.client.Post(ctx, LogoutPath, struct{}{}); err != nil {
		s.logger.WithError(err).Warn("Logout request failed")
		return fmt.Errorf("failed to log out: %w", err)
	}
	return nil
}
