package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/pcabrera/inmo/api/internal/logger"
	"github.com/pcabrera/inmo/api/internal/models"
	"github.com/pcabrera/inmo/api/internal/store"
)

// Service-level errors
var (
	ErrNoCurrentUser = errors.New("document has no users")
)

// AccountData bundles the current user with their team, the shape
// fetch_user_data returns.
type AccountData struct {
	User models.User `json:"user"`
	Team models.Team `json:"team"`
}

// Subscription is the billing summary returned by fetch_subscription.
// Billing is not integrated; the trial summary is fixed.
type Subscription struct {
	Plan     string `json:"plan"`
	DaysLeft int    `json:"days_left"`
}

// AccountService defines the business logic for user and team accounts.
type AccountService interface {
	// CurrentAccount returns the current user and their team. The first
	// user in the document acts as the session user.
	CurrentAccount(ctx context.Context) (*AccountData, error)

	// SaveUserData merges the incoming fields into the current user.
	SaveUserData(ctx context.Context, in models.User) error

	// UsersInTeam returns the users belonging to the team, or all users
	// when teamID is empty.
	UsersInTeam(ctx context.Context, teamID string) ([]models.User, error)

	// Subscription returns the current billing plan summary.
	Subscription(ctx context.Context) (*Subscription, error)

	// Notifications returns the notifications addressed to a user, or all
	// notifications when userID is empty.
	Notifications(ctx context.Context, userID string) ([]models.Notification, error)
}

type accountService struct {
	store *store.Store
	log   *logger.Logger
}

// NewAccountService creates a new instance of AccountService.
func NewAccountService(st *store.Store, log *logger.Logger) AccountService {
	return &accountService{store: st, log: log}
}

func (s *accountService) CurrentAccount(ctx context.Context) (*AccountData, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		s.log.Error("Failed to load document for account data", err, nil)
		return nil, fmt.Errorf("failed to fetch account: %w", err)
	}
	if len(doc.Users) == 0 {
		return nil, ErrNoCurrentUser
	}

	out := &AccountData{User: doc.Users[0]}
	if len(doc.Teams) > 0 {
		out.Team = doc.Teams[0]
	}
	return out, nil
}

func (s *accountService) SaveUserData(ctx context.Context, in models.User) error {
	err := s.store.Update(ctx, func(doc *models.Document) error {
		if len(doc.Users) == 0 {
			return ErrNoCurrentUser
		}
		u := &doc.Users[0]
		if in.Email != "" {
			u.Email = in.Email
		}
		if in.Name != "" {
			u.Name = in.Name
		}
		if in.Role != "" {
			u.Role = in.Role
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNoCurrentUser) {
			return err
		}
		s.log.Error("Failed to save user data", err, nil)
		return fmt.Errorf("failed to save user data: %w", err)
	}

	s.log.Info("User data saved", nil)
	return nil
}

func (s *accountService) UsersInTeam(ctx context.Context, teamID string) ([]models.User, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		s.log.Error("Failed to load document for team users", err, nil)
		return nil, fmt.Errorf("failed to list team users: %w", err)
	}
	if teamID == "" {
		return doc.Users, nil
	}

	member := make(map[string]bool, len(doc.TeamMembers))
	for _, tm := range doc.TeamMembers {
		if tm.TeamID == teamID {
			member[tm.UserID] = true
		}
	}
	out := make([]models.User, 0, len(member))
	for _, u := range doc.Users {
		if member[u.ID] {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *accountService) Subscription(_ context.Context) (*Subscription, error) {
	return &Subscription{Plan: "trial", DaysLeft: 3}, nil
}

func (s *accountService) Notifications(ctx context.Context, userID string) ([]models.Notification, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		s.log.Error("Failed to load document for notifications", err, nil)
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	if userID == "" {
		return doc.Notifications, nil
	}

	out := make([]models.Notification, 0, len(doc.Notifications))
	for _, n := range doc.Notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}
