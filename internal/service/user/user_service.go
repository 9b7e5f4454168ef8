package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/Domenick1991/staybooking/internal/domain"
	"github.com/Domenick1991/staybooking/internal/repository"
	"github.com/sirupsen/logrus"
)

type UserUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	CurrentUser(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, email string, input ProfileInput) (*domain.User, error)
	UpdateRoles(ctx context.Context, userID int64, roles []domain.RoleName) (*domain.User, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) (bool, error)
}

type TokenIssuer interface {
	Issue(user domain.User) (string, error)
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type ProfileInput struct {
	FirstName string
	LastName  string
	Password  string
}

type UserService struct {
	users  repository.UserRepository
	roles  repository.RoleRepository
	hasher PasswordHasher
	tokens TokenIssuer
	log    logrus.FieldLogger
}

func NewUserService(
	users repository.UserRepository,
	roles repository.RoleRepository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	log logrus.FieldLogger,
) *UserService {
	return &UserService{users: users, roles: roles, hasher: hasher, tokens: tokens, log: log}
}

// Register creates a CUSTOMER account. The email must be unused and the
// CUSTOMER role must exist in the store.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	email := strings.TrimSpace(input.Email)

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("can't check email %s: %w", email, err)
	}
	if exists {
		return nil, fmt.Errorf("user with email %s already exists: %w", email, domain.ErrDuplicateEmail)
	}

	role, err := s.roles.GetByName(ctx, domain.RoleCustomer)
	if domain.IsNotFound(err) {
		return nil, fmt.Errorf("can't find role %s: %w", domain.RoleCustomer, domain.ErrConfiguration)
	}
	if err != nil {
		return nil, fmt.Errorf("can't load role %s: %w", domain.RoleCustomer, err)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Roles:        []domain.Role{*role},
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("can't save user %s: %w", email, err)
	}
	s.log.WithField("user_id", u.ID).Info("user registered")
	return u, nil
}

// Login returns a signed access token. Unknown emails and wrong passwords
// fail the same way.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsNotFound(err) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("can't get user by email %s: %w", email, err)
	}

	ok, err := s.hasher.Compare(u.PasswordHash, password)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", domain.ErrInvalidCredentials
	}
	return s.tokens.Issue(*u)
}

func (s *UserService) CurrentUser(ctx context.Context, email string) (*domain.User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("can't get user by email %s: %w", email, err)
	}
	return u, nil
}

// UpdateProfile replaces names and password; the password is re-hashed.
func (s *UserService) UpdateProfile(ctx context.Context, email string, input ProfileInput) (*domain.User, error) {
	u, err := s.CurrentUser(ctx, email)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	u.FirstName = input.FirstName
	u.LastName = input.LastName
	u.PasswordHash = hash

	if err := s.users.UpdateProfile(ctx, u); err != nil {
		return nil, fmt.Errorf("can't update user %d: %w", u.ID, err)
	}
	return u, nil
}

// UpdateRoles replaces the user's role set.
func (s *UserService) UpdateRoles(ctx context.Context, userID int64, names []domain.RoleName) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("can't get user by id %d: %w", userID, err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: at least one role is required", domain.ErrInvalidArgument)
	}

	roles := make([]domain.Role, 0, len(names))
	for _, name := range names {
		role, err := s.roles.GetByName(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("can't find role %s: %w", name, err)
		}
		roles = append(roles, *role)
	}

	if err := s.users.SetRoles(ctx, u.ID, roles); err != nil {
		return nil, fmt.Errorf("can't update roles of user %d: %w", u.ID, err)
	}
	u.Roles = roles
	s.log.WithFields(logrus.Fields{"user_id": u.ID, "roles": u.RoleNames()}).Info("user roles updated")
	return u, nil
}

var _ UserUseCase = (*UserService)(nil)
