package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already exists")
	ErrStaffNotFound      = errors.New("staff not found")
)

type Service struct {
	repo StaffRepository
}

func NewService(repo StaffRepository) *Service {
	return &Service{repo: repo}
}

// REGISTER
func (s *Service) Register(ctx context.Context, name, email, password, role string) (*Staff, error) {
	if name == "" || email == "" || password == "" {
		return nil, errors.New("missing required fields")
	}

	// New accounts are baristas unless told otherwise.
	if role == "" {
		role = RoleBarista
	}
	if !ValidRole(role) {
		return nil, errors.New("unknown role")
	}

	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword(
		[]byte(password),
		bcrypt.DefaultCost,
	)
	if err != nil {
		return nil, err
	}

	staff := &Staff{
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
		Role:     role,
	}

	if err := s.repo.Save(ctx, staff); err != nil {
		return nil, err
	}

	return staff, nil
}

// LOGIN
func (s *Service) Login(ctx context.Context, email, password string) (*Staff, error) {
	staff, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword(
		[]byte(staff.Password),
		[]byte(password),
	)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return staff, nil
}
