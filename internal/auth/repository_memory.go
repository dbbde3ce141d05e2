package auth

import (
	"context"

	"github.com/google/uuid"
)

// InMemoryStaffRepository is used for unit tests
type InMemoryStaffRepository struct {
	staff map[string]*Staff
}

func NewInMemoryStaffRepository() *InMemoryStaffRepository {
	return &InMemoryStaffRepository{
		staff: make(map[string]*Staff),
	}
}

func (r *InMemoryStaffRepository) Save(ctx context.Context, staff *Staff) error {
	// Generate UUID if not already set
	if staff.ID == "" {
		staff.ID = uuid.New().String()
	}
	r.staff[staff.Email] = staff
	return nil
}

func (r *InMemoryStaffRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, exists := r.staff[email]
	return exists, nil
}

func (r *InMemoryStaffRepository) FindByEmail(ctx context.Context, email string) (*Staff, error) {
	staff, ok := r.staff[email]
	if !ok {
		return nil, ErrStaffNotFound
	}
	return staff, nil
}
