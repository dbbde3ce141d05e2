package auth

import "context"

// StaffRepository defines the data-access contract.
// Service depends ONLY on this interface.
type StaffRepository interface {
	Save(ctx context.Context, staff *Staff) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindByEmail(ctx context.Context, email string) (*Staff, error)
}
