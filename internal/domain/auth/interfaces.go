package auth

import "context"

// UserRepository is the data access needed by the auth service.
// *Repository satisfies it; tests substitute mocks.
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, u *User) error
}

type TokenIssuer interface {
	GenerateToken(userID int64, role string) (string, error)
}
