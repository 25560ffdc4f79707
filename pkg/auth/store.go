package auth

import "context"

// UserStore is the persistence boundary for canonical user records.
// Implementations translate their native errors: a missing record becomes
// ErrUserNotFound, a unique-constraint violation on email becomes
// ErrEmailTaken. All operations are atomic and return the resulting entity.
type UserStore interface {
	// FindByEmailOrProvider returns the record matching the email or the
	// (provider, providerAccountID) pair. The OR match is what lets a user
	// who registered with credentials later link a social provider, or
	// re-authenticate after their provider-reported email changed.
	// Implementations ignore the provider clause when either part is empty.
	FindByEmailOrProvider(ctx context.Context, email, provider, providerAccountID string) (*User, error)

	// FindByEmail returns the record for the email, including the password
	// hash so the credential verifier can compare against it.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByID returns the record for the id with the password hash omitted;
	// it feeds session hydration and must never leak the hash outward.
	FindByID(ctx context.Context, id string) (*User, error)

	// Create inserts a new record and returns it with the store-assigned id.
	Create(ctx context.Context, user *User) (*User, error)

	// Update applies the non-nil fields and returns the updated record.
	Update(ctx context.Context, id string, params UpdateUserParams) (*User, error)

	// ValidID reports whether id is a well-formed identifier for this store.
	// The hydrator uses it to skip queries that could never match.
	ValidID(id string) bool
}

// UpdateUserParams holds the optional fields the account linker reconciles.
// Only non-nil fields are written.
type UpdateUserParams struct {
	Name              *string
	Image             *string
	Provider          *string
	ProviderAccountID *string
}
