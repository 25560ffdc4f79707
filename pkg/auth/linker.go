package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/brightpath/authkit/pkg/logger"
)

// LinkParams are the inputs for mapping a resolved identity onto the
// canonical user store.
type LinkParams struct {
	Email             string
	Name              string
	Image             string
	Provider          string
	ProviderAccountID string
}

// AccountLinker maps a resolved identity to exactly one persisted user
// record, creating, updating, or reconciling as needed. The only write
// contention it handles is the concurrent-create race on the unique email
// index, resolved optimistically by a single re-read instead of locking.
type AccountLinker struct {
	store  UserStore
	logger *slog.Logger
	now    func() time.Time
}

// LinkerOption configures an AccountLinker.
type LinkerOption func(*AccountLinker)

// WithLinkerLogger sets a custom logger for the linker.
func WithLinkerLogger(logger *slog.Logger) LinkerOption {
	return func(l *AccountLinker) {
		l.logger = logger
	}
}

// NewAccountLinker creates a linker over the given store.
func NewAccountLinker(store UserStore, opts ...LinkerOption) *AccountLinker {
	l := &AccountLinker{
		store:  store,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Link returns the single canonical record for the identity. Failures that
// cannot be recovered locally wrap ErrAccountLinkFailed; callers decide
// whether that blocks sign-in.
func (l *AccountLinker) Link(ctx context.Context, p LinkParams) (*User, error) {
	user, err := l.store.FindByEmailOrProvider(ctx, p.Email, p.Provider, p.ProviderAccountID)
	if err == nil {
		return l.reconcile(ctx, user, p)
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, errors.Join(ErrAccountLinkFailed, err)
	}

	created, err := l.store.Create(ctx, l.newUser(p))
	if err == nil {
		return created, nil
	}
	if !errors.Is(err, ErrEmailTaken) {
		return nil, errors.Join(ErrAccountLinkFailed, err)
	}

	// Lost the create race to a concurrent sign-in for the same identity;
	// the record exists now, so one re-read resolves it.
	l.logger.InfoContext(ctx, "duplicate identity race recovered",
		logger.Provider(p.Provider),
		logger.Email(p.Email),
		slog.String("provider_account_id", p.ProviderAccountID),
	)

	user, reErr := l.store.FindByEmailOrProvider(ctx, p.Email, p.Provider, p.ProviderAccountID)
	if reErr != nil {
		return nil, errors.Join(ErrAccountLinkFailed, reErr)
	}
	return user, nil
}

// reconcile updates the stored record in place when the incoming provider
// facts drifted from it. Idempotent: a no-op when nothing changed.
func (l *AccountLinker) reconcile(ctx context.Context, user *User, p LinkParams) (*User, error) {
	params := UpdateUserParams{}
	changed := false

	if p.Provider != "" && user.Provider != p.Provider {
		params.Provider = &p.Provider
		changed = true
	}
	if p.ProviderAccountID != "" && user.ProviderAccountID != p.ProviderAccountID {
		params.ProviderAccountID = &p.ProviderAccountID
		changed = true
	}
	if p.Name != "" && user.Name != p.Name {
		params.Name = &p.Name
		changed = true
	}
	if p.Image != "" && user.Image != p.Image {
		params.Image = &p.Image
		changed = true
	}

	if !changed {
		return user, nil
	}

	updated, err := l.store.Update(ctx, user.ID, params)
	if err != nil {
		return nil, errors.Join(ErrAccountLinkFailed, err)
	}
	return updated, nil
}

func (l *AccountLinker) newUser(p LinkParams) *User {
	first, last := splitName(p.Name)
	user := &User{
		Name:              p.Name,
		FirstName:         first,
		LastName:          last,
		Email:             p.Email,
		Image:             p.Image,
		Provider:          p.Provider,
		ProviderAccountID: p.ProviderAccountID,
	}
	if !IsPlaceholderEmail(p.Email) {
		now := l.now()
		user.EmailVerifiedAt = &now
	}
	return user
}
