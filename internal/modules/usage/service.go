package usage

import "context"

// Service meters language-understanding calls per user and month.
type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// Consume deducts one call from the user's monthly allowance.
// If the user row does not exist yet it is initialised and the call is
// immediately consumed. Returns ErrQuotaExhausted when the quota for the
// current month is used up.
func (s *Service) Consume(ctx context.Context, uid string) error {
	err := s.store.ConsumeCall(ctx, uid)
	if err != ErrQuotaExhausted {
		return err
	}

	// Row may be missing: try to create it, then retry the deduction once.
	if initErr := s.store.EnsureUser(ctx, uid); initErr != nil {
		return initErr
	}
	return s.store.ConsumeCall(ctx, uid)
}
