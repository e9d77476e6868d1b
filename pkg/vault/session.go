package vault

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gammazero/workerpool"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/skynet2/ogwallet-vault/pkg/common"
	"github.com/skynet2/ogwallet-vault/pkg/database"
)

type State int32

const (
	StateLocked   = State(1)
	StateUnlocked = State(2)
	StateError    = State(3)
)

func (s State) String() string {
	switch s {
	case StateLocked:
		return "locked"
	case StateUnlocked:
		return "unlocked"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

type Status struct {
	State        State     `json:"-"`
	StateName    string    `json:"state"`
	SessionToken string    `json:"sessionToken,omitempty"`
	LastActive   time.Time `json:"lastActive,omitempty"`
	Message      string    `json:"message,omitempty"`
}

// Session owns the single store connection. Writes go through a one-worker pool so a scan
// and manual entries are queued instead of interleaved.
type Session struct {
	opener Opener
	clock  common.Clock
	writer *workerpool.WorkerPool

	mut        sync.RWMutex
	store      Store
	state      State
	token      string
	message    string
	lastActive atomic.Int64
}

func NewSession(opener Opener, clock common.Clock) *Session {
	if clock == nil {
		clock = common.SystemClock
	}

	return &Session{
		opener: opener,
		clock:  clock,
		writer: workerpool.New(1),
		state:  StateLocked,
	}
}

func (s *Session) Unlock(ctx context.Context, passphrase string) error {
	s.mut.Lock()
	defer s.mut.Unlock()

	s.closeStore(ctx)

	store, err := s.opener.Open(ctx, passphrase)
	if err != nil && errors.Is(err, common.ErrVaultCorrupted) {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("vault store is not a database, recreating")

		if destroyErr := s.opener.Destroy(ctx); destroyErr != nil {
			err = errors.Join(err, destroyErr)
		} else {
			store, err = s.opener.Open(ctx, passphrase)
		}
	}

	if err != nil {
		s.state = StateError
		s.token = ""
		s.message = err.Error()

		zerolog.Ctx(ctx).Error().Err(err).Msg("vault unlock failed")

		return err
	}

	s.store = store
	s.state = StateUnlocked
	s.token = uuid.NewString()
	s.message = ""
	s.touch()

	zerolog.Ctx(ctx).Info().Msg("vault unlocked")

	return nil
}

// Lock is idempotent.
func (s *Session) Lock(ctx context.Context) {
	s.mut.Lock()
	defer s.mut.Unlock()

	s.closeStore(ctx)

	s.state = StateLocked
	s.token = ""
	s.message = ""
}

// Close locks the vault and stops the write queue. The session is unusable afterwards.
func (s *Session) Close(ctx context.Context) {
	s.Lock(ctx)
	s.writer.StopWait()
}

func (s *Session) Status() Status {
	s.mut.RLock()
	defer s.mut.RUnlock()

	st := Status{
		State:        s.state,
		StateName:    s.state.String(),
		SessionToken: s.token,
		Message:      s.message,
	}

	if s.state == StateUnlocked {
		st.LastActive = time.Unix(0, s.lastActive.Load()).UTC()
	}

	return st
}

func (s *Session) IsUnlocked() bool {
	s.mut.RLock()
	defer s.mut.RUnlock()

	return s.state == StateUnlocked && s.store != nil
}

func (s *Session) SaveTransaction(ctx context.Context, tx *database.Transaction) error {
	return s.write(func(store Store) error {
		return store.SaveTransaction(ctx, tx)
	})
}

func (s *Session) AddMessages(ctx context.Context, messages []*database.Message) error {
	return s.write(func(store Store) error {
		return store.AddMessages(ctx, messages)
	})
}

func (s *Session) ExistsByDedupKey(ctx context.Context, key string) (bool, error) {
	var exists bool

	err := s.withStore(func(store Store) error {
		var err error
		exists, err = store.ExistsByDedupKey(ctx, key)

		return err
	})

	return exists, err
}

func (s *Session) ListTransactions(ctx context.Context) ([]*database.Transaction, error) {
	var records []*database.Transaction

	err := s.withStore(func(store Store) error {
		var err error
		records, err = store.ListTransactions(ctx)

		return err
	})

	return records, err
}

// GetLatestMessages serves the vault inbox as a message source.
func (s *Session) GetLatestMessages(ctx context.Context, daysBack int) ([]*database.Message, error) {
	var items []*database.Message

	err := s.withStore(func(store Store) error {
		var err error
		items, err = store.GetMessagesSince(ctx, common.WindowStart(s.clock(), daysBack))

		return err
	})

	return items, err
}

func (s *Session) write(fn func(store Store) error) error {
	return s.withStore(func(store Store) error {
		var err error

		s.writer.SubmitWait(func() {
			err = fn(store)
		})

		return err
	})
}

func (s *Session) withStore(fn func(store Store) error) error {
	s.mut.RLock()
	defer s.mut.RUnlock()

	if s.state != StateUnlocked || s.store == nil {
		return errors.WithStack(common.ErrVaultLocked)
	}

	s.touch()

	return fn(s.store)
}

func (s *Session) touch() {
	s.lastActive.Store(s.clock().UnixNano())
}

func (s *Session) closeStore(ctx context.Context) {
	if s.store == nil {
		return
	}

	if err := s.store.Close(); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to close vault store")
	}

	s.store = nil
}
