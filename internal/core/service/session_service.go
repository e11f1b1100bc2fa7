package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/horarios/admin-console/internal/core/domain"
	"github.com/horarios/admin-console/internal/core/ports"
	"github.com/horarios/admin-console/internal/metrics"
)

// persistTimeout bounds credential store writes, which run detached from the
// caller's cancellation.
const persistTimeout = 5 * time.Second

// SessionOptions tunes SessionService behaviour.
type SessionOptions struct {
	// RefreshOnUnauthorized enables refresh-then-retry-once for 401 answers
	// to ordinary calls made through Call.
	RefreshOnUnauthorized bool
}

// SessionService owns the session state and the bearer slot. It is the only
// component that reacts to a 401 by re-authenticating.
type SessionService struct {
	backend ports.AuthBackend
	api     ports.Requester
	bearer  ports.BearerSlot
	creds   ports.CredentialStore
	opts    SessionOptions
	log     zerolog.Logger

	mu    sync.RWMutex
	state domain.SessionState
	// gen is bumped by every transition so that a slow restoration cannot
	// overwrite a later signin or signout.
	gen uint64

	initOnce sync.Once
	ready    chan struct{}
	refresh  singleflight.Group
}

// NewSessionService returns a store in the Restoring phase. Initialize must be
// called once to leave it.
func NewSessionService(
	backend ports.AuthBackend,
	api ports.Requester,
	bearer ports.BearerSlot,
	creds ports.CredentialStore,
	opts SessionOptions,
	log zerolog.Logger,
) *SessionService {
	return &SessionService{
		backend: backend,
		api:     api,
		bearer:  bearer,
		creds:   creds,
		opts:    opts,
		log:     log,
		state:   domain.SessionState{Loading: true},
		ready:   make(chan struct{}),
	}
}

// State returns a snapshot of the current session.
func (s *SessionService) State() domain.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.SessionState{Identity: s.state.Identity.Clone(), Loading: s.state.Loading}
}

// Ready is closed when Initialize has finished.
func (s *SessionService) Ready() <-chan struct{} {
	return s.ready
}

// Initialize restores the session from the persisted credential. It runs at
// most once, never returns an error and always leaves Loading false.
func (s *SessionService) Initialize(ctx context.Context) domain.SessionState {
	s.initOnce.Do(func() {
		defer close(s.ready)
		gen := s.generation()
		identity := s.restore(ctx, gen)
		s.commitIf(gen, identity)
	})
	return s.State()
}

func (s *SessionService) restore(ctx context.Context, gen uint64) *domain.Identity {
	token, ok, err := s.creds.Load(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("credential load failed, starting unauthenticated")
		return nil
	}
	if !ok || token == "" {
		s.log.Debug().Msg("no persisted credential")
		return nil
	}

	s.bearer.SetBearer(token)

	identity, err := s.backend.Me(ctx)
	if err == nil {
		s.log.Info().Str("username", identity.Username).Msg("session restored")
		return identity
	}

	if !domain.IsUnauthorized(err) {
		s.log.Warn().Err(err).Msg("session restore failed")
		s.discard(ctx, gen)
		return nil
	}

	if _, err := s.silentRefresh(ctx); err != nil {
		s.log.Info().Err(err).Msg("session refresh failed during restore")
		s.discard(ctx, gen)
		return nil
	}

	identity, err = s.backend.Me(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("identity fetch failed after refresh")
		s.discard(ctx, gen)
		return nil
	}

	s.log.Info().Str("username", identity.Username).Msg("session restored after refresh")
	return identity
}

// Signin authenticates against the backend and fetches the identity. Failures
// are returned as received so callers can normalize them.
func (s *SessionService) Signin(ctx context.Context, username, password string) (*domain.Identity, error) {
	grant, err := s.backend.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if grant == nil || grant.AccessToken == "" {
		return nil, domain.ErrMissingToken
	}

	s.bearer.SetBearer(grant.AccessToken)
	s.persist(ctx, grant.AccessToken)

	identity, err := s.backend.Me(ctx)
	if err != nil {
		s.forget(ctx)
		return nil, err
	}

	s.commit(identity)
	s.log.Info().Str("username", identity.Username).Str("role", identity.Rol.Name).Msg("signed in")
	return identity.Clone(), nil
}

// Signout ends the session locally even when the backend call fails.
func (s *SessionService) Signout(ctx context.Context) {
	if err := s.backend.Logout(ctx); err != nil {
		s.log.Warn().Err(err).Msg("logout request failed")
	}
	s.forget(ctx)
	s.commit(nil)
	s.log.Info().Msg("signed out")
}

// Call issues an authorized request. With RefreshOnUnauthorized set, a 401 is
// answered by one silent refresh and one retry; if the refresh fails the
// session ends and the original failure is returned.
func (s *SessionService) Call(ctx context.Context, method, path string, body, out any) error {
	gen := s.generation()
	err := s.api.Do(ctx, method, path, body, out)
	if err == nil || !s.opts.RefreshOnUnauthorized || !domain.IsUnauthorized(err) {
		return err
	}

	if _, rerr := s.silentRefresh(ctx); rerr != nil {
		s.log.Info().Err(rerr).Str("path", path).Msg("refresh failed, ending session")
		s.expire(ctx, gen)
		return err
	}

	err = s.api.Do(ctx, method, path, body, out)
	if domain.IsUnauthorized(err) {
		s.expire(ctx, gen)
	}
	return err
}

// silentRefresh obtains a new credential. Concurrent callers share one
// backend call.
func (s *SessionService) silentRefresh(ctx context.Context) (string, error) {
	v, err, shared := s.refresh.Do("refresh", func() (any, error) {
		grant, err := s.backend.Refresh(ctx)
		if err != nil {
			metrics.SessionRefreshTotal.WithLabelValues("failure").Inc()
			return "", err
		}
		if grant == nil || grant.AccessToken == "" {
			metrics.SessionRefreshTotal.WithLabelValues("failure").Inc()
			return "", fmt.Errorf("refresh: %w", domain.ErrMissingToken)
		}

		s.bearer.SetBearer(grant.AccessToken)
		s.persist(ctx, grant.AccessToken)
		metrics.SessionRefreshTotal.WithLabelValues("success").Inc()
		return grant.AccessToken, nil
	})
	if shared {
		s.log.Debug().Msg("joined in-flight refresh")
	}
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// expire ends the session after an unrecoverable 401, unless a signin or
// signout since gen already replaced it.
func (s *SessionService) expire(ctx context.Context, gen uint64) {
	if s.generation() != gen {
		s.log.Debug().Msg("expired call superseded by a newer transition")
		return
	}
	s.forget(ctx)

	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return
	}
	s.gen++
	s.state = domain.SessionState{}
	s.mu.Unlock()
	metrics.SessionTransitionsTotal.WithLabelValues(string(domain.PhaseUnauthenticated)).Inc()
}

// persist saves token. A failed save leaves the session usable.
func (s *SessionService) persist(ctx context.Context, token string) {
	pctx, cancel := persistContext(ctx)
	defer cancel()
	if err := s.creds.Save(pctx, token); err != nil {
		s.log.Warn().Err(err).Msg("credential save failed")
	}
}

// forget drops the persisted credential and the bearer header.
func (s *SessionService) forget(ctx context.Context) {
	s.bearer.ClearBearer()
	pctx, cancel := persistContext(ctx)
	defer cancel()
	if err := s.creds.Clear(pctx); err != nil {
		s.log.Warn().Err(err).Msg("credential clear failed")
	}
}

// persistContext keeps the caller's values but not its cancellation, so a
// client that goes away mid-request cannot leave a stale credential behind.
func persistContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
}

// discard forgets the credential unless a newer transition already replaced it.
func (s *SessionService) discard(ctx context.Context, gen uint64) {
	if s.generation() != gen {
		return
	}
	s.forget(ctx)
}

func (s *SessionService) generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen
}

// commit replaces the state wholesale and ends the Restoring phase.
func (s *SessionService) commit(identity *domain.Identity) {
	s.mu.Lock()
	s.gen++
	s.state = domain.SessionState{Identity: identity.Clone()}
	s.mu.Unlock()
	metrics.SessionTransitionsTotal.WithLabelValues(string(phaseOf(identity))).Inc()
}

// commitIf is commit guarded by the generation observed when the operation
// started. A superseded result only clears the loading flag.
func (s *SessionService) commitIf(gen uint64, identity *domain.Identity) {
	s.mu.Lock()
	if s.gen != gen {
		s.state.Loading = false
		s.mu.Unlock()
		s.log.Debug().Msg("restoration superseded by a newer transition")
		return
	}
	s.gen++
	s.state = domain.SessionState{Identity: identity.Clone()}
	s.mu.Unlock()
	metrics.SessionTransitionsTotal.WithLabelValues(string(phaseOf(identity))).Inc()
}

func phaseOf(identity *domain.Identity) domain.Phase {
	if identity == nil {
		return domain.PhaseUnauthenticated
	}
	return domain.PhaseAuthenticated
}
