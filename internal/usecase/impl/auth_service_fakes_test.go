package impl

import (
	"context"
	"sync"
	"time"

	"taskhub/internal/domain/entity"
	"taskhub/internal/domain/repository"
	"taskhub/internal/domain/service"

	"github.com/google/uuid"
)

// In-memory repository fakes. They back the usecase tests without a database;
// uniqueness rules mirror the real schema constraints.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *user

	return &clone, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			clone := *user

			return &clone, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repository.ErrEmailTaken
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.ID] = &clone

	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	user.UpdatedAt = time.Now()
	clone := *user
	r.users[user.ID] = &clone

	return nil
}

type fakeRefreshTokenRepo struct {
	mu     sync.Mutex
	byUser map[uuid.UUID]*entity.RefreshToken
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{byUser: make(map[uuid.UUID]*entity.RefreshToken)}
}

func (r *fakeRefreshTokenRepo) Upsert(_ context.Context, token *entity.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if existing, ok := r.byUser[token.UserID]; ok {
		existing.TokenHash = token.TokenHash
		existing.ExpiresAt = token.ExpiresAt
		existing.UpdatedAt = now
		token.ID = existing.ID
		token.CreatedAt = existing.CreatedAt

		return nil
	}

	token.ID = uuid.New()
	token.CreatedAt = now
	token.UpdatedAt = now
	clone := *token
	r.byUser[token.UserID] = &clone

	return nil
}

func (r *fakeRefreshTokenRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	token, ok := r.byUser[userID]
	if !ok {
		return nil, repository.ErrRefreshTokenNotFound
	}
	clone := *token

	return &clone, nil
}

func (r *fakeRefreshTokenRepo) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUser[userID]; !ok {
		return repository.ErrRefreshTokenNotFound
	}
	delete(r.byUser, userID)

	return nil
}

func (r *fakeRefreshTokenRepo) rowCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.byUser)
}

func (r *fakeRefreshTokenRepo) expireRow(userID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if token, ok := r.byUser[userID]; ok {
		token.ExpiresAt = time.Now().Add(-time.Minute)
	}
}

type fakeOAuthLinkRepo struct {
	mu    sync.Mutex
	links map[uuid.UUID]*entity.OAuthLink
}

func newFakeOAuthLinkRepo() *fakeOAuthLinkRepo {
	return &fakeOAuthLinkRepo{links: make(map[uuid.UUID]*entity.OAuthLink)}
}

func (r *fakeOAuthLinkRepo) FindByProviderID(_ context.Context, provider entity.ProviderType, providerID string) (*entity.OAuthLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, link := range r.links {
		if link.Provider == provider && link.ProviderID == providerID {
			clone := *link

			return &clone, nil
		}
	}

	return nil, repository.ErrOAuthLinkNotFound
}

func (r *fakeOAuthLinkRepo) FindByUserIDAndProvider(_ context.Context, userID uuid.UUID, provider entity.ProviderType) (*entity.OAuthLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, link := range r.links {
		if link.UserID == userID && link.Provider == provider {
			clone := *link

			return &clone, nil
		}
	}

	return nil, repository.ErrOAuthLinkNotFound
}

func (r *fakeOAuthLinkRepo) Create(_ context.Context, link *entity.OAuthLink) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	link.ID = uuid.New()
	link.CreatedAt = time.Now()
	link.UpdatedAt = link.CreatedAt
	clone := *link
	r.links[link.ID] = &clone

	return nil
}

func (r *fakeOAuthLinkRepo) Update(_ context.Context, link *entity.OAuthLink) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.links[link.ID]
	if !ok {
		return repository.ErrOAuthLinkNotFound
	}
	existing.EncryptedRefreshToken = link.EncryptedRefreshToken
	existing.ExpirationAt = link.ExpirationAt
	existing.UpdatedAt = time.Now()

	return nil
}

func (r *fakeOAuthLinkRepo) linkCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.links)
}

// fakeTxManager runs the callback without a real transaction; the fakes have
// no rollback, which the tests do not depend on.
type fakeTxManager struct {
	userRepo  *fakeUserRepo
	tokenRepo *fakeRefreshTokenRepo
	linkRepo  *fakeOAuthLinkRepo
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m)
}

func (m *fakeTxManager) UserRepo() repository.UserRepository { return m.userRepo }

func (m *fakeTxManager) RefreshTokenRepo() repository.RefreshTokenRepository { return m.tokenRepo }

func (m *fakeTxManager) OAuthLinkRepo() repository.OAuthLinkRepository { return m.linkRepo }

// fakeOAuthService returns scripted provider responses.
type fakeOAuthService struct {
	tokens       *service.ProviderTokens
	exchangeErr  error
	accessToken  string
	refreshedErr error
	lastCode     string
}

func (s *fakeOAuthService) BuildAuthorizationURL(state string) string {
	return "https://accounts.example.com/auth?state=" + state
}

func (s *fakeOAuthService) ExchangeCode(_ context.Context, code string) (*service.ProviderTokens, error) {
	s.lastCode = code
	if s.exchangeErr != nil {
		return nil, s.exchangeErr
	}

	return s.tokens, nil
}

func (s *fakeOAuthService) AccessTokenFromRefresh(_ context.Context, _ string) (string, error) {
	if s.refreshedErr != nil {
		return "", s.refreshedErr
	}

	return s.accessToken, nil
}

func (s *fakeOAuthService) Provider() entity.ProviderType {
	return entity.ProviderTypeGoogle
}

// fakeStateStore is a consume-once nonce store backed by a map.
type fakeStateStore struct {
	mu     sync.Mutex
	nonces map[string]bool
}

func newFakeStateStore() *fakeStateStore {
	return &fakeStateStore{nonces: make(map[string]bool)}
}

func (s *fakeStateStore) Issue(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	nonce := "state-" + uuid.New().String()
	s.nonces[nonce] = true

	return nonce, nil
}

func (s *fakeStateStore) Verify(_ context.Context, state string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.nonces[state] {
		return service.ErrStateNotFound
	}
	delete(s.nonces, state)

	return nil
}
