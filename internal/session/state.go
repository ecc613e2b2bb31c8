// Package session holds the single operator session the dashboard runs
// under. State is loaded from a persisted store at startup and is the
// credential source for every backend call.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	pkgerrors "github.com/angelmondragon/shopdash/pkg/errors"
	"github.com/angelmondragon/shopdash/pkg/logger"
	"github.com/angelmondragon/shopdash/pkg/models"
	"github.com/angelmondragon/shopdash/pkg/storage"
	"go.uber.org/multierr"
)

// Persisted keys. appwrite_session is a leftover from an older login flow and
// is only ever deleted.
const (
	KeyUser          = "user"
	KeyShop          = "shop"
	KeySessionID     = "sessionId"
	KeyLegacySession = "appwrite_session"
)

var clearedKeys = []string{KeyUser, KeyShop, KeySessionID, KeyLegacySession}

// ShopSyncer refreshes the persisted shop from the backend by owner.
type ShopSyncer interface {
	ListByOwner(ctx context.Context, ownerID string) ([]models.Shop, error)
}

type Options struct {
	Logger   *logger.Logger
	SyncShop bool
}

// Snapshot is an immutable copy of the session.
type Snapshot struct {
	User          *models.User `json:"user"`
	Shop          *models.Shop `json:"shop"`
	HasSession    bool         `json:"has_session"`
	Loading       bool         `json:"loading"`
	Authenticated bool         `json:"authenticated"`
}

// State is safe for concurrent use.
type State struct {
	store    storage.Store
	logg     *logger.Logger
	syncShop bool

	mu        sync.RWMutex
	user      *models.User
	shop      *models.Shop
	sessionID string
	loading   bool
}

// New returns a State in the loading phase. Call Init before serving.
func New(store storage.Store, opts Options) *State {
	logg := opts.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &State{
		store:    store,
		logg:     logg,
		syncShop: opts.SyncShop,
		loading:  true,
	}
}

// Init loads the persisted session. The state is authenticated only when both
// user and shop were stored. When shop sync is enabled and syncer is non-nil,
// the shop is refreshed from the backend; a failed sync is logged and ignored.
func (s *State) Init(ctx context.Context, syncer ShopSyncer) error {
	user, userErr := readJSON[models.User](ctx, s.store, KeyUser)
	shop, shopErr := readJSON[models.Shop](ctx, s.store, KeyShop)
	sessionID, sidErr := s.store.Get(ctx, KeySessionID)
	if errors.Is(sidErr, storage.ErrNotFound) {
		sidErr = nil
	}
	loadErr := multierr.Combine(userErr, shopErr, sidErr)

	s.mu.Lock()
	if user != nil && shop != nil {
		s.user = user
		s.shop = shop
	}
	s.sessionID = strings.TrimSpace(sessionID)
	s.loading = false
	authenticated := s.user != nil && s.shop != nil
	s.mu.Unlock()

	if loadErr != nil {
		s.logg.Error(ctx, "session.load_failed", loadErr)
	}

	if authenticated && s.syncShop && syncer != nil {
		s.sync(ctx, syncer, user.ID)
	}

	ctx = s.logg.WithField(ctx, "authenticated", authenticated)
	s.logg.Info(ctx, "session.initialized")
	if loadErr != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, loadErr, "load persisted session")
	}
	return nil
}

func (s *State) sync(ctx context.Context, syncer ShopSyncer, ownerID string) {
	if ownerID == "" {
		return
	}
	shops, err := syncer.ListByOwner(ctx, ownerID)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "owner_id", ownerID), "session.shop_sync_failed")
		return
	}
	if len(shops) == 0 {
		s.logg.Warn(s.logg.WithField(ctx, "owner_id", ownerID), "session.shop_sync_empty")
		return
	}

	synced := shops[0]
	synced.ResolveID()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil || s.user.ID != ownerID {
		return
	}
	if err := writeJSON(ctx, s.store, KeyShop, synced); err != nil {
		s.logg.Error(ctx, "session.shop_sync_persist_failed", err)
		return
	}
	s.shop = &synced
	s.logg.Info(s.logg.WithShopID(ctx, synced.ID), "session.shop_synced")
}

// Login persists user, shop and session id, then updates state. An empty
// sessionID is not persisted and drops any previously stored one.
func (s *State) Login(ctx context.Context, user models.User, shop models.Shop, sessionID string) error {
	user.ResolveID()
	shop.ResolveID()
	sessionID = strings.TrimSpace(sessionID)

	s.mu.Lock()
	defer s.mu.Unlock()

	err := multierr.Combine(
		writeJSON(ctx, s.store, KeyUser, user),
		writeJSON(ctx, s.store, KeyShop, shop),
	)
	if sessionID != "" {
		err = multierr.Append(err, s.store.Set(ctx, KeySessionID, sessionID))
	} else {
		err = multierr.Append(err, s.store.Delete(ctx, KeySessionID))
	}
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist session")
	}

	s.user = &user
	s.shop = &shop
	s.sessionID = sessionID
	s.loading = false
	return nil
}

// SetShop replaces the current shop after a settings update.
func (s *State) SetShop(ctx context.Context, shop models.Shop) error {
	shop.ResolveID()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "not signed in").
			WithDetails(map[string]any{"redirect": "/login"})
	}
	if err := writeJSON(ctx, s.store, KeyShop, shop); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist shop")
	}
	s.shop = &shop
	return nil
}

// Logout forgets every persisted credential.
func (s *State) Logout(ctx context.Context) error {
	return s.clear(ctx, "session.logout")
}

// ClearSession is invoked by the api client when the backend answers 401.
func (s *State) ClearSession(ctx context.Context) error {
	return s.clear(ctx, "session.cleared")
}

// clear resets memory first so no stale session outlives a failing store.
func (s *State) clear(ctx context.Context, event string) error {
	s.mu.Lock()
	s.user = nil
	s.shop = nil
	s.sessionID = ""
	s.mu.Unlock()

	var err error
	for _, key := range clearedKeys {
		err = multierr.Append(err, s.store.Delete(ctx, key))
	}
	s.logg.Info(ctx, event)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear persisted session")
	}
	return nil
}

func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{
		HasSession:    s.sessionID != "",
		Loading:       s.loading,
		Authenticated: s.user != nil && s.shop != nil,
	}
	if s.user != nil {
		user := *s.user
		snap.User = &user
	}
	if s.shop != nil {
		shop := *s.shop
		snap.Shop = &shop
	}
	return snap
}

func (s *State) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *State) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.shop != nil
}

// SessionID implements apiclient.CredentialSource.
func (s *State) SessionID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionID
}

// ShopID implements apiclient.CredentialSource.
func (s *State) ShopID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.shop == nil {
		return ""
	}
	return s.shop.ID
}

// Ping reports store health for readiness checks.
func (s *State) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// Close releases the underlying store.
func (s *State) Close(context.Context) error {
	return s.store.Close()
}

// readJSON returns nil without error for a missing key. A malformed value is
// treated as missing so a corrupt entry cannot wedge startup.
func readJSON[T any, PT interface {
	*T
	ResolveID()
}](ctx context.Context, store storage.Store, key string) (*T, error) {
	raw, err := store.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(raw) == "" || raw == "null" {
		return nil, nil
	}
	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return nil, nil
	}
	PT(&value).ResolveID()
	return &value, nil
}

func writeJSON(ctx context.Context, store storage.Store, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return store.Set(ctx, key, string(payload))
}
