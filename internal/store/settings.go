package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/veilbrowser/veil/internal/bridge"
	"github.com/veilbrowser/veil/internal/config"
)

// SettingsStore fronts the config manager for the UI: section snapshots,
// persisted updates, and pushing changed sections to the host so the
// browser engine applies them (tracker blocking, do-not-track).
type SettingsStore struct {
	client  *bridge.Client
	manager *config.Manager
	log     zerolog.Logger

	mu  sync.RWMutex
	err string
}

// NewSettingsStore creates a settings store over an already loaded manager.
func NewSettingsStore(client *bridge.Client, manager *config.Manager, log zerolog.Logger) *SettingsStore {
	return &SettingsStore{
		client:  client,
		manager: manager,
		log:     log.With().Str("component", "settings-store").Logger(),
	}
}

// Err returns the last store-level error string.
func (s *SettingsStore) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *SettingsStore) setErr(msg string) {
	s.mu.Lock()
	s.err = msg
	s.mu.Unlock()
}

// General returns the current general section.
func (s *SettingsStore) General() config.GeneralConfig {
	return s.manager.Get().General
}

// Privacy returns the current privacy section.
func (s *SettingsStore) Privacy() config.PrivacyConfig {
	return s.manager.Get().Privacy
}

// Wallet returns the current wallet section.
func (s *SettingsStore) Wallet() config.WalletConfig {
	return s.manager.Get().Wallet
}

// UpdateGeneral persists the general section and pushes it to the host.
func (s *SettingsStore) UpdateGeneral(ctx context.Context, general config.GeneralConfig) bool {
	return s.update(ctx, "general", general)
}

// UpdatePrivacy persists the privacy section and pushes it to the host.
func (s *SettingsStore) UpdatePrivacy(ctx context.Context, privacy config.PrivacyConfig) bool {
	return s.update(ctx, "privacy", privacy)
}

// UpdateWallet persists the wallet section and pushes it to the host.
func (s *SettingsStore) UpdateWallet(ctx context.Context, wallet config.WalletConfig) bool {
	return s.update(ctx, "wallet", wallet)
}

func (s *SettingsStore) update(ctx context.Context, section string, value any) bool {
	values, err := sectionValues(value)
	if err != nil {
		s.setErr("Invalid settings value")
		s.log.Error().Err(err).Str("section", section).Msg("settings marshal failed")
		return false
	}

	for key, v := range values {
		if err := s.manager.Set(section+"."+key, v); err != nil {
			s.setErr("Failed to save settings")
			s.log.Error().Err(err).Str("section", section).Msg("settings save failed")
			return false
		}
	}

	if res := s.client.Window.PushSettings(ctx, section, values); res.Failed() {
		// Settings are saved locally either way; the host picks them up on
		// its next config read.
		s.log.Warn().Str("section", section).Str("error", res.Error).Msg("settings push to host failed")
	}

	s.setErr("")
	return true
}

// OpenHostSettings asks the host to show its native settings surface.
func (s *SettingsStore) OpenHostSettings(ctx context.Context) bool {
	res := s.client.Window.OpenSettings(ctx)
	if res.Failed() {
		s.setErr(res.Error)
		return false
	}
	s.setErr("")
	return true
}

// sectionValues flattens a config section struct into its keyed values
// using the json tags shared with the config file schema.
func sectionValues(section any) (map[string]any, error) {
	b, err := json.Marshal(section)
	if err != nil {
		return nil, err
	}
	var values map[string]any
	if err := json.Unmarshal(b, &values); err != nil {
		return nil, err
	}
	return values, nil
}
