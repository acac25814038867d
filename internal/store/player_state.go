package store

import (
	"encoding/json"
	"fmt"

	"github.com/unai-a/MusicFlow/internal/constants"
	"github.com/unai-a/MusicFlow/internal/player"
)

// PlayerStateRepo persists the player snapshot in the settings table under a
// fixed key. It satisfies player.Persister.
type PlayerStateRepo struct {
	settings *SettingsRepo
}

func NewPlayerStateRepo(settings *SettingsRepo) *PlayerStateRepo {
	return &PlayerStateRepo{settings: settings}
}

func (r *PlayerStateRepo) SaveState(snap player.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode player state: %w", err)
	}
	return r.settings.Set(constants.SettingPlayerState, string(data))
}

// LoadState returns the persisted snapshot, or found=false when none exists.
func (r *PlayerStateRepo) LoadState() (player.Snapshot, bool, error) {
	var snap player.Snapshot
	value, err := r.settings.Get(constants.SettingPlayerState)
	if err != nil {
		return snap, false, err
	}
	if value == "" {
		return snap, false, nil
	}
	if err := json.Unmarshal([]byte(value), &snap); err != nil {
		return snap, false, fmt.Errorf("failed to decode player state: %w", err)
	}
	return snap, true, nil
}
