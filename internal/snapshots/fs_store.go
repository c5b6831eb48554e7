package snapshots

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	domaingames "baseball-games-service/internal/domain/games"
	"baseball-games-service/internal/timeutil"
)

// Store defines how slates are loaded.
type Store interface {
	LoadSlate(date string) (Slate, error)
}

// FSStore loads slates from the filesystem.
type FSStore struct {
	basePath string
}

// NewFSStore constructs an FS-backed slate store rooted at basePath.
func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath}
}

// LoadSlate reads the slate for the given date (YYYY-MM-DD) from disk.
// Files are expected at {basePath}/games/{date}.json with a Slate payload.
func (s *FSStore) LoadSlate(date string) (Slate, error) {
	var payload Slate
	if err := s.load(kindGames, date, &payload); err != nil {
		return Slate{}, err
	}
	if payload.Date == "" {
		payload.Date = date
	}
	return payload, nil
}

// RecentStates loads every slate inside the past/future window around now
// and returns the states it finds, oldest date first. Missing dates are
// skipped; a memory-backed deployment uses this to rehydrate after a
// restart.
func (s *FSStore) RecentStates(now time.Time, pastDays, futureDays int) ([]domaingames.GameState, error) {
	if s == nil {
		return nil, errors.New("snapshot store not configured")
	}
	if pastDays < 0 {
		pastDays = 0
	}
	if futureDays < 0 {
		futureDays = 0
	}

	var states []domaingames.GameState
	for offset := -pastDays; offset <= futureDays; offset++ {
		date := timeutil.FormatDate(now.AddDate(0, 0, offset))
		slate, err := s.LoadSlate(date)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("load slate %s: %w", date, err)
		}
		states = append(states, slate.Games...)
	}
	return states, nil
}

func (s *FSStore) load(kind snapshotKind, date string, payload any) error {
	if s == nil {
		return errors.New("snapshot store not configured")
	}
	if date == "" {
		return errors.New("snapshot date required")
	}
	path := filepath.Join(s.basePath, string(kind), fmt.Sprintf("%s.json", date))
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(payload); err != nil {
		return err
	}
	return nil
}
