package journal

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"challengesim/profile"
)

// ProfileNamespace is the fixed key the active challenge profile is
// stored under. One live profile per installation; saving overwrites.
const ProfileNamespace = "challenge.profile"

// SaveProfile serializes the profile and upserts it under the fixed
// namespace key, so the next session starts from the same parameters.
func (j *SQLite) SaveProfile(p profile.Profile) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	_, err = j.db.Exec(`
		INSERT INTO profiles (namespace, payload, updated)
		VALUES (?, ?, ?)
		ON CONFLICT(namespace) DO UPDATE SET
			payload = excluded.payload,
			updated = excluded.updated`,
		ProfileNamespace, string(payload), time.Now().UTC(),
	)
	return err
}

// LoadProfile returns the stored profile, or ok=false when none has
// been saved yet. The reloaded profile is checked only against the
// boundary bounds, exactly as if it had just been entered.
func (j *SQLite) LoadProfile() (profile.Profile, bool, error) {
	var payload string
	err := j.db.QueryRow(`
		SELECT payload FROM profiles WHERE namespace = ?`,
		ProfileNamespace,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return profile.Profile{}, false, nil
	}
	if err != nil {
		return profile.Profile{}, false, err
	}

	var p profile.Profile
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return profile.Profile{}, false, fmt.Errorf("unmarshal profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return profile.Profile{}, false, err
	}
	return p, true, nil
}
