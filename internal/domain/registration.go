package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// SubmissionValues is the set of form fields tracked per registration.
// Email is the identity key for the whole record lifecycle.
type SubmissionValues struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Adults       int    `json:"adults"`
	Children     int    `json:"children"`
	AnythingElse string `json:"anythingElse"`
	BellTent     bool   `json:"bellTent"`
	DavidMascot  bool   `json:"davidMascot"`
}

// Equal reports whether two submissions carry identical tracked values.
// A resubmission that compares Equal to the stored record is a no-op.
func (v SubmissionValues) Equal(other SubmissionValues) bool {
	return v.Name == other.Name &&
		v.Email == other.Email &&
		v.Adults == other.Adults &&
		v.Children == other.Children &&
		v.AnythingElse == other.AnythingElse &&
		v.BellTent == other.BellTent &&
		v.DavidMascot == other.DavidMascot
}

// HistoryEntry is an immutable snapshot of a registration's values as
// they existed immediately before being overwritten.
type HistoryEntry struct {
	Name         string    `json:"name"`
	Adults       int       `json:"adults"`
	Children     int       `json:"children"`
	AnythingElse string    `json:"anythingElse"`
	BellTent     bool      `json:"bellTent"`
	DavidMascot  bool      `json:"davidMascot"`
	ReplacedAt   time.Time `json:"replacedAt"`
}

// NewHistoryEntry snapshots the given values at the given time.
func NewHistoryEntry(v SubmissionValues, replacedAt time.Time) HistoryEntry {
	return HistoryEntry{
		Name:         v.Name,
		Adults:       v.Adults,
		Children:     v.Children,
		AnythingElse: v.AnythingElse,
		BellTent:     v.BellTent,
		DavidMascot:  v.DavidMascot,
		ReplacedAt:   replacedAt.UTC(),
	}
}

type Registration struct {
	Email        string         `gorm:"primaryKey" json:"email"`
	Name         string         `gorm:"not null" json:"name"`
	Adults       int            `gorm:"not null" json:"adults"`
	Children     int            `gorm:"not null" json:"children"`
	AnythingElse string         `gorm:"column:anything_else" json:"anythingElse"`
	BellTent     bool           `gorm:"column:bell_tent;not null;default:false" json:"bellTent"`
	DavidMascot  bool           `gorm:"column:david_mascot;not null;default:false" json:"davidMascot"`
	Version      int            `gorm:"not null;default:1" json:"version"`
	History      datatypes.JSON `gorm:"column:history;type:jsonb" json:"history"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null" json:"updated_at"`
}

func (Registration) TableName() string { return "registration" }

// Values projects the record's current field values.
func (r *Registration) Values() SubmissionValues {
	return SubmissionValues{
		Name:         r.Name,
		Email:        r.Email,
		Adults:       r.Adults,
		Children:     r.Children,
		AnythingElse: r.AnythingElse,
		BellTent:     r.BellTent,
		DavidMascot:  r.DavidMascot,
	}
}

// HistoryEntries decodes the stored history column, oldest first. An
// empty or NULL column decodes to an empty slice.
func (r *Registration) HistoryEntries() ([]HistoryEntry, error) {
	if len(r.History) == 0 {
		return []HistoryEntry{}, nil
	}
	var entries []HistoryEntry
	if err := json.Unmarshal(r.History, &entries); err != nil {
		return nil, fmt.Errorf("decode registration history: %w", err)
	}
	if entries == nil {
		entries = []HistoryEntry{}
	}
	return entries, nil
}

// EncodeHistory serializes entries for the history column.
func EncodeHistory(entries []HistoryEntry) (datatypes.JSON, error) {
	if entries == nil {
		entries = []HistoryEntry{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("encode registration history: %w", err)
	}
	return datatypes.JSON(raw), nil
}

// NewRegistration builds a fresh record for a first-time submission.
func NewRegistration(v SubmissionValues) (*Registration, error) {
	history, err := EncodeHistory(nil)
	if err != nil {
		return nil, err
	}
	return &Registration{
		Email:        v.Email,
		Name:         v.Name,
		Adults:       v.Adults,
		Children:     v.Children,
		AnythingElse: v.AnythingElse,
		BellTent:     v.BellTent,
		DavidMascot:  v.DavidMascot,
		Version:      1,
		History:      history,
	}, nil
}
