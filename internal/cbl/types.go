package cbl

import (
	"errors"
	"time"
)

var (
	// ErrNotFound means CBL has no user for the requested id. It is a normal
	// outcome, not a failure.
	ErrNotFound = errors.New("cbl: steam user not found")
	// ErrFetchFailed covers every transport, decoding and upstream error.
	ErrFetchFailed = errors.New("failed to fetch CBL history")
	// ErrEmptyPlayerID is returned before any request is made.
	ErrEmptyPlayerID = errors.New("cbl: player id is empty")
)

// BanRecord is a single ban issued by an organisation on one of its ban lists.
type BanRecord struct {
	ID      string
	Created time.Time
	// Expires is nil when CBL has no expiry for the ban.
	Expires             *time.Time
	Reason              string
	BanListName         string
	OrganisationName    string
	OrganisationDiscord string
}

// PlayerBanProfile is the normalized steamUser response. Both ban slices are
// ordered newest-created first, as returned by CBL.
type PlayerBanProfile struct {
	ID               string
	Name             string
	AvatarURL        string
	ReputationPoints float64
	RiskRating       RiskRating
	// ReputationRank is nil for unranked players.
	ReputationRank *int
	ActiveBans     []BanRecord
	ExpiredBans    []BanRecord
}

// DisplayName returns the Steam name, falling back to the raw id.
func (p *PlayerBanProfile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}
