package cbl

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/machinebox/graphql"
)

// Recorder is the slice of a logger the client needs. *log.Logger from
// charmbracelet/log satisfies it.
type Recorder interface {
	Debugf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Client fetches ban history from the CBL GraphQL API. It is safe for
// concurrent use; every Fetch is an independent request.
type Client struct {
	gql *graphql.Client
	log Recorder
}

// NewClient creates a CBL client for endpoint. A nil httpClient uses
// http.DefaultClient.
func NewClient(endpoint string, httpClient *http.Client, rec Recorder) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		gql: graphql.NewClient(endpoint, graphql.WithHTTPClient(httpClient)),
		log: rec,
	}
}

// Fetch runs the steamUser query for playerID. It returns ErrNotFound when
// CBL knows no such user and an error wrapping ErrFetchFailed for anything
// else that goes wrong. The underlying cause is recorded, never returned
// as user facing text.
func (c *Client) Fetch(ctx context.Context, playerID string) (*PlayerBanProfile, error) {
	if playerID == "" {
		return nil, ErrEmptyPlayerID
	}

	req := graphql.NewRequest(steamUserQuery)
	req.Var("id", playerID)

	c.log.Debugf("Fetching CBL history for SteamID: %s", playerID)

	var resp steamUserResponse
	if err := c.gql.Run(ctx, req, &resp); err != nil {
		c.log.Errorf("GraphQL request failed for SteamID %s: %v", playerID, err)
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	c.log.Debugf("Received response for SteamID: %s", playerID)

	if resp.SteamUser == nil {
		return nil, ErrNotFound
	}

	profile, err := resp.SteamUser.toProfile()
	if err != nil {
		c.log.Errorf("Malformed CBL response for SteamID %s: %v", playerID, err)
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	return profile, nil
}

type steamUserResponse struct {
	SteamUser *steamUserNode `json:"steamUser"`
}

type steamUserNode struct {
	ID               string        `json:"id"`
	Name             *string       `json:"name"`
	AvatarFull       *string       `json:"avatarFull"`
	ReputationPoints *float64      `json:"reputationPoints"`
	RiskRating       *float64      `json:"riskRating"`
	ReputationRank   *float64      `json:"reputationRank"`
	ActiveBans       banConnection `json:"activeBans"`
	ExpiredBans      banConnection `json:"expiredBans"`
}

type banConnection struct {
	Edges []struct {
		Node banNode `json:"node"`
	} `json:"edges"`
}

type banNode struct {
	ID      string     `json:"id"`
	Created *timestamp `json:"created"`
	Expires *timestamp `json:"expires"`
	Reason  *string    `json:"reason"`
	BanList *struct {
		Name         string `json:"name"`
		Organisation *struct {
			Name    string  `json:"name"`
			Discord *string `json:"discord"`
		} `json:"organisation"`
	} `json:"banList"`
}

func (n *steamUserNode) toProfile() (*PlayerBanProfile, error) {
	p := &PlayerBanProfile{
		ID:         n.ID,
		Name:       deref(n.Name),
		AvatarURL:  deref(n.AvatarFull),
		RiskRating: RiskUnknown,
	}
	if n.ReputationPoints != nil {
		p.ReputationPoints = *n.ReputationPoints
	}
	if r := n.RiskRating; r != nil && *r == math.Trunc(*r) {
		p.RiskRating = RiskRating(*r)
	}
	if r := n.ReputationRank; r != nil {
		rank := int(*r)
		p.ReputationRank = &rank
	}

	var err error
	if p.ActiveBans, err = n.ActiveBans.records(); err != nil {
		return nil, fmt.Errorf("active bans: %w", err)
	}
	if p.ExpiredBans, err = n.ExpiredBans.records(); err != nil {
		return nil, fmt.Errorf("expired bans: %w", err)
	}
	return p, nil
}

func (c banConnection) records() ([]BanRecord, error) {
	records := make([]BanRecord, 0, len(c.Edges))
	for _, edge := range c.Edges {
		n := edge.Node
		if n.Created == nil {
			return nil, fmt.Errorf("ban %s has no created date", n.ID)
		}
		rec := BanRecord{
			ID:      n.ID,
			Created: time.Time(*n.Created),
			Reason:  deref(n.Reason),
		}
		if n.Expires != nil {
			t := time.Time(*n.Expires)
			rec.Expires = &t
		}
		if n.BanList != nil {
			rec.BanListName = n.BanList.Name
			if org := n.BanList.Organisation; org != nil {
				rec.OrganisationName = org.Name
				rec.OrganisationDiscord = deref(org.Discord)
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// timestamp accepts the date shapes CBL has been seen to return: RFC3339
// strings and epoch milliseconds, either as a number or a numeric string.
type timestamp time.Time

func (t *timestamp) UnmarshalJSON(b []byte) error {
	raw := strings.Trim(string(b), `"`)
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*t = timestamp(time.UnixMilli(ms).UTC())
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("invalid timestamp %s: %w", b, err)
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	*t = timestamp(parsed)
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
