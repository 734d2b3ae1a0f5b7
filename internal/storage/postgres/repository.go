package postgres

import (
	"time"

	"github.com/google/uuid"

	"github.com/imageimprov/photogame-api/internal/domain/asset"
	"github.com/imageimprov/photogame-api/internal/domain/campaign"
	"github.com/imageimprov/photogame-api/internal/domain/vote"
	"github.com/imageimprov/photogame-api/internal/domain/voter"
)

// CampaignRepository defines campaign lookups against the database.
type CampaignRepository interface {
	Create(c *campaign.Campaign) error
	CreateClient(c *campaign.Client) error
	GetByID(id uuid.UUID) (*campaign.Campaign, error)
	// FindActive returns the campaign only while it is live: the active
	// flag is set and now falls inside its date window. A campaign in any
	// other state yields (nil, nil), which callers treat as nothing to
	// show, not an error.
	FindActive(id uuid.UUID, now time.Time) (*campaign.Campaign, error)
}

// AssetRepository defines asset catalog operations against the database.
type AssetRepository interface {
	Create(a *asset.Asset) error
	// GetActive returns (nil, nil) when no active asset has the id.
	GetActive(id uuid.UUID) (*asset.Asset, error)
	ListActiveByCampaign(campaignID uuid.UUID) ([]*asset.Asset, error)
	// GetOwnership resolves asset -> campaign -> client.
	GetOwnership(assetID uuid.UUID) (campaignID, clientID uuid.UUID, err error)
	Deactivate(id uuid.UUID) error
}

// VoterRepository defines voter identity operations against the database.
type VoterRepository interface {
	Create(v *voter.Voter) error
	FindByClientUserID(clientUserID string) (*voter.Voter, error)
	FindByToken(token string) (*voter.Voter, error)
}

// AssetTally is the per-asset vote count of a campaign's results.
type AssetTally struct {
	AssetID  uuid.UUID `json:"asset_id"`
	Filename string    `json:"filename"`
	Votes    int       `json:"votes"`
	TopRanks int       `json:"top_ranks"`
}

// VoteRepository defines vote persistence against the database.
type VoteRepository interface {
	// CreateBatch persists all rows inside one transaction; a failure
	// leaves no row behind.
	CreateBatch(results []*vote.VoteResult) error
	GetByGroupID(groupID string) ([]*vote.VoteResult, error)
	// GetCampaignResults tallies votes per active asset of a campaign.
	GetCampaignResults(campaignID uuid.UUID) ([]AssetTally, error)
}
