package vote

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ErrInvalidReference marks a vote batch that points at a campaign or
// client chain the database does not know. It is a client-input fault, not
// a system one; the HTTP boundary maps it to a bad-request response.
var ErrInvalidReference = errors.New("vote references an unknown campaign or client")

// VoteResult is one persisted ranked vote. Every row of a submitted ballot
// shares one GroupID; rows are created atomically as a batch and never
// mutated afterwards.
type VoteResult struct {
	ID      uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	AssetID uuid.UUID  `json:"asset_id" gorm:"type:uuid;not null;index"`
	VoterID *uuid.UUID `json:"voter_id" gorm:"type:uuid;index"` // nil for pure-anonymous flows
	Rank    int        `json:"rank" gorm:"not null"`
	GroupID string     `json:"group_id" gorm:"size:32;not null;index"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName overrides the table name used by GORM
func (VoteResult) TableName() string {
	return "pgresult"
}

// BeforeCreate sets a UUID before creating the record
func (v *VoteResult) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// NewVoteResult creates one vote row of a grouped batch.
func NewVoteResult(assetID uuid.UUID, voterID *uuid.UUID, rank int, groupID string) *VoteResult {
	return &VoteResult{
		ID:      uuid.New(),
		AssetID: assetID,
		VoterID: voterID,
		Rank:    rank,
		GroupID: groupID,
	}
}

// Validate checks if the vote data is valid
func (v *VoteResult) Validate() error {
	if v.AssetID == uuid.Nil {
		return fmt.Errorf("asset_id is required")
	}
	if v.Rank <= 0 {
		return fmt.Errorf("rank must be positive")
	}
	if v.GroupID == "" {
		return fmt.Errorf("group_id is required")
	}
	return nil
}

// BallotPrecompute is the legacy precomputed-ballot table. The adopted flow
// draws ballots fresh on every request and neither reads nor writes these
// rows; the table stays in the schema because old deployments still carry
// data in it.
type BallotPrecompute struct {
	ID       uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	GroupID  string         `json:"group_id" gorm:"size:32;not null;index"`
	AssetIDs pq.StringArray `json:"asset_ids" gorm:"type:uuid[]"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName overrides the table name used by GORM
func (BallotPrecompute) TableName() string {
	return "pgballot"
}

// BeforeCreate sets a UUID before creating the record
func (b *BallotPrecompute) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
