package postgres

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	voteDomain "github.com/imageimprov/photogame-api/internal/domain/vote"
	"github.com/imageimprov/photogame-api/internal/logger"
)

// foreign_key_violation, per the PostgreSQL error code table.
const pgForeignKeyViolation = "23503"

// PostgresVoteRepository implements VoteRepository using GORM
type PostgresVoteRepository struct {
	db  *gorm.DB
	log *log.Logger
}

// NewPostgresVoteRepository creates a new PostgreSQL vote repository
func NewPostgresVoteRepository(db *gorm.DB) *PostgresVoteRepository {
	return &PostgresVoteRepository{
		db:  db,
		log: logger.Repository("vote"),
	}
}

// CreateBatch persists every row of a submitted ballot inside one
// transaction; on any failure the transaction rolls back and no row
// remains. A foreign-key violation means the batch referenced an unknown
// asset or voter chain and is reported as vote.ErrInvalidReference so the
// boundary can answer with a client error instead of a server fault.
func (r *PostgresVoteRepository) CreateBatch(results []*voteDomain.VoteResult) error {
	if len(results) == 0 {
		return fmt.Errorf("vote batch cannot be empty")
	}
	for _, v := range results {
		if err := v.Validate(); err != nil {
			r.log.Error("invalid vote in batch", "error", err)
			return err
		}
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, v := range results {
			if err := tx.Create(v).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			r.log.Warn("vote batch rejected by referential integrity", "constraint", pgErr.ConstraintName)
			return fmt.Errorf("%w: %s", voteDomain.ErrInvalidReference, pgErr.ConstraintName)
		}
		r.log.Error("failed to persist vote batch", "error", err, "votes", len(results))
		return fmt.Errorf("failed to persist vote batch: %w", err)
	}

	r.log.Info("vote batch persisted", "group_id", results[0].GroupID, "votes", len(results))
	return nil
}

func (r *PostgresVoteRepository) GetByGroupID(groupID string) ([]*voteDomain.VoteResult, error) {
	if groupID == "" {
		return nil, fmt.Errorf("group id cannot be empty")
	}

	var results []*voteDomain.VoteResult
	if err := r.db.Where("group_id = ?", groupID).Order("rank").Find(&results).Error; err != nil {
		r.log.Error("failed to retrieve vote group", "group_id", groupID, "error", err)
		return nil, fmt.Errorf("failed to retrieve vote group: %w", err)
	}

	return results, nil
}

// GetCampaignResults tallies votes per active asset of a campaign.
// TopRanks counts first-place votes.
func (r *PostgresVoteRepository) GetCampaignResults(campaignID uuid.UUID) ([]AssetTally, error) {
	if campaignID == uuid.Nil {
		return nil, fmt.Errorf("campaign id cannot be empty")
	}

	var tallies []AssetTally
	err := r.db.
		Table("pgresult").
		Select(`pgasset.id AS asset_id,
			pgasset.filename AS filename,
			COUNT(pgresult.id) AS votes,
			COUNT(pgresult.id) FILTER (WHERE pgresult.rank = 1) AS top_ranks`).
		Joins("JOIN pgasset ON pgasset.id = pgresult.asset_id").
		Where("pgasset.campaign_id = ?", campaignID).
		Where("pgasset.active = ?", true).
		Group("pgasset.id, pgasset.filename").
		Order("votes DESC").
		Scan(&tallies).Error
	if err != nil {
		r.log.Error("failed to tally campaign results", "campaign_id", campaignID, "error", err)
		return nil, fmt.Errorf("failed to tally campaign results: %w", err)
	}

	r.log.Debug("campaign results tallied", "campaign_id", campaignID, "assets", len(tallies))
	return tallies, nil
}
