package postgres

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	voterDomain "github.com/imageimprov/photogame-api/internal/domain/voter"
	"github.com/imageimprov/photogame-api/internal/logger"
)

// PostgresVoterRepository implements VoterRepository using GORM
type PostgresVoterRepository struct {
	db  *gorm.DB
	log *log.Logger
}

// NewPostgresVoterRepository creates a new PostgreSQL voter repository
func NewPostgresVoterRepository(db *gorm.DB) *PostgresVoterRepository {
	return &PostgresVoterRepository{
		db:  db,
		log: logger.Repository("voter"),
	}
}

func (r *PostgresVoterRepository) Create(v *voterDomain.Voter) error {
	if v == nil {
		return fmt.Errorf("voter cannot be nil")
	}
	if v.Token == "" {
		return fmt.Errorf("voter token cannot be empty")
	}

	if err := r.db.Create(v).Error; err != nil {
		r.log.Error("failed to create voter", "error", err, "voter_id", v.ID)
		return fmt.Errorf("failed to create voter: %w", err)
	}

	r.log.Info("voter created", "voter_id", v.ID, "anonymous", v.ClientID == nil)
	return nil
}

// FindByClientUserID returns (nil, nil) when no voter carries the id.
func (r *PostgresVoterRepository) FindByClientUserID(clientUserID string) (*voterDomain.Voter, error) {
	if clientUserID == "" {
		return nil, fmt.Errorf("client user id cannot be empty")
	}

	var v voterDomain.Voter
	err := r.db.Where("client_user_id = ?", clientUserID).First(&v).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.log.Error("failed to look up voter by client user id", "error", err)
		return nil, fmt.Errorf("failed to look up voter: %w", err)
	}

	return &v, nil
}

// FindByToken returns (nil, nil) when no voter carries the token.
func (r *PostgresVoterRepository) FindByToken(token string) (*voterDomain.Voter, error) {
	if token == "" {
		return nil, fmt.Errorf("voter token cannot be empty")
	}

	var v voterDomain.Voter
	err := r.db.Where("token = ?", token).First(&v).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.log.Error("failed to look up voter by token", "error", err)
		return nil, fmt.Errorf("failed to look up voter: %w", err)
	}

	return &v, nil
}
