package postgres

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	"github.com/imageimprov/photogame-api/internal/config"
	"github.com/imageimprov/photogame-api/internal/logger"
)

// Container is the explicitly constructed storage context: one database
// connection plus the repositories built over it. It is created once at
// startup, handed to the components that need it, and closed on shutdown.
// There is no process-global engine or session state.
type Container struct {
	db           *gorm.DB
	log          *log.Logger
	campaignRepo CampaignRepository
	assetRepo    AssetRepository
	voterRepo    VoterRepository
	voteRepo     VoteRepository
}

// NewContainer connects to the database, runs migrations and initializes
// all repositories.
func NewContainer(cfg *config.Config) (*Container, error) {
	log := logger.Repository("postgres_container")
	log.Info("Initializing PostgreSQL repository container...")

	db, err := Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	container := NewContainerWithDB(db)

	if err := container.Health(); err != nil {
		return nil, fmt.Errorf("container health check failed: %w", err)
	}

	log.Info("PostgreSQL repository container initialized")
	return container, nil
}

// NewContainerWithDB creates a container over an existing connection.
func NewContainerWithDB(db *gorm.DB) *Container {
	return &Container{
		db:           db,
		log:          logger.Repository("postgres_container"),
		campaignRepo: NewPostgresCampaignRepository(db),
		assetRepo:    NewPostgresAssetRepository(db),
		voterRepo:    NewPostgresVoterRepository(db),
		voteRepo:     NewPostgresVoteRepository(db),
	}
}

// Campaigns returns the campaign repository
func (c *Container) Campaigns() CampaignRepository {
	return c.campaignRepo
}

// Assets returns the asset repository
func (c *Container) Assets() AssetRepository {
	return c.assetRepo
}

// Voters returns the voter repository
func (c *Container) Voters() VoterRepository {
	return c.voterRepo
}

// Votes returns the vote repository
func (c *Container) Votes() VoteRepository {
	return c.voteRepo
}

// Health checks the database connection and that every table the game
// flow touches is reachable.
func (c *Container) Health() error {
	if err := HealthCheck(c.db); err != nil {
		c.log.Error("Database health check failed", "error", err)
		return fmt.Errorf("database health check failed: %w", err)
	}

	for _, table := range []string{"client", "campaign", "pgasset", "gameuser", "pgresult", "pgballot"} {
		var count int64
		if err := c.db.Table(table).Count(&count).Error; err != nil {
			c.log.Error("Table health check failed", "table", table, "error", err)
			return fmt.Errorf("table %s health check failed: %w", table, err)
		}
	}

	c.log.Debug("Container health check passed")
	return nil
}

// Close shuts down the container and closes the database connection.
func (c *Container) Close() error {
	c.log.Info("Closing PostgreSQL repository container...")

	if c.db == nil {
		c.log.Warn("Database connection is nil, nothing to close")
		return nil
	}

	if err := Close(c.db); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	c.campaignRepo = nil
	c.assetRepo = nil
	c.voterRepo = nil
	c.voteRepo = nil
	c.db = nil

	return nil
}

// CloseWithTimeout closes the container, bounding the wait.
func (c *Container) CloseWithTimeout(timeout time.Duration) error {
	done := make(chan error, 1)

	go func() {
		done <- c.Close()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		c.log.Error("Container close operation timed out", "timeout", timeout)
		return fmt.Errorf("container close operation timed out after %v", timeout)
	}
}

// GetDB returns the underlying database connection (for advanced usage)
func (c *Container) GetDB() *gorm.DB {
	return c.db
}
