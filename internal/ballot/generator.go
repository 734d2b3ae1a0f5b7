// Package ballot draws the random asset subsets presented to voters.
package ballot

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/imageimprov/photogame-api/internal/domain/asset"
	"github.com/imageimprov/photogame-api/internal/logger"
)

// ErrInsufficientAssets is the precondition failure for a campaign whose
// active pool is smaller than the requested ballot size. Campaigns must be
// provisioned with enough assets before going live; this is not a
// recoverable condition.
var ErrInsufficientAssets = errors.New("campaign has fewer active assets than the ballot size")

// AssetCatalog lists the active asset pool for a campaign.
type AssetCatalog interface {
	ListActiveByCampaign(campaignID uuid.UUID) ([]*asset.Asset, error)
}

// Generator draws uniform random ballots without replacement. Nothing is
// persisted: each call computes a fresh draw, so the same pair can recur
// for the same voter across requests.
type Generator struct {
	catalog AssetCatalog
	log     *log.Logger
}

// NewGenerator creates a generator over the given catalog.
func NewGenerator(catalog AssetCatalog) *Generator {
	return &Generator{
		catalog: catalog,
		log:     logger.Service("ballot"),
	}
}

// Draw returns size distinct assets chosen uniformly from the campaign's
// active pool: the pool is shuffled with every permutation equally likely
// and the first size elements taken.
func (g *Generator) Draw(campaignID uuid.UUID, size int) ([]*asset.Asset, error) {
	if size <= 0 {
		return nil, fmt.Errorf("ballot size must be positive, got %d", size)
	}

	pool, err := g.catalog.ListActiveByCampaign(campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch asset pool: %w", err)
	}

	if len(pool) < size {
		return nil, fmt.Errorf("%w: campaign %s has %d, need %d",
			ErrInsufficientAssets, campaignID, len(pool), size)
	}

	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	g.log.Debug("ballot drawn", "campaign_id", campaignID, "pool", len(pool), "size", size)
	return pool[:size], nil
}
