package ballot

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imageimprov/photogame-api/internal/domain/asset"
)

type fakeCatalog struct {
	assets []*asset.Asset
	err    error
}

func (f *fakeCatalog) ListActiveByCampaign(campaignID uuid.UUID) ([]*asset.Asset, error) {
	if f.err != nil {
		return nil, f.err
	}
	// Return a copy so the generator's shuffle cannot reorder the fixture.
	pool := make([]*asset.Asset, len(f.assets))
	copy(pool, f.assets)
	return pool, nil
}

func makeAssets(campaignID uuid.UUID, n int) []*asset.Asset {
	assets := make([]*asset.Asset, 0, n)
	for i := 0; i < n; i++ {
		assets = append(assets, asset.NewAsset(campaignID, "/store/000/000/000", uuid.NewString()+".jpeg"))
	}
	return assets
}

func TestDrawReturnsDistinctAssetsFromPool(t *testing.T) {
	campaignID := uuid.New()
	pool := makeAssets(campaignID, 10)
	g := NewGenerator(&fakeCatalog{assets: pool})

	poolIDs := make(map[uuid.UUID]bool, len(pool))
	for _, a := range pool {
		poolIDs[a.ID] = true
	}

	for i := 0; i < 50; i++ {
		drawn, err := g.Draw(campaignID, 2)
		require.NoError(t, err)
		require.Len(t, drawn, 2)

		assert.NotEqual(t, drawn[0].ID, drawn[1].ID, "a ballot never repeats an asset")
		assert.True(t, poolIDs[drawn[0].ID])
		assert.True(t, poolIDs[drawn[1].ID])
	}
}

func TestDrawEventuallyCoversThePool(t *testing.T) {
	campaignID := uuid.New()
	pool := makeAssets(campaignID, 5)
	g := NewGenerator(&fakeCatalog{assets: pool})

	seen := make(map[uuid.UUID]bool)
	for i := 0; i < 200; i++ {
		drawn, err := g.Draw(campaignID, 2)
		require.NoError(t, err)
		for _, a := range drawn {
			seen[a.ID] = true
		}
	}

	assert.Len(t, seen, len(pool), "a uniform draw reaches every asset over many ballots")
}

func TestDrawInsufficientAssets(t *testing.T) {
	campaignID := uuid.New()
	g := NewGenerator(&fakeCatalog{assets: makeAssets(campaignID, 1)})

	_, err := g.Draw(campaignID, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientAssets)
}

func TestDrawEmptyPool(t *testing.T) {
	g := NewGenerator(&fakeCatalog{})

	_, err := g.Draw(uuid.New(), 2)
	assert.ErrorIs(t, err, ErrInsufficientAssets)
}

func TestDrawExactPoolSize(t *testing.T) {
	campaignID := uuid.New()
	g := NewGenerator(&fakeCatalog{assets: makeAssets(campaignID, 2)})

	drawn, err := g.Draw(campaignID, 2)
	require.NoError(t, err)
	assert.Len(t, drawn, 2)
}

func TestDrawPropagatesCatalogError(t *testing.T) {
	g := NewGenerator(&fakeCatalog{err: errors.New("db down")})

	_, err := g.Draw(uuid.New(), 2)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInsufficientAssets)
}

func TestDrawRejectsNonPositiveSize(t *testing.T) {
	g := NewGenerator(&fakeCatalog{})

	_, err := g.Draw(uuid.New(), 0)
	assert.Error(t, err)
}
