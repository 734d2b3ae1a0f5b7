package voter

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/imageimprov/photogame-api/internal/logger"
)

// Repository is the voter lookup surface the resolver needs. Lookups return
// (nil, nil) when no matching record exists; an error always means the
// lookup itself failed.
type Repository interface {
	FindByClientUserID(clientUserID string) (*Voter, error)
	FindByToken(token string) (*Voter, error)
	Create(v *Voter) error
}

// AssetOwnership resolves an asset id to its owning campaign and client.
// Used to pin a lazily created voter to the client whose asset was voted on.
type AssetOwnership interface {
	GetOwnership(assetID uuid.UUID) (campaignID, clientID uuid.UUID, err error)
}

// Resolver turns the identifiers a vote request carries into a voter
// record, creating one lazily for client-attributed voters.
type Resolver struct {
	voters Repository
	assets AssetOwnership
	log    *log.Logger
}

// NewResolver creates a resolver over the given lookups.
func NewResolver(voters Repository, assets AssetOwnership) *Resolver {
	return &Resolver{
		voters: voters,
		assets: assets,
		log:    logger.Service("voter_resolver"),
	}
}

// Resolve returns the voter a vote batch should be attributed to.
//
// With a client-supplied user id the resolution is durable: an existing
// record is reused, otherwise one is created, pinned to the client derived
// from the anchor asset (asset -> campaign -> client). An anchor that cannot
// be resolved is a hard failure.
//
// Without a client user id the voter is looked up by token only; an unknown
// token yields (nil, nil) and the batch stays anonymous, no row is created.
func (r *Resolver) Resolve(clientUserID, token string, anchorAssetID uuid.UUID) (*Voter, error) {
	if clientUserID != "" {
		v, err := r.voters.FindByClientUserID(clientUserID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up voter by client user id: %w", err)
		}
		if v != nil {
			r.log.Debug("resolved existing client voter", "voter_id", v.ID, "client_user_id", clientUserID)
			return v, nil
		}

		_, clientID, err := r.assets.GetOwnership(anchorAssetID)
		if err != nil {
			return nil, fmt.Errorf("cannot resolve owning client for asset %s: %w", anchorAssetID, err)
		}

		created, err := NewClientVoter(clientID, clientUserID, token)
		if err != nil {
			return nil, err
		}
		if err := r.voters.Create(created); err != nil {
			return nil, fmt.Errorf("failed to create voter: %w", err)
		}

		r.log.Info("created client voter", "voter_id", created.ID, "client_id", clientID, "client_user_id", clientUserID)
		return created, nil
	}

	if token == "" {
		return nil, nil
	}

	v, err := r.voters.FindByToken(token)
	if err != nil {
		return nil, fmt.Errorf("failed to look up voter by token: %w", err)
	}
	return v, nil
}
