package vote

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/imageimprov/photogame-api/internal/domain/voter"
	"github.com/imageimprov/photogame-api/internal/gameid"
	"github.com/imageimprov/photogame-api/internal/logger"
)

// ResultRepository persists vote batches. CreateBatch must be atomic: on
// failure no row of the batch may remain.
type ResultRepository interface {
	CreateBatch(results []*VoteResult) error
}

// Entry is one ranked vote inside a submitted ballot.
type Entry struct {
	AssetID uuid.UUID
	Rank    int
}

// TallyService records a submitted ballot as one grouped unit.
type TallyService struct {
	results  ResultRepository
	resolver *voter.Resolver
	log      *log.Logger
}

// NewTallyService creates a tally service.
func NewTallyService(results ResultRepository, resolver *voter.Resolver) *TallyService {
	return &TallyService{
		results:  results,
		resolver: resolver,
		log:      logger.Service("tally"),
	}
}

// RecordVotes persists one row per entry, all sharing a freshly minted
// group identifier. The voter identity is resolved first, using the first
// entry's asset as the campaign/client anchor when a client-supplied user
// id needs lazy creation. Asset ids are not validated here: a bad reference
// is caught by the database's integrity checks and surfaces as
// ErrInvalidReference.
func (s *TallyService) RecordVotes(clientUserID, token string, entries []Entry) (string, error) {
	if len(entries) == 0 {
		return "", errors.New("vote batch cannot be empty")
	}
	for _, e := range entries {
		if e.AssetID == uuid.Nil {
			return "", errors.New("vote entry is missing an asset id")
		}
		if e.Rank <= 0 {
			return "", fmt.Errorf("vote entry for asset %s has non-positive rank %d", e.AssetID, e.Rank)
		}
	}

	groupID, err := gameid.New()
	if err != nil {
		return "", err
	}
	group := groupID.Hex()

	resolved, err := s.resolver.Resolve(clientUserID, token, entries[0].AssetID)
	if err != nil {
		return "", err
	}

	var voterID *uuid.UUID
	if resolved != nil {
		voterID = &resolved.ID
	}

	rows := make([]*VoteResult, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, NewVoteResult(e.AssetID, voterID, e.Rank, group))
	}

	if err := s.results.CreateBatch(rows); err != nil {
		return "", err
	}

	s.log.Info("vote batch recorded", "group_id", group, "votes", len(rows), "anonymous", voterID == nil)
	return group, nil
}
