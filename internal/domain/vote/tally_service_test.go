package vote

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imageimprov/photogame-api/internal/domain/voter"
)

type fakeResultRepo struct {
	batches [][]*VoteResult
	err     error
}

func (f *fakeResultRepo) CreateBatch(results []*VoteResult) error {
	if f.err != nil {
		return f.err
	}
	f.batches = append(f.batches, results)
	return nil
}

type fakeVoterRepo struct {
	byToken map[string]*voter.Voter
	created []*voter.Voter
}

func (f *fakeVoterRepo) FindByClientUserID(clientUserID string) (*voter.Voter, error) {
	for _, v := range f.created {
		if v.ClientUserID != nil && *v.ClientUserID == clientUserID {
			return v, nil
		}
	}
	return nil, nil
}

func (f *fakeVoterRepo) FindByToken(token string) (*voter.Voter, error) {
	if f.byToken == nil {
		return nil, nil
	}
	return f.byToken[token], nil
}

func (f *fakeVoterRepo) Create(v *voter.Voter) error {
	f.created = append(f.created, v)
	return nil
}

type fakeOwnership struct {
	clientID uuid.UUID
}

func (f *fakeOwnership) GetOwnership(assetID uuid.UUID) (uuid.UUID, uuid.UUID, error) {
	return uuid.New(), f.clientID, nil
}

func newTestService(results *fakeResultRepo, voters *fakeVoterRepo) *TallyService {
	resolver := voter.NewResolver(voters, &fakeOwnership{clientID: uuid.New()})
	return NewTallyService(results, resolver)
}

func twoEntries() []Entry {
	return []Entry{
		{AssetID: uuid.New(), Rank: 1},
		{AssetID: uuid.New(), Rank: 2},
	}
}

func TestRecordVotesGroupsBatchUnderOneID(t *testing.T) {
	results := &fakeResultRepo{}
	svc := newTestService(results, &fakeVoterRepo{})

	entries := twoEntries()
	group, err := svc.RecordVotes("", "", entries)
	require.NoError(t, err)
	assert.Len(t, group, 32, "group id is a 32-character hex identifier")

	require.Len(t, results.batches, 1)
	batch := results.batches[0]
	require.Len(t, batch, len(entries))

	for i, row := range batch {
		assert.Equal(t, group, row.GroupID, "every row shares the batch group id")
		assert.Equal(t, entries[i].AssetID, row.AssetID)
		assert.Equal(t, entries[i].Rank, row.Rank)
	}
}

func TestRecordVotesFreshGroupPerBatch(t *testing.T) {
	results := &fakeResultRepo{}
	svc := newTestService(results, &fakeVoterRepo{})

	first, err := svc.RecordVotes("", "", twoEntries())
	require.NoError(t, err)

	second, err := svc.RecordVotes("", "", twoEntries())
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestRecordVotesAnonymousHasNilVoter(t *testing.T) {
	results := &fakeResultRepo{}
	svc := newTestService(results, &fakeVoterRepo{})

	_, err := svc.RecordVotes("", "", twoEntries())
	require.NoError(t, err)

	for _, row := range results.batches[0] {
		assert.Nil(t, row.VoterID)
	}
}

func TestRecordVotesAttributesClientVoter(t *testing.T) {
	results := &fakeResultRepo{}
	voters := &fakeVoterRepo{}
	svc := newTestService(results, voters)

	_, err := svc.RecordVotes("partner-user-7", "", twoEntries())
	require.NoError(t, err)

	require.Len(t, voters.created, 1, "an unknown client user id is created lazily")
	for _, row := range results.batches[0] {
		require.NotNil(t, row.VoterID)
		assert.Equal(t, voters.created[0].ID, *row.VoterID)
	}
}

func TestRecordVotesKnownTokenIsAttributed(t *testing.T) {
	known := &voter.Voter{ID: uuid.New(), Token: "TOK"}
	results := &fakeResultRepo{}
	voters := &fakeVoterRepo{byToken: map[string]*voter.Voter{"TOK": known}}
	svc := newTestService(results, voters)

	_, err := svc.RecordVotes("", "TOK", twoEntries())
	require.NoError(t, err)

	for _, row := range results.batches[0] {
		require.NotNil(t, row.VoterID)
		assert.Equal(t, known.ID, *row.VoterID)
	}
}

func TestRecordVotesEmptyBatchRejected(t *testing.T) {
	results := &fakeResultRepo{}
	svc := newTestService(results, &fakeVoterRepo{})

	_, err := svc.RecordVotes("", "", nil)
	require.Error(t, err)
	assert.Empty(t, results.batches)
}

func TestRecordVotesInvalidEntriesRejected(t *testing.T) {
	results := &fakeResultRepo{}
	svc := newTestService(results, &fakeVoterRepo{})

	_, err := svc.RecordVotes("", "", []Entry{{AssetID: uuid.Nil, Rank: 1}})
	assert.Error(t, err)

	_, err = svc.RecordVotes("", "", []Entry{{AssetID: uuid.New(), Rank: 0}})
	assert.Error(t, err)

	assert.Empty(t, results.batches)
}

func TestRecordVotesPersistenceFailurePropagates(t *testing.T) {
	results := &fakeResultRepo{err: errors.New("constraint violation")}
	svc := newTestService(results, &fakeVoterRepo{})

	_, err := svc.RecordVotes("", "", twoEntries())
	require.Error(t, err)
	assert.Empty(t, results.batches)
}
