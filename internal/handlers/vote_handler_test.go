package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	voteDomain "github.com/imageimprov/photogame-api/internal/domain/vote"
	voterDomain "github.com/imageimprov/photogame-api/internal/domain/voter"
)

type recordingResultRepo struct {
	batches [][]*voteDomain.VoteResult
	err     error
}

func (r *recordingResultRepo) CreateBatch(results []*voteDomain.VoteResult) error {
	if r.err != nil {
		return r.err
	}
	r.batches = append(r.batches, results)
	return nil
}

type emptyVoterRepo struct{}

func (emptyVoterRepo) FindByClientUserID(clientUserID string) (*voterDomain.Voter, error) {
	return nil, nil
}
func (emptyVoterRepo) FindByToken(token string) (*voterDomain.Voter, error) { return nil, nil }
func (emptyVoterRepo) Create(v *voterDomain.Voter) error                    { return nil }

type nilOwnership struct{}

func (nilOwnership) GetOwnership(assetID uuid.UUID) (uuid.UUID, uuid.UUID, error) {
	return uuid.New(), uuid.New(), nil
}

func setupVoteRouter(results *recordingResultRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)

	resolver := voterDomain.NewResolver(emptyVoterRepo{}, nilOwnership{})
	tally := voteDomain.NewTallyService(results, resolver)
	h := NewVoteHandler(tally, "ii_voter")

	router := gin.New()
	router.POST("/vote", h.PostVote)
	return router
}

func postVote(t *testing.T, router *gin.Engine, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/vote", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestPostVoteRecordsBatch(t *testing.T) {
	results := &recordingResultRepo{}
	router := setupVoteRouter(results)

	w := postVote(t, router, gin.H{
		"votes": []gin.H{
			{"asset_id": uuid.NewString(), "rank": 1},
			{"asset_id": uuid.NewString(), "rank": 2},
		},
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		GroupID string `json:"group_id"`
		Votes   int    `json:"votes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.GroupID, 32)
	assert.Equal(t, 2, body.Votes)

	require.Len(t, results.batches, 1)
	require.Len(t, results.batches[0], 2)
	for _, row := range results.batches[0] {
		assert.Equal(t, body.GroupID, row.GroupID)
	}
}

func TestPostVoteEmptyBatch(t *testing.T) {
	router := setupVoteRouter(&recordingResultRepo{})

	w := postVote(t, router, gin.H{"votes": []gin.H{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPostVoteMalformedAssetID(t *testing.T) {
	router := setupVoteRouter(&recordingResultRepo{})

	w := postVote(t, router, gin.H{
		"votes": []gin.H{{"asset_id": "not-a-uuid", "rank": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPostVoteNonPositiveRank(t *testing.T) {
	router := setupVoteRouter(&recordingResultRepo{})

	w := postVote(t, router, gin.H{
		"votes": []gin.H{{"asset_id": uuid.NewString(), "rank": -1}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPostVoteInvalidReferenceIsClientFault(t *testing.T) {
	results := &recordingResultRepo{err: voteDomain.ErrInvalidReference}
	router := setupVoteRouter(results)

	w := postVote(t, router, gin.H{
		"votes": []gin.H{{"asset_id": uuid.NewString(), "rank": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPostVoteBadJSON(t *testing.T) {
	router := setupVoteRouter(&recordingResultRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/vote", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
