package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/imageimprov/photogame-api/internal/domain/vote"
	"github.com/imageimprov/photogame-api/internal/logger"
	"github.com/imageimprov/photogame-api/internal/middleware/widgetauth"
	"github.com/imageimprov/photogame-api/internal/response"
)

// VoteRequest is the body of POST /vote.
type VoteRequest struct {
	UserID string             `json:"user_id"`
	Votes  []VoteRequestEntry `json:"votes" binding:"required"`
}

// VoteRequestEntry is one ranked choice of a submitted ballot.
type VoteRequestEntry struct {
	AssetID string `json:"asset_id" binding:"required"`
	Rank    int    `json:"rank" binding:"required"`
}

// VoteHandler records submitted ballots.
type VoteHandler struct {
	tally      *vote.TallyService
	cookieName string
}

func NewVoteHandler(tally *vote.TallyService, cookieName string) *VoteHandler {
	return &VoteHandler{
		tally:      tally,
		cookieName: cookieName,
	}
}

// PostVote handles POST /vote
//
// The voter identity comes from the request body's user_id, falling back to
// the widget JWT, falling back to the anonymous voter cookie. All of them
// may be absent; the votes still count, unattributed.
func (h *VoteHandler) PostVote(c *gin.Context) {
	log := logger.Handler("vote")

	var req VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid vote payload: "+err.Error())
		return
	}
	if len(req.Votes) == 0 {
		response.BadRequestError(c, "Vote batch cannot be empty")
		return
	}

	entries := make([]vote.Entry, 0, len(req.Votes))
	for _, v := range req.Votes {
		assetID, err := uuid.Parse(v.AssetID)
		if err != nil {
			response.BadRequestError(c, "asset_id must be a valid UUID")
			return
		}
		if v.Rank <= 0 {
			response.BadRequestError(c, "rank must be positive")
			return
		}
		entries = append(entries, vote.Entry{AssetID: assetID, Rank: v.Rank})
	}

	userID := req.UserID
	if userID == "" {
		userID = c.GetString(widgetauth.UserIDKey)
	}

	token, _ := c.Cookie(h.cookieName)

	groupID, err := h.tally.RecordVotes(userID, token, entries)
	if err != nil {
		if errors.Is(err, vote.ErrInvalidReference) {
			response.BadRequestError(c, "Vote references an invalid campaign or client")
			return
		}
		log.Error("failed to record vote batch", "votes", len(entries), "error", err)
		response.InternalServerError(c, "Failed to record votes")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"group_id": groupID,
		"votes":    len(entries),
		"message":  "Votes recorded successfully",
	})
}
