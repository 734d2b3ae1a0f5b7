package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/imageimprov/photogame-api/internal/ballot"
	"github.com/imageimprov/photogame-api/internal/domain/voter"
	"github.com/imageimprov/photogame-api/internal/logger"
	"github.com/imageimprov/photogame-api/internal/response"
	"github.com/imageimprov/photogame-api/internal/storage/postgres"
)

// voterCookieMaxAge keeps the anonymous token for a year.
const voterCookieMaxAge = 365 * 24 * 60 * 60

// GameHandler serves ballots and results for live campaigns.
type GameHandler struct {
	campaignRepo postgres.CampaignRepository
	voteRepo     postgres.VoteRepository
	ballots      *ballot.Generator
	ballotSize   int
	cookieName   string
	baseURL      string
}

func NewGameHandler(campaignRepo postgres.CampaignRepository, voteRepo postgres.VoteRepository, ballots *ballot.Generator, ballotSize int, cookieName, baseURL string) *GameHandler {
	return &GameHandler{
		campaignRepo: campaignRepo,
		voteRepo:     voteRepo,
		ballots:      ballots,
		ballotSize:   ballotSize,
		cookieName:   cookieName,
		baseURL:      baseURL,
	}
}

// GetPhotogame handles GET /photogame/{campaign_id}
//
// The response is a fresh ballot for the campaign, or an empty 204 when the
// campaign is missing, inactive or outside its date window. The widget hides
// itself on 204, so embedding sites never need to know campaign schedules.
func (h *GameHandler) GetPhotogame(c *gin.Context) {
	log := logger.Handler("game")

	campaignID, err := uuid.Parse(c.Param("campaign_id"))
	if err != nil {
		response.BadRequestError(c, "campaign_id must be a valid UUID")
		return
	}

	campaign, err := h.campaignRepo.FindActive(campaignID, time.Now().UTC())
	if err != nil {
		log.Error("campaign lookup failed", "campaign_id", campaignID, "error", err)
		response.InternalServerError(c, "Failed to load campaign")
		return
	}
	if campaign == nil {
		response.NoContent(c)
		return
	}

	assets, err := h.ballots.Draw(campaignID, h.ballotSize)
	if err != nil {
		if errors.Is(err, ballot.ErrInsufficientAssets) {
			log.Error("campaign pool too small for ballot", "campaign_id", campaignID, "error", err)
		} else {
			log.Error("ballot draw failed", "campaign_id", campaignID, "error", err)
		}
		response.InternalServerError(c, "Failed to build ballot")
		return
	}

	h.ensureVoterCookie(c)

	entries := make([]gin.H, 0, len(assets))
	for _, a := range assets {
		entries = append(entries, gin.H{
			"asset_id": a.ID,
			"url":      h.baseURL + "/asset/" + a.ID.String(),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"campaign_id":   campaign.ID,
		"campaign_name": campaign.Name,
		"ballot":        entries,
	})
}

// GetResults handles GET /photogame/{campaign_id}/results
func (h *GameHandler) GetResults(c *gin.Context) {
	log := logger.Handler("game")

	campaignID, err := uuid.Parse(c.Param("campaign_id"))
	if err != nil {
		response.BadRequestError(c, "campaign_id must be a valid UUID")
		return
	}

	campaign, err := h.campaignRepo.GetByID(campaignID)
	if err != nil {
		log.Error("campaign lookup failed", "campaign_id", campaignID, "error", err)
		response.InternalServerError(c, "Failed to load campaign")
		return
	}
	if campaign == nil {
		response.NotFoundError(c, "Campaign not found")
		return
	}

	tallies, err := h.voteRepo.GetCampaignResults(campaignID)
	if err != nil {
		log.Error("results query failed", "campaign_id", campaignID, "error", err)
		response.InternalServerError(c, "Failed to load results")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"campaign_id": campaign.ID,
		"results":     tallies,
	})
}

// ensureVoterCookie mints an anonymous voter token on the first visit and
// leaves an existing cookie untouched.
func (h *GameHandler) ensureVoterCookie(c *gin.Context) {
	existing, err := c.Cookie(h.cookieName)
	if err == nil && existing != "" {
		return
	}

	token, err := voter.MintToken("")
	if err != nil {
		logger.Handler("game").Error("failed to mint voter token", "error", err)
		return
	}

	c.SetCookie(h.cookieName, token, voterCookieMaxAge, "/", "", false, true)
}
