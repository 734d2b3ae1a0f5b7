package handlers

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/imageimprov/photogame-api/internal/assetstore"
	assetDomain "github.com/imageimprov/photogame-api/internal/domain/asset"
	"github.com/imageimprov/photogame-api/internal/logger"
	"github.com/imageimprov/photogame-api/internal/response"
	"github.com/imageimprov/photogame-api/internal/storage/postgres"
)

// allowedImageTypes maps accepted upload content types to the stored
// file extension.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpeg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

// AssetHandler ingests uploaded photos and serves stored ones back.
type AssetHandler struct {
	assetRepo     postgres.AssetRepository
	campaignRepo  postgres.CampaignRepository
	store         *assetstore.Store
	maxUploadSize int64
}

func NewAssetHandler(assetRepo postgres.AssetRepository, campaignRepo postgres.CampaignRepository, store *assetstore.Store, maxUploadSize int64) *AssetHandler {
	return &AssetHandler{
		assetRepo:     assetRepo,
		campaignRepo:  campaignRepo,
		store:         store,
		maxUploadSize: maxUploadSize,
	}
}

// UploadAsset handles POST /photogame/{campaign_id}/asset
//
// The file bytes are written to the sharded store first; the catalog row is
// created only after the write lands. A catalog failure removes the file
// again so the store never holds orphans the database does not know about.
func (h *AssetHandler) UploadAsset(c *gin.Context) {
	log := logger.Handler("asset")

	campaignID, err := uuid.Parse(c.Param("campaign_id"))
	if err != nil {
		response.BadRequestError(c, "campaign_id must be a valid UUID")
		return
	}

	// Uploads are allowed while a campaign is being provisioned, so this
	// checks existence only, not liveness.
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

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequestError(c, "No file provided")
		return
	}
	defer file.Close()

	if header.Size > h.maxUploadSize {
		response.PayloadTooLargeError(c, "File exceeds the upload size limit")
		return
	}

	contentType := header.Header.Get("Content-Type")
	extension, ok := allowedImageTypes[contentType]
	if !ok {
		response.BadRequestError(c, "Only JPEG, PNG and GIF images are accepted")
		return
	}

	image, err := io.ReadAll(file)
	if err != nil {
		log.Error("failed to read upload body", "error", err)
		response.InternalServerError(c, "Failed to read uploaded file")
		return
	}

	saved, err := h.store.Save(image, extension)
	if err != nil {
		log.Error("store write failed", "campaign_id", campaignID, "error", err)
		response.InternalServerError(c, "Failed to store image")
		return
	}

	newAsset := assetDomain.NewAsset(campaignID, saved.Dir, saved.Filename)
	if err := h.assetRepo.Create(newAsset); err != nil {
		// Clean up the file if the catalog write fails
		os.Remove(saved.FullPath())
		log.Error("asset catalog write failed", "campaign_id", campaignID, "filename", saved.Filename, "error", err)
		response.InternalServerError(c, "Failed to save asset metadata")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":          newAsset.ID,
		"campaign_id": newAsset.CampaignID,
		"filename":    newAsset.Filename,
		"size":        len(image),
		"message":     "Photo uploaded successfully",
	})
}

// GetAsset handles GET /asset/{asset_id}
func (h *AssetHandler) GetAsset(c *gin.Context) {
	log := logger.Handler("asset")

	assetID, err := uuid.Parse(c.Param("asset_id"))
	if err != nil {
		response.BadRequestError(c, "asset_id must be a valid UUID")
		return
	}

	a, err := h.assetRepo.GetActive(assetID)
	if err != nil {
		log.Error("asset lookup failed", "asset_id", assetID, "error", err)
		response.InternalServerError(c, "Failed to load asset")
		return
	}
	if a == nil {
		response.NotFoundError(c, "Asset not found")
		return
	}

	data, err := h.store.Load(a.FilePath, a.Filename)
	if err != nil {
		log.Error("asset file missing or unreadable", "asset_id", assetID, "path", a.FilePath, "filename", a.Filename, "error", err)
		response.NotFoundError(c, "Asset file not found")
		return
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, contentTypeForFilename(a.Filename), data)
}

// contentTypeForFilename maps a stored filename back to its content type.
func contentTypeForFilename(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	default:
		return "application/octet-stream"
	}
}
