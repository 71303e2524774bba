// internal/handlers/listing/listing_handler.go
package listing

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	domain "motomarket-service/internal/domain/listing"
	"motomarket-service/internal/middleware"
	xerrors "motomarket-service/internal/pkg/errors"
	"motomarket-service/internal/pkg/guard"
	"motomarket-service/internal/pkg/response"
	"motomarket-service/internal/service/catalog"
	"motomarket-service/internal/service/submission"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxUploadBytes = 64 << 20

type ListingHandler struct {
	submissions *submission.Service
	catalog     *catalog.Service
	logger      *zap.Logger
}

func NewListingHandler(submissions *submission.Service, catalogService *catalog.Service, logger *zap.Logger) *ListingHandler {
	return &ListingHandler{
		submissions: submissions,
		catalog:     catalogService,
		logger:      logger,
	}
}

// Create publishes a new listing. The form arrives as multipart: a
// "listing" JSON part plus "images" file parts. The in-progress flag is
// checked here at the intent boundary; the submission service checks it
// again before setting flags.
func (h *ListingHandler) Create(c *gin.Context) {
	userID := middleware.MustGetUserID(c)
	sessionID := middleware.MustGetSessionID(c)

	if h.submissions.GuardFor(sessionID).InProgress(c.Request.Context(), guard.OpListingSubmission) {
		response.Error(c, http.StatusConflict, "a submission is already in progress", xerrors.ErrSubmissionInFlight)
		return
	}

	req, images, err := parseListingForm(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid listing form", err)
		return
	}

	created, err := h.submissions.Create(c.Request.Context(), sessionID, userID, req, images)
	if err != nil {
		h.writeSubmissionError(c, err)
		return
	}

	h.catalog.Apply(*created)
	response.Success(c, http.StatusCreated, "listing submitted for review", created)
}

// Update edits an existing listing, sending it back through moderation.
func (h *ListingHandler) Update(c *gin.Context) {
	userID := middleware.MustGetUserID(c)
	sessionID := middleware.MustGetSessionID(c)
	id := c.Param("id")

	if h.submissions.GuardFor(sessionID).InProgress(c.Request.Context(), guard.OpListingSubmission) {
		response.Error(c, http.StatusConflict, "a submission is already in progress", xerrors.ErrSubmissionInFlight)
		return
	}

	req, images, err := parseListingForm(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid listing form", err)
		return
	}

	updated, err := h.submissions.Update(c.Request.Context(), sessionID, userID, id, req, images)
	if err != nil {
		h.writeSubmissionError(c, err)
		return
	}

	h.catalog.Apply(*updated)
	response.Success(c, http.StatusOK, "listing updated, pending review", updated)
}

// MyListings returns the authenticated seller's own listings, every
// status included.
func (h *ListingHandler) MyListings(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	rows, err := h.submissions.BySeller(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusBadGateway, "failed to load your listings", err)
		return
	}

	response.Success(c, http.StatusOK, "listings retrieved", rows)
}

func (h *ListingHandler) writeSubmissionError(c *gin.Context, err error) {
	var fieldErrs submission.ValidationErrors
	switch {
	case xerrors.Is(err, xerrors.ErrSubmissionInFlight):
		response.Error(c, http.StatusConflict, "a submission is already in progress", err)
	case xerrors.Is(err, xerrors.ErrForbidden):
		response.Forbidden(c, "you can only edit your own listings")
	case xerrors.Is(err, xerrors.ErrNotFound):
		response.NotFound(c, "listing not found")
	case errors.As(err, &fieldErrs):
		response.ValidationError(c, "listing form has errors", fieldErrs)
	default:
		h.logger.Error("submission failed", zap.Error(err))
		response.Error(c, http.StatusBadGateway, "failed to save listing", err)
	}
}

func parseListingForm(c *gin.Context) (domain.CreateRequest, []submission.ImageUpload, error) {
	var req domain.CreateRequest

	if err := c.Request.ParseMultipartForm(maxUploadBytes); err != nil {
		return req, nil, err
	}

	if err := json.Unmarshal([]byte(c.PostForm("listing")), &req); err != nil {
		return req, nil, err
	}

	form := c.Request.MultipartForm
	var images []submission.ImageUpload
	for _, fh := range form.File["images"] {
		f, err := fh.Open()
		if err != nil {
			return req, nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return req, nil, err
		}
		images = append(images, submission.ImageUpload{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        int64(len(data)),
			Data:        data,
		})
	}

	return req, images, nil
}
