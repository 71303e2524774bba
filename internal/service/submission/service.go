// internal/service/submission/service.go
package submission

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"motomarket-service/internal/domain/listing"
	"motomarket-service/internal/domain/profile"
	xerrors "motomarket-service/internal/pkg/errors"
	"motomarket-service/internal/pkg/guard"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// ImageStore uploads listing photos and returns their public URLs.
type ImageStore interface {
	Upload(ctx context.Context, fileName string, data []byte, contentType string) (string, error)
}

// ErrorLog is the best-effort remote error log. A failure to log is
// swallowed, never escalated.
type ErrorLog interface {
	Insert(ctx context.Context, userID, message, fullError string) error
}

// GuardProvider hands out the per-session operation guard.
type GuardProvider interface {
	ForSession(sessionID string) *guard.Guard
}

// Service is the guarded create/edit pipeline. Every submission runs
// under the operation guard: the in-progress flag is checked at the
// intent boundary by the handler and re-checked here inside the body, and
// cleared on every exit path.
type Service struct {
	repo     listing.Repository
	profiles profile.Repository
	images   ImageStore
	guards   GuardProvider
	errlog   ErrorLog
	logger   *zap.Logger
}

func NewService(
	repo listing.Repository,
	profiles profile.Repository,
	images ImageStore,
	guards GuardProvider,
	errlog ErrorLog,
	logger *zap.Logger,
) *Service {
	return &Service{
		repo:     repo,
		profiles: profiles,
		images:   images,
		guards:   guards,
		errlog:   errlog,
		logger:   logger,
	}
}

// GuardFor exposes the session's operation guard for the handler's
// intent-boundary check.
func (s *Service) GuardFor(sessionID string) *guard.Guard {
	return s.guards.ForSession(sessionID)
}

// Create publishes a new listing in pending status. At most one create
// call reaches the backend while a submission is in flight for the
// session.
func (s *Service) Create(ctx context.Context, sessionID, userID string, req listing.CreateRequest, images []ImageUpload) (*listing.Listing, error) {
	prof, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, xerrors.Wrap(err, "seller profile not found")
	}

	if errs := ValidateAll(req, prof.SellerType, images); len(errs) > 0 {
		return nil, errs
	}

	// Second check of the duplicate-submission defense: the handler
	// already rejected at the intent boundary, this one closes the gap
	// between that check and the flags being set.
	g := s.guards.ForSession(sessionID)
	if !g.TryEnter(ctx, guard.OpListingSubmission) {
		s.logger.Info("submission: duplicate create rejected", zap.String("user_id", userID))
		return nil, xerrors.ErrSubmissionInFlight
	}
	defer g.Leave(context.WithoutCancel(ctx), guard.OpListingSubmission)

	urls, err := s.uploadImages(ctx, images)
	if err != nil {
		s.reportFailure(ctx, userID, err)
		return nil, xerrors.Wrap(err, "failed to upload images")
	}

	l := buildListing(req, prof, urls)
	l.ID = ulid.Make().String()
	l.Status = listing.StatusPending

	if err := s.repo.Create(ctx, l); err != nil {
		s.reportFailure(ctx, userID, err)
		return nil, xerrors.Wrap(err, "failed to create listing")
	}

	s.logger.Info("submission: listing created",
		zap.String("listing_id", l.ID),
		zap.String("seller_id", l.SellerID),
	)
	return l, nil
}

// Update edits an existing listing. Only the owner may edit, and the row
// goes back to pending for re-moderation.
func (s *Service) Update(ctx context.Context, sessionID, userID, id string, req listing.CreateRequest, images []ImageUpload) (*listing.Listing, error) {
	prof, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, xerrors.Wrap(err, "seller profile not found")
	}

	current, err := s.repo.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.SellerID != prof.ID {
		return nil, xerrors.ErrForbidden
	}

	if errs := ValidateAllForEdit(req, prof.SellerType, images, len(current.Images)); len(errs) > 0 {
		return nil, errs
	}

	g := s.guards.ForSession(sessionID)
	if !g.TryEnter(ctx, guard.OpListingSubmission) {
		s.logger.Info("submission: duplicate edit rejected", zap.String("listing_id", id))
		return nil, xerrors.ErrSubmissionInFlight
	}
	defer g.Leave(context.WithoutCancel(ctx), guard.OpListingSubmission)

	imageURLs := current.Images
	if len(images) > 0 {
		imageURLs, err = s.uploadImages(ctx, images)
		if err != nil {
			s.reportFailure(ctx, userID, err)
			return nil, xerrors.Wrap(err, "failed to upload images")
		}
	}

	patch := buildPatch(req, imageURLs, prof.SellerType)
	if err := s.repo.Update(ctx, id, patch); err != nil {
		s.reportFailure(ctx, userID, err)
		return nil, xerrors.Wrap(err, "failed to update listing")
	}

	updated := *current
	applyPatch(&updated, patch)
	s.logger.Info("submission: listing updated, back to pending", zap.String("listing_id", id))
	return &updated, nil
}

// BySeller returns every listing owned by the user, any status.
func (s *Service) BySeller(ctx context.Context, userID string) ([]listing.Listing, error) {
	prof, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, xerrors.Wrap(err, "seller profile not found")
	}
	return s.repo.FetchBySeller(ctx, prof.ID)
}

func (s *Service) uploadImages(ctx context.Context, images []ImageUpload) ([]string, error) {
	urls := make([]string, 0, len(images))
	for _, img := range images {
		url, err := s.images.Upload(ctx, img.Name, img.Data, img.ContentType)
		if err != nil {
			// No partial reconciliation: the whole submission fails and
			// nothing is considered published.
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// reportFailure persists the failure to the remote error log, best effort.
func (s *Service) reportFailure(ctx context.Context, userID string, cause error) {
	if s.errlog == nil {
		return
	}
	detail, _ := json.Marshal(map[string]string{"error": cause.Error()})
	if err := s.errlog.Insert(context.WithoutCancel(ctx), userID, cause.Error(), string(detail)); err != nil {
		s.logger.Warn("submission: error log write failed", zap.Error(err))
	}
}

func buildListing(req listing.CreateRequest, prof *profile.Profile, imageURLs []string) *listing.Listing {
	// Numeric fields were validated already; parse errors cannot occur here.
	year, _ := strconv.Atoi(req.Year)
	mileage, _ := strconv.Atoi(req.Mileage)
	engine, _ := strconv.Atoi(req.Engine)
	price, _ := strconv.ParseFloat(req.Price, 64)

	l := &listing.Listing{
		Title:          strings.TrimSpace(req.Title),
		Brand:          req.Brand,
		Model:          strings.TrimSpace(req.Model),
		Category:       MapForDatabase("category", req.Category),
		Color:          strings.TrimSpace(req.Color),
		Description:    strings.TrimSpace(req.Description),
		Price:          price,
		Year:           year,
		Mileage:        mileage,
		EngineCapacity: engine,
		FuelType:       MapForDatabase("fuel", req.Fuel),
		Transmission:   MapForDatabase("transmission", req.Transmission),
		Condition:      MapForDatabase("condition", req.Condition),
		Features:       req.Features,
		Images:         imageURLs,
		Location:       strings.TrimSpace(req.Location),
		SellerID:       prof.ID,
		SellerName:     prof.Name,
		SellerType:     prof.SellerType,
		Phone:          strings.TrimSpace(req.Phone),
		Email:          strings.TrimSpace(req.Email),
	}
	if prof.SellerType == listing.SellerTypeDealer {
		l.Availability = availabilityOrDefault(req.Availability)
	}
	return l
}

func buildPatch(req listing.CreateRequest, imageURLs []string, sellerType string) listing.Patch {
	year, _ := strconv.Atoi(req.Year)
	mileage, _ := strconv.Atoi(req.Mileage)
	engine, _ := strconv.Atoi(req.Engine)
	price, _ := strconv.ParseFloat(req.Price, 64)

	p := listing.Patch{
		Title:          strings.TrimSpace(req.Title),
		Category:       MapForDatabase("category", req.Category),
		Brand:          req.Brand,
		Model:          strings.TrimSpace(req.Model),
		Year:           year,
		Mileage:        mileage,
		EngineCapacity: engine,
		FuelType:       MapForDatabase("fuel", req.Fuel),
		Transmission:   MapForDatabase("transmission", req.Transmission),
		Color:          strings.TrimSpace(req.Color),
		Condition:      MapForDatabase("condition", req.Condition),
		Price:          price,
		Location:       strings.TrimSpace(req.Location),
		Description:    strings.TrimSpace(req.Description),
		Features:       req.Features,
		Images:         imageURLs,
		// An edited listing always goes back through moderation.
		Status: listing.StatusPending,
	}
	if sellerType == listing.SellerTypeDealer {
		p.Availability = availabilityOrDefault(req.Availability)
	}
	return p
}

func applyPatch(l *listing.Listing, p listing.Patch) {
	l.Title = p.Title
	l.Category = p.Category
	l.Brand = p.Brand
	l.Model = p.Model
	l.Year = p.Year
	l.Mileage = p.Mileage
	l.EngineCapacity = p.EngineCapacity
	l.FuelType = p.FuelType
	l.Transmission = p.Transmission
	l.Color = p.Color
	l.Condition = p.Condition
	l.Price = p.Price
	l.Location = p.Location
	l.Description = p.Description
	l.Features = p.Features
	l.Images = p.Images
	l.Availability = p.Availability
	l.Status = p.Status
}

func availabilityOrDefault(v string) listing.Availability {
	if listing.ValidAvailability(listing.Availability(v)) {
		return listing.Availability(v)
	}
	return listing.AvailabilityInStock
}
