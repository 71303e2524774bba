// internal/service/submission/validate.go
package submission

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"motomarket-service/internal/domain/listing"
)

// Field limits enforced on the submission form.
const (
	maxTitleLen       = 100
	minYear           = 1990
	maxMileage        = 500000
	minEngineCapacity = 50
	maxEngineCapacity = 3000
	minPrice          = 100
	maxPrice          = 1000000
	maxDescriptionLen = 2000
	maxImages         = 10
	maxImageBytes     = 5 * 1024 * 1024
)

var (
	phoneRe = regexp.MustCompile(`^[0-9+\-\s()]{10,15}$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ImageUpload is one image file attached to a submission.
type ImageUpload struct {
	Name        string
	ContentType string
	Size        int64
	Data        []byte
}

// ValidationErrors maps field name to the message shown next to it.
type ValidationErrors map[string]string

func (e ValidationErrors) Error() string {
	parts := make([]string, 0, len(e))
	for field, msg := range e {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ValidateStep validates one step of the multi-step form so the client
// can gate navigation between steps. Steps: 1 basics, 2 photos,
// 3 description and price, 4 contact.
func ValidateStep(step int, req listing.CreateRequest, sellerType string, images []ImageUpload) ValidationErrors {
	errs := ValidationErrors{}

	switch step {
	case 1:
		if strings.TrimSpace(req.Title) == "" {
			errs["title"] = "title is required"
		} else if len(req.Title) > maxTitleLen {
			errs["title"] = fmt.Sprintf("title cannot exceed %d characters", maxTitleLen)
		}

		if req.Category == "" {
			errs["category"] = "category is required"
		} else if !listing.ValidCategory(MapForDatabase("category", req.Category)) {
			errs["category"] = "unknown category"
		}

		if req.Brand == "" {
			errs["brand"] = "brand is required"
		} else if !listing.ValidBrand(req.Brand) {
			errs["brand"] = "unknown brand"
		}

		if strings.TrimSpace(req.Model) == "" {
			errs["model"] = "model is required"
		}

		if req.Year == "" {
			errs["year"] = "year is required"
		} else {
			year, err := strconv.Atoi(req.Year)
			maxYear := time.Now().Year() + 1
			if err != nil || year < minYear || year > maxYear {
				errs["year"] = fmt.Sprintf("year must be between %d and %d", minYear, maxYear)
			}
		}

		if req.Mileage == "" {
			errs["mileage"] = "mileage is required"
		} else {
			mileage, err := strconv.Atoi(req.Mileage)
			if err != nil || mileage < 0 || mileage > maxMileage {
				errs["mileage"] = fmt.Sprintf("mileage must be between 0 and %d km", maxMileage)
			}
		}

		if req.Engine == "" {
			errs["engine"] = "engine capacity is required"
		} else {
			engine, err := strconv.Atoi(req.Engine)
			if err != nil || engine < minEngineCapacity || engine > maxEngineCapacity {
				errs["engine"] = fmt.Sprintf("engine capacity must be between %d and %d cc", minEngineCapacity, maxEngineCapacity)
			}
		}

		if req.Fuel == "" {
			errs["fuel"] = "fuel type is required"
		} else if !listing.ValidFuelType(MapForDatabase("fuel", req.Fuel)) {
			errs["fuel"] = "unknown fuel type"
		}

		if req.Transmission == "" {
			errs["transmission"] = "transmission is required"
		} else if !listing.ValidTransmission(MapForDatabase("transmission", req.Transmission)) {
			errs["transmission"] = "unknown transmission"
		}

		if strings.TrimSpace(req.Color) == "" {
			errs["color"] = "color is required"
		}

		if req.Condition == "" {
			errs["condition"] = "condition is required"
		} else if !listing.ValidCondition(MapForDatabase("condition", req.Condition)) {
			errs["condition"] = "unknown condition"
		}

		if strings.TrimSpace(req.Location) == "" {
			errs["location"] = "location is required"
		} else if !listing.ValidCity(strings.TrimSpace(req.Location)) {
			errs["location"] = "location must be a city from the available list"
		}

		// Availability is a dealer-only requirement.
		if sellerType == listing.SellerTypeDealer {
			if req.Availability == "" {
				errs["availability"] = "availability is required for dealers"
			} else if !listing.ValidAvailability(listing.Availability(req.Availability)) {
				errs["availability"] = "unknown availability"
			}
		}

	case 2:
		if len(images) == 0 {
			errs["images"] = "at least one photo is required"
		} else if len(images) > maxImages {
			errs["images"] = fmt.Sprintf("at most %d photos are allowed", maxImages)
		}
		for _, img := range images {
			if img.Size > maxImageBytes {
				errs["images"] = "a photo cannot exceed 5MB"
				break
			}
			if !strings.HasPrefix(img.ContentType, "image/") {
				errs["images"] = "only image files are allowed"
				break
			}
		}

	case 3:
		if req.Price == "" {
			errs["price"] = "price is required"
		} else {
			price, err := strconv.ParseFloat(req.Price, 64)
			if err != nil || price < minPrice || price > maxPrice {
				errs["price"] = fmt.Sprintf("price must be between %d and %d EUR", minPrice, maxPrice)
			}
		}

		if len(req.Description) > maxDescriptionLen {
			errs["description"] = fmt.Sprintf("description cannot exceed %d characters", maxDescriptionLen)
		}

	case 4:
		if strings.TrimSpace(req.Phone) == "" {
			errs["phone"] = "phone number is required"
		} else if !phoneRe.MatchString(strings.ReplaceAll(req.Phone, " ", "")) {
			errs["phone"] = "phone number is not valid"
		}

		if strings.TrimSpace(req.Email) == "" {
			errs["email"] = "email is required"
		} else if !emailRe.MatchString(req.Email) {
			errs["email"] = "email is not valid"
		}
	}

	return errs
}

// ValidateAll runs every step at once; used at the final submit boundary.
func ValidateAll(req listing.CreateRequest, sellerType string, images []ImageUpload) ValidationErrors {
	errs := ValidationErrors{}
	for step := 1; step <= 4; step++ {
		for field, msg := range ValidateStep(step, req, sellerType, images) {
			errs[field] = msg
		}
	}
	return errs
}

// ValidateAllForEdit validates an edit. Existing photos satisfy the photo
// requirement when no replacements are uploaded.
func ValidateAllForEdit(req listing.CreateRequest, sellerType string, images []ImageUpload, existingImages int) ValidationErrors {
	errs := ValidationErrors{}
	steps := []int{1, 3, 4}
	if len(images) > 0 || existingImages == 0 {
		steps = append(steps, 2)
	}
	for _, step := range steps {
		for field, msg := range ValidateStep(step, req, sellerType, images) {
			errs[field] = msg
		}
	}
	return errs
}
