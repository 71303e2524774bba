package submission

import (
	"testing"

	"motomarket-service/internal/domain/listing"

	"github.com/stretchr/testify/assert"
)

func validRequest() listing.CreateRequest {
	return listing.CreateRequest{
		Title:        "Honda CBR650R ABS 2021",
		Category:     "Sport",
		Brand:        "Honda",
		Model:        "CBR650R",
		Year:         "2021",
		Mileage:      "12000",
		Engine:       "649",
		Fuel:         "Benzină",
		Transmission: "Manual",
		Color:        "roșu",
		Condition:    "Foarte bună",
		Price:        "8500",
		Location:     "Cluj-Napoca",
		Description:  "Stare foarte bună, revizie la zi.",
		Phone:        "+40721234567",
		Email:        "ana@example.com",
	}
}

func validImages() []ImageUpload {
	return []ImageUpload{{Name: "front.jpg", ContentType: "image/jpeg", Size: 1024}}
}

func TestValidateAllAcceptsCompleteForm(t *testing.T) {
	errs := ValidateAll(validRequest(), listing.SellerTypeIndividual, validImages())
	assert.Empty(t, errs)
}

func TestValidateStepBasics(t *testing.T) {
	req := validRequest()
	req.Title = ""
	req.Year = "1985"
	req.Engine = "9000"
	req.Brand = "Vespa?"

	errs := ValidateStep(1, req, listing.SellerTypeIndividual, nil)
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "year")
	assert.Contains(t, errs, "engine")
	assert.Contains(t, errs, "brand")
	assert.NotContains(t, errs, "price", "price belongs to a later step")
}

func TestValidateStepNonNumericInput(t *testing.T) {
	req := validRequest()
	req.Year = "twenty-one"
	req.Mileage = "12,000"

	errs := ValidateStep(1, req, listing.SellerTypeIndividual, nil)
	assert.Contains(t, errs, "year")
	assert.Contains(t, errs, "mileage")
}

func TestValidateLocationIsClosedSet(t *testing.T) {
	req := validRequest()
	req.Location = "Barcelona"

	errs := ValidateStep(1, req, listing.SellerTypeIndividual, nil)
	assert.Contains(t, errs, "location")
}

func TestValidateDealerAvailability(t *testing.T) {
	req := validRequest()

	errs := ValidateStep(1, req, listing.SellerTypeDealer, nil)
	assert.Contains(t, errs, "availability", "dealers must declare availability")

	req.Availability = string(listing.AvailabilityInStock)
	errs = ValidateStep(1, req, listing.SellerTypeDealer, nil)
	assert.NotContains(t, errs, "availability")

	// Individuals never see the field.
	req.Availability = ""
	errs = ValidateStep(1, req, listing.SellerTypeIndividual, nil)
	assert.NotContains(t, errs, "availability")
}

func TestValidateStepPhotos(t *testing.T) {
	req := validRequest()

	errs := ValidateStep(2, req, listing.SellerTypeIndividual, nil)
	assert.Contains(t, errs, "images")

	big := []ImageUpload{{Name: "a.jpg", ContentType: "image/jpeg", Size: 6 * 1024 * 1024}}
	errs = ValidateStep(2, req, listing.SellerTypeIndividual, big)
	assert.Contains(t, errs, "images")

	notImage := []ImageUpload{{Name: "a.pdf", ContentType: "application/pdf", Size: 100}}
	errs = ValidateStep(2, req, listing.SellerTypeIndividual, notImage)
	assert.Contains(t, errs, "images")

	tooMany := make([]ImageUpload, 11)
	for i := range tooMany {
		tooMany[i] = ImageUpload{Name: "a.jpg", ContentType: "image/jpeg", Size: 100}
	}
	errs = ValidateStep(2, req, listing.SellerTypeIndividual, tooMany)
	assert.Contains(t, errs, "images")
}

func TestValidateStepPriceBounds(t *testing.T) {
	req := validRequest()

	req.Price = "50"
	errs := ValidateStep(3, req, listing.SellerTypeIndividual, nil)
	assert.Contains(t, errs, "price")

	req.Price = "2000000"
	errs = ValidateStep(3, req, listing.SellerTypeIndividual, nil)
	assert.Contains(t, errs, "price")

	req.Price = "100"
	errs = ValidateStep(3, req, listing.SellerTypeIndividual, nil)
	assert.NotContains(t, errs, "price", "bounds are inclusive")
}

func TestValidateStepContact(t *testing.T) {
	req := validRequest()
	req.Phone = "123"
	req.Email = "not-an-email"

	errs := ValidateStep(4, req, listing.SellerTypeIndividual, nil)
	assert.Contains(t, errs, "phone")
	assert.Contains(t, errs, "email")
}

func TestValidateAllForEditKeepsExistingPhotos(t *testing.T) {
	req := validRequest()

	errs := ValidateAllForEdit(req, listing.SellerTypeIndividual, nil, 3)
	assert.Empty(t, errs, "existing photos satisfy the requirement")

	errs = ValidateAllForEdit(req, listing.SellerTypeIndividual, nil, 0)
	assert.Contains(t, errs, "images")
}

func TestMapForDatabase(t *testing.T) {
	assert.Equal(t, "benzina", MapForDatabase("fuel", "Benzină"))
	assert.Equal(t, "manuala", MapForDatabase("transmission", "Manual"))
	assert.Equal(t, "foarte_buna", MapForDatabase("condition", "Foarte bună"))
	assert.Equal(t, "sport", MapForDatabase("category", "Sport"))
	// Unknown labels fall back to lowercase instead of failing.
	assert.Equal(t, "gpl", MapForDatabase("fuel", "GPL"))
}
