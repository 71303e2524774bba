package listing

import "strings"

// Closed sets accepted by the submission pipeline. Stored values are the
// lowercase/snake_case forms; the display labels are mapped before insert
// (see service/submission).

var Categories = []string{
	"sport", "touring", "cruiser", "adventure", "naked", "scooter", "enduro", "chopper",
}

var Brands = []string{
	"Yamaha", "Honda", "Suzuki", "Kawasaki", "BMW", "Ducati", "KTM",
	"Aprilia", "Triumph", "Harley-Davidson", "MV Agusta", "Benelli",
	"Moto Guzzi", "Indian", "Zero", "Energica", "Husqvarna", "Beta",
	"Sherco", "GasGas",
}

var FuelTypes = []string{"benzina", "electric", "hibrid"}

var Transmissions = []string{"manuala", "automata", "semi-automata"}

var Conditions = []string{"noua", "excelenta", "foarte_buna", "buna", "satisfacatoare"}

// Cities is the closed set of accepted listing locations.
var Cities = []string{
	"București", "Cluj-Napoca", "Timișoara", "Iași", "Constanța", "Craiova",
	"Brașov", "Galați", "Ploiești", "Oradea", "Brăila", "Arad", "Pitești",
	"Sibiu", "Bacău", "Târgu Mureș", "Baia Mare", "Buzău", "Botoșani",
	"Satu Mare", "Râmnicu Vâlcea", "Drobeta-Turnu Severin", "Suceava",
	"Piatra Neamț", "Târgu Jiu", "Târgoviște", "Focșani", "Bistrița",
	"Tulcea", "Reșița", "Slatina", "Călărași", "Alba Iulia", "Giurgiu",
	"Deva", "Hunedoara", "Zalău", "Sfântu Gheorghe", "Bârlad", "Vaslui",
	"Roman", "Turda", "Mediaș", "Slobozia", "Alexandria", "Voluntari",
	"Lugoj", "Medgidia", "Onești", "Miercurea Ciuc",
}

func inSet(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func inSetFold(set []string, v string) bool {
	for _, s := range set {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}

func ValidCategory(v string) bool     { return inSet(Categories, v) }
func ValidBrand(v string) bool        { return inSetFold(Brands, v) }
func ValidFuelType(v string) bool     { return inSet(FuelTypes, v) }
func ValidTransmission(v string) bool { return inSet(Transmissions, v) }
func ValidCondition(v string) bool    { return inSet(Conditions, v) }
func ValidCity(v string) bool         { return inSet(Cities, v) }

func ValidAvailability(v Availability) bool {
	return v == AvailabilityInStock || v == AvailabilityOnOrder
}
