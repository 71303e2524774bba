// internal/service/submission/mapping.go
package submission

import "strings"

// The form presents Romanian display labels; the database stores the
// snake_case values the search facets match against. Unknown labels fall
// back to lowercase so a stale client cannot produce an insert failure.

var fuelMap = map[string]string{
	"Benzină":  "benzina",
	"Electric": "electric",
	"Hibrid":   "hibrid",
}

var transmissionMap = map[string]string{
	"Manual":       "manuala",
	"Automat":      "automata",
	"Semi-automat": "semi-automata",
}

var conditionMap = map[string]string{
	"Nouă":           "noua",
	"Excelentă":      "excelenta",
	"Foarte bună":    "foarte_buna",
	"Bună":           "buna",
	"Satisfăcătoare": "satisfacatoare",
}

// MapForDatabase converts a display value of the named field to its
// stored form.
func MapForDatabase(field, value string) string {
	switch field {
	case "category":
		return strings.ToLower(value)
	case "fuel":
		if v, ok := fuelMap[value]; ok {
			return v
		}
		return strings.ToLower(value)
	case "transmission":
		if v, ok := transmissionMap[value]; ok {
			return v
		}
		return strings.ToLower(value)
	case "condition":
		if v, ok := conditionMap[value]; ok {
			return v
		}
		return strings.ToLower(value)
	default:
		return value
	}
}
