package catalog

import (
	"strings"

	"github.com/Maryelmnaouar/PMP-PLATEFORM/constants"
)

// accentFold maps the accented letters that occur in the plan's French job
// titles onto their bare forms, so "Mécanicien" and "Électricien" match the
// same keywords as their unaccented spellings.
var accentFold = strings.NewReplacer(
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"à", "a", "â", "a",
	"î", "i", "ï", "i",
	"ô", "o",
	"û", "u", "ù", "u",
	"ç", "c",
)

// ClassifyRole maps a free-text job-function hint from the plan to a fixed
// user role. First match wins; anything unrecognized defaults to operator.
func ClassifyRole(hint string) string {
	h := accentFold.Replace(strings.ToLower(hint))
	if strings.Contains(h, "conduct") {
		return constants.RoleOperator
	}
	if strings.Contains(h, "mec") || strings.Contains(h, "elec") {
		return constants.RoleTechnician
	}
	return constants.RoleOperator
}
