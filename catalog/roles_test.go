package catalog

import (
	"testing"

	"github.com/Maryelmnaouar/PMP-PLATEFORM/constants"

	"github.com/stretchr/testify/assert"
)

func TestClassifyRole(t *testing.T) {
	tests := []struct {
		hint string
		want string
	}{
		{"Conducteur Ligne 3", constants.RoleOperator},
		{"CONDUCTEUR", constants.RoleOperator},
		{"Mécanicien", constants.RoleTechnician},
		{"mecanicien", constants.RoleTechnician},
		{"Électricien", constants.RoleTechnician},
		{"electricien", constants.RoleTechnician},
		{"Qualité", constants.RoleOperator},
		{"", constants.RoleOperator},
		// "conduct" wins even when a technician keyword is also present.
		{"Conducteur mécanique", constants.RoleOperator},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyRole(tt.hint), "hint %q", tt.hint)
	}
}
