package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soundvault/soundvault/internal/models"
)

func TestRole_Satisfies(t *testing.T) {
	tests := []struct {
		name     string
		role     models.Role
		required models.Role
		want     bool
	}{
		{"consumer satisfies consumer", models.RoleConsumer, models.RoleConsumer, true},
		{"premium satisfies consumer", models.RolePremiumConsumer, models.RoleConsumer, true},
		{"premium satisfies premium", models.RolePremiumConsumer, models.RolePremiumConsumer, true},
		{"consumer does not satisfy premium", models.RoleConsumer, models.RolePremiumConsumer, false},
		{"artist does not satisfy consumer", models.RoleArtist, models.RoleConsumer, false},
		{"administrator does not satisfy consumer", models.RoleAdministrator, models.RoleConsumer, false},
		{"administrator satisfies administrator", models.RoleAdministrator, models.RoleAdministrator, true},
		{"banned satisfies nothing", models.RoleBanned, models.RoleConsumer, false},
		{"unknown satisfies nothing", models.RoleUnknown, models.RoleConsumer, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.Satisfies(tt.required))
		})
	}
}
