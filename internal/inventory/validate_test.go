package inventory

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/apperr"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/models"
)

func TestNewValidatorEnforcesCategoryTag(t *testing.T) {
	var v *validator.Validate
	require.NotPanics(t, func() { v = newValidator() })

	tests := []struct {
		name     string
		category models.Category
		wantErr  bool
	}{
		{name: "taxonomy value", category: models.CategoryDairy},
		{name: "wire enum", category: "FROZEN"},
		{name: "unknown", category: "spaceship", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(AddItemInput{Name: "Milk", Category: tt.category})
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			verr := validationError(err)
			assert.True(t, apperr.IsValidation(verr))
			assert.Contains(t, verr.Error(), "category")
		})
	}

	bad := models.Category("spaceship")
	assert.Error(t, v.Struct(UpdateItemInput{Category: &bad}), "category tag must apply to optional fields too")
	assert.NoError(t, v.Struct(UpdateItemInput{}))
}
