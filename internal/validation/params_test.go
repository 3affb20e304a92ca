package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const schema = `{
	"type": "object",
	"properties": {
		"action_type": {"type": ["string", "null"]},
		"from_date": {"type": ["string", "null"]}
	}
}`

func TestValidateParams(t *testing.T) {
	tests := []struct {
		name    string
		params  map[string]interface{}
		wantErr bool
	}{
		{
			name:   "valid strings",
			params: map[string]interface{}{"action_type": "collect CPE", "from_date": "2025-01-01"},
		},
		{
			name:   "null means no filter",
			params: map[string]interface{}{"action_type": nil},
		},
		{
			name:   "empty parameters",
			params: map[string]interface{}{},
		},
		{
			name:    "wrong type rejected",
			params:  map[string]interface{}{"action_type": 42},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateParams(schema, tt.params)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateParamsBadSchema(t *testing.T) {
	err := ValidateParams("{not json", map[string]interface{}{})
	assert.Error(t, err)
}
