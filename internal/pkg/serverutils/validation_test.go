package serverutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Query string `json:"query" validate:"required,min=1"`
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(sampleRequest{Query: "hello"}))
}

func TestValidateRequestMissingField(t *testing.T) {
	err := ValidateRequest(sampleRequest{})

	var validationErr *ValidationError
	if assert.ErrorAs(t, err, &validationErr) {
		assert.Contains(t, validationErr.Fields, "query")
		assert.Contains(t, err.Error(), "query")
	}
}
