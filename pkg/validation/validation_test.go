package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/isp-billing/pkg/validation"
)

type sample struct {
	Code    string `json:"code" validate:"required,max=5"`
	Stratum int    `json:"stratum" validate:"min=1,max=6"`
	Type    string `json:"type" validate:"omitempty,oneof=internet television"`
}

func TestStruct_OK(t *testing.T) {
	assert.NoError(t, validation.Struct(sample{Code: "INT", Stratum: 3, Type: "internet"}))
}

func TestStruct_ErroresConNombreJSON(t *testing.T) {
	err := validation.Struct(sample{Code: "", Stratum: 9, Type: "radio"})
	require.Error(t, err)

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 3)
	assert.Equal(t, "sample.code", verrs[0].Field)
	assert.Equal(t, "required", verrs[0].Rule)
	assert.Equal(t, "max", verrs[1].Rule)
	assert.Equal(t, "6", verrs[1].Param)
	assert.Contains(t, err.Error(), "type: oneof")
}
