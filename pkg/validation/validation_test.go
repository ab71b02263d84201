package validation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enjaz/bizledger/pkg/validation"
)

type payment struct {
	Supplier string `validate:"required"`
	Method   string `validate:"omitempty,oneof=CASH VISA CHEQUE"`
	Note     string `validate:"max=5"`
}

func TestStruct(t *testing.T) {
	require.NoError(t, validation.Struct(payment{Supplier: "s1", Method: "VISA"}))

	err := validation.Struct(payment{Method: "GOLD", Note: "demasiado largo"})
	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 3)
	assert.Equal(t, "required", verr.Fields[0].Tag)
	assert.Contains(t, err.Error(), "'Supplier' es obligatorio")
	assert.Contains(t, err.Error(), "uno de: CASH VISA CHEQUE")
	assert.Contains(t, err.Error(), "como máximo 5")
}
