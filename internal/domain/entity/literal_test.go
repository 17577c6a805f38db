package entity_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veilbrowser/veil/internal/domain/entity"
)

func TestLiteralConstructors(t *testing.T) {
	assert.Equal(t, entity.Literal("123field"), entity.Field(123))
	assert.Equal(t, entity.Literal("456u32"), entity.U32(456))
	assert.Equal(t, entity.Literal("7u8"), entity.U8(7))
	assert.Equal(t, entity.Literal("9000000000u64"), entity.U64(9000000000))
}

func TestLiteral_Validate(t *testing.T) {
	addr := "aleo1" + strings.Repeat("q0", 29)

	valid := []entity.Literal{
		"123field", "456u32", "0u8", "1u128", "42i64", "7scalar", "3group",
		"true", "false", entity.Literal(addr),
	}
	for _, l := range valid {
		t.Run(string(l), func(t *testing.T) {
			assert.NoError(t, l.Validate())
		})
	}

	invalid := []entity.Literal{
		"", "123", "field", "12.5u32", "u32field", "123floop", "-1u32",
	}
	for _, l := range invalid {
		t.Run("bad:"+string(l), func(t *testing.T) {
			assert.Error(t, l.Validate())
		})
	}
}

func TestValidateInputs_ReportsIndex(t *testing.T) {
	err := entity.ValidateInputs([]entity.Literal{"1field", "nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input 1")
}
