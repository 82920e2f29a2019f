package taxid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckDigit(t *testing.T) {
	dv, err := CheckDigit("800197268")
	require.NoError(t, err)
	assert.Equal(t, byte('4'), dv)

	dv, err = CheckDigit("900.123.456")
	require.NoError(t, err)
	assert.Equal(t, byte('8'), dv)

	_, err = CheckDigit("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate("800197268-4"))
	assert.NoError(t, Validate("900.123.456-8"))
	assert.NoError(t, Validate("1020304050"), "sin guion no se verifica")
	assert.NoError(t, Validate(""))

	assert.Error(t, Validate("800197268-5"))
	assert.Error(t, Validate("800197268-X"))
	assert.Error(t, Validate("-1"))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "900123456-8", Normalize(" 900.123.456 - 8 "))
}
