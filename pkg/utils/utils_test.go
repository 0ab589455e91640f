package utils

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	date, err := ParseDate("2024-05-01", loc)
	require.NoError(t, err)
	require.NotNil(t, date)
	assert.Equal(t, "2024-05-01", date.In(loc).Format(time.DateOnly))
	assert.Equal(t, 3, date.UTC().Hour())

	date, err = ParseDate("", loc)
	assert.NoError(t, err)
	assert.Nil(t, date)

	_, err = ParseDate("01/05/2024", loc)
	assert.Error(t, err)
}

func TestSafeDivide(t *testing.T) {
	assert.Equal(t, 0.0, SafeDivide(10, 0))
	assert.Equal(t, 2.5, SafeDivide(5, 2))
	assert.Equal(t, 0.0, SafeDivide(0, 0))
}

func TestDecimalToFloat(t *testing.T) {
	assert.Equal(t, 0.3, DecimalToFloat(decimal.RequireFromString("0.1").Add(decimal.RequireFromString("0.2"))))
	assert.Equal(t, 0.0, DecimalToFloat(decimal.RequireFromString("1e400")))
	assert.Equal(t, 0.0, DecimalToFloat(decimal.RequireFromString("-1e400")))

	assert.Equal(t, 0.0, Finite(math.NaN()))
	assert.Equal(t, 0.0, Finite(math.Inf(1)))
	assert.Equal(t, 1.5, Finite(1.5))
}

func TestRoundWithTwoDecimalPlace(t *testing.T) {
	assert.Equal(t, 66.67, RoundWithTwoDecimalPlace(200.0/3))
	assert.Equal(t, 0.0, RoundWithTwoDecimalPlace(0))
	assert.Equal(t, 1.0, RoundWithTwoDecimalPlace(0.999))
}

func TestCurrencyFormatter(t *testing.T) {
	formatter := NewCurrencyFormatter("pt-BR", "BRL")
	assert.Equal(t, "R$ 1.234,56", formatter.Format(1234.56))
	assert.Equal(t, "R$ 0,00", formatter.Format(0))

	fallback := NewCurrencyFormatter("??", "XX")
	assert.Equal(t, "R$ 10,00", fallback.Format(10))
}

func TestGenerateViewID(t *testing.T) {
	first, err := GenerateViewID()
	require.NoError(t, err)
	second, err := GenerateViewID()
	require.NoError(t, err)

	assert.Len(t, first, 12)
	assert.NotEqual(t, first, second)
}
