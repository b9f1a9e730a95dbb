package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullable_AusenteNullYValor(t *testing.T) {
	var absent, null, value UpdateTaskRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"x"}`), &absent))
	require.NoError(t, json.Unmarshal([]byte(`{"dueDate":null}`), &null))
	require.NoError(t, json.Unmarshal([]byte(`{"dueDate":"2026-05-01T10:00:00Z"}`), &value))

	due := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	dst := &due
	absent.DueDate.Apply(&dst)
	require.NotNil(t, dst, "ausente no toca el campo")

	value.DueDate.Apply(&dst)
	require.NotNil(t, dst)
	assert.True(t, dst.Equal(time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)))

	null.DueDate.Apply(&dst)
	assert.Nil(t, dst, "null borra el campo")
}

func TestNullable_Decimal(t *testing.T) {
	var in UpdateProductRequest
	require.NoError(t, json.Unmarshal([]byte(`{"comparePrice":null,"costPrice":"12.50"}`), &in))

	assert.True(t, in.ComparePrice.Set)
	assert.False(t, in.ComparePrice.Valid)
	require.True(t, in.CostPrice.Valid)
	assert.True(t, in.CostPrice.Value.Equal(decimal.RequireFromString("12.5")))

	assert.Error(t, json.Unmarshal([]byte(`{"costPrice":"abc"}`), &in))
}
