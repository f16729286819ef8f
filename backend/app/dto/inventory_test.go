package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantityAcceptsNumbersAndNumericStrings(t *testing.T) {
	tests := []struct {
		body string
		want float64
	}{
		{`{"quantity":2}`, 2},
		{`{"quantity":1.5}`, 1.5},
		{`{"quantity":"3"}`, 3},
		{`{"quantity":" 0.25 "}`, 0.25},
		{`{"quantity":""}`, 0},
	}
	for _, tt := range tests {
		var req ItemRequest
		require.NoError(t, json.Unmarshal([]byte(tt.body), &req), tt.body)
		require.NotNil(t, req.Quantity, tt.body)
		assert.Equal(t, tt.want, float64(*req.Quantity), tt.body)
	}
}

func TestQuantityRejectsNonNumbers(t *testing.T) {
	for _, body := range []string{`{"quantity":"lots"}`, `{"quantity":true}`, `{"quantity":{}}`} {
		var req ItemRequest
		assert.Error(t, json.Unmarshal([]byte(body), &req), body)
	}
}

func TestItemRequestAbsentFieldsStayNil(t *testing.T) {
	var req ItemRequest
	require.NoError(t, json.Unmarshal([]byte(`{"notes":""}`), &req))
	assert.Nil(t, req.Name)
	assert.Nil(t, req.Quantity)
	require.NotNil(t, req.Notes)
	assert.Equal(t, "", *req.Notes)
}
