package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec(t *testing.T) {
	c := Codec{}
	assert.Equal(t, "json", c.Name())

	b, err := c.Marshal(&AddItemRequest{ReceiptID: "r-1", Name: "Pasta", Quantity: 2, Price: 12.5})
	require.NoError(t, err)
	assert.JSONEq(t, `{"receiptId":"r-1","name":"Pasta","quantity":2,"price":12.5}`, string(b))

	var req AddItemRequest
	require.NoError(t, c.Unmarshal(b, &req))
	assert.Equal(t, "Pasta", req.Name)

	var empty LogoutRequest
	assert.NoError(t, c.Unmarshal(nil, &empty))
	assert.Error(t, c.Unmarshal([]byte("{"), &req))
}
