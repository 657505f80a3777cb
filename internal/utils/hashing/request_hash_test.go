package hashing_test

import (
	"testing"

	"github.com/SscSPs/ledger_service/internal/utils/hashing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestHash_KeyOrderIndependent(t *testing.T) {
	a := []byte(`{"date":"2025-01-01","narration":"Capital","lines":[{"account_code":"1001","debit":100000},{"account_code":"3001","credit":100000}]}`)
	b := []byte(`{
		"lines": [{"debit": 100000, "account_code": "1001"}, {"credit": 100000, "account_code": "3001"}],
		"narration": "Capital",
		"date": "2025-01-01"
	}`)

	ha, err := hashing.RequestHash(a)
	require.NoError(t, err)
	hb, err := hashing.RequestHash(b)
	require.NoError(t, err)

	assert.Equal(t, ha, hb)
	assert.Len(t, ha, 64)
}

func TestRequestHash_ArrayOrderMatters(t *testing.T) {
	a := []byte(`{"lines":[{"debit":1},{"credit":1}]}`)
	b := []byte(`{"lines":[{"credit":1},{"debit":1}]}`)

	ha, err := hashing.RequestHash(a)
	require.NoError(t, err)
	hb, err := hashing.RequestHash(b)
	require.NoError(t, err)

	assert.NotEqual(t, ha, hb)
}

func TestRequestHash_DifferentAmounts(t *testing.T) {
	ha, err := hashing.RequestHash([]byte(`{"debit":100}`))
	require.NoError(t, err)
	hb, err := hashing.RequestHash([]byte(`{"debit":99}`))
	require.NoError(t, err)

	assert.NotEqual(t, ha, hb)
}

func TestRequestHash_EmptyBodyIsEmptyObject(t *testing.T) {
	empty, err := hashing.RequestHash(nil)
	require.NoError(t, err)
	obj, err := hashing.RequestHash([]byte(`{}`))
	require.NoError(t, err)

	assert.Equal(t, obj, empty)
}

func TestRequestHash_InvalidJSON(t *testing.T) {
	_, err := hashing.RequestHash([]byte(`{"date":`))
	assert.Error(t, err)

	_, err = hashing.RequestHash([]byte(`{} {}`))
	assert.Error(t, err)
}

func TestCanonicalize(t *testing.T) {
	out, err := hashing.Canonicalize([]byte(`{"b":{"z":1,"a":[3,1]},"a":"<x>"}`))
	require.NoError(t, err)
	assert.Equal(t, `{"a":"<x>","b":{"a":[3,1],"z":1}}`, string(out))
}

func TestKeyHash_ScopedByCaller(t *testing.T) {
	k1 := hashing.KeyHash("public", "abc")
	k2 := hashing.KeyHash("dev-api-key-123", "abc")

	assert.NotEqual(t, k1, k2)
	assert.Equal(t, hashing.SHA256Hex(hashing.SHA256Hex("public")+":abc"), k1)
	assert.Equal(t, "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08", hashing.SHA256Hex("test"))
}
