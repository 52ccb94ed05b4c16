package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(id, amount int64, price string) Product {
	return Product{ID: id, Name: "p", Price: decimal.RequireFromString(price), Amount: amount}
}

func TestCart_MarshalEmpty(t *testing.T) {
	raw, err := Cart(nil).Marshal()
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}

func TestCart_MarshalPriceIsNumber(t *testing.T) {
	raw, err := Cart{line(1, 2, "179.9")}.Marshal()
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"name":"p","price":179.9,"image_url":"","amount":2}]`, raw)
}

func TestParseCart(t *testing.T) {
	c, err := ParseCart(`[{"id":2,"name":"x","price":"10.00","image_url":"u","amount":1}]`)
	require.NoError(t, err)
	require.Len(t, c, 1)
	assert.True(t, decimal.NewFromInt(10).Equal(c[0].Price))

	_, err = ParseCart(`nope`)
	assert.Error(t, err)
}

func TestCart_CopyOnWrite(t *testing.T) {
	orig := Cart{line(1, 1, "1"), line(2, 1, "1")}

	added := orig.Append(line(3, 1, "1"))
	updated := orig.WithAmount(2, 5)
	removed := orig.Without(1)

	assert.Len(t, orig, 2)
	assert.Equal(t, int64(1), orig[1].Amount)
	assert.Len(t, added, 3)
	assert.Equal(t, int64(5), updated[1].Amount)
	assert.Equal(t, int64(2), removed[0].ID)

	// 無い id はそのまま
	assert.Equal(t, orig, orig.WithAmount(9, 3))
	assert.Equal(t, orig, orig.Without(9))
}

func TestCart_Find(t *testing.T) {
	c := Cart{line(1, 1, "1")}
	p, ok := c.Find(1)
	assert.True(t, ok)
	assert.Equal(t, int64(1), p.ID)
	_, ok = c.Find(2)
	assert.False(t, ok)
}

func TestCart_Normalize(t *testing.T) {
	c := Cart{line(1, 1, "1"), line(1, 2, "1"), line(0, 1, "1"), line(3, 0, "1"), line(4, 2, "1")}
	out, dropped := c.Normalize()
	assert.Equal(t, 3, dropped)
	require.Len(t, out, 2)
	assert.Equal(t, int64(1), out[0].ID)
	assert.Equal(t, int64(1), out[0].Amount)
	assert.Equal(t, int64(4), out[1].ID)
}

func TestCart_TotalAndCount(t *testing.T) {
	c := Cart{line(1, 2, "179.9"), line(2, 1, "139.9")}
	assert.True(t, decimal.RequireFromString("499.7").Equal(c.Total()))
	assert.Equal(t, int64(3), c.Count())
	assert.True(t, Cart{}.Total().IsZero())
}

func TestDecimalJSONIsNumberProcessWide(t *testing.T) {
	// model 外の型でも decimal は数値で出る
	raw, err := json.Marshal(struct {
		V decimal.Decimal `json:"v"`
	}{decimal.RequireFromString("10.5")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":10.5}`, string(raw))
}
