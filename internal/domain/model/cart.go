package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Cart は追加順に並んだカート行。id は重複しない。
// 更新は常に新しいスライスを返し、元のスライスは書き換えない。
type Cart []Product

// スナップショット文字列からカートを復元する
func ParseCart(data string) (Cart, error) {
	var c Cart
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		return nil, err
	}
	return c.Clone(), nil
}

// JSON配列にする（空でも "[]"）
func (c Cart) Marshal() (string, error) {
	b, err := json.Marshal(c.Clone())
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	copy(out, c)
	return out
}

func (c Cart) Find(productID int64) (Product, bool) {
	for _, p := range c {
		if p.ID == productID {
			return p, true
		}
	}
	return Product{}, false
}

// 末尾に追加したコピーを返す
func (c Cart) Append(p Product) Cart {
	out := make(Cart, 0, len(c)+1)
	out = append(out, c...)
	return append(out, p)
}

// 該当行だけ数量を差し替えたコピー。無ければそのまま。
func (c Cart) WithAmount(productID int64, amount int64) Cart {
	out := make(Cart, len(c))
	for i, p := range c {
		if p.ID == productID {
			p.Amount = amount
		}
		out[i] = p
	}
	return out
}

// 該当行を除いたコピー
func (c Cart) Without(productID int64) Cart {
	out := make(Cart, 0, len(c))
	for _, p := range c {
		if p.ID != productID {
			out = append(out, p)
		}
	}
	return out
}

// 不正な行（id<=0, amount<1, id重複）を落とす。落とした件数も返す。
func (c Cart) Normalize() (Cart, int) {
	seen := make(map[int64]struct{}, len(c))
	out := make(Cart, 0, len(c))
	for _, p := range c {
		if p.ID <= 0 || p.Amount < 1 {
			continue
		}
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out, len(c) - len(out)
}

func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, p := range c {
		total = total.Add(p.Subtotal())
	}
	return total
}

// 数量の合計
func (c Cart) Count() int64 {
	var n int64
	for _, p := range c {
		n += p.Amount
	}
	return n
}
