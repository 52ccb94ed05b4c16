// Package model はカタログ・カート・監査ログのドメイン型。
//
// このパッケージを import すると init で decimal.MarshalJSONWithoutQuotes が true になり、
// プロセス全体で decimal.Decimal が JSON の数値（"179.9" ではなく 179.9）で出力される。
// 文字列で出したい箇所は decimal.Decimal.String を使うこと。
package model
