package sandbox

import (
	"errors"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const uniqueFailedPrefix = "UNIQUE constraint failed: "

// uniqueViolation は一意制約違反であれば違反したカラム（例: "users.email"）を返す。
// 拡張結果コードが無効な接続でも判定できるよう、一次コードとメッセージで判定する。
func uniqueViolation(err error) (string, bool) {
	var se *sqlite.Error
	if !errors.As(err, &se) || se.Code()&0xff != sqlite3.SQLITE_CONSTRAINT {
		return "", false
	}
	_, column, found := strings.Cut(se.Error(), uniqueFailedPrefix)
	if !found {
		return "", false
	}
	column, _, _ = strings.Cut(column, " ")
	return strings.TrimSuffix(column, ")"), true
}
