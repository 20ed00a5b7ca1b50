package gateway

import (
	"strings"
	"time"

	"github.com/nao1215/censudex/internal/dto"
)

// dateLayout は日付フィルタの書式。
const dateLayout = "2006-01-02"

// FilterOrders は注文一覧にフィルタを適用した部分集合を返す。
//
// CustomerID は空白でなければ完全一致（大文字小文字を区別）で比較する。
// From と To は日付として解釈できた場合のみ適用し、作成日がその範囲（両端を含む）にある注文を残す。
// 解釈できない場合はその条件を無視する。日付の比較はUTCの暦日で行う。
// いずれかの日付条件が有効なとき、作成日時を解釈できない注文は除外する。
func FilterOrders(orders []dto.Order, filter dto.OrderFilter) []dto.Order {
	customerID := filter.CustomerID
	if strings.TrimSpace(customerID) == "" {
		customerID = ""
	}
	from, hasFrom := parseDate(filter.From)
	to, hasTo := parseDate(filter.To)

	result := make([]dto.Order, 0, len(orders))
	for _, o := range orders {
		if customerID != "" && o.CustomerID != customerID {
			continue
		}
		if hasFrom || hasTo {
			created, ok := o.CreatedTime()
			if !ok {
				continue
			}
			day := truncateDay(created)
			if hasFrom && day.Before(from) {
				continue
			}
			if hasTo && day.After(to) {
				continue
			}
		}
		result = append(result, o)
	}
	return result
}

// parseDate はフィルタの日付を暦日として解釈する。
// "2006-01-02" またはRFC 3339を受け付け、RFC 3339の場合は日付の部分だけを使う。
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// truncateDay は時刻をUTCの暦日に切り捨てる。
func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
