package gateway

import (
	"slices"
	"testing"

	"github.com/nao1215/censudex/internal/dto"
)

// sampleOrders はフィルタのテストに使う注文一覧。
func sampleOrders() []dto.Order {
	return []dto.Order{
		{ID: "o-1", CustomerID: "c1", CreatedAt: "2024-05-01T08:00:00Z"},
		{ID: "o-2", CustomerID: "C1", CreatedAt: "2024-05-02T23:30:00Z"},
		{ID: "o-3", CustomerID: "c2", CreatedAt: "2024-05-03T00:00:00Z"},
		{ID: "o-4", CustomerID: "c1", CreatedAt: "2024-05-04T12:00:00+09:00"},
		{ID: "o-5", CustomerID: "c1", CreatedAt: "not-a-date"},
	}
}

// ids は注文IDの一覧を返す。
func ids(orders []dto.Order) []string {
	out := make([]string, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID)
	}
	return out
}

// TestFilterOrders は注文一覧のフィルタを検証する。
func TestFilterOrders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		filter dto.OrderFilter
		want   []string
	}{
		{
			name:   "フィルタなしでは全件が返ること",
			filter: dto.OrderFilter{},
			want:   []string{"o-1", "o-2", "o-3", "o-4", "o-5"},
		},
		{
			name:   "顧客IDは大文字小文字を区別して完全一致で比較されること",
			filter: dto.OrderFilter{CustomerID: "c1"},
			want:   []string{"o-1", "o-4", "o-5"},
		},
		{
			name:   "空白のみの顧客IDは無視されること",
			filter: dto.OrderFilter{CustomerID: "   "},
			want:   []string{"o-1", "o-2", "o-3", "o-4", "o-5"},
		},
		{
			name:   "fromは開始日を含むこと",
			filter: dto.OrderFilter{From: "2024-05-02"},
			want:   []string{"o-2", "o-3", "o-4"},
		},
		{
			name:   "toは終了日を含むこと",
			filter: dto.OrderFilter{To: "2024-05-02"},
			want:   []string{"o-1", "o-2"},
		},
		{
			name:   "fromとtoの両方を適用できること",
			filter: dto.OrderFilter{From: "2024-05-02", To: "2024-05-03"},
			want:   []string{"o-2", "o-3"},
		},
		{
			name:   "RFC 3339の日付は日付部分だけが使われること",
			filter: dto.OrderFilter{From: "2024-05-03T18:00:00Z"},
			want:   []string{"o-3", "o-4"},
		},
		{
			name:   "解釈できないfromは無視されること",
			filter: dto.OrderFilter{From: "yesterday"},
			want:   []string{"o-1", "o-2", "o-3", "o-4", "o-5"},
		},
		{
			name:   "解釈できない条件と有効な条件が混在する場合は有効な条件だけが適用されること",
			filter: dto.OrderFilter{From: "05/01/2024", To: "2024-05-01", CustomerID: "c1"},
			want:   []string{"o-1"},
		},
		{
			name:   "作成日時はUTCの暦日で比較されること",
			filter: dto.OrderFilter{From: "2024-05-04", To: "2024-05-04"},
			want:   []string{"o-4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ids(FilterOrders(sampleOrders(), tt.filter))
			if !slices.Equal(got, tt.want) {
				t.Errorf("FilterOrders() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestFilterOrdersSubset はフィルタの結果が常に入力の部分集合であることを検証する。
func TestFilterOrdersSubset(t *testing.T) {
	t.Parallel()

	input := sampleOrders()
	inputIDs := ids(input)
	filters := []dto.OrderFilter{
		{CustomerID: "c1"},
		{CustomerID: "nobody"},
		{From: "2024-01-01"},
		{To: "2030-12-31"},
		{From: "2024-05-05", To: "2024-05-01"},
		{From: "garbage", To: "garbage"},
	}
	for _, f := range filters {
		got := FilterOrders(input, f)
		if len(got) > len(input) {
			t.Errorf("FilterOrders(%+v) の件数 %d が入力 %d を超えた", f, len(got), len(input))
		}
		for _, id := range ids(got) {
			if !slices.Contains(inputIDs, id) {
				t.Errorf("FilterOrders(%+v) が入力にない注文 %s を返した", f, id)
			}
		}
		if f.CustomerID != "" {
			for _, o := range got {
				if o.CustomerID != f.CustomerID {
					t.Errorf("FilterOrders(%+v) が顧客 %s の注文を返した", f, o.CustomerID)
				}
			}
		}
	}

	if got := FilterOrders(nil, dto.OrderFilter{CustomerID: "c1"}); len(got) != 0 {
		t.Errorf("空の入力に対して %v が返った", got)
	}
}
