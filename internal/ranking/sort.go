package ranking

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"MismatchScanner/internal/domain"
)

// Order names a supported listing order.
type Order string

// Supported orders.
const (
	OrderRisk       Order = "risk"
	OrderSafe       Order = "safe"
	OrderEngagement Order = "engagement"
	OrderLatest     Order = "latest"
)

// ParseOrder maps a query value to an Order; anything unknown is OrderRisk.
func ParseOrder(value string) Order {
	switch Order(strings.ToLower(strings.TrimSpace(value))) {
	case OrderSafe:
		return OrderSafe
	case OrderEngagement:
		return OrderEngagement
	case OrderLatest:
		return OrderLatest
	default:
		return OrderRisk
	}
}

// Sort builds views for the whole collection and orders them. The sort is
// stable, so ties keep store order. articles is not modified.
func Sort(articles []domain.Article, order Order) []ArticleView {
	views := make([]ArticleView, len(articles))
	for i, a := range articles {
		views[i] = NewView(a)
	}

	switch order {
	case OrderSafe:
		slices.SortStableFunc(views, func(a, b ArticleView) int {
			return cmp.Compare(a.MismatchProb, b.MismatchProb)
		})
	case OrderEngagement:
		slices.SortStableFunc(views, func(a, b ArticleView) int {
			return cmp.Compare(b.EngagementScore, a.EngagementScore)
		})
	case OrderLatest:
		type dated struct {
			view      ArticleView
			published time.Time
			valid     bool
		}
		items := make([]dated, len(articles))
		for i, a := range articles {
			t, ok := a.Published()
			items[i] = dated{view: views[i], published: t, valid: ok}
		}
		// unparseable dates go last whatever the valid dates are
		slices.SortStableFunc(items, func(a, b dated) int {
			if a.valid != b.valid {
				if a.valid {
					return -1
				}
				return 1
			}
			return b.published.Compare(a.published)
		})
		for i := range items {
			views[i] = items[i].view
		}
	default:
		slices.SortStableFunc(views, func(a, b ArticleView) int {
			return cmp.Compare(b.MismatchProb, a.MismatchProb)
		})
	}
	return views
}

// Paginate returns items[offset:offset+limit]. Offsets past the end, negative
// offsets and non-positive limits yield an empty, non-nil slice.
func Paginate[T any](items []T, offset, limit int) []T {
	if offset < 0 || limit <= 0 || offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) || end < offset {
		end = len(items)
	}
	return items[offset:end]
}
