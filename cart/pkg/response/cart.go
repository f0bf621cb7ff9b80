package response

import (
	"github.com/shopspring/decimal"

	"github.com/Alturino/nayarn/cart/pkg/store"
)

type Cart struct {
	SessionID  string          `json:"sessionId"`
	Lines      []store.Line    `json:"lines"`
	TotalItems int             `json:"totalItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

func FromStore(sessionID string, s *store.Store) Cart {
	lines := s.Lines()
	return Cart{
		SessionID:  sessionID,
		Lines:      lines,
		TotalItems: store.TotalItems(lines),
		TotalPrice: store.TotalPrice(lines),
	}
}
