package realtime

import (
	"time"

	"github.com/google/uuid"

	"github.com/antojo-app/backend/pkg/enums"
)

// OrderView is the snapshot a realtime consumer maintains for one order.
type OrderView struct {
	OrderID   uuid.UUID         `json:"orderId"`
	Status    enums.OrderStatus `json:"status"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// Merge folds a partial update into the view. Only fields present on the
// update are replaced; everything else keeps its current value.
func Merge(view OrderView, update Update) OrderView {
	if update.Status != nil {
		view.Status = *update.Status
	}
	if !update.OccurredAt.IsZero() {
		view.UpdatedAt = update.OccurredAt
	}
	return view
}
