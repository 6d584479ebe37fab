package model

// 遷移表。ここに無い組み合わせは全部拒否する。
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:        {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:           {OrderStatusPreparing, OrderStatusOutForDelivery, OrderStatusCancelled},
	OrderStatusPreparing:      {OrderStatusOutForDelivery},
	OrderStatusOutForDelivery: {OrderStatusDelivered},
	// DELIVERED / CANCELLED は終端
}

// ParseOrderStatus は外部入力のステータス文字列を検証する。
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusPaid, OrderStatusPreparing,
		OrderStatusOutForDelivery, OrderStatusDelivered, OrderStatusCancelled:
		return OrderStatus(s), true
	}
	return "", false
}

// CanTransition は from → to が遷移表に載っているかを返す。
func CanTransition(from, to OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal は以後いっさい遷移できない状態かを返す。
func IsTerminal(s OrderStatus) bool {
	return len(orderTransitions[s]) == 0
}
