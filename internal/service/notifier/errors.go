package notifier

import "errors"

var (
	// ErrDeliveryFailed возвращается, если хотя бы один канал не смог доставить уведомление
	ErrDeliveryFailed = errors.New("notifier: delivery failed")
)
