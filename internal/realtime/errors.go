package realtime

import "errors"

var (
	ErrSubscriptionLimit = errors.New("subscription limit reached")
	ErrTopicRequired     = errors.New("topic is required")
)
