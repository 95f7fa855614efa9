package ws

import "errors"

var (
	ErrEncode = errors.New("failed to encode websocket message")
)
