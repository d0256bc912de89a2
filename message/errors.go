package message

import "errors"

// ErrUnexpectedPayload is returned when a payload does not have the kind a
// stage expects. It marks a broken contract between stages, not a data error.
var ErrUnexpectedPayload = errors.New("message: unexpected payload")
