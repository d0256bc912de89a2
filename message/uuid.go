package message

import "github.com/google/uuid"

// IDGenerator generates unique message IDs.
type IDGenerator func() string

// DefaultIDGenerator is used by New to assign message IDs.
// Tests may replace it to obtain deterministic IDs.
var DefaultIDGenerator IDGenerator = uuid.NewString
