package api

import "errors"

// ErrorKeyMissing operation cannot succeed because specifed key is missing
// in the index.
var ErrorKeyMissing = errors.New("keyMissing")

// ErrorEmptyIndex operation cannot succeed because the index has no
// entries.
var ErrorEmptyIndex = errors.New("emptyIndex")

// ErrorInvalidOrder traversal order is not one of "in", "pre", "post",
// "level".
var ErrorInvalidOrder = errors.New("invalidOrder")
