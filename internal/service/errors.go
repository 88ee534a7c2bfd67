package service

import "errors"

var (
	ErrLevelNotFound       = errors.New("level not found")
	ErrProfileNotFound     = errors.New("game profile not found")
	ErrDuplicateItem       = errors.New("item already collected")
	ErrItemLimitReached    = errors.New("maximum items collected for this level")
	ErrItemIndexOutOfRange = errors.New("item index exceeds maximum for this level")
	ErrInvalidItemType     = errors.New("unknown item type")
	ErrInvalidScore        = errors.New("score and time spent must be non-negative")
	ErrInvalidSyncPayload  = errors.New("malformed sync payload")
	ErrInvalidToken        = errors.New("invalid or expired token")

	// ErrStoreUnavailable tags transient store failures. Events failing with
	// it are retry-eligible; nothing was committed.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Rejection reason codes reported to clients.
const (
	ReasonLevelNotFound    = "LEVEL_NOT_FOUND"
	ReasonProfileNotFound  = "PROFILE_NOT_FOUND"
	ReasonDuplicateItem    = "DUPLICATE_ITEM"
	ReasonItemLimitReached = "LEVEL_ITEM_LIMIT_REACHED"
	ReasonIndexOutOfRange  = "ITEM_INDEX_OUT_OF_RANGE"
	ReasonInvalidItemType  = "INVALID_ITEM_TYPE"
	ReasonInvalidScore     = "INVALID_SCORE"
	ReasonInvalidSync      = "INVALID_SYNC_PAYLOAD"
)

// RejectionReason maps a validation error to its client-facing reason code.
// It returns false for errors that are not expected, user-facing rejections
// (store failures and the like), which callers should treat as internal.
func RejectionReason(err error) (string, bool) {
	switch {
	case errors.Is(err, ErrLevelNotFound):
		return ReasonLevelNotFound, true
	case errors.Is(err, ErrProfileNotFound):
		return ReasonProfileNotFound, true
	case errors.Is(err, ErrDuplicateItem):
		return ReasonDuplicateItem, true
	case errors.Is(err, ErrItemLimitReached):
		return ReasonItemLimitReached, true
	case errors.Is(err, ErrItemIndexOutOfRange):
		return ReasonIndexOutOfRange, true
	case errors.Is(err, ErrInvalidItemType):
		return ReasonInvalidItemType, true
	case errors.Is(err, ErrInvalidScore):
		return ReasonInvalidScore, true
	case errors.Is(err, ErrInvalidSyncPayload):
		return ReasonInvalidSync, true
	}
	return "", false
}
