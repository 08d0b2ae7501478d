package domain

import (
	"errors"
)

var (
	MessageServerAlive          = "Food is falling from the Sky"
	MessageUserNotAllowed       = "user not allowed"
	MessageFailedBodyRequest    = "failed to parse body request"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"

	ErrInvalidObjectID      = errors.New("invalid object id")
	ErrUserNotAllowed       = errors.New("user not allowed")
	ErrTokenNotFound        = errors.New("failed to token not found")
	ErrTokenInvalid         = errors.New("token invalid")
	ErrTokenExpired         = errors.New("token expired")
	ErrStorageNotConfigured = errors.New("object storage is not configured")
)

type (
	UpdateResultResponse struct {
		MatchedCount  int64  `json:"matchedCount"`
		ModifiedCount int64  `json:"modifiedCount"`
		UpsertedCount int64  `json:"upsertedCount"`
		UpsertedID    string `json:"upsertedId,omitempty"`
	}
)
