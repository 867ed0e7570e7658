package models

// Evaluate channels
const (
	ChannelRequest = "request"
	ChannelCrush   = "crush"
	ChannelLike    = "like"
)

// Interest signal kinds
const (
	SignalKindLike  = "like"
	SignalKindCrush = "crush"
)

// Signal statuses
const (
	SignalStatusSent    = "sent"
	SignalStatusMatched = "resulted_in_match"
)

// Friend request status and sources
const (
	RequestStatusPending = "pending"

	RequestSourceSwipe   = "swipe"
	RequestSourceExplore = "explore"
	RequestSourceRequest = "request"
)

// Notification types
const (
	NotificationTypeMatch     = "match"
	NotificationTypeLike      = "like"
	NotificationTypeCrushAnon = "crush_anon"
)
