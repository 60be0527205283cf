package service

// Publisher receives entity change notifications after successful mutations.
// A nil Publisher disables the feed.
type Publisher interface {
	Publish(userID, eventType, entityID string)
}
