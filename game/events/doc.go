// Package events fans engine events out to in-process subscribers.
//
// A Hub runs a single goroutine (Run) that owns the subscriber set.
// Subscribers register for one session ID, or for AllSessions, and read
// Messages from their channel. Publishing never blocks the game: a
// subscriber whose buffer is full is dropped and its channel closed.
//
// Usage:
//
//	hub := events.NewHub()
//	go hub.Run(ctx)
//
//	sub := hub.Subscribe("ab12")
//	defer hub.Unsubscribe(sub)
//
//	for msg := range sub.C() {
//		fmt.Println(msg.Event.Type)
//	}
//
// Hub satisfies service.Publisher, so it can be handed straight to
// service.NewGameService.
package events
