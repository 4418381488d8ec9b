package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandlerRegistry_RegisterAndGet(t *testing.T) {
	r := NewHandlerRegistry()
	posted := newRecordingHandler()
	removed := newRecordingHandler()

	r.Register(posted, "ListingPosted")
	r.Register(removed, "ListingRemoved", "CommentDeleted")

	assert.Len(t, r.GetHandlers("ListingPosted"), 1)
	assert.Len(t, r.GetHandlers("CommentDeleted"), 1)
	assert.Empty(t, r.GetHandlers("CheckoutCompleted"))
	assert.ElementsMatch(t, []string{"ListingPosted", "ListingRemoved", "CommentDeleted"}, r.EventTypes())
}

func TestHandlerRegistry_DuplicateRegistrationIgnored(t *testing.T) {
	r := NewHandlerRegistry()
	h := newRecordingHandler()

	r.Register(h, "ListingPosted")
	r.Register(h, "ListingPosted")
	r.Register(h)
	r.Register(h)

	handlers := r.GetHandlers("ListingPosted")
	assert.Len(t, handlers, 1)
	assert.Len(t, r.GetAllHandlers(), 1)
}

func TestHandlerRegistry_WildcardAppendedAfterTyped(t *testing.T) {
	r := NewHandlerRegistry()
	typed := newRecordingHandler()
	wildcard := newRecordingHandler()

	r.Register(wildcard)
	r.Register(typed, "CartEntryAdded")

	handlers := r.GetHandlers("CartEntryAdded")
	assert.Len(t, handlers, 2)
	assert.Same(t, typed, handlers[0])
	assert.Same(t, wildcard, handlers[1])

	assert.Len(t, r.GetHandlers("AccountRegistered"), 1)
}

func TestHandlerRegistry_Unregister(t *testing.T) {
	r := NewHandlerRegistry()
	a := newRecordingHandler()
	b := newRecordingHandler()

	r.Register(a, "ListingPosted", "CommentPosted")
	r.Register(b, "ListingPosted")
	r.Register(a)

	r.Unregister(a)

	assert.Len(t, r.GetHandlers("ListingPosted"), 1)
	assert.Empty(t, r.GetHandlers("CommentPosted"))
	assert.NotContains(t, r.EventTypes(), "CommentPosted")
	assert.Len(t, r.GetAllHandlers(), 1)
}
