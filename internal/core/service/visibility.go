package service

import (
	"time"

	"github.com/piazza/piazza-api/internal/core/domain"
	"github.com/piazza/piazza-api/internal/core/ports"
)

// postQuery derives the store predicate for a listing request.
//
// Anonymous callers only ever see unexpired posts and every other filter is
// ignored. Authenticated callers may bound createdAt and pick archived or
// valid posts; when both flags are set validOnly is applied last and wins.
func postQuery(in ports.ListPostsInput, now time.Time) ports.PostQuery {
	q := ports.PostQuery{Topic: in.Topic, At: now}

	if in.RequesterID == "" {
		q.Expiry = ports.ExpiryActive
		return q
	}

	q.CreatedFrom = in.CreatedFrom
	q.CreatedTo = in.CreatedTo
	if in.ArchiveOnly {
		q.Expiry = ports.ExpiryArchived
	}
	if in.ValidOnly {
		q.Expiry = ports.ExpiryActive
	}
	return q
}

// mostInteresting returns the post with the highest likes+dislikes, or nil
// for an empty slice. The earliest post wins a tie.
func mostInteresting(posts []*domain.Post) *domain.Post {
	var top *domain.Post
	for _, p := range posts {
		if top == nil || p.Interest() > top.Interest() {
			top = p
		}
	}
	return top
}
