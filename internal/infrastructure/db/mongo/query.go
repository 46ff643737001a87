package mongo

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/piazza/piazza-api/internal/core/ports"
)

// postFilter translates a PostQuery into a posts collection filter.
func postFilter(q ports.PostQuery) bson.M {
	filter := bson.M{}

	if q.Topic != "" {
		filter["topic"] = q.Topic
	}

	created := bson.M{}
	if !q.CreatedFrom.IsZero() {
		created["$gte"] = q.CreatedFrom
	}
	if !q.CreatedTo.IsZero() {
		created["$lte"] = q.CreatedTo
	}
	if len(created) > 0 {
		filter["createdAt"] = created
	}

	switch q.Expiry {
	case ports.ExpiryActive:
		filter["validUntil"] = bson.M{"$gte": q.At}
	case ports.ExpiryArchived:
		filter["validUntil"] = bson.M{"$lt": q.At}
	}

	return filter
}

// postChangesUpdate builds the $set document for a post edit.
func postChangesUpdate(c ports.PostChanges) bson.M {
	set := bson.M{"updatedAt": c.UpdatedAt}
	if c.Content != nil {
		set["content"] = *c.Content
	}
	if c.Topic != nil {
		set["topic"] = *c.Topic
	}
	if c.ValidUntil != nil {
		set["validUntil"] = *c.ValidUntil
	}
	return bson.M{"$set": set}
}
