package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/piazza/piazza-api/internal/core/domain"
	"github.com/piazza/piazza-api/internal/core/ports"
)

type PostRepository struct {
	col *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{col: db.Collection(collectionPosts)}
}

type mongoPost struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty"`
	Content    string               `bson:"content"`
	Topic      string               `bson:"topic"`
	Author     primitive.ObjectID   `bson:"author"`
	Likes      int64                `bson:"likes"`
	Dislikes   int64                `bson:"dislikes"`
	Comments   []primitive.ObjectID `bson:"comments"`
	CreatedAt  time.Time            `bson:"createdAt"`
	UpdatedAt  time.Time            `bson:"updatedAt"`
	ValidUntil time.Time            `bson:"validUntil"`
}

func (mp *mongoPost) toDomain() *domain.Post {
	return &domain.Post{
		ID:         mp.ID.Hex(),
		Content:    mp.Content,
		Topic:      mp.Topic,
		AuthorID:   mp.Author.Hex(),
		Likes:      mp.Likes,
		Dislikes:   mp.Dislikes,
		Comments:   hexIDs(mp.Comments),
		CreatedAt:  mp.CreatedAt.UTC(),
		UpdatedAt:  mp.UpdatedAt.UTC(),
		ValidUntil: mp.ValidUntil.UTC(),
	}
}

// Create inserts a new post document and sets p.ID.
func (r *PostRepository) Create(ctx context.Context, p *domain.Post) error {
	author, ok := objectID(p.AuthorID)
	if !ok {
		return fmt.Errorf("%w: malformed author id", domain.ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoPost{
		ID:         primitive.NewObjectID(),
		Content:    p.Content,
		Topic:      p.Topic,
		Author:     author,
		Likes:      p.Likes,
		Dislikes:   p.Dislikes,
		Comments:   objectIDs(p.Comments),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
		ValidUntil: p.ValidUntil,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	p.ID = doc.ID.Hex()
	return nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mp mongoPost
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return mp.toDomain(), nil
}

// Find returns every post matching q, oldest first.
func (r *PostRepository) Find(ctx context.Context, q ports.PostQuery) ([]*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, postFilter(q), opts)
	if err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}
	var docs []mongoPost
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}

	posts := make([]*domain.Post, len(docs))
	for i := range docs {
		posts[i] = docs[i].toDomain()
	}
	return posts, nil
}

func (r *PostRepository) Update(ctx context.Context, id string, changes ports.PostChanges) (*domain.Post, error) {
	return r.findAndUpdate(ctx, id, postChangesUpdate(changes))
}

// IncrementVote bumps one counter server-side so concurrent votes never
// overwrite each other.
func (r *PostRepository) IncrementVote(ctx context.Context, id string, kind ports.VoteKind) (*domain.Post, error) {
	return r.findAndUpdate(ctx, id, bson.M{"$inc": bson.M{string(kind): 1}})
}

func (r *PostRepository) AttachComment(ctx context.Context, postID, commentID string) error {
	return r.updateComments(ctx, postID, commentID, "$push")
}

func (r *PostRepository) DetachComment(ctx context.Context, postID, commentID string) error {
	return r.updateComments(ctx, postID, commentID, "$pull")
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes backing the listing filters.
func (r *PostRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "topic", Value: 1}}},
		{Keys: bson.D{{Key: "validUntil", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: 1}}},
		{Keys: bson.D{{Key: "author", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *PostRepository) findAndUpdate(ctx context.Context, id string, update bson.M) (*domain.Post, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var mp mongoPost
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("update post: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *PostRepository) updateComments(ctx context.Context, postID, commentID, op string) error {
	pid, ok := objectID(postID)
	if !ok {
		return domain.ErrPostNotFound
	}
	cid, ok := objectID(commentID)
	if !ok {
		return domain.ErrCommentNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": pid}, bson.M{op: bson.M{"comments": cid}})
	if err != nil {
		return fmt.Errorf("update post comments: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}
