package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/portfolio-api/internal/database"
	"github.com/portfolio-api/internal/models"
)

// blogDoc is the stored shape of a post in the blogs collection
type blogDoc struct {
	ID          primitive.ObjectID `bson:"_id"`
	Title       string             `bson:"title"`
	Slug        string             `bson:"slug"`
	Content     string             `bson:"content"`
	Author      string             `bson:"author,omitempty"`
	Tags        []string           `bson:"tags"`
	ImageURL    string             `bson:"imageUrl,omitempty"`
	IsPublished bool               `bson:"isPublished"`
	PublishedAt *time.Time         `bson:"publishedAt,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func newBlogDoc(b *models.BlogPost) (*blogDoc, error) {
	oid, err := primitive.ObjectIDFromHex(b.ID)
	if err != nil {
		return nil, err
	}
	tags := b.Tags
	if tags == nil {
		tags = []string{}
	}
	return &blogDoc{
		ID:          oid,
		Title:       b.Title,
		Slug:        b.Slug,
		Content:     b.Content,
		Author:      b.Author,
		Tags:        tags,
		ImageURL:    b.ImageURL,
		IsPublished: b.IsPublished,
		PublishedAt: b.PublishedAt,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}, nil
}

func (d *blogDoc) model() *models.BlogPost {
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	return &models.BlogPost{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Slug:        d.Slug,
		Content:     d.Content,
		Author:      d.Author,
		Tags:        tags,
		ImageURL:    d.ImageURL,
		IsPublished: d.IsPublished,
		PublishedAt: d.PublishedAt,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// mongoBlogRepo is the MongoDB implementation of BlogRepository
type mongoBlogRepo struct {
	coll *mongo.Collection
}

// NewMongoBlogRepo creates a blog repository over the blogs collection
func NewMongoBlogRepo(m *database.Mongo) BlogRepository {
	return &mongoBlogRepo{coll: m.DB.Collection(database.CollectionBlogs)}
}

// List sorts published listings by publishedAt descending. Missing values
// sort lowest in MongoDB, so never-published documents come last.
func (r *mongoBlogRepo) List(ctx context.Context, filter models.ListFilter) ([]*models.BlogPost, error) {
	query := bson.M{}
	sort := bson.D{{Key: "updatedAt", Value: -1}}
	if filter.PublishedOnly {
		query["isPublished"] = true
		sort = bson.D{{Key: "publishedAt", Value: -1}, {Key: "createdAt", Value: -1}}
	}

	opts := options.Find().SetSort(sort)
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := make([]*models.BlogPost, 0)
	for cursor.Next(ctx) {
		var doc blogDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		posts = append(posts, doc.model())
	}
	return posts, cursor.Err()
}

func (r *mongoBlogRepo) GetByID(ctx context.Context, id string) (*models.BlogPost, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *mongoBlogRepo) GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *mongoBlogRepo) findOne(ctx context.Context, filter bson.M) (*models.BlogPost, error) {
	var doc blogDoc
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.model(), nil
}

func (r *mongoBlogRepo) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	filter := bson.M{"slug": slug}
	if oid, err := primitive.ObjectIDFromHex(excludeID); err == nil {
		filter["_id"] = bson.M{"$ne": oid}
	}
	n, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	return n > 0, err
}

func (r *mongoBlogRepo) Create(ctx context.Context, post *models.BlogPost) error {
	doc, err := newBlogDoc(post)
	if err != nil {
		return err
	}
	_, err = r.coll.InsertOne(ctx, doc)
	return duplicateFromMongo(err, "blog post", "slug", post.Slug)
}

func (r *mongoBlogRepo) Update(ctx context.Context, post *models.BlogPost) (bool, error) {
	doc, err := newBlogDoc(post)
	if err != nil {
		return false, err
	}
	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		return false, duplicateFromMongo(err, "blog post", "slug", post.Slug)
	}
	return result.MatchedCount > 0, nil
}

func (r *mongoBlogRepo) Delete(ctx context.Context, id string) (*models.BlogPost, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var doc blogDoc
	err = r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.model(), nil
}

func (r *mongoBlogRepo) Count(ctx context.Context) (int, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	return int(n), err
}

func (r *mongoBlogRepo) StreamAll(ctx context.Context, callback func(*models.BlogPost) error) error {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var doc blogDoc
		if err := cursor.Decode(&doc); err != nil {
			return err
		}
		if err := callback(doc.model()); err != nil {
			return err
		}
	}
	return cursor.Err()
}
