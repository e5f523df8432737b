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

// projectDoc is the stored shape of a project in the projects collection
type projectDoc struct {
	ID               primitive.ObjectID `bson:"_id"`
	Name             string             `bson:"name"`
	Description      string             `bson:"description"`
	Category         string             `bson:"category"`
	Status           string             `bson:"status"`
	TechnologiesUsed []string           `bson:"technologiesUsed"`
	ProjectURL       string             `bson:"projectUrl,omitempty"`
	RepositoryURL    string             `bson:"repositoryUrl,omitempty"`
	ImageURL         string             `bson:"imageUrl,omitempty"`
	StartDate        *time.Time         `bson:"startDate,omitempty"`
	EndDate          *time.Time         `bson:"endDate,omitempty"`
	IsPublished      bool               `bson:"isPublished"`
	PublishedAt      *time.Time         `bson:"publishedAt,omitempty"`
	IsFeatured       bool               `bson:"isFeatured"`
	CreatedAt        time.Time          `bson:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt"`
}

func newProjectDoc(p *models.Project) (*projectDoc, error) {
	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return nil, err
	}
	tech := p.TechnologiesUsed
	if tech == nil {
		tech = []string{}
	}
	return &projectDoc{
		ID:               oid,
		Name:             p.Name,
		Description:      p.Description,
		Category:         p.Category,
		Status:           p.Status,
		TechnologiesUsed: tech,
		ProjectURL:       p.ProjectURL,
		RepositoryURL:    p.RepositoryURL,
		ImageURL:         p.ImageURL,
		StartDate:        p.StartDate,
		EndDate:          p.EndDate,
		IsPublished:      p.IsPublished,
		PublishedAt:      p.PublishedAt,
		IsFeatured:       p.IsFeatured,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}, nil
}

func (d *projectDoc) model() *models.Project {
	tech := d.TechnologiesUsed
	if tech == nil {
		tech = []string{}
	}
	return &models.Project{
		ID:               d.ID.Hex(),
		Name:             d.Name,
		Description:      d.Description,
		Category:         d.Category,
		Status:           d.Status,
		TechnologiesUsed: tech,
		ProjectURL:       d.ProjectURL,
		RepositoryURL:    d.RepositoryURL,
		ImageURL:         d.ImageURL,
		StartDate:        d.StartDate,
		EndDate:          d.EndDate,
		IsPublished:      d.IsPublished,
		PublishedAt:      d.PublishedAt,
		IsFeatured:       d.IsFeatured,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

// mongoProjectRepo is the MongoDB implementation of ProjectRepository
type mongoProjectRepo struct {
	coll *mongo.Collection
}

// NewMongoProjectRepo creates a project repository over the projects collection
func NewMongoProjectRepo(m *database.Mongo) ProjectRepository {
	return &mongoProjectRepo{coll: m.DB.Collection(database.CollectionProjects)}
}

func (r *mongoProjectRepo) List(ctx context.Context, filter models.ListFilter) ([]*models.Project, error) {
	query := bson.M{}
	if filter.PublishedOnly {
		query["isPublished"] = true
	}
	if filter.FeaturedOnly {
		query["isFeatured"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	projects := make([]*models.Project, 0)
	for cursor.Next(ctx) {
		var doc projectDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		projects = append(projects, doc.model())
	}
	return projects, cursor.Err()
}

func (r *mongoProjectRepo) GetByID(ctx context.Context, id string) (*models.Project, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var doc projectDoc
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.model(), nil
}

func (r *mongoProjectRepo) Create(ctx context.Context, project *models.Project) error {
	doc, err := newProjectDoc(project)
	if err != nil {
		return err
	}
	_, err = r.coll.InsertOne(ctx, doc)
	return duplicateFromMongo(err, "project", "name", project.Name)
}

func (r *mongoProjectRepo) Update(ctx context.Context, project *models.Project) (bool, error) {
	doc, err := newProjectDoc(project)
	if err != nil {
		return false, err
	}
	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		return false, duplicateFromMongo(err, "project", "name", project.Name)
	}
	return result.MatchedCount > 0, nil
}

func (r *mongoProjectRepo) Delete(ctx context.Context, id string) (*models.Project, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var doc projectDoc
	err = r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.model(), nil
}

func (r *mongoProjectRepo) Count(ctx context.Context) (int, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	return int(n), err
}

func (r *mongoProjectRepo) StreamAll(ctx context.Context, callback func(*models.Project) error) error {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var doc projectDoc
		if err := cursor.Decode(&doc); err != nil {
			return err
		}
		if err := callback(doc.model()); err != nil {
			return err
		}
	}
	return cursor.Err()
}
