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

type skillDoc struct {
	ID          primitive.ObjectID `bson:"_id"`
	Name        string             `bson:"name"`
	Proficiency string             `bson:"proficiency"`
	Category    string             `bson:"category"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d *skillDoc) model() *models.Skill {
	return &models.Skill{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Proficiency: d.Proficiency,
		Category:    d.Category,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type mongoSkillRepo struct {
	coll *mongo.Collection
}

// NewMongoSkillRepo creates a skill repository over the skills collection
func NewMongoSkillRepo(m *database.Mongo) SkillRepository {
	return &mongoSkillRepo{coll: m.DB.Collection(database.CollectionSkills)}
}

func (r *mongoSkillRepo) List(ctx context.Context) ([]*models.Skill, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	skills := make([]*models.Skill, 0)
	for cursor.Next(ctx) {
		var doc skillDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		skills = append(skills, doc.model())
	}
	return skills, cursor.Err()
}

func (r *mongoSkillRepo) GetByID(ctx context.Context, id string) (*models.Skill, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var doc skillDoc
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.model(), nil
}

func (r *mongoSkillRepo) Create(ctx context.Context, skill *models.Skill) error {
	oid, err := primitive.ObjectIDFromHex(skill.ID)
	if err != nil {
		return err
	}
	_, err = r.coll.InsertOne(ctx, skillDoc{
		ID:          oid,
		Name:        skill.Name,
		Proficiency: skill.Proficiency,
		Category:    skill.Category,
		CreatedAt:   skill.CreatedAt,
		UpdatedAt:   skill.UpdatedAt,
	})
	return err
}

func (r *mongoSkillRepo) Update(ctx context.Context, skill *models.Skill) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(skill.ID)
	if err != nil {
		return false, err
	}
	result, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"name":        skill.Name,
		"proficiency": skill.Proficiency,
		"category":    skill.Category,
		"updatedAt":   skill.UpdatedAt,
	}})
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}

func (r *mongoSkillRepo) Delete(ctx context.Context, id string) (*models.Skill, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var doc skillDoc
	err = r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.model(), nil
}

func (r *mongoSkillRepo) Count(ctx context.Context) (int, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	return int(n), err
}

func (r *mongoSkillRepo) StreamAll(ctx context.Context, callback func(*models.Skill) error) error {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var doc skillDoc
		if err := cursor.Decode(&doc); err != nil {
			return err
		}
		if err := callback(doc.model()); err != nil {
			return err
		}
	}
	return cursor.Err()
}
