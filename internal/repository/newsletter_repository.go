package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nexuscart/nexuscart/internal/models"
)

type NewsletterRepository struct {
	collection *mongo.Collection
}

func NewNewsletterRepository(db *mongo.Database) *NewsletterRepository {
	return &NewsletterRepository{collection: db.Collection("newsletter")}
}

func (r *NewsletterRepository) FindByEmail(ctx context.Context, email string) (*models.Subscriber, error) {
	var sub models.Subscriber
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&sub)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *NewsletterRepository) Create(ctx context.Context, sub *models.Subscriber) error {
	res, err := r.collection.InsertOne(ctx, sub)
	if err != nil {
		return err
	}
	sub.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *NewsletterRepository) Update(ctx context.Context, sub *models.Subscriber) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": sub.ID}, sub)
	return err
}

func (r *NewsletterRepository) CountByActive(ctx context.Context, active bool) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"is_active": active})
}

// RecentActive returns the latest active signups, newest first.
func (r *NewsletterRepository) RecentActive(ctx context.Context, limit int64) ([]models.Subscriber, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "subscribed_at", Value: -1}}).
		SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{"is_active": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	subs := []models.Subscriber{}
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}
