/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/saisaranya2005/SmartLabAI/lab"
)

const (
	mongoCollection     = "patient_records"
	mongoSelectTimeout  = 5 * time.Second
	mongoConnectTimeout = 10 * time.Second
)

// MongoStore stores visits in the patient_records collection of a per-panel
// database, e.g. cbc_analyzer.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// MongoDatabaseName returns the database used for a panel.
func MongoDatabaseName(panel lab.Panel) string {
	return panel.Slug() + "_analyzer"
}

// OpenMongo connects to MongoDB, verifies the connection and ensures the
// patient_id and test_date indexes exist.
func OpenMongo(ctx context.Context, uri string, panel lab.Panel) (*MongoStore, error) {
	return openMongo(ctx, uri, MongoDatabaseName(panel))
}

func openMongo(ctx context.Context, uri, database string) (*MongoStore, error) {
	if uri == "" {
		return nil, ErrMongoURINotSet
	}

	client, err := mongo.Connect(options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(mongoSelectTimeout))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	collection := client.Database(database).Collection(mongoCollection)

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "patient_id", Value: 1}}},
		{Keys: bson.D{{Key: "test_date", Value: 1}}},
	}
	if _, err := collection.Indexes().CreateMany(pingCtx, indexes); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	return &MongoStore{client: client, collection: collection}, nil
}

// Available always reports true; a MongoStore only exists once connected.
func (s *MongoStore) Available() bool { return true }

// Save inserts the visit.
func (s *MongoStore) Save(ctx context.Context, visit *VisitRecord) error {
	if visit == nil {
		return ErrInvalidVisit
	}

	if _, err := s.collection.InsertOne(ctx, visit); err != nil {
		return fmt.Errorf("failed to insert visit: %w", err)
	}

	return nil
}

// History returns the visits of a patient by ascending test date.
func (s *MongoStore) History(ctx context.Context, patientID string) ([]VisitRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "test_date", Value: 1}})

	cursor, err := s.collection.Find(ctx, bson.M{"patient_id": patientID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}

	var visits []VisitRecord
	if err := cursor.All(ctx, &visits); err != nil {
		return nil, fmt.Errorf("failed to decode history: %w", err)
	}

	return visits, nil
}

// searchFilter matches patient id or name case-insensitively. A blank query
// matches everything.
func searchFilter(query string) bson.M {
	query = strings.TrimSpace(query)
	if query == "" {
		return bson.M{}
	}

	pattern := bson.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}

	return bson.M{"$or": bson.A{
		bson.M{"patient_id": pattern},
		bson.M{"patient_name": pattern},
	}}
}

// Search returns the latest visit per matching patient, most recent first.
func (s *MongoStore) Search(ctx context.Context, query string) ([]VisitRecord, error) {
	match := searchFilter(query)

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "test_date", Value: -1}, {Key: "created_at", Value: -1}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$patient_id"},
			{Key: "latest_record", Value: bson.D{{Key: "$first", Value: "$$ROOT"}}},
		}}},
		{{Key: "$replaceRoot", Value: bson.D{{Key: "newRoot", Value: "$latest_record"}}}},
		{{Key: "$sort", Value: bson.D{{Key: "test_date", Value: -1}, {Key: "patient_id", Value: 1}}}},
	}

	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to search patients: %w", err)
	}

	var visits []VisitRecord
	if err := cursor.All(ctx, &visits); err != nil {
		return nil, fmt.Errorf("failed to decode search results: %w", err)
	}

	return visits, nil
}

// PatientExists reports whether any visit carries the id.
func (s *MongoStore) PatientExists(ctx context.Context, patientID string) (bool, error) {
	n, err := s.collection.CountDocuments(ctx, bson.M{"patient_id": patientID}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to count patient visits: %w", err)
	}

	return n > 0, nil
}

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from mongodb: %w", err)
	}

	return nil
}
