package db

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"zenzone/models"
)

var MongoClient *mongo.Client
var MongoDatabase *mongo.Database
var SessionCollection *mongo.Collection

// extractDBName parses the database name from the URI, defaulting to "zenzone"
func extractDBName(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return "zenzone"
	}
	if u.Path != "" && u.Path != "/" {
		return u.Path[1:] // Trim leading '/'
	}
	return "zenzone"
}

// ConnectMongoDB establishes a connection to MongoDB using the provided URI
func ConnectMongoDB(uri string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Verify connection with a ping
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	MongoClient = client
	dbName := extractDBName(uri)
	log.Printf("Using database: %s", dbName)

	MongoDatabase = client.Database(dbName)
	SessionCollection = MongoDatabase.Collection("sessions")
	return nil
}

// SaveSession stores a completed analysis session
func SaveSession(session models.Session) error {
	if SessionCollection == nil {
		return fmt.Errorf("session collection not initialized")
	}
	_, err := SessionCollection.InsertOne(context.Background(), session)
	if err != nil {
		log.Printf("Error saving session: %v", err)
		return err
	}
	return nil
}

// GetRecentSessions retrieves the most recent sessions for a user, newest first
func GetRecentSessions(userID string, limit int64) ([]models.Session, error) {
	if SessionCollection == nil {
		return nil, fmt.Errorf("session collection not initialized")
	}
	if limit <= 0 {
		limit = 20
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"timestamp": -1}).SetLimit(limit)
	cursor, err := SessionCollection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []models.Session
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}
