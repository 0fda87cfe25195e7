package config

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	Client            *mongo.Client
	UserCollection    *mongo.Collection
	SessionCollection *mongo.Collection
	StateCollection   *mongo.Collection
	BackupCollection  *mongo.Collection
)

func ConnectDatabase() {
	client, err := mongo.NewClient(options.Client().ApplyURI(os.Getenv("MONGO_URI")))
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = client.Connect(ctx)
	if err != nil {
		log.Fatal(err)
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		log.Fatal(err)
	}

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "retailops"
	}

	Client = client
	UserCollection = Client.Database(dbName).Collection("users")
	SessionCollection = Client.Database(dbName).Collection("sessions")
	StateCollection = Client.Database(dbName).Collection("state")
	BackupCollection = Client.Database(dbName).Collection("backups")

	log.Println("Connected to MongoDB")
}
