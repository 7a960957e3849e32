package database

import (
	"context"
	"database/sql"
	"log"
	"time"

	"attendance-sync/internal/config"

	_ "github.com/lib/pq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
)

// MongodbDB holds the ops database used for sync run history and the log sink
type MongodbDB struct {
	DB *mongo.Database
}

// NewMongoDatabase creates the MongoDB connection with lifecycle management
func NewMongoDatabase(lc fx.Lifecycle, cfg *config.Config) (*MongodbDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	log.Println("Connected to MongoDB!")

	db := client.Database(cfg.DBName)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Println("Disconnecting from MongoDB...")
			return client.Disconnect(ctx)
		},
	})

	return &MongodbDB{DB: db}, nil
}

// AttendanceDB holds the read-only attendance source connection pool
type AttendanceDB struct {
	DB *sql.DB
}

// NewAttendanceDatabase opens the Postgres pool for the attendance source
func NewAttendanceDatabase(lc fx.Lifecycle, cfg *config.Config) (*AttendanceDB, error) {
	db, err := sql.Open("postgres", cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	log.Println("Connected to attendance Postgres!")

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Println("Closing attendance Postgres pool...")
			return db.Close()
		},
	})

	return &AttendanceDB{DB: db}, nil
}
