package models

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateKey   = errors.New("duplicate key")
)

type PostgresRepo struct {
	db *gorm.DB
}

func PostgresNewRepo(db *gorm.DB) *PostgresRepo {
	return &PostgresRepo{
		db: db,
	}
}

// Migrate creates or updates every relational table.
func (pg *PostgresRepo) Migrate() error {
	return pg.db.AutoMigrate(
		&Role{},
		&User{},
		&OtpVerification{},
		&RefreshToken{},
		&Hotel{},
		&HotelImage{},
		&Room{},
		&RoomImage{},
		&Booking{},
		&Review{},
	)
}

func (pg *PostgresRepo) conn(ctx context.Context) *gorm.DB {
	return pg.db.WithContext(ctx)
}

// translate maps driver errors onto the package sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrRecordNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateKey
	default:
		return err
	}
}

type MongodbRepo struct {
	mongodbClient *mongo.Client
	dbName        string
}

func MongodbNewRepo(mongodbClient *mongo.Client, dbName string) *MongodbRepo {
	return &MongodbRepo{
		mongodbClient: mongodbClient,
		dbName:        dbName,
	}
}

func (mdb *MongodbRepo) GetCollection(colName string) (*mongo.Collection, error) {
	if mdb == nil || mdb.mongodbClient == nil {
		return nil, fmt.Errorf("mongodb client is not initialized")
	}
	return mdb.mongodbClient.Database(mdb.dbName).Collection(colName), nil
}
