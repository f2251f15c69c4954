package models

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const FavouriteColName = "favourite_rooms"

type FavouriteItem struct {
	RoomID  uint      `bson:"room_id" json:"roomId"`
	AddedAt time.Time `bson:"added_at" json:"addedAt"`
}

// Favourite holds every room a user saved, keyed by room id.
type Favourite struct {
	ID        primitive.ObjectID       `bson:"_id,omitempty" json:"id"`
	UserID    uint                     `bson:"user_id" json:"userId"`
	Items     map[string]FavouriteItem `bson:"items" json:"items"`
	CreatedAt time.Time                `bson:"created_at,omitempty" json:"createdAt,omitempty"`
	UpdatedAt time.Time                `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

type FavouriteRepo interface {
	AddFavouriteRoom(ctx context.Context, userID, roomID uint) (*Favourite, error)
	RemoveFavouriteRoom(ctx context.Context, userID, roomID uint) error
	GetFavourites(ctx context.Context, userID uint) (*Favourite, error)
}

// EnsureIndexes keeps one favourites document per user.
func (mdb *MongodbRepo) EnsureIndexes(ctx context.Context) error {
	col, err := mdb.GetCollection(FavouriteColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %w", err)
	}
	_, err = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("user_id_unique"),
	})
	if err != nil {
		return fmt.Errorf("error creating indexes: %w", err)
	}
	return nil
}

func (mdb *MongodbRepo) AddFavouriteRoom(ctx context.Context, userID, roomID uint) (*Favourite, error) {
	col, err := mdb.GetCollection(FavouriteColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}
	now := time.Now()
	key := strconv.FormatUint(uint64(roomID), 10)

	update := bson.M{
		"$set": bson.M{
			"updated_at":   now,
			"items." + key: FavouriteItem{RoomID: roomID, AddedAt: now},
		},
		"$setOnInsert": bson.M{
			"user_id":    userID,
			"created_at": now,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var result Favourite
	err = col.FindOneAndUpdate(ctx, bson.M{"user_id": userID}, update, opts).Decode(&result)
	if err != nil {
		return nil, fmt.Errorf("error upserting favourite: %w", err)
	}
	return &result, nil
}

func (mdb *MongodbRepo) RemoveFavouriteRoom(ctx context.Context, userID, roomID uint) error {
	col, err := mdb.GetCollection(FavouriteColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %w", err)
	}
	update := bson.M{
		"$unset": bson.M{"items." + strconv.FormatUint(uint64(roomID), 10): ""},
		"$set":   bson.M{"updated_at": time.Now()},
	}
	if _, err := col.UpdateOne(ctx, bson.M{"user_id": userID}, update); err != nil {
		return fmt.Errorf("error removing favourite: %w", err)
	}
	return nil
}

// GetFavourites returns an empty set when the user has none.
func (mdb *MongodbRepo) GetFavourites(ctx context.Context, userID uint) (*Favourite, error) {
	col, err := mdb.GetCollection(FavouriteColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}
	var fav Favourite
	err = col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&fav)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &Favourite{UserID: userID, Items: map[string]FavouriteItem{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error finding favourites: %w", err)
	}
	return &fav, nil
}
