package services

import (
	"context"
	"errors"
	"sort"

	"github.com/joshua-takyi/hotelbooking/internal/helpers"
	"github.com/joshua-takyi/hotelbooking/internal/models"
)

type FavouriteService struct {
	favouritesRepo models.FavouriteRepo
	hotels         models.HotelRepo
}

// NewFavouriteService accepts a nil repo when no document store is configured.
func NewFavouriteService(favouritesRepo models.FavouriteRepo, hotels models.HotelRepo) *FavouriteService {
	return &FavouriteService{
		favouritesRepo: favouritesRepo,
		hotels:         hotels,
	}
}

func (fs *FavouriteService) check(identity *helpers.Identity) error {
	if fs.favouritesRepo == nil {
		return ErrFeatureDisabled
	}
	if identity == nil {
		return ErrUnauthorized
	}
	return nil
}

func (fs *FavouriteService) AddFavourite(ctx context.Context, identity *helpers.Identity, roomID uint) ([]models.RoomResponse, error) {
	if err := fs.check(identity); err != nil {
		return nil, err
	}
	if _, err := fs.hotels.GetRoomByID(ctx, roomID); err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	fav, err := fs.favouritesRepo.AddFavouriteRoom(ctx, identity.UserID, roomID)
	if err != nil {
		return nil, err
	}
	return fs.rooms(ctx, fav)
}

func (fs *FavouriteService) RemoveFavourite(ctx context.Context, identity *helpers.Identity, roomID uint) error {
	if err := fs.check(identity); err != nil {
		return err
	}
	return fs.favouritesRepo.RemoveFavouriteRoom(ctx, identity.UserID, roomID)
}

func (fs *FavouriteService) GetFavourites(ctx context.Context, identity *helpers.Identity) ([]models.RoomResponse, error) {
	if err := fs.check(identity); err != nil {
		return nil, err
	}
	fav, err := fs.favouritesRepo.GetFavourites(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	return fs.rooms(ctx, fav)
}

// rooms resolves saved room ids, newest first, skipping rooms that no longer exist.
func (fs *FavouriteService) rooms(ctx context.Context, fav *models.Favourite) ([]models.RoomResponse, error) {
	items := make([]models.FavouriteItem, 0, len(fav.Items))
	for _, item := range fav.Items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].AddedAt.After(items[j].AddedAt)
	})

	out := make([]models.RoomResponse, 0, len(items))
	for _, item := range items {
		room, err := fs.hotels.GetRoomByID(ctx, item.RoomID)
		if errors.Is(err, models.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, room.Response())
	}
	return out, nil
}
