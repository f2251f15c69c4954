package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Hotel struct {
	ID          uint         `gorm:"primaryKey"`
	Name        string       `gorm:"size:255;not null"`
	Address     string       `gorm:"size:512"`
	City        string       `gorm:"size:100;index"`
	Country     string       `gorm:"size:100;index"`
	Description string       `gorm:"type:text"`
	Images      []HotelImage `gorm:"constraint:OnDelete:CASCADE"`
	Rooms       []Room       `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type HotelImage struct {
	ID       uint   `gorm:"primaryKey"`
	HotelID  uint   `gorm:"index;not null"`
	ImageURL string `gorm:"size:512;not null"`
}

type Room struct {
	ID          uint            `gorm:"primaryKey"`
	HotelID     uint            `gorm:"index;not null"`
	Hotel       Hotel           `gorm:"constraint:OnDelete:CASCADE"`
	RoomType    string          `gorm:"size:100;not null"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Capacity    int             `gorm:"not null"`
	Description string          `gorm:"type:text"`
	Images      []RoomImage     `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type RoomImage struct {
	ID       uint   `gorm:"primaryKey"`
	RoomID   uint   `gorm:"index;not null"`
	ImageURL string `gorm:"size:512;not null"`
}

func hotelImageURLs(images []HotelImage) []string {
	urls := make([]string, 0, len(images))
	for _, img := range images {
		urls = append(urls, img.ImageURL)
	}
	return urls
}

func roomImageURLs(images []RoomImage) []string {
	urls := make([]string, 0, len(images))
	for _, img := range images {
		urls = append(urls, img.ImageURL)
	}
	return urls
}

func firstOrEmpty(urls []string) string {
	if len(urls) == 0 {
		return ""
	}
	return urls[0]
}

type HotelInfo struct {
	HotelID uint   `json:"hotelId"`
	Name    string `json:"hotelName"`
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`
}

type HotelResponse struct {
	HotelID        uint     `json:"hotelId"`
	Name           string   `json:"hotelName"`
	Address        string   `json:"address"`
	City           string   `json:"city"`
	Country        string   `json:"country"`
	Description    string   `json:"description"`
	Images         []string `json:"images"`
	ThumbnailImage string   `json:"thumbnailImage"`
	RoomCount      int      `json:"roomCount"`
}

func (h *Hotel) Response(roomCount int) HotelResponse {
	images := hotelImageURLs(h.Images)
	return HotelResponse{
		HotelID:        h.ID,
		Name:           h.Name,
		Address:        h.Address,
		City:           h.City,
		Country:        h.Country,
		Description:    h.Description,
		Images:         images,
		ThumbnailImage: firstOrEmpty(images),
		RoomCount:      roomCount,
	}
}

type RoomResponse struct {
	RoomID         uint            `json:"roomId"`
	Hotel          HotelInfo       `json:"hotel"`
	RoomType       string          `json:"roomType"`
	Price          decimal.Decimal `json:"price"`
	Capacity       int             `json:"capacity"`
	Description    string          `json:"description"`
	Images         []string        `json:"images"`
	ThumbnailImage string          `json:"thumbnailImage"`
}

func (r *Room) Response() RoomResponse {
	images := roomImageURLs(r.Images)
	return RoomResponse{
		RoomID: r.ID,
		Hotel: HotelInfo{
			HotelID: r.Hotel.ID,
			Name:    r.Hotel.Name,
			Address: r.Hotel.Address,
			City:    r.Hotel.City,
			Country: r.Hotel.Country,
		},
		RoomType:       r.RoomType,
		Price:          r.Price,
		Capacity:       r.Capacity,
		Description:    r.Description,
		Images:         images,
		ThumbnailImage: firstOrEmpty(images),
	}
}

type HotelDetail struct {
	HotelID     uint     `json:"hotelId"`
	Name        string   `json:"hotelName"`
	Address     string   `json:"address"`
	City        string   `json:"city"`
	Country     string   `json:"country"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
}

type RoomDetailResponse struct {
	RoomID      uint            `json:"roomId"`
	Hotel       HotelDetail     `json:"hotel"`
	RoomType    string          `json:"roomType"`
	Price       decimal.Decimal `json:"price"`
	Capacity    int             `json:"capacity"`
	Description string          `json:"description"`
	Images      []string        `json:"images"`
}

func (r *Room) Detail() RoomDetailResponse {
	return RoomDetailResponse{
		RoomID: r.ID,
		Hotel: HotelDetail{
			HotelID:     r.Hotel.ID,
			Name:        r.Hotel.Name,
			Address:     r.Hotel.Address,
			City:        r.Hotel.City,
			Country:     r.Hotel.Country,
			Description: r.Hotel.Description,
			Images:      hotelImageURLs(r.Hotel.Images),
		},
		RoomType:    r.RoomType,
		Price:       r.Price,
		Capacity:    r.Capacity,
		Description: r.Description,
		Images:      roomImageURLs(r.Images),
	}
}

// RoomPage is one page of room results.
type RoomPage struct {
	Rooms         []RoomResponse `json:"rooms"`
	CurrentPage   int            `json:"currentPage"`
	TotalPages    int            `json:"totalPages"`
	TotalElements int64          `json:"totalElements"`
	PageSize      int            `json:"pageSize"`
	IsFirst       bool           `json:"isFirst"`
	IsLast        bool           `json:"isLast"`
}

func NewRoomPage(rooms []Room, page, size int, total int64) RoomPage {
	out := make([]RoomResponse, 0, len(rooms))
	for i := range rooms {
		out = append(out, rooms[i].Response())
	}
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	return RoomPage{
		Rooms:         out,
		CurrentPage:   page,
		TotalPages:    totalPages,
		TotalElements: total,
		PageSize:      size,
		IsFirst:       page == 0,
		IsLast:        page+1 >= totalPages,
	}
}
