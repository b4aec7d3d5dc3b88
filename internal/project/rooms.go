package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"

	"github.com/google/uuid"

	"github.com/piwi3910/RenoCalc/internal/engine"
)

// SavedRoom is a named set of room dimensions kept between sessions.
type SavedRoom struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Length     float64 `json:"length"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height,omitempty"`
	DoorArea   float64 `json:"door_area,omitempty"`
	WindowArea float64 `json:"window_area,omitempty"`
}

// NewSavedRoom captures room under name with a generated ID.
func NewSavedRoom(name string, room engine.Room) SavedRoom {
	return SavedRoom{
		ID:         uuid.New().String()[:8],
		Name:       name,
		Length:     room.Length,
		Width:      room.Width,
		Height:     room.Height,
		DoorArea:   room.DoorArea,
		WindowArea: room.WindowArea,
	}
}

// Room returns the dimensions for the room calculator.
func (r SavedRoom) Room() engine.Room {
	return engine.Room{
		Length:     r.Length,
		Width:      r.Width,
		Height:     r.Height,
		DoorArea:   r.DoorArea,
		WindowArea: r.WindowArea,
	}
}

// RoomStore holds the saved rooms.
type RoomStore struct {
	Rooms []SavedRoom `json:"rooms"`
}

// Put adds room, replacing a saved room with the same name.
func (s *RoomStore) Put(room SavedRoom) {
	if i := slices.IndexFunc(s.Rooms, func(r SavedRoom) bool { return r.Name == room.Name }); i >= 0 {
		room.ID = s.Rooms[i].ID
		s.Rooms[i] = room
		return
	}
	s.Rooms = append(s.Rooms, room)
}

// Find returns the saved room with the given name.
func (s *RoomStore) Find(name string) (SavedRoom, bool) {
	i := slices.IndexFunc(s.Rooms, func(r SavedRoom) bool { return r.Name == name })
	if i < 0 {
		return SavedRoom{}, false
	}
	return s.Rooms[i], true
}

// Names returns saved room names for UI dropdowns.
func (s *RoomStore) Names() []string {
	names := make([]string, len(s.Rooms))
	for i, r := range s.Rooms {
		names[i] = r.Name
	}
	return names
}

// DefaultRoomsPath returns the default file path for saved rooms.
// This is located at ~/.renocalc/rooms.json.
func DefaultRoomsPath() string {
	return filepath.Join(DefaultConfigDir(), "rooms.json")
}

// SaveRooms writes the room store to a JSON file.
func SaveRooms(path string, store RoomStore) error {
	return writeJSON(path, store)
}

// LoadRooms reads a room store from a JSON file.
// If the file does not exist, returns an empty store.
func LoadRooms(path string) (RoomStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return RoomStore{Rooms: []SavedRoom{}}, nil
		}
		return RoomStore{}, err
	}
	var store RoomStore
	if err := json.Unmarshal(data, &store); err != nil {
		return RoomStore{}, err
	}
	if store.Rooms == nil {
		store.Rooms = []SavedRoom{}
	}
	return store, nil
}
