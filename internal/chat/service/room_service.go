package service

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"gochat/internal/chat"
	"gochat/internal/chat/repository"
	"gochat/internal/common"
	"gochat/internal/user"
)

// RoomService is the directory of two-party rooms.
type RoomService struct {
	rooms    repository.RoomRepository
	messages repository.MessageRepository
	profiles user.ProfileRepository
}

func NewRoomService(rooms repository.RoomRepository, messages repository.MessageRepository, profiles user.ProfileRepository) *RoomService {
	return &RoomService{rooms: rooms, messages: messages, profiles: profiles}
}

// GetOrCreateRoom returns the live room of the pair, creating it on first use. A requester who had
// hidden the room gets it back; the other participant's hide state is untouched.
func (s *RoomService) GetOrCreateRoom(ctx context.Context, userA, userB primitive.ObjectID) (*chat.Room, error) {
	if userA == userB {
		return nil, common.InvalidArgument("Cannot create a chat room with yourself")
	}
	if _, err := s.profiles.FindActive(ctx, userB); err != nil {
		return nil, err
	}

	key, participants := chat.PairKey(userA, userB)
	room, err := s.rooms.GetOrCreate(ctx, key, participants, userA)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("room_id", room.ID.Hex()).Str("user_id", userA.Hex()).Msg("room opened")
	return room, nil
}

// Room returns a live room the user takes part in.
func (s *RoomService) Room(ctx context.Context, roomID, userID primitive.ObjectID) (*chat.Room, error) {
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !room.HasParticipant(userID) {
		return nil, common.PermissionDenied("You are not a member of this chat room")
	}
	return room, nil
}

func (s *RoomService) MarkHiddenFor(ctx context.Context, roomID, userID primitive.ObjectID) error {
	return s.rooms.AddHidden(ctx, roomID, userID)
}

// DeleteRoom hides the room and every message the user can still see in it, for that user only.
func (s *RoomService) DeleteRoom(ctx context.Context, roomID, userID primitive.ObjectID) error {
	if _, err := s.Room(ctx, roomID, userID); err != nil {
		return err
	}
	if err := s.MarkHiddenFor(ctx, roomID, userID); err != nil {
		return err
	}
	hidden, err := s.messages.HideAllInRoom(ctx, roomID, userID)
	if err != nil {
		return err
	}
	log.Debug().Str("room_id", roomID.Hex()).Str("user_id", userID.Hex()).Int64("messages", hidden).Msg("room hidden")
	return nil
}
