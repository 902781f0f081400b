package gateway

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"gochat/internal/chat"
	"gochat/internal/chat/service"
	"gochat/internal/common"
)

func decode(env Envelope, v any) error {
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return common.InvalidArgument("Invalid payload")
	}
	return nil
}

func parseID(value, field string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(value)
	if err != nil {
		return primitive.NilObjectID, common.InvalidArgument("Invalid " + field)
	}
	return id, nil
}

// pushSummary sends the user's fresh chat-list row for the room to all of the user's connections.
func (g *Gateway) pushSummary(ctx context.Context, userID, roomID primitive.ObjectID) {
	summary, err := g.chats.Summary(ctx, userID, roomID)
	if err != nil {
		if common.CodeOf(err) != common.CodeNotFound {
			log.Error().Err(err).Str("user_id", userID.Hex()).Str("room_id", roomID.Hex()).Msg("failed to build chat summary")
		}
		return
	}
	g.hub.EmitTo(userID.Hex(), EventUpdatedChatRoomData, success("Chat room data updated", summary))
}

func (g *Gateway) pushSummaries(ctx context.Context, msg *chat.Message) {
	g.pushSummary(ctx, msg.SenderID, msg.RoomID)
	g.pushSummary(ctx, msg.ReceiverID, msg.RoomID)
}

func (g *Gateway) handleSetSocketID(ctx context.Context, c *Client, env Envelope) error {
	var req setSocketIDRequest
	if err := decode(env, &req); err != nil {
		return err
	}
	id := c.identity
	deviceToken := id.DeviceToken
	if deviceToken == "" {
		deviceToken = req.DeviceToken
	}
	g.hub.Join(c, id.UserID.Hex())

	bound, err := g.presence.BindSocket(ctx, id.UserID, id.SessionID, c.id)
	if err != nil {
		return err
	}
	if bound.ReplacedSocketID != "" {
		log.Info().Str("socket_id", bound.ReplacedSocketID).Str("by", c.id).Msg("session taken over by a new socket")
		g.hub.Close(bound.ReplacedSocketID)
	}

	c.Emit(EventSetSocketID, success("Socket id set successfully!", map[string]string{
		"user_id":      id.UserID.Hex(),
		"socket_id":    c.id,
		"device_token": deviceToken,
	}))
	if bound.NewlyOnline {
		g.hub.Broadcast(EventUserIsOnline, success("User is online", onlineStatus{UserID: id.UserID.Hex(), IsOnline: true}))
	}
	return nil
}

func (g *Gateway) handleCheckUserIsOnline(ctx context.Context, c *Client, env Envelope) error {
	var req userRequest
	if err := decode(env, &req); err != nil {
		return err
	}
	userID, err := parseID(req.UserID, "user_id")
	if err != nil {
		return err
	}
	online, err := g.presence.IsOnline(ctx, userID)
	if err != nil {
		return err
	}
	message := "User is offline"
	if online {
		message = "User is online"
	}
	c.Emit(EventCheckUserIsOnline, success(message, onlineStatus{UserID: req.UserID, IsOnline: online}))
	return nil
}

func (g *Gateway) handleCreateRoom(ctx context.Context, c *Client, env Envelope) error {
	var req createRoomRequest
	if err := decode(env, &req); err != nil {
		return err
	}
	other, err := parseID(req.OtherUserID, "other_user_id")
	if err != nil {
		return err
	}
	room, err := g.rooms.GetOrCreateRoom(ctx, c.identity.UserID, other)
	if err != nil {
		return err
	}
	g.hub.Join(c, room.ID.Hex())
	c.Emit(EventCreateRoom, success("Chat room created successfully", room))
	return nil
}

func (g *Gateway) handleSendMessage(ctx context.Context, c *Client, env Envelope) error {
	var req sendMessageRequest
	if err := decode(env, &req); err != nil {
		return err
	}
	roomID, err := parseID(req.RoomID, "chat_room_id")
	if err != nil {
		return err
	}
	receiverID, err := parseID(req.ReceiverID, "receiver_id")
	if err != nil {
		return err
	}
	kind := common.MessageKind(req.MessageType)
	if kind == "" {
		kind = common.MessageKindText
	}

	msg, err := g.messages.Send(ctx, service.SendInput{
		SenderID:   c.identity.UserID,
		RoomID:     roomID,
		ReceiverID: receiverID,
		Body:       req.Message,
		Kind:       kind,
		Media:      req.MediaFile,
	})
	if err != nil {
		return err
	}

	g.hub.Join(c, roomID.Hex())
	g.hub.EmitTo(roomID.Hex(), EventSendMessage, success("Message sent successfully", msg))
	g.pushSummaries(ctx, msg)
	return nil
}

func (g *Gateway) handleGetAllMessage(ctx context.Context, c *Client, env Envelope) error {
	var req pageRequest
	if err := decode(env, &req); err != nil {
		return err
	}
	roomID, err := parseID(req.RoomID, "chat_room_id")
	if err != nil {
		return err
	}
	messages, err := g.messages.List(ctx, roomID, c.identity.UserID, req.Page, req.Limit)
	if err != nil {
		return err
	}
	g.hub.Join(c, roomID.Hex())
	c.Emit(EventGetAllMessage, success("Messages fetched successfully", messages))
	return nil
}

func (g *Gateway) handleEditMessage(ctx context.Context, c *Client, env Envelope) error {
	var req editMessageRequest
	if err := decode(env, &req); err != nil {
		return err
	}
	messageID, err := parseID(req.ChatID, "chat_id")
	if err != nil {
		return err
	}

	msg, isLast, err := g.messages.Edit(ctx, messageID, c.identity.UserID, req.Message)
	if err != nil {
		return err
	}
	room := msg.RoomID.Hex()
	g.hub.Join(c, room)
	g.hub.EmitTo(room, EventEditMessage, success("Message edited successfully", msg))
	if isLast {
		g.pushSummaries(ctx, msg)
	}
	return nil
}

func (g *Gateway) handleDeleteMessage(ctx context.Context, c *Client, env Envelope) error {
	var req messageRequest
	if err := decode(env, &req); err != nil {
		return err
	}
	messageID, err := parseID(req.ChatID, "chat_id")
	if err != nil {
		return err
	}

	msg, err := g.messages.DeleteForSelf(ctx, messageID, c.identity.UserID)
	if err != nil {
		return err
	}
	room := msg.RoomID.Hex()
	g.hub.Join(c, room)
	g.hub.EmitTo(room, EventDeleteMessage, success("Message deleted successfully", map[string]string{
		"chat_id":      msg.ID.Hex(),
		"chat_room_id": room,
		"user_id":      c.identity.UserID.Hex(),
	}))
	g.pushSummary(ctx, c.identity.UserID, msg.RoomID)
	return nil
}

func (g *Gateway) handleDeleteForEveryone(ctx context.Context, c *Client, env Envelope) error {
	var req messageRequest
	if err := decode(env, &req); err != nil {
		return err
	}
	messageID, err := parseID(req.ChatID, "chat_id")
	if err != nil {
		return err
	}

	msg, isLast, err := g.messages.DeleteForEveryone(ctx, messageID, c.identity.UserID)
	if err != nil {
		return err
	}
	room := msg.RoomID.Hex()
	g.hub.Join(c, room)
	g.hub.EmitTo(room, EventDeleteMessageForEveryOne, success("Message deleted for everyone", msg))
	if isLast {
		g.pushSummaries(ctx, msg)
	}
	return nil
}

func (g *Gateway) handleReadMessage(ctx context.Context, c *Client, env Envelope) error {
	var req roomRequest
	if err := decode(env, &req); err != nil {
		return err
	}
	roomID, err := parseID(req.RoomID, "chat_room_id")
	if err != nil {
		return err
	}

	updated, err := g.messages.MarkRead(ctx, roomID, c.identity.UserID)
	if err != nil {
		return err
	}
	g.hub.Join(c, roomID.Hex())
	g.hub.EmitTo(roomID.Hex(), EventReadMessage, success("Messages read successfully", map[string]any{
		"chat_room_id": roomID.Hex(),
		"user_id":      c.identity.UserID.Hex(),
		"updated":      updated,
	}))
	g.pushSummary(ctx, c.identity.UserID, roomID)
	return nil
}

func (g *Gateway) handleChatUserList(ctx context.Context, c *Client, env Envelope) error {
	var req pageRequest
	if err := decode(env, &req); err != nil {
		return err
	}
	g.hub.Join(c, c.identity.UserID.Hex())

	list, err := g.chats.List(ctx, c.identity.UserID, req.Search, req.Page, req.Limit)
	if err != nil {
		return err
	}
	c.Emit(EventChatUserList, success("Chat list fetched successfully", list))
	return nil
}

func (g *Gateway) handleDeleteChatRoom(ctx context.Context, c *Client, env Envelope) error {
	var req roomRequest
	if err := decode(env, &req); err != nil {
		return err
	}
	roomID, err := parseID(req.RoomID, "chat_room_id")
	if err != nil {
		return err
	}
	if err := g.rooms.DeleteRoom(ctx, roomID, c.identity.UserID); err != nil {
		return err
	}
	g.hub.EmitTo(c.identity.UserID.Hex(), EventDeleteChatRoom, success("Chat room deleted successfully", map[string]string{
		"chat_room_id": roomID.Hex(),
	}))
	return nil
}

func (g *Gateway) handleChangeScreenStatus(ctx context.Context, c *Client, env Envelope) error {
	var req screenStatusRequest
	if err := decode(env, &req); err != nil {
		return err
	}
	roomID, err := parseID(req.RoomID, "chat_room_id")
	if err != nil {
		return err
	}
	if _, err := g.rooms.Room(ctx, roomID, c.identity.UserID); err != nil {
		return err
	}

	var viewing *primitive.ObjectID
	if req.ScreenStatus {
		viewing = &roomID
	}
	if err := g.presence.SetViewing(ctx, c.identity.UserID, c.id, viewing); err != nil {
		return err
	}

	g.hub.Join(c, roomID.Hex())
	g.hub.EmitTo(roomID.Hex(), EventChangeScreenStatus, success("Screen status changed successfully", screenStatus{
		RoomID:       roomID.Hex(),
		UserID:       c.identity.UserID.Hex(),
		ScreenStatus: req.ScreenStatus,
	}))
	return nil
}
