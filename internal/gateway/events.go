package gateway

import (
	"encoding/json"

	"gochat/internal/chat"
	"gochat/internal/common"
)

// Inbound and outbound event names.
const (
	EventSetSocketID              = "setSocketId"
	EventCheckUserIsOnline        = "checkUserIsOnline"
	EventCreateRoom               = "createRoom"
	EventSendMessage              = "sendMessage"
	EventGetAllMessage            = "getAllMessage"
	EventEditMessage              = "editMessage"
	EventDeleteMessage            = "deleteMessage"
	EventDeleteMessageForEveryOne = "deleteMessageForEveryOne"
	EventReadMessage              = "readMessage"
	EventChatUserList             = "chatUserList"
	EventDeleteChatRoom           = "deleteChatRoom"
	EventChangeScreenStatus       = "changeScreenStatus"

	EventUpdatedChatRoomData = "updatedChatRoomData"
	EventUserIsOnline        = "userIsOnline"
	EventUserIsOffline       = "userIsOffline"
	EventError               = "error"
)

// Envelope is the frame exchanged in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type outbound struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Response is the payload of every acknowledgement and broadcast.
type Response struct {
	Success    bool             `json:"success"`
	StatusCode int              `json:"statuscode"`
	Message    string           `json:"message"`
	Data       any              `json:"data,omitempty"`
	Code       common.ErrorCode `json:"code,omitempty"`
}

func success(message string, data any) Response {
	return Response{Success: true, StatusCode: 1, Message: message, Data: data}
}

func failure(err error) Response {
	return Response{Success: false, StatusCode: 0, Message: common.PublicMessage(err), Code: common.CodeOf(err)}
}

func encode(event string, data any) ([]byte, error) {
	return json.Marshal(outbound{Event: event, Data: data})
}

type setSocketIDRequest struct {
	DeviceToken string `json:"device_token"`
}

type userRequest struct {
	UserID string `json:"user_id"`
}

type createRoomRequest struct {
	OtherUserID string `json:"other_user_id"`
}

type sendMessageRequest struct {
	RoomID      string           `json:"chat_room_id"`
	ReceiverID  string           `json:"receiver_id"`
	Message     string           `json:"message"`
	MessageType string           `json:"message_type"`
	MediaFile   []chat.MediaFile `json:"media_file"`
}

type roomRequest struct {
	RoomID string `json:"chat_room_id"`
}

type pageRequest struct {
	RoomID string `json:"chat_room_id"`
	Search string `json:"search"`
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
}

type editMessageRequest struct {
	ChatID  string `json:"chat_id"`
	RoomID  string `json:"chat_room_id"`
	Message string `json:"message"`
}

type messageRequest struct {
	ChatID string `json:"chat_id"`
	RoomID string `json:"chat_room_id"`
}

type screenStatusRequest struct {
	ScreenStatus bool   `json:"screen_status"`
	RoomID       string `json:"chat_room_id"`
}

type onlineStatus struct {
	UserID   string `json:"user_id"`
	IsOnline bool   `json:"is_online"`
}

type screenStatus struct {
	RoomID       string `json:"chat_room_id"`
	UserID       string `json:"user_id"`
	ScreenStatus bool   `json:"screen_status"`
}
