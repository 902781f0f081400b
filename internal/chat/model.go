// Package chat holds the room and message documents and the per-viewer room summary.
package chat

import (
	"bytes"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gochat/internal/common"
)

type Room struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Participants []primitive.ObjectID `bson:"participants" json:"participants"`
	PairKey      string               `bson:"pair_key" json:"-"`
	CreatedBy    primitive.ObjectID   `bson:"created_by" json:"created_by"`
	HiddenBy     []primitive.ObjectID `bson:"hidden_by,omitempty" json:"is_delete_by"`
	IsDeleted    bool                 `bson:"is_deleted" json:"is_deleted"`
	CreatedAt    time.Time            `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time            `bson:"updated_at" json:"updatedAt"`
}

// PairKey returns the order-independent key of a two-party room and its participants in key order.
func PairKey(a, b primitive.ObjectID) (string, []primitive.ObjectID) {
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
	}
	return a.Hex() + ":" + b.Hex(), []primitive.ObjectID{a, b}
}

func (r *Room) HasParticipant(id primitive.ObjectID) bool {
	return containsID(r.Participants, id)
}

// OtherParticipant returns the participant that is not id.
func (r *Room) OtherParticipant(id primitive.ObjectID) primitive.ObjectID {
	for _, p := range r.Participants {
		if p != id {
			return p
		}
	}
	return primitive.NilObjectID
}

func (r *Room) IsHiddenFor(id primitive.ObjectID) bool {
	return containsID(r.HiddenBy, id)
}

type MediaFile struct {
	FileType  common.MediaFileType `bson:"file_type" json:"file_type"`
	FileName  string               `bson:"file_name,omitempty" json:"file_name,omitempty"`
	FilePath  string               `bson:"file_path,omitempty" json:"file_path,omitempty"`
	Thumbnail *string              `bson:"thumbnail" json:"thumbnail"`
}

type Message struct {
	ID                 primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	RoomID             primitive.ObjectID   `bson:"room_id" json:"chat_room_id"`
	SenderID           primitive.ObjectID   `bson:"sender_id" json:"sender_id"`
	ReceiverID         primitive.ObjectID   `bson:"receiver_id" json:"receiver_id"`
	SentAt             time.Time            `bson:"sent_at" json:"message_time"`
	Body               string               `bson:"body,omitempty" json:"message,omitempty"`
	Kind               common.MessageKind   `bson:"kind" json:"message_type"`
	Media              []MediaFile          `bson:"media,omitempty" json:"media_file,omitempty"`
	IsRead             bool                 `bson:"is_read" json:"is_read"`
	IsEdited           bool                 `bson:"is_edited" json:"is_edited"`
	HiddenBy           []primitive.ObjectID `bson:"hidden_by,omitempty" json:"-"`
	DeletedForEveryone bool                 `bson:"deleted_for_everyone" json:"is_delete_everyone"`
	CreatedAt          time.Time            `bson:"created_at" json:"createdAt"`
	UpdatedAt          time.Time            `bson:"updated_at" json:"updatedAt"`
}

// VisibleTo applies the visibility rule shared by every message read.
func (m *Message) VisibleTo(viewer primitive.ObjectID) bool {
	if m.DeletedForEveryone || containsID(m.HiddenBy, viewer) {
		return false
	}
	return m.SenderID == viewer || m.ReceiverID == viewer
}

// WithBucketURL returns a copy whose media paths are public URLs. Only video thumbnails are prefixed.
func (m *Message) WithBucketURL(bucketURL string) *Message {
	out := *m
	if len(m.Media) == 0 {
		return &out
	}
	out.Media = make([]MediaFile, len(m.Media))
	for i, f := range m.Media {
		f.FilePath = common.WithBucketURL(bucketURL, f.FilePath)
		if f.FileType == common.MediaFileTypeVideo && f.Thumbnail != nil {
			thumb := common.WithBucketURL(bucketURL, *f.Thumbnail)
			f.Thumbnail = &thumb
		}
		out.Media[i] = f
	}
	return &out
}

type LastMessage struct {
	ID     primitive.ObjectID `bson:"last_id" json:"_id"`
	Body   string             `bson:"last_body" json:"message"`
	Kind   common.MessageKind `bson:"last_kind" json:"message_type"`
	SentAt time.Time          `bson:"last_sent_at" json:"message_time"`
}

// RoomStats is what the message aggregation yields per room for one viewer.
type RoomStats struct {
	RoomID      primitive.ObjectID `bson:"_id"`
	LastMessage LastMessage        `bson:",inline"`
	UnreadCount int64              `bson:"unread_count"`
}

// Summary is one row of a viewer's chat list.
type Summary struct {
	RoomID         primitive.ObjectID `json:"_id"`
	UserID         primitive.ObjectID `json:"user_id"`
	FullName       string             `json:"full_name"`
	ProfilePicture *string            `json:"profile_picture"`
	IsOnline       bool               `json:"is_online"`
	UnreadCount    int64              `json:"unread_count"`
	LastMessage    *LastMessage       `json:"last_message"`
	CreatedAt      time.Time          `json:"createdAt"`
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
