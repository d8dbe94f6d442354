package websocket

import (
	"encoding/json"
	"time"
)

type MessageType string

const (
	// Client to Server
	MessageTypePing MessageType = "PING"

	// Server to Client
	MessageTypeConnected              MessageType = "CONNECTED"
	MessageTypePong                   MessageType = "PONG"
	MessageTypeReactionReceived       MessageType = "REACTION_RECEIVED"
	MessageTypeCollaborationRequested MessageType = "COLLABORATION_REQUESTED"
	MessageTypeCollaborationAnswered  MessageType = "COLLABORATION_ANSWERED"
	MessageTypeError                  MessageType = "ERROR"
)

type Message struct {
	Type      MessageType     `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

func NewMessage(msgType MessageType, payload interface{}) (*Message, error) {
	msg := &Message{
		Type:      msgType,
		Timestamp: time.Now().UnixMilli(),
	}
	if payload != nil {
		payloadBytes, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		msg.Payload = payloadBytes
	}
	return msg, nil
}

// Server to Client payloads

type ConnectedPayload struct {
	UserID string `json:"userId"`
}

type ReactionReceivedPayload struct {
	IdeaID       string `json:"ideaId"`
	IdeaTitle    string `json:"ideaTitle"`
	ReactionType string `json:"reactionType"`
	FromEmail    string `json:"fromEmail"`
}

type CollaborationRequestedPayload struct {
	RequestID string `json:"requestId"`
	IdeaID    string `json:"ideaId"`
	IdeaTitle string `json:"ideaTitle"`
	FromEmail string `json:"fromEmail"`
	Message   string `json:"message"`
}

type CollaborationAnsweredPayload struct {
	RequestID string `json:"requestId"`
	IdeaID    string `json:"ideaId"`
	IdeaTitle string `json:"ideaTitle"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
