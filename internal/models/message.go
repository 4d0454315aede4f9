package models

import "time"

// Message is a single "contact agent" inquiry about a listing.
type Message struct {
	ID          string    `json:"id"`
	SenderID    string    `json:"senderId"`
	SenderName  string    `json:"senderName"`
	SenderEmail string    `json:"senderEmail"`
	ReceiverID  string    `json:"receiverId"`
	PropertyID  string    `json:"propertyId"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"createdAt"`
}
