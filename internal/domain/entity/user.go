package entity

import "time"

// Role identifies which app surface an account belongs to.
type Role string

// Account roles.
const (
	RoleCustomer Role = "customer"
	RoleDriver   Role = "driver"
	RoleAdmin    Role = "admin"
)

// UserProfile is a customer or driver profile stored in the "users"
// collection, keyed by the auth provider uid.
type UserProfile struct {
	ID    string `json:"id" firestore:"-"`
	Role  Role   `json:"role" firestore:"role"`
	Name  string `json:"name" firestore:"name"`
	Email string `json:"email" firestore:"email"`
	Phone string `json:"phone" firestore:"phone"`
	// PhotoData is an inline base64 data URI, size-capped before
	// write; PhotoURL is set instead when the image went to the blob
	// store.
	PhotoData string `json:"photo_data,omitempty" firestore:"photoData,omitempty"`
	PhotoURL  string `json:"photo_url,omitempty" firestore:"photoUrl,omitempty"`
	// FCMToken is the device push token last registered by the app.
	FCMToken  string    `json:"-" firestore:"fcmToken,omitempty"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// AdminAccount is a dashboard login with a locally stored password
// hash. Kept separate from UserProfile because admins do not exist in
// the auth provider's user pool.
type AdminAccount struct {
	ID           string    `json:"id" firestore:"-"`
	Email        string    `json:"email" firestore:"email"`
	PasswordHash string    `json:"-" firestore:"passwordHash"`
	Name         string    `json:"name" firestore:"name"`
	CreatedAt    time.Time `json:"created_at" firestore:"createdAt"`
}

// PaymentMethod is a stored payment option for a customer, from the
// "paymentMethods" collection.
type PaymentMethod struct {
	ID        string    `json:"id" firestore:"-"`
	UserID    string    `json:"user_id" firestore:"userId"`
	Kind      string    `json:"kind" firestore:"kind"` // cash | card
	Label     string    `json:"label" firestore:"label"`
	Last4     string    `json:"last4,omitempty" firestore:"last4,omitempty"`
	IsDefault bool      `json:"is_default" firestore:"isDefault"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
