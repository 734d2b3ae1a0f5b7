package voter

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/imageimprov/photogame-api/internal/gameid"
)

// Voter is the handle votes are attributed to. A voter is either linked to
// a client through a client-supplied user id, or anonymous and keyed only by
// the locally minted token that rides in the voter cookie.
type Voter struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	ClientID     *uuid.UUID `json:"client_id" gorm:"type:uuid;index"`
	ClientUserID *string    `json:"client_user_id" gorm:"size:128;index"`
	Token        string     `json:"token" gorm:"size:48;not null"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName overrides the table name used by GORM
func (Voter) TableName() string {
	return "gameuser"
}

// BeforeCreate sets a UUID before creating the record
func (v *Voter) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// NewClientVoter creates a voter bound to a client. When no token is
// supplied a fresh one is minted so the record always carries one.
func NewClientVoter(clientID uuid.UUID, clientUserID, token string) (*Voter, error) {
	if token == "" {
		minted, err := MintToken("")
		if err != nil {
			return nil, err
		}
		token = minted
	}

	return &Voter{
		ID:           uuid.New(),
		ClientID:     &clientID,
		ClientUserID: &clientUserID,
		Token:        token,
	}, nil
}

// MintToken returns the existing token unchanged when present, otherwise a
// fresh time-ordered identifier rendered as hex. It never touches the
// response: writing the cookie back is the HTTP boundary's job.
func MintToken(existing string) (string, error) {
	if existing != "" {
		return existing, nil
	}

	id, err := gameid.New()
	if err != nil {
		return "", err
	}
	return id.Hex(), nil
}
