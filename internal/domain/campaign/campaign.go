package campaign

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client is the owning organization a campaign runs for.
type Client struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"size:500;not null"`
	Active    bool      `json:"active" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName overrides the table name used by GORM
func (Client) TableName() string {
	return "client"
}

// BeforeCreate sets a UUID before creating the record
func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// NewClient creates a new client with the given name
func NewClient(name string) *Client {
	return &Client{
		ID:     uuid.New(),
		Name:   name,
		Active: true,
	}
}

// Campaign is a time-boxed voting event for one client's photo set.
// Campaigns are provisioned by admin tooling and never mutated here; a
// campaign falls out of eligibility on its own once EndDate passes.
type Campaign struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ClientID  uuid.UUID `json:"client_id" gorm:"type:uuid;not null;index;uniqueIndex:uix_campaign_name_client_id,priority:2"`
	Name      string    `json:"name" gorm:"size:500;not null;uniqueIndex:uix_campaign_name_client_id,priority:1"`
	Active    bool      `json:"active" gorm:"not null;default:true"`
	StartDate time.Time `json:"start_date" gorm:"not null"`
	EndDate   time.Time `json:"end_date" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Client Client `json:"client,omitempty" gorm:"foreignKey:ClientID"`
}

// TableName overrides the table name used by GORM
func (Campaign) TableName() string {
	return "campaign"
}

// BeforeCreate sets a UUID before creating the record
func (c *Campaign) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// NewCampaign creates a new campaign for a client
func NewCampaign(clientID uuid.UUID, name string, startDate, endDate time.Time) *Campaign {
	return &Campaign{
		ID:        uuid.New(),
		ClientID:  clientID,
		Name:      name,
		Active:    true,
		StartDate: startDate,
		EndDate:   endDate,
	}
}

// IsLive reports whether the campaign is visible to voters at the given
// instant: the active flag is set and now falls inside [StartDate, EndDate].
func (c *Campaign) IsLive(now time.Time) bool {
	return c.Active && !now.Before(c.StartDate) && !now.After(c.EndDate)
}

// Validate checks if the campaign data is valid
func (c *Campaign) Validate() error {
	if c.ClientID == uuid.Nil {
		return fmt.Errorf("client_id is required")
	}
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}
	if c.EndDate.Before(c.StartDate) {
		return fmt.Errorf("end_date must be after start_date")
	}
	return nil
}
