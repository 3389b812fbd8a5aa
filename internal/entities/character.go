// Package entities holds the persistent records of the service.
package entities

import (
	"github.com/terra-rp/terra-api/internal/entities/terra"
)

// Character is a created character as stored by the service: the resolved
// game payload plus the bookkeeping the service needs around it.
type Character struct {
	ID         string             `json:"id"`
	CampaignID string             `json:"campaign_id"`
	OwnerID    string             `json:"owner_id"`
	RoleID     string             `json:"role_id"`
	Name       string             `json:"name"`
	Data       terra.CreationData `json:"data"`
	CreatedAt  int64              `json:"created_at"`
}
