package dto

import (
	"time"

	"github.com/dilshat/wa-sender/template"
)

type Id struct {
	Id uint32 `json:"id"`
}

// Dispatch asks for one run. Either Template or Blocks must be given.
type Dispatch struct {
	Mode     string           `json:"mode"`
	Template string           `json:"template,omitempty"`
	Blocks   []template.Block `json:"blocks,omitempty"`
}

type RunStatus struct {
	Id         uint32           `json:"id"`
	Mode       string           `json:"mode"`
	Template   string           `json:"template"`
	Status     string           `json:"status"`
	Error      string           `json:"error,omitempty"`
	Total      int              `json:"total"`
	Sent       int              `json:"sent"`
	NotSent    int              `json:"not_sent"`
	CreatedAt  time.Time        `json:"created_at"`
	FinishedAt *time.Time       `json:"finished_at,omitempty"`
	Deliveries []DeliveryStatus `json:"deliveries"`
}

type DeliveryStatus struct {
	Row        int    `json:"row"`
	Phone      string `json:"phone"`
	Status     string `json:"status"`
	Reason     string `json:"reason,omitempty"`
	ProviderId string `json:"provider_id,omitempty"`
}

type Settings struct {
	UltramsgToken      string `json:"ultramsg_token"`
	UltramsgInstanceId string `json:"ultramsg_instance_id"`
	SpreadsheetId      string `json:"spreadsheet_id"`
	ServiceAccountFile string `json:"service_account_file"`
	MessageDelay       string `json:"message_delay"`
	SheetNumber        string `json:"sheet_number"`
}
