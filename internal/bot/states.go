package bot

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/okarpenko/water-meter-bot/internal/repository"
)

// Dialog states of the resident bot
const (
	stateRegAccountNumber = "reg_account_number"
	stateRegFullName      = "reg_full_name"
	stateRegAddress       = "reg_address"
	stateRegPhone         = "reg_phone"
	stateRegMetersCount   = "reg_meters_count"
	stateRegConsent       = "reg_consent"

	stateSubmitCounter = "submit_counter"
	stateSubmitValue   = "submit_value"

	stateAddCounterAlias   = "add_counter_alias"
	stateEditCounterSelect = "edit_counter_select"
	stateEditCounterAction = "edit_counter_action"
	stateEditCounterName   = "edit_counter_name"

	stateEditFullName      = "edit_full_name"
	stateEditAddress       = "edit_address"
	stateEditAccountNumber = "edit_account_number"
	stateEditMetersCount   = "edit_meters_count"
)

// Dialog states of the admin bot
const (
	stateAdminPassword  = "admin_password"
	stateAdminStartDate = "admin_start_date"
	stateAdminEndDate   = "admin_end_date"
)

// Callback identifiers shared by the bots
const (
	callbackDeveloperInfo = "show_developer_info"
	callbackIgnore        = "ignore"
)

// dialogData is the JSON payload carried between turns of one dialog
type dialogData struct {
	AccountNumber string `json:"account_number,omitempty"`
	FullName      string `json:"full_name,omitempty"`
	Address       string `json:"address,omitempty"`
	Phone         string `json:"phone,omitempty"`
	MetersCount   int    `json:"meters_count,omitempty"`
	CounterID     int64  `json:"counter_id,omitempty"`
	CounterAlias  string `json:"counter_alias,omitempty"`
	StartDate     string `json:"start_date,omitempty"`
}

// dialogStore persists the per-chat conversation FSM value so a process
// restart cannot drop a dialog mid-flight
type dialogStore struct {
	repo *repository.Repository
}

func (d *dialogStore) set(ctx context.Context, chatID int64, state string, data *dialogData) error {
	var payload []byte
	if data != nil {
		var err error
		payload, err = json.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to marshal dialog payload: %w", err)
		}
	}
	return d.repo.SetDialogState(ctx, chatID, state, payload)
}

// get returns the chat's state name and payload; an idle chat returns
// an empty state
func (d *dialogStore) get(ctx context.Context, chatID int64) (string, *dialogData, error) {
	state, err := d.repo.GetDialogState(ctx, chatID)
	if err != nil {
		return "", nil, err
	}
	if state == nil {
		return "", &dialogData{}, nil
	}

	var data dialogData
	if len(state.Payload) > 0 {
		if err := json.Unmarshal(state.Payload, &data); err != nil {
			return "", nil, fmt.Errorf("failed to unmarshal dialog payload: %w", err)
		}
	}

	return state.State, &data, nil
}

func (d *dialogStore) clear(ctx context.Context, chatID int64) error {
	return d.repo.ClearDialogState(ctx, chatID)
}
