package models

import (
	"encoding/json"
)

// Option types accepted from the storefront configurator. Blocks carry
// schema-free JSON payloads (items/item/default_value) validated only by type.
const (
	OptionSelect       = "select"
	OptionRadio        = "radio"
	OptionCheckbox     = "checkbox"
	OptionAmount       = "amount"
	OptionDeposit      = "deposit"
	OptionBonus        = "bonus"
	OptionInputText    = "input_text"
	OptionInputEmail   = "input_email"
	OptionParentToggle = "__parent_toggle"
	OptionParentRadio  = "__parent_radio"
	OptionSteamLink    = "steam_link"
)

type Product struct {
	ID              int      `json:"id"`
	SubcategoryID   int      `json:"subcategory_id"`
	Name            string   `json:"name"`
	Price           *float64 `json:"price"`
	Description     *string  `json:"description,omitempty"`
	ImageURL        *string  `json:"image_url,omitempty"`
	PreviewImageURL *string  `json:"preview_image_url,omitempty"`

	Subcategory    *Subcategory      `json:"subcategory,omitempty"`
	Options        []ProductOption   `json:"options,omitempty"`
	DeliveryInputs []ProductDelivery `json:"delivery_inputs,omitempty"`
	Faq            []Faq             `json:"faq,omitempty"`
	Aliases        []Alias           `json:"aliases,omitempty"`
}

type ProductOption struct {
	ID             int             `json:"id"`
	ProductID      int             `json:"product_id"`
	Type           string          `json:"type"`
	OptionName     string          `json:"option_name"`
	Title          *string         `json:"title,omitempty"`
	Cols           *int            `json:"cols,omitempty"`
	Items          json.RawMessage `json:"items,omitempty"`
	Item           json.RawMessage `json:"item,omitempty"`
	DefaultValue   json.RawMessage `json:"default_value,omitempty"`
	Label          *string         `json:"label,omitempty"`
	Tooltip        *string         `json:"tooltip,omitempty"`
	Description    *string         `json:"description,omitempty"`
	ChildGroupName *string         `json:"child_group_name,omitempty"`
	IsRequired     bool            `json:"is_required"`
	Icon           *string         `json:"icon,omitempty"`
	CanBeDisabled  bool            `json:"can_be_disabled"`
}

type ProductDelivery struct {
	ID          int     `json:"id"`
	ProductID   int     `json:"product_id"`
	Type        string  `json:"type"`
	Key         string  `json:"key"`
	IsRequired  bool    `json:"is_required"`
	Label       string  `json:"label"`
	Placeholder *string `json:"placeholder,omitempty"`
	Value       *string `json:"value,omitempty"`
	Tooltip     *string `json:"tooltip,omitempty"`
	Description *string `json:"description,omitempty"`
}

type Faq struct {
	ID        int    `json:"id"`
	ProductID int    `json:"product_id"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
}

type Alias struct {
	ID        int    `json:"id"`
	ProductID int    `json:"product_id"`
	Alias     string `json:"alias"`
}

type ProductListResponse struct {
	Products []Product `json:"products"`
	Success  bool      `json:"success"`
}

type ProductResponse struct {
	Data       Product          `json:"data"`
	Success    bool             `json:"success"`
	Currencies CurrencySnapshot `json:"currencies"`
}

type AliasListResponse struct {
	Aliases []Alias `json:"aliases"`
	Success bool    `json:"success"`
}

type GiftListResponse struct {
	Gifts   []Product `json:"gifts"`
	Success bool      `json:"success"`
}

type GiftResponse struct {
	Data       Product          `json:"data"`
	Success    bool             `json:"success"`
	Currencies CurrencySnapshot `json:"currencies"`
}

type BatchGift struct {
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	SteamGameID int             `json:"steam_game_id"`
	Options     []ProductOption `json:"options,omitempty"`
	Aliases     []string        `json:"aliases,omitempty"`
}

type BatchGiftCreateRequest struct {
	Gifts []BatchGift `json:"gifts"`
}

type BatchGiftCreateResponse struct {
	Success           bool  `json:"success"`
	CreatedProductIDs []int `json:"created_product_ids"`
}
