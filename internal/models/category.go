package models

type Category struct {
	ID            int           `json:"id"`
	Name          string        `json:"name"`
	Description   *string       `json:"description,omitempty"`
	Subcategories []Subcategory `json:"subcategories,omitempty"`
}

type CategoryListResponse struct {
	Categories []Category `json:"categories"`
}
