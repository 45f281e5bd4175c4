package models

type Subcategory struct {
	ID          int       `json:"id"`
	CategoryID  int       `json:"category_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Category    *Category `json:"category,omitempty"`
}

type SubcategoryListResponse struct {
	Subcategories []Subcategory `json:"subcategories"`
}
