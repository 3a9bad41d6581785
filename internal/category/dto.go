package category

// CreateCategoryDTO represents the request payload for creating a category
type CreateCategoryDTO struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Icon  string `json:"icon,omitempty"`
	Color string `json:"color,omitempty"`
}

// Validate validates the CreateCategoryDTO
func (dto CreateCategoryDTO) Validate() error {
	if dto.Name == "" || dto.Type == "" {
		return ErrMissingFields
	}
	if !IsValidType(dto.Type) {
		return ErrInvalidType
	}
	return nil
}

// UpdateCategoryDTO uses pointer fields so "field absent" and "field present"
// are distinguishable: nil leaves the stored value untouched, a non-nil value
// overwrites it even when empty.
type UpdateCategoryDTO struct {
	Name  *string `json:"name,omitempty"`
	Type  *string `json:"type,omitempty"`
	Icon  *string `json:"icon,omitempty"`
	Color *string `json:"color,omitempty"`
}

// Validate validates the UpdateCategoryDTO
func (dto UpdateCategoryDTO) Validate() error {
	if dto.Type != nil && !IsValidType(*dto.Type) {
		return ErrInvalidType
	}
	return nil
}

// ApplyTo overwrites the supplied fields on c.
func (dto UpdateCategoryDTO) ApplyTo(c *Category) {
	if dto.Name != nil {
		c.Name = *dto.Name
	}
	if dto.Type != nil {
		c.Type = *dto.Type
	}
	if dto.Icon != nil {
		c.Icon = *dto.Icon
	}
	if dto.Color != nil {
		c.Color = *dto.Color
	}
}

type CategoriesResponse struct {
	Categories []*Category `json:"categories"`
}

type CategoryResponse struct {
	Message  string    `json:"message"`
	Category *Category `json:"category"`
}
