package request

type CreateRoomRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
	Capacity    int    `json:"capacity" binding:"required,min=1"`
}

type UpdateRoomRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,max=255"`
	Description *string `json:"description,omitempty"`
	Capacity    *int    `json:"capacity,omitempty" binding:"omitempty,min=1"`
}

type SetRoomActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}
