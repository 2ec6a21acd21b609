package request

type ApplyRequest struct {
	CoverLetter string `json:"cover_letter" binding:"max=5000"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending reviewed accepted rejected"`
}
