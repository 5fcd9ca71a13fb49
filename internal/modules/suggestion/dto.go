package suggestion

type SendSuggestionRequest struct {
	ReceiverID int64   `json:"receiverId" binding:"required,gt=0"`
	MediaID    int64   `json:"mediaId" binding:"required,gt=0"`
	Message    *string `json:"message"`
}

type RespondRequest struct {
	Action string `json:"action" binding:"required,oneof=accept reject"`
}
