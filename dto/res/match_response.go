package res

type CanChatResponse struct {
	CanChat bool `json:"canChat"`
}
