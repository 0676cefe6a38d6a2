package respond

// FcmStoredRespond fcm_token_stored 回执
type FcmStoredRespond struct {
	Success bool `json:"success"`
}

// FcmErrorRespond fcm_error 回执
type FcmErrorRespond struct {
	Message string `json:"message"`
}

// FcmTokenRemovedRespond fcm_token_removed 回执
type FcmTokenRemovedRespond struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
