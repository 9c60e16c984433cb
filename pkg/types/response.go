package types

// ErrorBody is the flat error shape storefront clients consume:
// {error, code?, message?, details?}.
type ErrorBody struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}
