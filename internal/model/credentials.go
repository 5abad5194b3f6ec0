package model

// AuthType is the scheme used in the Authorization header of the remote list API.
type AuthType string

const (
	AuthBearer AuthType = "Bearer"
	AuthBasic  AuthType = "Basic"
)

// Credentials identify the user against the remote list API.
type Credentials struct {
	FrameID  string   `json:"frameId" binding:"required" validate:"required"`
	Token    string   `json:"token" binding:"required" validate:"required"`
	AuthType AuthType `json:"authType" binding:"required" validate:"required,oneof=Bearer Basic"`
}

// Header returns the Authorization header value, passing the token through verbatim.
func (c Credentials) Header() string {
	return string(c.AuthType) + " " + c.Token
}
