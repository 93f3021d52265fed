package dto

import (
	"strings"

	"dbconnectorapi/services/connector"
)

// ConnectRequest carries the connection form.
type ConnectRequest struct {
	PoolName      string `json:"pool_name" validate:"required,poolname" example:"jde-dev"`
	DBKind        string `json:"db_kind" validate:"required" example:"JDE"`
	Host          string `json:"host" validate:"max=255" example:"10.25.3.5:1521/e920pdb"`
	Username      string `json:"username" validate:"max=255" example:"JDE"`
	Password      string `json:"password" validate:"max=1024"`
	SecurityToken string `json:"security_token,omitempty" validate:"max=1024"`
}

// Credentials returns the trimmed connection parameters. Passwords are taken verbatim.
func (r ConnectRequest) Credentials() connector.Credentials {
	return connector.Credentials{
		Host:          strings.TrimSpace(r.Host),
		Username:      strings.TrimSpace(r.Username),
		Password:      r.Password,
		SecurityToken: strings.TrimSpace(r.SecurityToken),
	}
}

// ConnectRequestBuilder provides a builder pattern for constructing ConnectRequest instances.
type ConnectRequestBuilder struct {
	req ConnectRequest
}

// NewConnectRequestBuilder creates a new ConnectRequest builder instance.
func NewConnectRequestBuilder() *ConnectRequestBuilder {
	return &ConnectRequestBuilder{}
}

func (b *ConnectRequestBuilder) SetPoolName(name string) *ConnectRequestBuilder {
	b.req.PoolName = name
	return b
}

func (b *ConnectRequestBuilder) SetDBKind(kind string) *ConnectRequestBuilder {
	b.req.DBKind = kind
	return b
}

func (b *ConnectRequestBuilder) SetHost(host string) *ConnectRequestBuilder {
	b.req.Host = host
	return b
}

func (b *ConnectRequestBuilder) SetUsername(username string) *ConnectRequestBuilder {
	b.req.Username = username
	return b
}

func (b *ConnectRequestBuilder) SetPassword(password string) *ConnectRequestBuilder {
	b.req.Password = password
	return b
}

func (b *ConnectRequestBuilder) SetSecurityToken(token string) *ConnectRequestBuilder {
	b.req.SecurityToken = token
	return b
}

// Build returns the constructed ConnectRequest.
func (b *ConnectRequestBuilder) Build() ConnectRequest {
	return b.req
}
