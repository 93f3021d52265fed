package connector

import (
	"fmt"
	"strings"

	"dbconnectorapi/services/backend"
)

// Credentials are the user-supplied connection parameters. They live in memory only.
type Credentials struct {
	Host          string `json:"host"`
	Username      string `json:"username"`
	Password      string `json:"-"`
	SecurityToken string `json:"-"`
}

// Target is everything needed to open one session against a backend.
type Target struct {
	Pool        string
	Kind        backend.Kind
	Credentials Credentials
}

// HasToken reports whether a security token was supplied.
func (c Credentials) HasToken() bool {
	return strings.TrimSpace(c.SecurityToken) != ""
}

// String never prints the password or token.
func (c Credentials) String() string {
	return fmt.Sprintf("{host=%s user=%s password=**** token_set=%t}", c.Host, c.Username, c.HasToken())
}

// Validate checks required fields and the host format for the template's kind.
func (c Credentials) Validate(tmpl backend.Template) error {
	var missing []string
	if tmpl.RequiresHost() && blank(c.Host) {
		missing = append(missing, "host")
	}
	if blank(c.Username) {
		missing = append(missing, "username")
	}
	if blank(c.Password) {
		missing = append(missing, "password")
	}
	if tmpl.RequiresToken && blank(c.SecurityToken) {
		missing = append(missing, "security_token")
	}
	if len(missing) > 0 {
		return &Error{
			Category: CategoryMissingCredential,
			Backend:  tmpl.Kind,
			Message:  "missing required field(s): " + strings.Join(missing, ", "),
		}
	}

	switch tmpl.Kind {
	case backend.KindJDE:
		_, err := ParseOracleAddress(c.Host)
		return err
	case backend.KindSAP:
		_, err := ParseHANAAddress(c.Host)
		return err
	}
	return nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
