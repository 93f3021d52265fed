// Package backend holds the static catalogue of supported data source kinds.
package backend

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies one of the supported backend kinds.
type Kind string

// Supported backend kinds.
const (
	KindJDE        Kind = "JDE"
	KindSAP        Kind = "SAP"
	KindSalesforce Kind = "Salesforce"
)

// ErrUnknownBackend is returned for any kind outside the supported set.
var ErrUnknownBackend = errors.New("unknown backend")

// Kinds returns the supported kinds in display order.
func Kinds() []Kind {
	return []Kind{KindJDE, KindSAP, KindSalesforce}
}

// ParseKind resolves a kind name case-insensitively.
func ParseKind(s string) (Kind, error) {
	name := strings.TrimSpace(s)
	for _, k := range Kinds() {
		if strings.EqualFold(name, string(k)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBackend, s)
}

func (k Kind) String() string { return string(k) }
