package connector

import (
	"net"
	"strconv"
	"strings"

	"dbconnectorapi/services/backend"
)

// Defaults applied when the host string omits them.
const (
	DefaultOraclePort    = 1521
	DefaultOracleService = "ORCL"
	DefaultHANAPort      = 30015
)

// OracleAddress is a parsed JDE host string.
type OracleAddress struct {
	Host    string
	Port    int
	Service string
}

func (a OracleAddress) String() string {
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port)) + "/" + a.Service
}

// HANAAddress is a parsed SAP host string.
type HANAAddress struct {
	Host string
	Port int
}

func (a HANAAddress) String() string {
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// ParseOracleAddress parses "host[:port][/service]", optionally prefixed with "//".
// Anything that does not fit that shape is rejected rather than defaulted.
func ParseOracleAddress(s string) (OracleAddress, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "//")

	hostPort, service, hasService := strings.Cut(raw, "/")
	if hasService {
		if service == "" {
			return OracleAddress{}, invalidTarget(backend.KindJDE, s, "empty service name after '/'")
		}
		if strings.ContainsAny(service, "/: \t") {
			return OracleAddress{}, invalidTarget(backend.KindJDE, s, "unexpected character in service name")
		}
	} else {
		service = DefaultOracleService
	}

	host, port, err := splitHostPort(backend.KindJDE, s, hostPort, DefaultOraclePort)
	if err != nil {
		return OracleAddress{}, err
	}
	return OracleAddress{Host: host, Port: port, Service: service}, nil
}

// ParseHANAAddress parses "host[:port]".
func ParseHANAAddress(s string) (HANAAddress, error) {
	raw := strings.TrimSpace(s)
	if strings.Contains(raw, "/") {
		return HANAAddress{}, invalidTarget(backend.KindSAP, s, "unexpected '/'")
	}
	host, port, err := splitHostPort(backend.KindSAP, s, raw, DefaultHANAPort)
	if err != nil {
		return HANAAddress{}, err
	}
	return HANAAddress{Host: host, Port: port}, nil
}

func splitHostPort(kind backend.Kind, original, hostPort string, defaultPort int) (string, int, error) {
	if strings.Count(hostPort, ":") > 1 {
		return "", 0, invalidTarget(kind, original, "more than one ':'")
	}
	host, portStr, hasPort := strings.Cut(hostPort, ":")
	if host == "" {
		return "", 0, invalidTarget(kind, original, "empty host")
	}
	if strings.ContainsAny(host, " \t") {
		return "", 0, invalidTarget(kind, original, "whitespace in host")
	}
	if !hasPort {
		return host, defaultPort, nil
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 {
		return "", 0, invalidTarget(kind, original, "port must be a number between 1 and 65535")
	}
	return host, port, nil
}

func invalidTarget(kind backend.Kind, host, reason string) error {
	return &Error{
		Category: CategoryInvalidTarget,
		Backend:  kind,
		Message:  "invalid host " + strconv.Quote(host) + ": " + reason,
	}
}
