package logger

import "regexp"

const redacted = "****"

var (
	// key=value pairs in JDBC style and DSN query strings.
	secretPairPattern = regexp.MustCompile(`(?i)\b(password|pwd|securitytoken|security_token|token|secret)=([^;&\s]*)`)
	// user:password@ in URLs and go-sql-driver style DSNs.
	userinfoPattern = regexp.MustCompile(`([A-Za-z0-9_.\-]+):([^@/\s:;=]+)@`)
)

// Redact masks credentials embedded in connection strings so the result is safe to log.
func Redact(s string) string {
	s = secretPairPattern.ReplaceAllString(s, "${1}="+redacted)
	return userinfoPattern.ReplaceAllString(s, "${1}:"+redacted+"@")
}
