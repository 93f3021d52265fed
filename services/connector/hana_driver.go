//go:build !no_hana

package connector

import (
	"context"
	"database/sql"

	"dbconnectorapi/services/backend"

	"github.com/SAP/go-hdb/driver"
)

func init() {
	registerDriver(backend.KindSAP, openHANA)
}

// openHANA connects to SAP HANA; credentials go through the connector, never a DSN string.
func openHANA(ctx context.Context, target Target, _ Options) (Session, error) {
	addr, err := ParseHANAAddress(target.Credentials.Host)
	if err != nil {
		return nil, err
	}

	connector := driver.NewBasicAuthConnector(addr.String(),
		target.Credentials.Username, target.Credentials.Password)
	return openSQLSession(ctx, backend.KindSAP, sql.OpenDB(connector))
}
