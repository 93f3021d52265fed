//go:build !no_oracle

package connector

import (
	"context"
	"database/sql"

	"dbconnectorapi/services/backend"

	go_ora "github.com/sijms/go-ora/v2"
)

func init() {
	registerDriver(backend.KindJDE, openOracle)
}

// openOracle connects to the JDE Oracle database with the pure Go client.
func openOracle(ctx context.Context, target Target, _ Options) (Session, error) {
	addr, err := ParseOracleAddress(target.Credentials.Host)
	if err != nil {
		return nil, err
	}

	url := go_ora.BuildUrl(addr.Host, addr.Port, addr.Service,
		target.Credentials.Username, target.Credentials.Password, nil)
	db, err := sql.Open("oracle", url)
	if err != nil {
		return nil, err
	}
	return openSQLSession(ctx, backend.KindJDE, db)
}
