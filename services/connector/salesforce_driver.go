//go:build !no_salesforce

package connector

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"dbconnectorapi/services/backend"

	salesforce "github.com/k-capehart/go-salesforce/v3"
)

func init() {
	registerDriver(backend.KindSalesforce, openSalesforce)
}

// openSalesforce logs in with username, password and security token.
func openSalesforce(_ context.Context, target Target, opts Options) (Session, error) {
	sf, err := salesforce.Init(salesforce.Creds{
		Domain:         opts.SalesforceDomain,
		Username:       target.Credentials.Username,
		Password:       target.Credentials.Password,
		SecurityToken:  target.Credentials.SecurityToken,
		ConsumerKey:    opts.SalesforceConsumerKey,
		ConsumerSecret: opts.SalesforceConsumerSecret,
	})
	if err != nil {
		return nil, err
	}

	return &soqlSession{
		query: func(soql string, out any) error { return sf.Query(soql, out) },
		count: func(soql string) (int64, error) {
			resp, err := sf.DoRequest(http.MethodGet, "/query/?q="+url.QueryEscape(soql), nil)
			if err != nil {
				return 0, err
			}
			defer resp.Body.Close()
			body, err := io.ReadAll(resp.Body)
			if err != nil {
				return 0, err
			}
			return totalSize(body)
		},
	}, nil
}
