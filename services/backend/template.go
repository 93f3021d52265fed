package backend

import "fmt"

// Template is the static descriptor of one backend kind.
type Template struct {
	Kind          Kind     `json:"kind"`
	DriverClass   string   `json:"driver_class"`
	URLFormat     string   `json:"url_format"`
	RequiresToken bool     `json:"requires_token"`
	SampleTables  []string `json:"sample_tables"`
	SampleQuery   string   `json:"sample_query"`
	ProbeQuery    string   `json:"probe_query"`

	HostPlaceholder     string `json:"host_placeholder"`
	UsernamePlaceholder string `json:"username_placeholder"`
	PasswordPlaceholder string `json:"password_placeholder"`
	TokenPlaceholder    string `json:"token_placeholder,omitempty"`
	PoolPlaceholder     string `json:"pool_placeholder"`

	// LibraryAvailable reports whether the native client for this kind is usable in this process.
	LibraryAvailable bool `json:"library_available"`
}

// QuickQuery is a canned statement offered for a registered connection.
type QuickQuery struct {
	Name      string `json:"name"`
	Statement string `json:"statement"`
}

// RequiresHost reports whether the kind needs a host string to connect.
func (t Template) RequiresHost() bool {
	return !t.RequiresToken
}

// RecordCountQuery counts rows in table using the dialect of the kind.
func (t Template) RecordCountQuery(table string) string {
	if t.Kind == KindSalesforce {
		return fmt.Sprintf("SELECT COUNT() FROM %s", table)
	}
	return fmt.Sprintf("SELECT COUNT(*) as RECORD_COUNT FROM %s", table)
}

// QuickQueries returns the probe, the sample query and a record count on the first sample table.
func (t Template) QuickQueries() []QuickQuery {
	sampleName := "Sample Data"
	if len(t.SampleTables) > 0 {
		sampleName = "Sample " + t.SampleTables[0]
	}
	queries := []QuickQuery{
		{Name: "Test Connection", Statement: t.ProbeQuery},
		{Name: sampleName, Statement: t.SampleQuery},
	}
	if len(t.SampleTables) > 0 {
		queries = append(queries, QuickQuery{
			Name:      "Record Count",
			Statement: t.RecordCountQuery(t.SampleTables[0]),
		})
	}
	return queries
}

// ConnectionURL renders the JDBC URL understood by the managed execution service.
func (t Template) ConnectionURL(host, username, password, token string) string {
	if t.Kind == KindSalesforce {
		return fmt.Sprintf(t.URLFormat, username, password, token)
	}
	return fmt.Sprintf(t.URLFormat, host)
}

var templates = map[Kind]Template{
	KindJDE: {
		Kind:                KindJDE,
		DriverClass:         "oracle.jdbc.driver.OracleDriver",
		URLFormat:           "jdbc:oracle:thin:@//%s",
		SampleTables:        []string{"TESTDTA.F574211", "TESTDTA.F0101", "TESTDTA.F4211", "TESTDTA.F0411", "TESTDTA.F03B11"},
		SampleQuery:         "SELECT * FROM TESTDTA.FV574211 WHERE ROWNUM <= 5",
		ProbeQuery:          "SELECT 1 FROM DUAL",
		HostPlaceholder:     "10.1.1.1:1521/ORCLPDB",
		UsernamePlaceholder: "JDE",
		PasswordPlaceholder: "Enter JDE password",
		PoolPlaceholder:     "jde-dev",
	},
	KindSAP: {
		Kind:                KindSAP,
		DriverClass:         "com.sap.db.jdbc.Driver",
		URLFormat:           "jdbc:sap://%s",
		SampleTables:        []string{"MARA", "VBAK", "VBAP", "KNA1", "BKPF"},
		SampleQuery:         "SELECT * FROM products",
		ProbeQuery:          "SELECT 1 FROM DUMMY",
		HostPlaceholder:     "10.1.1.2:30015",
		UsernamePlaceholder: "SAPUSER",
		PasswordPlaceholder: "Enter SAP password",
		PoolPlaceholder:     "sap-dev",
	},
	KindSalesforce: {
		Kind:                KindSalesforce,
		DriverClass:         "cdata.jdbc.salesforce.SalesforceDriver",
		URLFormat:           "jdbc:salesforce:AuthScheme=Basic;User=%s;Password=%s;SecurityToken=%s",
		RequiresToken:       true,
		SampleTables:        []string{"Account", "Contact", "Orders", "Lead"},
		SampleQuery:         "SELECT Id, Name FROM Account LIMIT 5",
		ProbeQuery:          "SELECT Id FROM Account LIMIT 1",
		HostPlaceholder:     "Not applicable",
		UsernamePlaceholder: "user@company.com",
		PasswordPlaceholder: "Enter Salesforce password",
		TokenPlaceholder:    "Enter security token",
		PoolPlaceholder:     "salesforce-dev",
	},
}
