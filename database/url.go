package database

import (
	"net/url"
)

// ConstructDatabaseURL points baseURL at databaseName, keeping its query
// parameters. sslmode=disable is added when the URL does not choose one.
// An empty name or an unparsable URL returns baseURL as is.
func ConstructDatabaseURL(baseURL, databaseName string) string {
	if databaseName == "" {
		return baseURL
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return baseURL
	}
	u.Path = "/" + databaseName
	u.RawPath = ""

	query := u.Query()
	if !query.Has("sslmode") {
		query.Set("sslmode", "disable")
	}
	u.RawQuery = query.Encode()

	return u.String()
}
