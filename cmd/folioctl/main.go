// Command folioctl manages a portfolio from the terminal: it signs in,
// inspects the composed public page and works the admin inbox and uploads.
//
// Configuration comes from flags or FOLIO_* environment variables:
//
//	FOLIO_BACKEND_URL  API origin, "/api" is appended (default http://localhost:8001)
//	FOLIO_TOKEN_FILE   where the session token is kept (default ~/.config/folio/token.json)
//	FOLIO_PASSWORD     password for login when --password is not given
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
