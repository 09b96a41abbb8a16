package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dipanshu-patidar/accounting-arabic-api/internal/middleware"
)

// pathID parses a numeric {id} path variable
func pathID(req *http.Request, name string) (uint, error) {
	raw := mux.Vars(req)[name]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return uint(id), nil
}

// companyScope parses the {companyID} path variable and checks it against
// the tenant in the caller's token. Every list/detail query is scoped this
// way; a mismatch is rejected before any data access.
func companyScope(req *http.Request) (uint, error) {
	companyID, err := pathID(req, "companyID")
	if err != nil {
		return 0, err
	}
	if claimed := middleware.CompanyID(req.Context()); claimed != companyID {
		return 0, fmt.Errorf("company %d is outside your session scope", companyID)
	}
	return companyID, nil
}

// companyFromContext returns the tenant from the caller's token
func companyFromContext(req *http.Request) uint {
	return middleware.CompanyID(req.Context())
}

// queryInt parses an integer query parameter with a default
func queryInt(req *http.Request, name string, def int) int {
	raw := req.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
