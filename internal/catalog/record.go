// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/pdiddy/pub-catalog/pkg/types"
)

// idNamespace scopes stable identifiers derived from title and link.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("pubcatalog:publication"))

// idFunc synthesizes an identifier for a row that has none.
type idFunc func(title, link string) string

func idGenerator(strategy types.IDStrategy) idFunc {
	if strategy == types.IDStable {
		return StableID
	}
	return func(string, string) string { return uuid.NewString() }
}

// StableID derives a UUIDv5 from title and link. Rows sharing both collide.
func StableID(title, link string) string {
	return uuid.NewSHA1(idNamespace, []byte(title+"\n"+link)).String()
}

// formatID renders a source identifier as a string. Nil yields "".
func formatID(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return id
	case json.Number:
		return id.String()
	case int:
		return strconv.Itoa(id)
	case int32:
		return strconv.FormatInt(int64(id), 10)
	case int64:
		return strconv.FormatInt(id, 10)
	case uint64:
		return strconv.FormatUint(id, 10)
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case []byte:
		return string(id)
	case [16]byte:
		return uuid.UUID(id).String()
	default:
		return fmt.Sprint(id)
	}
}

// textOf renders an optional text field. Nil yields "".
func textOf(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return fmt.Sprint(s)
	}
}
