package cache

import (
	"encoding/json"
	"fmt"

	"github.com/samber/lo"

	"github.com/Sternrassler/webapi-methods/pkg/pagination"
)

// keyPrefix namespaces all cache keys in Redis.
const keyPrefix = "webapi"

// CacheKey identifies one cached API call.
type CacheKey struct {
	// Operation is the dotted operation name (e.g., "conversations.history")
	Operation string

	// Args are the call arguments, including continuation state
	// (cursor, latest, page, ...)
	Args pagination.Args
}

// String generates a deterministic cache key string.
// Format: webapi:operation:{"arg1":val1,"arg2":val2}
//
// The args are one JSON object with sorted keys, so values containing
// ':' or '=' cannot make two argument sets share a key. Without args the
// key is just webapi:operation.
//
// Example:
//
//	webapi:conversations.list:{"cursor":"dXNlcjpVMDYx","limit":200}
func (k CacheKey) String() string {
	base := keyPrefix + ":" + k.Operation
	if len(k.Args) == 0 {
		return base
	}
	return base + ":" + encodeArgs(k.Args)
}

// OperationPattern returns the Redis match pattern covering every key of
// operation that carries args.
func OperationPattern(operation string) string {
	return keyPrefix + ":" + operation + ":*"
}

// encodeArgs renders args as JSON, whose object keys are sorted. Values
// JSON cannot encode fall back to their Go syntax.
func encodeArgs(args pagination.Args) string {
	data, err := json.Marshal(map[string]any(args))
	if err != nil {
		return fmt.Sprintf("%#v", lo.MapValues(args, func(v any, _ string) string {
			return fmt.Sprintf("%#v", v)
		}))
	}
	return string(data)
}
