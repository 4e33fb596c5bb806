// Package cnf holds the engine-wide constants and operational limits.
//
// Every limit is resolved exactly once per process, on first access, from a
// SURREAL_* environment variable, and falls back to its hard-coded default
// when the variable is unset or malformed. Concurrent first readers always
// observe the same resolved value.
package cnf

import (
	"os"
	"strconv"
	"sync"

	"github.com/maxicode2/surrealdb/iam/file"
)

// ServerName is the publicly visible name of the server.
const ServerName = "SurrealDB"

// IDChars are the characters which are supported in server record IDs.
var IDChars = []rune("0123456789abcdefghijklmnopqrstuvwxyz")

// ProtectedParamNames are the names of parameters which can not be specified in a query.
var ProtectedParamNames = []string{"access", "auth", "token", "session"}

// MaxConcurrentTasks specifies how many concurrent jobs can be buffered in the worker channel.
var MaxConcurrentTasks = lazyInt("SURREAL_MAX_CONCURRENT_TASKS", 64)

// MaxComputationDepth specifies how deep a computation recursive call will go before an error is returned.
var MaxComputationDepth = lazyInt("SURREAL_MAX_COMPUTATION_DEPTH", uint32(120))

// MaxObjectParsingDepth specifies how deep the parser will parse nested objects and arrays in a query.
var MaxObjectParsingDepth = lazyInt("SURREAL_MAX_OBJECT_PARSING_DEPTH", uint32(100))

// MaxQueryParsingDepth specifies how deep the parser will parse recursive queries (queries within queries).
var MaxQueryParsingDepth = lazyInt("SURREAL_MAX_QUERY_PARSING_DEPTH", uint32(20))

// RegexCacheSize specifies the number of computed regexes which can be cached in the engine.
var RegexCacheSize = lazyInt("SURREAL_REGEX_CACHE_SIZE", 1_000)

// TransactionCacheSize specifies the number of items which can be cached within a single transaction.
var TransactionCacheSize = lazyInt("SURREAL_TRANSACTION_CACHE_SIZE", 10_000)

// DatastoreCacheSize specifies the number of definitions which can be cached across transactions.
var DatastoreCacheSize = lazyInt("SURREAL_DATASTORE_CACHE_SIZE", 1_000)

// NormalFetchSize is the maximum number of keys that should be scanned at once in general queries.
var NormalFetchSize = lazyInt("SURREAL_NORMAL_FETCH_SIZE", uint32(50))

// ExportBatchSize is the maximum number of keys that should be scanned at once for export queries.
var ExportBatchSize = lazyInt("SURREAL_EXPORT_BATCH_SIZE", uint32(1000))

// MaxStreamBatchSize is the maximum number of keys that should be fetched when streaming range scans.
var MaxStreamBatchSize = lazyInt("SURREAL_MAX_STREAM_BATCH_SIZE", uint32(1000))

// IndexingBatchSize is the maximum number of keys that should be scanned at once per concurrent indexing batch.
var IndexingBatchSize = lazyInt("SURREAL_INDEXING_BATCH_SIZE", uint32(250))

// ScriptingMaxStackSize is the maximum stack size of the scripting function runtime (defaults to 256 KiB).
var ScriptingMaxStackSize = lazyInt("SURREAL_SCRIPTING_MAX_STACK_SIZE", 256*1024)

// ScriptingMaxMemoryLimit is the maximum memory limit of the scripting function runtime (defaults to 2 MiB).
var ScriptingMaxMemoryLimit = lazyInt("SURREAL_SCRIPTING_MAX_MEMORY_LIMIT", 2<<20)

// ScriptingMaxTimeLimit is the maximum execution time of the scripting function runtime, in milliseconds.
var ScriptingMaxTimeLimit = lazyInt("SURREAL_SCRIPTING_MAX_TIME_LIMIT", 1000*5)

// InsecureForwardAccessErrors forwards all signup/signin/authenticate query errors to
// a client performing authentication. Do not use in production.
var InsecureForwardAccessErrors = lazyBool("SURREAL_INSECURE_FORWARD_ACCESS_ERRORS", false)

// ExternalSortingBufferLimit specifies the buffer limit for external sorting.
var ExternalSortingBufferLimit = lazyInt("SURREAL_EXTERNAL_SORTING_BUFFER_LIMIT", 50_000)

// GraphQLEnable specifies whether GraphQL querying and schema definition is enabled.
var GraphQLEnable = lazyBool("SURREAL_EXPERIMENTAL_GRAPHQL", false)

// ExperimentalBearerAccess enables experimental bearer access and stateful access
// grant management.
var ExperimentalBearerAccess = lazyBool("SURREAL_EXPERIMENTAL_BEARER_ACCESS", false)

// GenerationAllocationLimit bounds allocation for generator-style builtin
// functions. The environment variable holds an exponent n, defaulting to 20,
// and the limit materializes as 1<<n. Exponents above 62 clamp to 62 so the
// limit always fits in a non-negative int.
var GenerationAllocationLimit = sync.OnceValue(func() int {
	return 1 << generationAllocationExponent(os.Getenv("SURREAL_GENERATION_ALLOCATION_LIMIT"))
})

func generationAllocationExponent(s string) uint {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 20
	}
	if n > 62 {
		return 62
	}
	return uint(n)
}

// RegexSizeLimit bounds the size, in bytes, of patterns accepted for regular
// expression compilation.
var RegexSizeLimit = lazyInt("SURREAL_REGEX_SIZE_LIMIT", 10_485_760)

// MaxHTTPRedirects bounds the number of redirects followed by outbound fetch functions.
var MaxHTTPRedirects = lazyInt("SURREAL_MAX_HTTP_REDIRECTS", 10)

// IdiomRecursionLimit bounds recursive field-path evaluation.
var IdiomRecursionLimit = lazyInt("SURREAL_IDIOM_RECURSION_LIMIT", 256)

// FileAllowlist restricts which filesystem paths built-in file functions may touch.
// Empty means no path is allowed.
var FileAllowlist = sync.OnceValue(func() []string {
	return file.ExtractAllowedPaths(os.Getenv("SURREAL_FILE_ALLOWLIST"))
})
