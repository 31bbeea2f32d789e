package network

import "github.com/neo4j-graph-examples/network-management/internal/types"

const (
	ErrCodeInvalidLocation    types.ErrorCode = "INVALID_LOCATION"
	ErrCodeLookupFailed       types.ErrorCode = "INTERFACE_LOOKUP_FAILED"
	ErrCodeResultDecodeFailed types.ErrorCode = "RESULT_DECODE_FAILED"
	ErrCodeSeedFailed         types.ErrorCode = "SEED_FAILED"
	ErrCodeCountFailed        types.ErrorCode = "COUNT_FAILED"

	ErrCodeTopologyLoadFailed types.ErrorCode = "TOPOLOGY_LOAD_FAILED"
	ErrCodeTopologyInvalid    types.ErrorCode = "TOPOLOGY_INVALID"

	ErrCodeUnboundParameter types.ErrorCode = "UNBOUND_PARAMETER"
	ErrCodeUnusedParameter  types.ErrorCode = "UNUSED_PARAMETER"
)
