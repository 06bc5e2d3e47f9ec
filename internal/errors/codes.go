package errors

type Code string

const (
	CodeUnknown          Code = "UNKNOWN"
	CodeInternal         Code = "INTERNAL_ERROR"
	CodeConfigValidation Code = "CONFIG_VALIDATION_ERROR"
	CodeConfigReadError  Code = "CONFIG_READ_ERROR"
	CodeConfigParseError Code = "CONFIG_PARSE_ERROR"

	// Desired state input
	CodeSourceReadError  Code = "SOURCE_READ_ERROR"
	CodeSourceParseError Code = "SOURCE_PARSE_ERROR"
	CodeInvalidOption    Code = "INVALID_OPTION"

	// Remote side
	CodeNotConfigured    Code = "NOT_CONFIGURED"
	CodeSchemaMismatch   Code = "SCHEMA_MISMATCH"
	CodeRemoteReadError  Code = "REMOTE_READ_ERROR"
	CodeRemoteWriteError Code = "REMOTE_WRITE_ERROR"

	CodeLDAPProbeError Code = "LDAP_PROBE_ERROR"
)

func (c Code) String() string {
	return string(c)
}
