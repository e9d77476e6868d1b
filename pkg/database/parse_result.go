package database

type ParseStatus int32

const (
	ParseStatusSuccess = ParseStatus(1)
	ParseStatusIgnored = ParseStatus(2)
	ParseStatusFailure = ParseStatus(3)
)

func (s ParseStatus) String() string {
	switch s {
	case ParseStatusSuccess:
		return "success"
	case ParseStatusIgnored:
		return "ignored"
	case ParseStatusFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// ParseResult is a tagged variant: exactly one of Match (success), Reason (ignored)
// or Err (failure) is meaningful, selected by Status.
type ParseResult struct {
	Status ParseStatus
	Match  RawTransactionMatch
	Reason string
	Err    error
}

func Success(match RawTransactionMatch) ParseResult {
	return ParseResult{Status: ParseStatusSuccess, Match: match}
}

func Ignored(reason string) ParseResult {
	return ParseResult{Status: ParseStatusIgnored, Reason: reason}
}

func Failure(err error) ParseResult {
	return ParseResult{Status: ParseStatusFailure, Err: err}
}
