package gates

import "resultgate/internal/evidence"

// TranslateStatus maps a non-success HTTP status code to its failure
// reason. Used only after the transport gate has already failed; any code
// outside the recognized table falls back to the generic transport label.
func TranslateStatus(code int) evidence.FailureReason {
	switch {
	case code >= 300 && code < 400:
		return evidence.ReasonRedirected
	case code == 400 || code == 422:
		return evidence.ReasonValidationFailed
	case code == 401 || code == 403:
		return evidence.ReasonAuthFailed
	case code == 404:
		return evidence.ReasonMissingEndpoint
	case code >= 500 && code < 600:
		return evidence.ReasonUnhandledException
	default:
		return evidence.ReasonTransportFailed
	}
}
