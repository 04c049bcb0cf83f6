package nasa

// ConnectionError wraps any transport, status or decoding failure talking to a
// NASA service. Handlers map it onto the server connection error message.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	if e.Err == nil {
		return "nasa: connection error"
	}
	return "nasa: " + e.Err.Error()
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// Code labels the error for structured logs.
func (e *ConnectionError) Code() string { return "server_connection" }

// NoDataError means the service answered fine but holds no imagery for the
// requested date.
type NoDataError struct {
	Date string
}

func (e *NoDataError) Error() string {
	return "nasa: no pictures for " + e.Date
}

// Code labels the error for structured logs.
func (e *NoDataError) Code() string { return "no_data_for_date" }

// NoResultsError means the service answered fine but had nothing matching the
// user's input, e.g. an image search term with zero hits.
type NoResultsError struct {
	Query string
}

func (e *NoResultsError) Error() string {
	return "nasa: no results for " + e.Query
}

// Code labels the error for structured logs.
func (e *NoResultsError) Code() string { return "no_results" }
