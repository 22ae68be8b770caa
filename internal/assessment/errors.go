package assessment

// UnknownErrorMessage is surfaced when the provider fails without a usable
// detail message.
const UnknownErrorMessage = "An unknown error occurred"

// ValidationError is returned for input rejected before any network call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ProviderError is returned when the provider answered with a non-success
// status. Message is the provider's detail, shown to the user verbatim.
type ProviderError struct {
	Status  int
	Message string
}

func (e *ProviderError) Error() string {
	return e.Message
}

// NetworkError is returned when no response was received.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	if e.Err == nil {
		return "network error"
	}
	return e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
