package libpf

// ParseAPIError exposes parseAPIError for tests.
var ParseAPIError = parseAPIError
