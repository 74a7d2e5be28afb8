package errors

// Convenience functions for common error patterns

// Config errors

func ConfigInvalid(path string, cause error) *FolioError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "configuration file invalid").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *FolioError {
	return New(CategoryValidation, SeverityFatal, "validation failed: "+field+" "+reason).
		WithContext("field", field).
		WithContext("reason", reason)
}

// Pipeline errors

func ScanFailed(root string, cause error) *FolioError {
	return Wrap(cause, CategoryScan, SeverityError, "image scan failed").
		WithContext("root", root)
}

func UpdateFailed(target string, cause error) *FolioError {
	return Wrap(cause, CategoryUpdate, SeverityError, "document update failed").
		WithContext("target", target)
}

// Internal errors

func InternalError(message string, cause error) *FolioError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
