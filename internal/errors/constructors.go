package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *ClassifiedError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigInvalid(reason string, cause error) *ClassifiedError {
	return Wrap(cause, CategoryConfig, SeverityFatal, reason)
}

// Argument errors

func MissingArgument(tool, name string) *ClassifiedError {
	return New(CategoryValidation, SeverityError, "missing required argument '"+name+"'").
		WithContext("tool", tool).
		WithContext("argument", name)
}

func InvalidArguments(tool string, cause error) *ClassifiedError {
	return Wrap(cause, CategoryValidation, SeverityError, "invalid arguments").
		WithContext("tool", tool)
}

func ValidationFailed(field, reason string) *ClassifiedError {
	return New(CategoryValidation, SeverityError, reason).
		WithContext("field", field)
}

// Document errors

func DocumentError(operation string, cause error) *ClassifiedError {
	return Wrap(cause, CategoryDocument, SeverityError, operation+" failed").
		WithContext("operation", operation)
}

func FileSystemError(operation string, cause error) *ClassifiedError {
	return Wrap(cause, CategoryFileSystem, SeverityError, operation+" failed").
		WithContext("operation", operation)
}

// Internal errors

func InternalError(message string, cause error) *ClassifiedError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
