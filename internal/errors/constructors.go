package errors

// Convenience constructors for common error patterns.

// Config errors

func ConfigNotFound(path string) *InkwellError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigInvalid(field, reason string) *InkwellError {
	return New(CategoryConfig, SeverityFatal, "invalid configuration").
		WithContext("field", field).
		WithContext("reason", reason)
}

func ValidationFailed(reason string) *InkwellError {
	return New(CategoryValidation, SeverityError, "validation failed").
		WithContext("reason", reason)
}

// Content errors

func PostNotFound(filename string) *InkwellError {
	return New(CategoryNotFound, SeverityError, "post not found").
		WithContext("filename", filename)
}

func ImageNotFound(slug, filename string) *InkwellError {
	return New(CategoryNotFound, SeverityError, "image not found").
		WithContext("slug", slug).
		WithContext("filename", filename)
}

func InvalidPost(filename, reason string) *InkwellError {
	return New(CategoryContent, SeverityFatal, "invalid post source").
		WithContext("filename", filename).
		WithContext("reason", reason)
}

// Build pipeline errors

func BuildFailed(stage string, cause error) *InkwellError {
	return Wrap(cause, CategoryBuild, SeverityFatal, "build failed").
		WithContext("stage", stage)
}

func DeployFailed(target string, cause error) *InkwellError {
	return Wrap(cause, CategoryDeploy, SeverityFatal, "deploy failed").
		WithContext("target", target)
}

func FileSystemError(operation string, cause error) *InkwellError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "filesystem operation failed").
		WithContext("operation", operation)
}

// Internal errors

func InternalError(message string, cause error) *InkwellError {
	return Wrap(cause, CategoryInternal, SeverityError, message)
}
