package lang

// RequestContext is the host environment a document executes against.
// The engine writes output through it and reads named parameters from it.
//
// Parameter lookups return [Absent] when the name is unset.
type RequestContext interface {
	// Write appends text to the output.
	Write(text string) error

	// Parameter returns a read-only request parameter.
	Parameter(name string) Value

	PersistentParameter(name string) Value
	SetPersistentParameter(name string, v Value)
	RemovePersistentParameter(name string)

	TemporaryParameter(name string) Value
	SetTemporaryParameter(name string, v Value)
	RemoveTemporaryParameter(name string)

	// SetMimeType sets the content type of the output.
	SetMimeType(mime string) error
}
