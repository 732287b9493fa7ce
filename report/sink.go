package report

// A Sink receives tables and renders them somewhere.
type Sink interface {
	Write(t Table) error
}

// OpenError is returned when the destination of a table cannot be opened.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return "Error opening file: " + e.Path
}

func (e *OpenError) Unwrap() error {
	return e.Err
}
