package scheduling

// ResultKind tags a validation outcome.
type ResultKind int

const (
	KindSuccess ResultKind = iota
	KindWarning
	KindError
)

func (k ResultKind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindWarning:
		return "warning"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Result is an immutable validation outcome. Warnings do not block
// scheduling; only errors do.
type Result struct {
	kind    ResultKind
	message string
	data    map[string]any
}

func SuccessResult(message string, data map[string]any) Result {
	return newResult(KindSuccess, message, data)
}

func WarningResult(message string, data map[string]any) Result {
	return newResult(KindWarning, message, data)
}

func ErrorResult(message string, data map[string]any) Result {
	return newResult(KindError, message, data)
}

func newResult(kind ResultKind, message string, data map[string]any) Result {
	r := Result{kind: kind, message: message}
	if len(data) > 0 {
		r.data = make(map[string]any, len(data))
		for k, v := range data {
			r.data[k] = v
		}
	}
	return r
}

func (r Result) Kind() ResultKind { return r.kind }

// IsValid is false only for errors.
func (r Result) IsValid() bool { return r.kind != KindError }

func (r Result) IsError() bool { return r.kind == KindError }

func (r Result) IsWarning() bool { return r.kind == KindWarning }

func (r Result) Message() string { return r.message }

// Data returns a copy of the structured context attached to the result.
func (r Result) Data() map[string]any {
	if r.data == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(r.data))
	for k, v := range r.data {
		out[k] = v
	}
	return out
}
