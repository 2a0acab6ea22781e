package table

// EditSession is the working copy of one record being edited.
type EditSession struct {
	draft Record
}

func BeginEdit(record Record) *EditSession {
	return &EditSession{draft: record}
}

func (e *EditSession) Draft() Record {
	return e.draft
}

// WithField returns a session whose draft has field set to value.
// No validation happens until commit.
func (e *EditSession) WithField(field Field, value string) (*EditSession, error) {
	draft, err := e.draft.With(field, value)
	if err != nil {
		return e, err
	}
	return &EditSession{draft: draft}, nil
}
