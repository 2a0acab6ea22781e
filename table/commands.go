package table

import admin "github.com/paulvitic/members-admin"

type Search struct {
	Text string
}

type Sort struct {
	Key SortKey
}

type GoToPage struct {
	Page int
}

type NextPage struct{}

type PrevPage struct{}

type ToggleRow struct {
	ID admin.ID
}

type ToggleAllOnPage struct{}

// DeleteRows removes exactly the listed rows, whatever is selected.
type DeleteRows struct {
	IDs []admin.ID
}

type DeleteSelected struct{}

type BeginEditing struct {
	ID admin.ID
}

type UpdateField struct {
	Field Field
	Value string
}

type CommitEdit struct{}

type CancelEdit struct{}

type Reload struct{}

// CurrentPage asks for the view of the page being shown.
type CurrentPage struct{}

// LoadStatus asks for the status of the last load.
type LoadStatus struct{}
