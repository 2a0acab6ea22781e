package table

import "time"

type RecordsLoaded struct {
	Count    int       `json:"count"`
	LoadedAt time.Time `json:"loadedAt"`
}

type LoadFailed struct {
	Reason string `json:"reason"`
}

type RecordsDeleted struct {
	IDs []string `json:"ids"`
}

type RecordUpdated struct {
	Record Record `json:"record"`
}
