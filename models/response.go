package models

// Response is the standard envelope returned by every JSON endpoint
type Response struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// UpdateResult reports the effect of an update by filter
type UpdateResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// DeleteResult reports the effect of a delete by filter
type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

// InsertResult carries the id of a created document, nil when nothing was inserted
type InsertResult struct {
	InsertedID interface{} `json:"insertedId"`
}
