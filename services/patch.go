package services

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// patchFields turns a typed patch struct into the fields of a $set.
// Nil pointer fields are dropped by their omitempty tags.
func patchFields(patch interface{}) (bson.M, error) {
	raw, err := bson.Marshal(patch)
	if err != nil {
		return nil, err
	}
	fields := bson.M{}
	if err := bson.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, NewValidationError("no fields to update")
	}
	return fields, nil
}

func parseObjectID(id string) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, NewValidationError("invalid id %q", id)
	}
	return objID, nil
}
