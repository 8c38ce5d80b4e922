package repositories

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// containsInsensitive matches the text literally anywhere in the field, ignoring case
func containsInsensitive(text string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(text), Options: "i"}
}

func assetListFilter(company, nameFilter string) bson.M {
	filter := bson.M{"company": company}
	if nameFilter != "" {
		filter["name"] = containsInsensitive(nameFilter)
	}
	return filter
}

func requestFilter(q RequestQuery) bson.M {
	filter := bson.M{}
	if q.Company != "" {
		filter["company"] = q.Company
	}
	if q.Name != "" {
		filter["name"] = q.Name
	} else if q.NameContains != "" {
		filter["name"] = containsInsensitive(q.NameContains)
	}
	if q.RequesterEmail != "" {
		filter["requesterEmail"] = q.RequesterEmail
	}
	if q.Status != "" {
		filter["status"] = q.Status
	}
	if q.Type != "" {
		filter["type"] = q.Type
	}
	if !q.From.IsZero() || !q.Until.IsZero() {
		window := bson.M{}
		if !q.From.IsZero() {
			window["$gte"] = q.From
		}
		if !q.Until.IsZero() {
			window["$lt"] = q.Until
		}
		filter["requestDate"] = window
	}
	return filter
}

func requestFindOptions(q RequestQuery, dateField string) *options.FindOptions {
	opts := options.Find()
	if q.NewestFirst {
		opts.SetSort(bson.D{{Key: dateField, Value: -1}})
	}
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}
	return opts
}

// transitionFilter only matches documents still in the from status
func transitionFilter(id primitive.ObjectID, from string) bson.M {
	return bson.M{"_id": id, "status": from}
}

func transitionUpdate(to string, at interface{}) bson.M {
	return bson.M{"$set": bson.M{"status": to, "processedAt": at}}
}

// consumeStockFilter refuses to take the quantity below zero
func consumeStockFilter(id primitive.ObjectID) bson.M {
	return bson.M{"_id": id, "quantity": bson.M{"$gt": 0}}
}

func consumeStockUpdate() bson.M {
	return bson.M{"$inc": bson.M{"quantity": -1, "requested": 1}}
}

func unsetFields(fields []string) bson.M {
	unset := bson.M{}
	for _, f := range fields {
		unset[f] = ""
	}
	return bson.M{"$unset": unset}
}
