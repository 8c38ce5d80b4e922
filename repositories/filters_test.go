package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAssetListFilter(t *testing.T) {
	assert.Equal(t, bson.M{"company": "acme"}, assetListFilter("acme", ""))

	filter := assetListFilter("acme", "lap")
	assert.Equal(t, "acme", filter["company"])
	assert.Equal(t, primitive.Regex{Pattern: "lap", Options: "i"}, filter["name"])
}

func TestContainsInsensitiveQuotesMeta(t *testing.T) {
	re := containsInsensitive("c++ (pro)")
	assert.Equal(t, `c\+\+ \(pro\)`, re.Pattern)
	assert.Equal(t, "i", re.Options)
}

func TestRequestFilter(t *testing.T) {
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	until := from.AddDate(0, 1, 0)

	filter := requestFilter(RequestQuery{
		Company:        "acme",
		RequesterEmail: "a@acme.io",
		Status:         "pending",
		From:           from,
		Until:          until,
	})

	assert.Equal(t, bson.M{
		"company":        "acme",
		"requesterEmail": "a@acme.io",
		"status":         "pending",
		"requestDate":    bson.M{"$gte": from, "$lt": until},
	}, filter)
}

func TestRequestFilterExactNameWins(t *testing.T) {
	filter := requestFilter(RequestQuery{Name: "Laptop", NameContains: "lap"})
	assert.Equal(t, "Laptop", filter["name"])

	filter = requestFilter(RequestQuery{NameContains: "lap"})
	assert.Equal(t, primitive.Regex{Pattern: "lap", Options: "i"}, filter["name"])
}

func TestConsumeStockGuardsQuantity(t *testing.T) {
	id := primitive.NewObjectID()
	assert.Equal(t, bson.M{"_id": id, "quantity": bson.M{"$gt": 0}}, consumeStockFilter(id))
	assert.Equal(t, bson.M{"$inc": bson.M{"quantity": -1, "requested": 1}}, consumeStockUpdate())
}

func TestTransitionFilterRequiresFromStatus(t *testing.T) {
	id := primitive.NewObjectID()
	assert.Equal(t, bson.M{"_id": id, "status": "pending"}, transitionFilter(id, "pending"))
}

func TestUnsetFields(t *testing.T) {
	assert.Equal(t, bson.M{"$unset": bson.M{"company": "", "teamLead": ""}}, unsetFields([]string{"company", "teamLead"}))
}
