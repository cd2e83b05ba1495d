package models_test

import (
	"encoding/json"
	"testing"

	"teahouse/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogicalID_UnmarshalJSON(t *testing.T) {
	var item models.ReservationItemInput
	require.NoError(t, json.Unmarshal([]byte(`{"type":"tea","id":7,"quantity":1,"unitPrice":2}`), &item))
	assert.Equal(t, models.NumberID("7"), *item.ID)

	require.NoError(t, json.Unmarshal([]byte(`{"type":"tea","id":"p1"}`), &item))
	assert.Equal(t, models.StringID("p1"), *item.ID)

	err := json.Unmarshal([]byte(`{"id":true}`), &item)
	assert.Error(t, err)
}

func TestLogicalID_KeepsJSONKind(t *testing.T) {
	var desc models.ProductDescriptorInput
	require.NoError(t, json.Unmarshal([]byte(`{"type":"craft","id":9}`), &desc))
	ref := models.Reference{Collection: models.CollectionCraftProducts, ID: *desc.ID, Kind: models.KindCraft}

	b, err := json.Marshal(ref)
	require.NoError(t, err)
	assert.JSONEq(t, `{"collection":"craftProducts","id":9,"type":"craft"}`, string(b))

	ref.ID = models.StringID("9")
	b, err = json.Marshal(ref)
	require.NoError(t, err)
	assert.JSONEq(t, `{"collection":"craftProducts","id":"9","type":"craft"}`, string(b))

	// the kind survives the trip through the store
	fields, err := models.ToFields(models.Reservation{UserID: models.NumberID("12")})
	require.NoError(t, err)
	assert.Equal(t, float64(12), fields["userId"])
}

func TestDecodeDocument(t *testing.T) {
	doc := models.Document{
		Key: "abc123",
		Fields: map[string]interface{}{
			"id":    float64(7),
			"name":  "Sencha",
			"price": 12.5,
			"stock": float64(4),
		},
	}

	tea, err := models.DecodeDocument[models.TeaProduct](doc)
	require.NoError(t, err)
	assert.Equal(t, "abc123", tea.ID)
	assert.Equal(t, models.NumberID("7"), tea.LogicalID)
	assert.Equal(t, "Sencha", tea.Name)
	assert.Equal(t, 4, tea.Stock)
}

func TestDecodeDocument_WithoutLogicalID(t *testing.T) {
	doc := models.Document{Key: "k1", Fields: map[string]interface{}{"title": "Spring fair"}}

	event, err := models.DecodeDocument[models.Event](doc)
	require.NoError(t, err)
	assert.Equal(t, "k1", event.ID)
	assert.Empty(t, event.LogicalID)

	b, err := json.Marshal(event)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "logicalId")
}

func TestToFields_DropsNilPointers(t *testing.T) {
	name := "Matcha"
	fields, err := models.ToFields(models.TeaProductInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"name": "Matcha"}, fields)
}

func TestUser_ResponseHasNoPassword(t *testing.T) {
	u := models.User{Entity: models.Entity{ID: "u1"}, Email: "a@b.co", PasswordHash: "$2a$12$hash", Role: models.RoleUser}

	b, err := json.Marshal(u.Response())
	require.NoError(t, err)
	assert.NotContains(t, string(b), "password")
	assert.NotContains(t, string(b), "$2a$")
}
