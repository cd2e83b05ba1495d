package validation_test

import (
	"encoding/json"
	"strings"
	"testing"

	"teahouse/internal/apperrors"
	"teahouse/internal/models"
	"teahouse/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode[T any](t *testing.T, body string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(body), &v))
	return v
}

func mentions(errs []string, word string) bool {
	for _, e := range errs {
		if strings.Contains(e, word) {
			return true
		}
	}
	return false
}

func TestValidateTeaProduct(t *testing.T) {
	ok := validation.ValidateTeaProduct(decode[models.TeaProductInput](t, `{"name":"Sencha","price":12.5,"stock":0}`))
	assert.True(t, ok.Valid)
	assert.NoError(t, ok.Err())

	res := validation.ValidateTeaProduct(decode[models.TeaProductInput](t, `{"name":"  ","price":0}`))
	assert.False(t, res.Valid)
	assert.True(t, mentions(res.Errors, "'stock' is required"))
	assert.True(t, mentions(res.Errors, "'name' must be a non-empty string"))
	assert.True(t, mentions(res.Errors, "'price' must be a number greater than 0"))
	assert.ErrorIs(t, res.Err(), apperrors.ErrValidation)
}

func TestValidateUpdate_RequiresAField(t *testing.T) {
	res := validation.ValidateTeaProductUpdate(models.TeaProductInput{})
	assert.False(t, res.Valid)
	assert.True(t, mentions(res.Errors, "at least one field"))

	res = validation.ValidateTeaProductUpdate(decode[models.TeaProductInput](t, `{"stock":4}`))
	assert.True(t, res.Valid)
}

func TestValidateCraftProductUpdate_StockCap(t *testing.T) {
	res := validation.ValidateCraftProductUpdate(decode[models.CraftProductInput](t, `{"stock":11}`))
	assert.False(t, res.Valid)
	assert.True(t, mentions(res.Errors, "must not exceed 10"))

	res = validation.ValidateCraftProductUpdate(decode[models.CraftProductInput](t, `{"stock":10,"creationDate":"15-09-24"}`))
	assert.True(t, res.Valid)
}

func TestValidateCraftProduct_DateFormat(t *testing.T) {
	res := validation.ValidateCraftProduct(decode[models.CraftProductInput](t, `{
		"name":"Bowl","brandArtist":"Aiko","creationDate":"2024-09-15",
		"description":"Hand thrown","price":30,"stock":2}`))
	assert.False(t, res.Valid)
	assert.True(t, mentions(res.Errors, "'creationDate' must use the DD-MM-YY format"))
}

const validOffer = `{
	"title":"Autumn sale","description":"Ten percent off",
	"applicableTo":[{"type":"tea","id":"p1"},{"type":"craft","id":7}],
	"minimumPurchase":20,"isLimited":false,"state":"active","promotionalCode":"AUT10",
	"startDate":"01-10-24","endDate":"31-10-24"}`

func TestValidateOffer(t *testing.T) {
	res := validation.ValidateOffer(decode[models.OfferInput](t, validOffer))
	assert.True(t, res.Valid, res.Errors)
}

func TestValidateOffer_LimitedWithoutLimit(t *testing.T) {
	in := decode[models.OfferInput](t, validOffer)
	limited := true
	in.IsLimited = &limited

	res := validation.ValidateOffer(in)
	assert.False(t, res.Valid)
	assert.True(t, mentions(res.Errors, "limit"))

	zero := 0
	in.Limit = &zero
	assert.False(t, validation.ValidateOffer(in).Valid)

	fifty := 50
	in.Limit = &fifty
	assert.True(t, validation.ValidateOffer(in).Valid)
}

func TestValidateOffer_ApplicableTo(t *testing.T) {
	res := validation.ValidateOfferUpdate(decode[models.OfferInput](t, `{"applicableTo":[]}`))
	assert.False(t, res.Valid)
	assert.True(t, mentions(res.Errors, "at least one product"))

	res = validation.ValidateOfferUpdate(decode[models.OfferInput](t, `{"applicableTo":[{"type":"coffee","id":"x"}]}`))
	assert.False(t, res.Valid)
	assert.True(t, mentions(res.Errors, "applicableTo[0].type"))
}

func TestValidateEvent(t *testing.T) {
	base := `{"title":"Tea tasting","date":"20-10-24","startTime":"15:00","endTime":"17:00",
		"description":"An afternoon of oolongs","location":"Main shop","isFree":true,"entryPrice":0}`
	assert.True(t, validation.ValidateEvent(decode[models.EventInput](t, base)).Valid)

	res := validation.ValidateEvent(decode[models.EventInput](t, `{"title":"Tea tasting","date":"20-10-24",
		"startTime":"17:00","endTime":"15:00","description":"An afternoon of oolongs",
		"location":"Main shop","isFree":true,"entryPrice":5}`))
	assert.False(t, res.Valid)
	assert.True(t, mentions(res.Errors, "'endTime' must be later"))
	assert.True(t, mentions(res.Errors, "'entryPrice' must be 0"))

	res = validation.ValidateEventUpdate(decode[models.EventInput](t, `{"startTime":"25:00","title":"abc"}`))
	assert.False(t, res.Valid)
	assert.True(t, mentions(res.Errors, "HH:MM"))
	assert.True(t, mentions(res.Errors, "at least 5 characters"))
}

const validReservation = `{
	"userId":12,"products":[{"type":"tea","id":"p1","quantity":2,"unitPrice":6.5}],
	"totalAmount":13,"pickupDate":"15-10-24","pickupTimeSlot":"14:00-15:00",
	"contactEmail":"ana@example.com","paymentMethod":"cash","subtotal":13,"state":"pending_pickup"}`

func TestValidateReservation(t *testing.T) {
	res := validation.ValidateReservation(decode[models.ReservationInput](t, validReservation))
	assert.True(t, res.Valid, res.Errors)
}

func TestValidateReservation_EmptyProducts(t *testing.T) {
	in := decode[models.ReservationInput](t, validReservation)
	empty := []models.ReservationItemInput{}
	in.Products = &empty

	res := validation.ValidateReservation(in)
	assert.False(t, res.Valid)
	assert.True(t, mentions(res.Errors, "'products' must contain at least one product"))
}

func TestValidateReservationUpdate_ItemMissingUnitPrice(t *testing.T) {
	res := validation.ValidateReservationUpdate(decode[models.ReservationInput](t,
		`{"products":[{"type":"tea","id":"p1","quantity":1}]}`))
	assert.False(t, res.Valid)
	assert.True(t, mentions(res.Errors, "products[0].unitPrice"))
}

func TestValidateReservationUpdate_Fields(t *testing.T) {
	assert.True(t, validation.ValidateReservationUpdate(decode[models.ReservationInput](t,
		`{"cancellationDate":"","state":"cancelled"}`)).Valid)

	res := validation.ValidateReservationUpdate(decode[models.ReservationInput](t,
		`{"cancellationDate":"yesterday","paymentMethod":"cheque","pickupTimeSlot":"14:00"}`))
	assert.False(t, res.Valid)
	assert.Len(t, res.Errors, 3)
}

func TestValidateUser(t *testing.T) {
	res := validation.ValidateUser(decode[models.UserInput](t,
		`{"fullName":"Ana Ruiz","dateOfBirth":"20-05-90","email":"ana@example.com","password":"secret1","role":"superuser"}`))
	assert.True(t, res.Valid, res.Errors)

	res = validation.ValidateUser(decode[models.UserInput](t, `{"fullName":"Ana","email":"not-an-email","password":"123"}`))
	assert.False(t, res.Valid)
	assert.True(t, mentions(res.Errors, "'dateOfBirth' is required"))
	assert.True(t, mentions(res.Errors, "valid email"))
	assert.True(t, mentions(res.Errors, "at least 6 characters"))

	res = validation.ValidateUserUpdate(decode[models.UserInput](t, `{"role":"superuser"}`))
	assert.False(t, res.Valid)
}
