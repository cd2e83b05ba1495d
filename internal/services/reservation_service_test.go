package services_test

import (
	"context"
	"encoding/json"
	"testing"

	"teahouse/internal/apperrors"
	"teahouse/internal/logger"
	"teahouse/internal/models"
	"teahouse/internal/repositories"
	"teahouse/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func reservationInput(t *testing.T, body string) models.ReservationInput {
	t.Helper()
	var in models.ReservationInput
	require.NoError(t, json.Unmarshal([]byte(body), &in))
	return in
}

const newReservation = `{
	"userId":"u1","products":[{"type":"tea","id":"p1","quantity":2,"unitPrice":6.5},{"type":"craft","id":3,"quantity":1,"unitPrice":20}],
	"totalAmount":33,"pickupDate":"15-10-24","pickupTimeSlot":"14:00-15:00",
	"contactEmail":"ana@example.com","paymentMethod":"cash","subtotal":33,"state":"pending_pickup"}`

func TestReservationService_CreateWithEmptyProductsTouchesNoStore(t *testing.T) {
	store := new(MockDocumentStore)
	d := services.Deps{Store: store, Logger: logger.Discard()}
	svc := services.NewReservationService(d, services.NewReferenceComposer(repositories.NewLenientFinder(store), true, nil))

	in := reservationInput(t, newReservation)
	in.Products = &[]models.ReservationItemInput{}

	_, err := svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	store.AssertExpectations(t)
	assert.Empty(t, store.Calls)
}

func TestReservationService_Create(t *testing.T) {
	d, _ := memoryDeps(t)
	pub := &recordingPublisher{}
	d.Publisher = pub
	svc := services.NewReservationService(d, services.NewReferenceComposer(nil, false, nil))

	res, err := svc.Create(context.Background(), reservationInput(t, newReservation))
	require.NoError(t, err)

	assert.NotEmpty(t, res.ID)
	require.Len(t, res.Products, 2)
	assert.Equal(t, models.Reference{Collection: "teasProducts", ID: models.StringID("p1"), Kind: models.KindTea}, res.Products[0].ProductRef)
	assert.Equal(t, 2.0, res.Products[0].Quantity)
	assert.Equal(t, 6.5, res.Products[0].UnitPrice)
	assert.Equal(t, "craftProducts", res.Products[1].ProductRef.Collection)
	assert.Equal(t, models.NumberID("3"), res.Products[1].ProductRef.ID)
	assert.Equal(t, []string{"reservation.created"}, pub.Keys())

	got, err := svc.GetByID(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Equal(t, res, got)
}

func TestReservationService_UpdateInvalidProductsLeavesRecord(t *testing.T) {
	ctx := context.Background()
	d, _ := memoryDeps(t)
	svc := services.NewReservationService(d, services.NewReferenceComposer(nil, false, nil))

	created, err := svc.Create(ctx, reservationInput(t, newReservation))
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, reservationInput(t, `{"products":[{"type":"tea","id":"p1","quantity":1}]}`))
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, apperrors.From(err).Details()[0], "unitPrice")

	after, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, after)
}

func TestReservationService_UpdateByLogicalID(t *testing.T) {
	ctx := context.Background()
	d, store := memoryDeps(t)
	key, err := store.Add(ctx, models.CollectionReservations, map[string]interface{}{
		"id": 7, "state": "pending_pickup", "contactEmail": "legacy@example.com",
	})
	require.NoError(t, err)
	svc := services.NewReservationService(d, services.NewReferenceComposer(nil, false, nil))

	updated, err := svc.Update(ctx, "7", reservationInput(t, `{"state":"paid"}`))
	require.NoError(t, err)
	assert.Equal(t, key, updated.ID)
	assert.Equal(t, models.NumberID("7"), updated.LogicalID)
	assert.Equal(t, models.ReservationPaid, updated.State)
	assert.Equal(t, "legacy@example.com", updated.ContactEmail)
}

func TestReservationService_StateTransitionsArePermissive(t *testing.T) {
	ctx := context.Background()
	d, _ := memoryDeps(t)
	svc := services.NewReservationService(d, services.NewReferenceComposer(nil, false, nil))

	created, err := svc.Create(ctx, reservationInput(t, newReservation))
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, reservationInput(t, `{"state":"finished"}`))
	require.NoError(t, err)
	back, err := svc.Update(ctx, created.ID, reservationInput(t, `{"state":"pending_pickup"}`))
	require.NoError(t, err)
	assert.Equal(t, models.ReservationPendingPickup, back.State)
}

func TestReservationService_DeleteMissingDoesNotMutate(t *testing.T) {
	store := new(MockDocumentStore)
	store.On("Get", mock.Anything, models.CollectionReservations, "does-not-exist").
		Return(nil, repositories.ErrDocumentNotFound).Once()
	store.On("GetAll", mock.Anything, models.CollectionReservations).
		Return([]models.Document{{Key: "k1", Fields: map[string]interface{}{"id": "other"}}}, nil).Once()
	svc := services.NewReservationService(services.Deps{Store: store, Logger: logger.Discard()}, services.NewReferenceComposer(nil, false, nil))

	err := svc.Delete(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, "reservation not found", apperrors.From(err).Message())
	store.AssertExpectations(t)
	store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReservationService_Search(t *testing.T) {
	ctx := context.Background()
	d, _ := memoryDeps(t)
	svc := services.NewReservationService(d, services.NewReferenceComposer(nil, false, nil))
	_, err := svc.Create(ctx, reservationInput(t, newReservation))
	require.NoError(t, err)

	found, err := svc.SearchByEmail(ctx, "ANA@")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	_, err = svc.SearchByEmail(ctx, "nobody")
	assert.ErrorIs(t, err, apperrors.ErrNoMatch)
}

func TestReservationService_VerifiedReferences(t *testing.T) {
	ctx := context.Background()
	d, store := memoryDeps(t)
	_, err := store.Add(ctx, models.CollectionTeaProducts, map[string]interface{}{"id": "p1", "name": "Sencha", "stock": 5})
	require.NoError(t, err)
	_, err = store.Add(ctx, models.CollectionCraftProducts, map[string]interface{}{"id": 3, "name": "Bowl", "stock": 1})
	require.NoError(t, err)
	svc := services.NewReservationService(d, services.NewReferenceComposer(repositories.NewLenientFinder(store), true, nil))

	_, err = svc.Create(ctx, reservationInput(t, newReservation))
	require.NoError(t, err)

	tooMany := reservationInput(t, newReservation)
	(*tooMany.Products)[0].Quantity = ptr(6.0)
	_, err = svc.Create(ctx, tooMany)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, apperrors.From(err).Details()[0], "insufficient stock")

	missing := reservationInput(t, newReservation)
	(*missing.Products)[1].ID = ptr(models.StringID("404"))
	_, err = svc.Create(ctx, missing)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestReservationService_StoreFailureIsHidden(t *testing.T) {
	store := new(MockDocumentStore)
	store.On("GetAll", mock.Anything, models.CollectionReservations).Return(nil, assert.AnError).Once()
	svc := services.NewReservationService(services.Deps{Store: store, Logger: logger.Discard()}, services.NewReferenceComposer(nil, false, nil))

	_, err := svc.GetAll(context.Background())
	require.ErrorIs(t, err, apperrors.ErrStore)
	assert.Equal(t, "internal server error", apperrors.From(err).Message())
	store.AssertExpectations(t)
}
